// Package app implements the windowed demo loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/ripple/internal/config"
	"github.com/Faultbox/ripple/internal/engine/camera"
	"github.com/Faultbox/ripple/internal/engine/capture"
	"github.com/Faultbox/ripple/internal/engine/input"
	"github.com/Faultbox/ripple/internal/engine/renderer"
	"github.com/Faultbox/ripple/internal/engine/window"
	"github.com/Faultbox/ripple/internal/logger"
	"github.com/Faultbox/ripple/internal/sim"
	"github.com/Faultbox/ripple/internal/transform"
)

// App is the windowed demo instance.
type App struct {
	config   *config.Config
	running  bool
	closed   bool
	log      *zap.Logger
	sim      *sim.Simulation
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.Controller
	capturer *capture.Capturer

	iteration   int
	captureNext bool
}

// New validates cfg and creates the simulation, window and renderer.
// Nothing is left allocated when it returns an error.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
	}

	a.log.Info("initializing demo",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("mode", cfg.Render.Mode),
	)

	mode, err := renderer.ParseMode(cfg.Render.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfiguration, err)
	}

	a.capturer, err = capture.New(cfg.Render.CaptureDir, "ripple", cfg.Render.CaptureFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfiguration, err)
	}

	// Grid and configuration errors surface before any window exists
	a.sim, err = sim.New(cfg)
	if err != nil {
		return nil, err
	}

	var indices []uint16
	if mode.Indexed() {
		indices, err = a.sim.Field.TriangleIndices()
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The drawable may differ from the requested size on HiDPI displays
	width, height := a.window.GetSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Mode:       mode,
		ClearColor: cfg.Render.ClearColor,
		PointSize:  cfg.Render.PointSize,
		Amplitude:  float32(cfg.Wave.Amplitude),
	}, a.sim.Field.VertexCount(), indices)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.sim.Composer.SetPerspective(cfg.Camera.Near, cfg.Camera.Far, transform.AspectRatio(width, height))
	a.camera = camera.NewController(a.sim.Composer.Pose())
	a.input = input.New()

	a.log.Info("demo initialized successfully")
	return a, nil
}

// Run starts the main loop. It returns when the window is closed, ESC is
// pressed or the configured iteration count is reached.
func (a *App) Run() error {
	if a.closed {
		return errors.New("app is closed")
	}
	a.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting demo loop", zap.Int("iterations", a.sim.Iterations()))

	for a.iteration = 0; a.running && !a.sim.Done(a.iteration); a.iteration++ {
		iteration := a.iteration
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents(a.input.Events())
		if !a.running {
			break
		}

		// 2. Camera changes only touch the matrices they affect
		a.camera.Apply(a.sim.Composer)

		// 3. Advance the grid
		frame := a.sim.Step(iteration)

		// 4. Render
		if err := a.renderer.Upload(frame.Vertices); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.renderer.Draw(frame.Final)
		if err := renderer.CheckError(); err != nil {
			a.log.Warn("frame drawn with GL error", zap.Int("iteration", iteration), zap.Error(err))
		}

		if a.captureNext {
			a.captureNext = false
			a.saveScreenshot()
		}

		// 5. Present (swap buffers)
		a.window.SwapBuffers()

		if d := a.sim.FrameDelay(); d > 0 {
			time.Sleep(d)
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Float64("t", frame.Time),
			)
			a.window.SetTitle(fmt.Sprintf("%s - %d fps, t=%.2f", a.config.Window.Title, frameCount, frame.Time))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	a.running = false
	a.log.Info("demo loop finished", zap.Int("frames", a.iteration))
	return nil
}

func (a *App) handleEvents(events []input.Event) {
	for _, event := range events {
		switch event.Type {
		case input.EventWindowResize:
			width, height, ok := drawableSize(a.window)
			if !ok {
				continue
			}
			a.renderer.Resize(width, height)
			a.sim.Composer.SetPerspective(a.config.Camera.Near, a.config.Camera.Far,
				transform.AspectRatio(width, height))
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
				return
			case sdl.SCANCODE_F12:
				a.captureNext = true
				continue
			}
			a.camera.Handle(ActionForKey(event.Key))
		case input.EventMouseDrag:
			a.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
		case input.EventMouseWheel:
			a.camera.HandleZoom(float32(event.DeltaY))
		}
	}
}

type drawable interface {
	GetSize() (int, int)
}

// drawableSize returns the framebuffer size in pixels. Resize events carry
// window units, which differ on HiDPI displays, so the viewport is always
// taken from the drawable. A minimized window reports no usable size.
func drawableSize(d drawable) (int, int, bool) {
	w, h := d.GetSize()
	return w, h, w > 0 && h > 0
}

// saveScreenshot reads back the frame just drawn. Failures are logged and
// the loop keeps running.
func (a *App) saveScreenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	name, err := a.capturer.SaveRGBA(pixels, width, height, a.iteration)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name), zap.Int("iteration", a.iteration))
}

// Close releases the renderer, window and grid. Safe to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.log.Info("closing demo")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	if a.sim != nil {
		a.sim.Close()
	}
}
