// Package config handles demo configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/ripple/internal/heightfield"
)

// ErrInvalidConfiguration is returned by Validate for unusable settings. It
// is the same sentinel the height field reports for bad grid sizes.
var ErrInvalidConfiguration = heightfield.ErrInvalidConfiguration

// Render modes.
const (
	ModeLines     = "lines"
	ModePoints    = "points"
	ModeTriangles = "triangles"
)

// Config holds all demo settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Grid       GridConfig       `yaml:"grid"`
	Wave       WaveConfig       `yaml:"wave"`
	Camera     CameraConfig     `yaml:"camera"`
	Render     RenderConfig     `yaml:"render"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// GridConfig holds the height field resolution.
type GridConfig struct {
	CountX int `yaml:"count_x"`
	CountZ int `yaml:"count_z"`
}

// WaveConfig holds the ripple parameters.
type WaveConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Omega     float64 `yaml:"omega"` // Radians per time unit
}

// CameraConfig holds the starting camera pose and clip planes.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Theta    float64    `yaml:"theta"`
	Phi      float64    `yaml:"phi"`
	Twist    float64    `yaml:"twist"`
	ScaleX   float32    `yaml:"scale_x"`
	ScaleY   float32    `yaml:"scale_y"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// RenderConfig holds drawing settings.
type RenderConfig struct {
	Mode       string     `yaml:"mode"` // lines, points or triangles
	ClearColor [4]float32 `yaml:"clear_color"`
	PointSize  float32    `yaml:"point_size"`

	CaptureDir    string `yaml:"capture_dir"`    // F12 screenshots
	CaptureFormat string `yaml:"capture_format"` // png or bmp
}

// SimulationConfig holds the step loop settings.
type SimulationConfig struct {
	Iterations int           `yaml:"iterations"`  // 0 runs until the window closes
	TimeSource string        `yaml:"time_source"` // wall or iteration
	FrameDelay time.Duration `yaml:"frame_delay"` // Pause after each frame
	Headless   bool          `yaml:"headless"`    // Print heights instead of drawing
	DumpEvery  int           `yaml:"dump_every"`  // Headless: print every Nth step
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the demo's stock values.
func Default() *Config {
	wave := heightfield.DefaultWave()
	return &Config{
		Window: WindowConfig{
			Title:      "Ripple",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Grid: GridConfig{
			CountX: 400,
			CountZ: 400,
		},
		Wave: WaveConfig{
			Amplitude: wave.Amplitude,
			Omega:     wave.Omega,
		},
		Camera: CameraConfig{
			Position: [3]float32{-1.0, 0.2, 1.0},
			ScaleX:   1,
			ScaleY:   1,
			Near:     0.5,
			Far:      10.0,
		},
		Render: RenderConfig{
			Mode:       ModeLines,
			ClearColor: [4]float32{0, 0, 0, 1},
			PointSize:  2,

			CaptureDir:    "screenshots",
			CaptureFormat: "png",
		},
		Simulation: SimulationConfig{
			Iterations: 10000,
			TimeSource: heightfield.ClockWall,
			DumpEvery:  1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot produce a running demo.
// It runs before any window or GPU work.
func (c *Config) Validate() error {
	switch {
	case c.Grid.CountX < 2 || c.Grid.CountZ < 2:
		return fmt.Errorf("%w: grid %dx%d, need at least 2x2", ErrInvalidConfiguration, c.Grid.CountX, c.Grid.CountZ)
	case c.Simulation.Iterations < 0:
		return fmt.Errorf("%w: negative iteration count %d", ErrInvalidConfiguration, c.Simulation.Iterations)
	case c.Simulation.TimeSource == heightfield.ClockIteration && c.Simulation.Iterations == 0:
		return fmt.Errorf("%w: iteration time source needs a fixed iteration count", ErrInvalidConfiguration)
	case c.Simulation.TimeSource != heightfield.ClockWall && c.Simulation.TimeSource != heightfield.ClockIteration:
		return fmt.Errorf("%w: unknown time source %q", ErrInvalidConfiguration, c.Simulation.TimeSource)
	case c.Simulation.DumpEvery < 1:
		return fmt.Errorf("%w: dump_every must be at least 1", ErrInvalidConfiguration)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip planes near=%g far=%g", ErrInvalidConfiguration, c.Camera.Near, c.Camera.Far)
	}

	switch c.Render.Mode {
	case ModeLines, ModePoints, ModeTriangles:
	default:
		return fmt.Errorf("%w: unknown render mode %q", ErrInvalidConfiguration, c.Render.Mode)
	}

	switch c.Render.CaptureFormat {
	case "", "png", "bmp":
	default:
		return fmt.Errorf("%w: unknown capture format %q", ErrInvalidConfiguration, c.Render.CaptureFormat)
	}

	if !c.Simulation.Headless && (c.Window.Width <= 0 || c.Window.Height <= 0) {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfiguration, c.Window.Width, c.Window.Height)
	}
	return nil
}
