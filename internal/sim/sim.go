// Package sim wires the height field, clock and transform composer into one
// owned simulation context that both the windowed and headless drivers step.
package sim

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ripple/internal/config"
	"github.com/Faultbox/ripple/internal/heightfield"
	"github.com/Faultbox/ripple/internal/logger"
	"github.com/Faultbox/ripple/internal/transform"
	"github.com/Faultbox/ripple/pkg/math"
)

// Frame is the output of one step, ready for upload.
type Frame struct {
	Iteration int
	Time      float64
	Vertices  []float32 // Aliases the field; valid until the next step
	Final     math.Mat4
}

// Simulation owns the grid and the camera matrices for one run.
type Simulation struct {
	Field    *heightfield.Field
	Composer *transform.Composer
	Clock    heightfield.Clock

	iterations int
	dumpEvery  int
	frameDelay time.Duration
	log        *zap.Logger
}

// New validates cfg and allocates the grid. The grid is released by Close.
func New(cfg *config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock, err := heightfield.NewClock(cfg.Simulation.TimeSource, cfg.Simulation.Iterations)
	if err != nil {
		return nil, err
	}

	field, err := heightfield.New(cfg.Grid.CountX, cfg.Grid.CountZ, heightfield.Wave{
		Amplitude: cfg.Wave.Amplitude,
		Omega:     cfg.Wave.Omega,
	})
	if err != nil {
		return nil, fmt.Errorf("creating height field: %w", err)
	}

	pose := PoseFromConfig(cfg.Camera)
	pose.Aspect = transform.AspectRatio(cfg.Window.Width, cfg.Window.Height)

	s := &Simulation{
		Field:      field,
		Composer:   transform.NewWithPose(pose),
		Clock:      clock,
		iterations: cfg.Simulation.Iterations,
		dumpEvery:  cfg.Simulation.DumpEvery,
		frameDelay: cfg.Simulation.FrameDelay,
		log:        logger.Named("sim"),
	}

	s.log.Info("height field allocated",
		zap.Int("count_x", field.CountX()),
		zap.Int("count_z", field.CountZ()),
		zap.Int("vertices", field.VertexCount()),
		zap.Int("bytes", field.ByteSize()),
		zap.String("time_source", cfg.Simulation.TimeSource),
	)
	return s, nil
}

// PoseFromConfig builds the starting camera pose.
func PoseFromConfig(c config.CameraConfig) transform.Pose {
	p := transform.DefaultPose()
	p.Position = math.Vec3{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]}
	p.Theta = c.Theta
	p.Phi = c.Phi
	p.Twist = c.Twist
	if c.ScaleX != 0 {
		p.ScaleX = c.ScaleX
	}
	if c.ScaleY != 0 {
		p.ScaleY = c.ScaleY
	}
	p.Near = c.Near
	p.Far = c.Far
	return p
}

// Iterations returns the configured run length; 0 means unbounded.
func (s *Simulation) Iterations() int {
	return s.iterations
}

// Done reports whether iteration is past the configured run length.
func (s *Simulation) Done(iteration int) bool {
	return s.iterations > 0 && iteration >= s.iterations
}

// FrameDelay returns the pause to insert after each frame.
func (s *Simulation) FrameDelay() time.Duration {
	return s.frameDelay
}

// Step advances the grid to the clock's time for iteration and returns the
// data to draw.
func (s *Simulation) Step(iteration int) Frame {
	t := s.Clock.Time(iteration)
	s.Field.Update(t)

	return Frame{
		Iteration: iteration,
		Time:      t,
		Vertices:  s.Field.Vertices(),
		Final:     s.Composer.FinalMatrix(),
	}
}

// RunHeadless steps through every iteration without a window, writing the
// grid heights to w every dumpEvery steps. The run must be bounded.
func (s *Simulation) RunHeadless(w io.Writer) error {
	if s.iterations <= 0 {
		return fmt.Errorf("%w: headless runs need a positive iteration count", config.ErrInvalidConfiguration)
	}

	start := time.Now()
	for i := 0; !s.Done(i); i++ {
		frame := s.Step(i)

		if i%s.dumpEvery == 0 {
			if _, err := fmt.Fprintf(w, "iteration %d t=%.6f\n", frame.Iteration, frame.Time); err != nil {
				return fmt.Errorf("writing heights: %w", err)
			}
			if err := s.Field.WriteHeights(w); err != nil {
				return fmt.Errorf("writing heights: %w", err)
			}
		}

		if s.frameDelay > 0 {
			time.Sleep(s.frameDelay)
		}
	}

	s.log.Info("headless run finished",
		zap.Int("iterations", s.iterations),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Close releases the grid. Safe to call more than once.
func (s *Simulation) Close() {
	if s.Field != nil && !s.Field.Closed() {
		s.Field.Close()
		s.log.Debug("height field released")
	}
}
