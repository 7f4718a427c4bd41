package heightfield

import (
	"fmt"
	"time"
)

// Clock names accepted by NewClock.
const (
	ClockWall      = "wall"
	ClockIteration = "iteration"
)

// Clock maps a simulation iteration to the time passed to Field.Update.
// One run uses one Clock; both implementations are monotonic in iteration.
type Clock interface {
	Time(iteration int) float64
}

// WallClock reports seconds elapsed since it was created, ignoring the
// iteration number. Backed by the monotonic clock.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a wall clock now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Time returns the seconds elapsed since the clock started.
func (c *WallClock) Time(int) float64 {
	return time.Since(c.start).Seconds()
}

// IterationClock reports iteration/Iterations, so a full run sweeps t
// from 0 towards 1.
type IterationClock struct {
	Iterations int
}

// Time returns iteration as a fraction of the run length.
func (c IterationClock) Time(iteration int) float64 {
	return float64(iteration) / float64(c.Iterations)
}

// NewClock builds the named clock. iterations must be positive for the
// iteration clock.
func NewClock(kind string, iterations int) (Clock, error) {
	switch kind {
	case ClockWall, "":
		return NewWallClock(), nil
	case ClockIteration:
		if iterations <= 0 {
			return nil, fmt.Errorf("%w: iteration clock needs a positive iteration count, got %d",
				ErrInvalidConfiguration, iterations)
		}
		return IterationClock{Iterations: iterations}, nil
	default:
		return nil, fmt.Errorf("%w: unknown time source %q", ErrInvalidConfiguration, kind)
	}
}
