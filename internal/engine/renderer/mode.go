package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mode selects how the grid is drawn.
type Mode int

const (
	// ModeLines draws all vertices as one line strip.
	ModeLines Mode = iota
	// ModePoints draws each vertex as a point.
	ModePoints
	// ModeTriangles draws a filled mesh through the index buffer.
	ModeTriangles
)

// ParseMode converts a config name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "lines", "":
		return ModeLines, nil
	case "points":
		return ModePoints, nil
	case "triangles":
		return ModeTriangles, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q", name)
	}
}

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLines:
		return "lines"
	case ModePoints:
		return "points"
	case ModeTriangles:
		return "triangles"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Indexed reports whether the mode needs an element buffer.
func (m Mode) Indexed() bool {
	return m == ModeTriangles
}

// primitive returns the GL primitive for the mode.
func (m Mode) primitive() uint32 {
	switch m {
	case ModePoints:
		return gl.POINTS
	case ModeTriangles:
		return gl.TRIANGLES
	default:
		return gl.LINE_STRIP
	}
}
