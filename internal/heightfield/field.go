// Package heightfield owns the ripple vertex grid and the per-step height
// update.
package heightfield

import (
	"errors"
	"fmt"
	"math"
)

const (
	// ComponentsPerVertex is the vertex stride in floats (X, Y, Z).
	ComponentsPerVertex = 3

	// BytesPerVertex is the vertex stride in bytes.
	BytesPerVertex = ComponentsPerVertex * 4

	// MaxVertices caps the grid allocation.
	MaxVertices = 1 << 24
)

var (
	ErrInvalidConfiguration = errors.New("invalid grid configuration")
	ErrAllocation           = errors.New("grid allocation failed")
	ErrIndexOverflow        = errors.New("grid too large for 16-bit indices")
	ErrClosed               = errors.New("height field closed")
)

// Wave holds the ripple parameters.
type Wave struct {
	Amplitude float64 // Peak displacement on Y
	Omega     float64 // Angular frequency (radians per time unit)
}

// DefaultWave returns amplitude 1 at one cycle per time unit.
func DefaultWave() Wave {
	return Wave{
		Amplitude: 1.0,
		Omega:     2.0 * math.Pi,
	}
}

// At returns the height at time t for a cell at distance d from the center.
func (w Wave) At(t, d float64) float64 {
	return w.Amplitude * math.Cos(w.Omega*t+d)
}

// Field is a countX by countZ grid of vertices on the XZ plane.
// Vertices are stored row-major by Z then X; only Y changes after New.
type Field struct {
	countX, countZ int
	wave           Wave
	vertices       []float32

	// Radial distance of each cell from the grid center, fixed by the layout.
	distances []float64
}

// New allocates the grid and lays out X = x/countX, Z = z/countZ, Y = 0.
func New(countX, countZ int, wave Wave) (*Field, error) {
	if countX < 2 || countZ < 2 {
		return nil, fmt.Errorf("%w: %dx%d (need at least 2x2)", ErrInvalidConfiguration, countX, countZ)
	}

	n, err := vertexCount(countX, countZ)
	if err != nil {
		return nil, err
	}

	f := &Field{
		countX:    countX,
		countZ:    countZ,
		wave:      wave,
		vertices:  make([]float32, n*ComponentsPerVertex),
		distances: make([]float64, n),
	}

	centerX := float64(countX / 2)
	centerZ := float64(countZ / 2)

	for z := 0; z < countZ; z++ {
		zScaled := float32(z) / float32(countZ)
		dz := (float64(z) - centerZ) / float64(countZ)
		for x := 0; x < countX; x++ {
			i := z*countX + x
			dx := (float64(x) - centerX) / float64(countX)

			f.vertices[i*3] = float32(x) / float32(countX)
			f.vertices[i*3+1] = 0
			f.vertices[i*3+2] = zScaled
			f.distances[i] = math.Sqrt(dx*dx + dz*dz)
		}
	}

	return f, nil
}

func vertexCount(countX, countZ int) (int, error) {
	if countX > MaxVertices/countZ {
		return 0, fmt.Errorf("%w: %dx%d exceeds %d vertices", ErrAllocation, countX, countZ, MaxVertices)
	}
	return countX * countZ, nil
}

// Update sets every Y to wave(t, distance). The result depends only on t
// and the cell, so repeated calls with the same t are bit-identical.
func (f *Field) Update(t float64) {
	for i, d := range f.distances {
		f.vertices[i*3+1] = float32(f.wave.At(t, d))
	}
}

// Close releases the grid. Safe to call more than once.
func (f *Field) Close() {
	f.vertices = nil
	f.distances = nil
}

// Closed reports whether Close has been called.
func (f *Field) Closed() bool {
	return f.vertices == nil
}

// Vertices returns the flat X, Y, Z buffer for upload. The slice aliases the
// field and is rewritten by Update.
func (f *Field) Vertices() []float32 {
	return f.vertices
}

// VertexCount returns countX * countZ, or 0 once closed.
func (f *Field) VertexCount() int {
	return len(f.vertices) / ComponentsPerVertex
}

// ByteSize returns the vertex buffer size in bytes.
func (f *Field) ByteSize() int {
	return len(f.vertices) * 4
}

// CountX returns the number of vertices along X.
func (f *Field) CountX() int { return f.countX }

// CountZ returns the number of vertices along Z.
func (f *Field) CountZ() int { return f.countZ }

// Position returns the vertex at cell (x, z), or zeros once closed.
func (f *Field) Position(x, z int) [3]float32 {
	if f.Closed() {
		return [3]float32{}
	}
	i := (z*f.countX + x) * 3
	return [3]float32{f.vertices[i], f.vertices[i+1], f.vertices[i+2]}
}

// Height returns the Y value at cell (x, z), or 0 once closed.
func (f *Field) Height(x, z int) float32 {
	if f.Closed() {
		return 0
	}
	return f.vertices[(z*f.countX+x)*3+1]
}

// Distance returns the radial distance of cell (x, z) from the grid center,
// or 0 once closed.
func (f *Field) Distance(x, z int) float64 {
	if f.Closed() {
		return 0
	}
	return f.distances[z*f.countX+x]
}
