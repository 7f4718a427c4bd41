package heightfield

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// IndicesPerCell is the number of indices emitted for one grid cell.
const IndicesPerCell = 6

// TriangleIndices builds the index buffer for a filled mesh: the grid is
// split into (countX-1)*(countZ-1) cells of two triangles each, wound
// counter-clockwise when seen from +Y.
func (f *Field) TriangleIndices() ([]uint16, error) {
	if f.Closed() {
		return nil, ErrClosed
	}
	if f.VertexCount() > math.MaxUint16+1 {
		return nil, fmt.Errorf("%w: %d vertices", ErrIndexOverflow, f.VertexCount())
	}

	cx := f.countX
	indices := make([]uint16, 0, (f.countX-1)*(f.countZ-1)*IndicesPerCell)

	for z := 0; z < f.countZ-1; z++ {
		for x := 0; x < f.countX-1; x++ {
			// Cell corners: a=(x,z) b=(x+1,z) c=(x,z+1) d=(x+1,z+1)
			a := uint16(z*cx + x)
			b := a + 1
			c := a + uint16(cx)
			d := c + 1

			indices = append(indices,
				a, c, b,
				b, c, d,
			)
		}
	}

	return indices, nil
}

// WriteHeights writes the Y values as text, one line per Z row.
func (f *Field) WriteHeights(w io.Writer) error {
	if f.Closed() {
		return ErrClosed
	}

	bw := bufio.NewWriter(w)
	for z := 0; z < f.countZ; z++ {
		for x := 0; x < f.countX; x++ {
			if x > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%9.6f", f.Height(x, z))
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')

	return bw.Flush()
}
