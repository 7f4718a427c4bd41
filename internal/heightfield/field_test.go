package heightfield

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNewLayout(t *testing.T) {
	sizes := [][2]int{{2, 2}, {4, 4}, {10, 10}, {7, 3}, {3, 8}}

	for _, s := range sizes {
		countX, countZ := s[0], s[1]
		f, err := New(countX, countZ, DefaultWave())
		if err != nil {
			t.Fatalf("New(%d, %d): %v", countX, countZ, err)
		}

		if got := f.VertexCount(); got != countX*countZ {
			t.Errorf("%dx%d: expected %d vertices, got %d", countX, countZ, countX*countZ, got)
		}
		if got := len(f.Vertices()); got != countX*countZ*3 {
			t.Errorf("%dx%d: expected %d floats, got %d", countX, countZ, countX*countZ*3, got)
		}
		if got := f.ByteSize(); got != countX*countZ*BytesPerVertex {
			t.Errorf("%dx%d: expected %d bytes, got %d", countX, countZ, countX*countZ*BytesPerVertex, got)
		}

		for z := 0; z < countZ; z++ {
			for x := 0; x < countX; x++ {
				p := f.Position(x, z)
				if want := float32(x) / float32(countX); p[0] != want {
					t.Errorf("(%d,%d): X = %f, want %f", x, z, p[0], want)
				}
				if p[1] != 0 {
					t.Errorf("(%d,%d): Y = %f, want 0", x, z, p[1])
				}
				if want := float32(z) / float32(countZ); p[2] != want {
					t.Errorf("(%d,%d): Z = %f, want %f", x, z, p[2], want)
				}
			}
		}

		// Last cell reaches (n-1)/n, never 1
		last := f.Position(countX-1, countZ-1)
		if last[0] != float32(countX-1)/float32(countX) || last[2] != float32(countZ-1)/float32(countZ) {
			t.Errorf("%dx%d: last vertex = %v", countX, countZ, last)
		}
	}
}

func TestNewRowMajorByZ(t *testing.T) {
	f, err := New(3, 2, DefaultWave())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	v := f.Vertices()
	// Vertex 1 is (x=1, z=0); vertex 3 is (x=0, z=1)
	if v[3] != float32(1)/3 || v[5] != 0 {
		t.Errorf("vertex 1 = (%f, %f), want (1/3, 0)", v[3], v[5])
	}
	if v[9] != 0 || v[11] != 0.5 {
		t.Errorf("vertex 3 = (%f, %f), want (0, 0.5)", v[9], v[11])
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name           string
		countX, countZ int
		want           error
	}{
		{"zero x", 0, 4, ErrInvalidConfiguration},
		{"zero z", 4, 0, ErrInvalidConfiguration},
		{"negative", -3, 4, ErrInvalidConfiguration},
		{"single row", 1, 4, ErrInvalidConfiguration},
		{"single column", 4, 1, ErrInvalidConfiguration},
		{"too large", MaxVertices, 2, ErrAllocation},
		{"overflow", math.MaxInt / 2, math.MaxInt / 2, ErrAllocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.countX, tt.countZ, DefaultWave())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if f != nil {
				t.Error("expected nil field on error")
			}
		})
	}
}

func TestUpdateIsPure(t *testing.T) {
	f, err := New(16, 12, DefaultWave())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f.Update(0.37)
	first := append([]float32(nil), f.Vertices()...)

	f.Update(5.2)
	f.Update(0.37)

	for i, v := range f.Vertices() {
		if math.Float32bits(v) != math.Float32bits(first[i]) {
			t.Fatalf("component %d: got %v, want %v", i, v, first[i])
		}
	}
}

func TestUpdateLeavesXZ(t *testing.T) {
	f, err := New(5, 5, DefaultWave())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := append([]float32(nil), f.Vertices()...)

	f.Update(1.25)

	v := f.Vertices()
	for i := 0; i < len(v); i += 3 {
		if v[i] != before[i] || v[i+2] != before[i+2] {
			t.Fatalf("vertex %d moved on XZ: (%f, %f) -> (%f, %f)",
				i/3, before[i], before[i+2], v[i], v[i+2])
		}
	}
}

func TestUpdateCenter(t *testing.T) {
	wave := Wave{Amplitude: 2.5, Omega: 3.0}
	sizes := [][2]int{{4, 4}, {5, 5}, {10, 6}}
	times := []float64{0, 0.1, 1, 2.75, 100}

	for _, s := range sizes {
		f, err := New(s[0], s[1], wave)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		cx, cz := s[0]/2, s[1]/2

		if d := f.Distance(cx, cz); d != 0 {
			t.Errorf("%v: center distance = %f, want 0", s, d)
		}

		for _, tm := range times {
			f.Update(tm)
			want := float32(wave.Amplitude * math.Cos(wave.Omega*tm))
			if got := f.Height(cx, cz); got != want {
				t.Errorf("%v t=%v: center Y = %v, want %v", s, tm, got, want)
			}
		}
	}
}

func TestUpdateFourByFour(t *testing.T) {
	f, err := New(4, 4, Wave{Amplitude: 1, Omega: 2 * math.Pi})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.Update(0)

	wantDist := math.Sqrt(0.25*0.25 + 0.25*0.25)
	diagonal := [][2]int{{1, 1}, {1, 3}, {3, 1}, {3, 3}}
	for _, c := range diagonal {
		if d := f.Distance(c[0], c[1]); math.Abs(d-wantDist) > 1e-12 {
			t.Errorf("%v: distance = %f, want %f", c, d, wantDist)
		}
		if y := f.Height(c[0], c[1]); math.Abs(float64(y)-0.9381) > 1e-4 {
			t.Errorf("%v: Y = %f, want ~0.9381", c, y)
		}
	}

	// Axis neighbors of the center sit a quarter away
	axis := [][2]int{{1, 2}, {2, 1}, {3, 2}, {2, 3}}
	for _, c := range axis {
		if y := f.Height(c[0], c[1]); math.Abs(float64(y)-math.Cos(0.25)) > 1e-6 {
			t.Errorf("%v: Y = %f, want %f", c, y, math.Cos(0.25))
		}
	}

	if y := f.Height(2, 2); y != 1 {
		t.Errorf("center Y = %f, want 1", y)
	}
}

func TestClose(t *testing.T) {
	f, err := New(3, 3, DefaultWave())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f.Close()
	f.Close()

	if !f.Closed() {
		t.Error("expected field to report closed")
	}
	if f.VertexCount() != 0 || f.ByteSize() != 0 || f.Vertices() != nil {
		t.Error("closed field should expose no vertices")
	}
	// Update on a closed field is a no-op
	f.Update(1)

	if p := f.Position(1, 1); p != ([3]float32{}) {
		t.Errorf("Position after Close = %v, want zeros", p)
	}
	if h := f.Height(0, 0); h != 0 {
		t.Errorf("Height after Close = %f, want 0", h)
	}
	if d := f.Distance(2, 2); d != 0 {
		t.Errorf("Distance after Close = %f, want 0", d)
	}

	if _, err := f.TriangleIndices(); !errors.Is(err, ErrClosed) {
		t.Errorf("TriangleIndices after Close: expected ErrClosed, got %v", err)
	}
	if err := f.WriteHeights(&bytes.Buffer{}); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteHeights after Close: expected ErrClosed, got %v", err)
	}
}

func TestTriangleIndices(t *testing.T) {
	f, err := New(3, 3, DefaultWave())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	idx, err := f.TriangleIndices()
	if err != nil {
		t.Fatalf("TriangleIndices: %v", err)
	}
	if len(idx) != 2*2*IndicesPerCell {
		t.Fatalf("expected %d indices, got %d", 2*2*IndicesPerCell, len(idx))
	}

	// First cell: a=0 b=1 c=3 d=4
	want := []uint16{0, 3, 1, 1, 3, 4}
	for i, w := range want {
		if idx[i] != w {
			t.Errorf("index %d: got %d, want %d", i, idx[i], w)
		}
	}

	// Every triangle faces +Y
	v := f.Vertices()
	for tri := 0; tri < len(idx); tri += 3 {
		a, b, c := int(idx[tri]), int(idx[tri+1]), int(idx[tri+2])
		e1x, e1z := v[b*3]-v[a*3], v[b*3+2]-v[a*3+2]
		e2x, e2z := v[c*3]-v[a*3], v[c*3+2]-v[a*3+2]
		if ny := e1z*e2x - e1x*e2z; ny <= 0 {
			t.Errorf("triangle %d (%d,%d,%d) is not counter-clockwise from +Y", tri/3, a, b, c)
		}
	}
}

func TestTriangleIndicesOverflow(t *testing.T) {
	f, err := New(257, 256, DefaultWave())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := f.TriangleIndices(); !errors.Is(err, ErrIndexOverflow) {
		t.Errorf("expected ErrIndexOverflow, got %v", err)
	}

	f, err = New(256, 256, DefaultWave())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	idx, err := f.TriangleIndices()
	if err != nil {
		t.Fatalf("256x256 should fit 16-bit indices: %v", err)
	}
	if idx[len(idx)-1] != math.MaxUint16 {
		t.Errorf("last index = %d, want %d", idx[len(idx)-1], math.MaxUint16)
	}
}

func TestWriteHeights(t *testing.T) {
	f, err := New(4, 3, DefaultWave())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.Update(0)

	var buf bytes.Buffer
	if err := f.WriteHeights(&buf); err != nil {
		t.Fatalf("WriteHeights: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(lines), buf.String())
	}
	for i, line := range lines {
		if n := len(strings.Fields(line)); n != 4 {
			t.Errorf("row %d: expected 4 values, got %d", i, n)
		}
	}
	// Center of a 4x3 grid is (2,1)
	if got := strings.Fields(lines[1])[2]; got != "1.000000" {
		t.Errorf("center value = %q, want 1.000000", got)
	}
}
