package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
	if m != Mat4(mgl32.Ident4()) {
		t.Errorf("Identity differs from mgl32: %v", m)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMulMatchesMathGL(t *testing.T) {
	a := Translate(1, -2, 3).Mul(RotateX(0.3))
	b := RotateY(1.1).Mul(Scale(2, 3, 4))

	got := a.Mul(b)
	want := mgl32.Mat4(a).Mul4(mgl32.Mat4(b))

	if !got.ApproxEqual(Mat4(want), 1e-5) {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
}

func TestRotationsMatchMathGL(t *testing.T) {
	angles := []float64{0, 0.25, math.Pi / 2, math.Pi, -2.5}

	for _, a := range angles {
		tests := []struct {
			name string
			got  Mat4
			want mgl32.Mat4
		}{
			{"X", RotateX(a), mgl32.HomogRotate3DX(float32(a))},
			{"Y", RotateY(a), mgl32.HomogRotate3DY(float32(a))},
			{"Z", RotateZ(a), mgl32.HomogRotate3DZ(float32(a))},
			{"Twist", TwistZ(a), mgl32.HomogRotate3DZ(float32(-a))},
		}
		for _, tt := range tests {
			if !tt.got.ApproxEqual(Mat4(tt.want), 1e-6) {
				t.Errorf("Rotate%s(%v): got %v, want %v", tt.name, a, tt.got, tt.want)
			}
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if m != Mat4(mgl32.Translate3D(5, 10, 15)) {
		t.Errorf("Translate differs from mgl32: %v", m)
	}
}

func TestScaleTranslate(t *testing.T) {
	pos := Vec3{X: -1, Y: 0.2, Z: 1}
	got := ScaleTranslate(2, 3, pos)
	want := Mat4{
		2, 0, 0, 0,
		0, 3, 0, 0,
		0, 0, 1, 0,
		-1, 0.2, 1, 1,
	}

	if got != want {
		t.Errorf("ScaleTranslate: got %v, want %v", got, want)
	}
	if got.At(0, 3) != -1 || got.At(2, 3) != 1 {
		t.Errorf("ScaleTranslate: translation not in last column: %v", got)
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(math.Pi / 2) // 90 degrees
	p := [3]float32{1, 0, 0}  // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestProjection(t *testing.T) {
	m := Projection(0.75, 0.5, 10)

	if m[0] != 0.75 || m[5] != 1 {
		t.Errorf("Projection scale: got (%f, %f), want (0.75, 1)", m[0], m[5])
	}
	if abs(m[10]-(-10.5/9.5)) > 1e-6 {
		t.Errorf("Projection [10]: got %f, want %f", m[10], -10.5/9.5)
	}
	if abs(m[14]-(-10.0/9.5)) > 1e-6 {
		t.Errorf("Projection [14]: got %f, want %f", m[14], -10.0/9.5)
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Projection [11] should be -1, got %f", m[11])
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Projection [15] should be 0, got %f", m[15])
	}
}

func TestProjectionDepthRange(t *testing.T) {
	m := Projection(1, 0.5, 10)

	near := m.TransformPoint([3]float32{0, 0, -0.5})
	far := m.TransformPoint([3]float32{0, 0, -10})

	if abs(near[2]+1) > 1e-5 {
		t.Errorf("near plane should map to -1, got %f", near[2])
	}
	if abs(far[2]-1) > 1e-5 {
		t.Errorf("far plane should map to 1, got %f", far[2])
	}
}

func TestApproxEqual(t *testing.T) {
	a := Identity()
	b := Identity()
	b[5] += 1e-7

	if !a.ApproxEqual(b, 1e-6) {
		t.Error("matrices within tolerance should be equal")
	}
	b[5] += 1e-3
	if a.ApproxEqual(b, 1e-6) {
		t.Error("matrices outside tolerance should differ")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
