package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
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

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(1, 2, 3)
	p := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{2, 3, 4}
	if p != want {
		t.Errorf("TransformPoint = %v, want %v", p, want)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(3, -2, 7).Mul(RotateAxis(Vec3{0, 1, 0}, 0.7)).Mul(Scale(2, 2, 2))
	inv := m.Inverse()
	id := m.Mul(inv)

	want := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(id[i]-want[i])) > 1e-5 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, id[i], want[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	inv := zero.Inverse()
	if inv != Identity() {
		t.Error("inverse of a singular matrix should be identity")
	}
}

func TestPerspectiveUnprojectRoundTrip(t *testing.T) {
	proj := Perspective(0.785398, 16.0/9.0, 0.1, 100.0)
	inv := proj.Inverse()

	// Points inside the frustum must survive project/unproject
	pts := []Vec3{
		{0, 0, -1},
		{0.5, -0.25, -10},
		{-2, 1, -50},
	}
	for _, p := range pts {
		clip := proj.TransformPoint(p)
		back := inv.TransformPoint(clip)
		if math.Abs(float64(back.X-p.X)) > 1e-3 ||
			math.Abs(float64(back.Y-p.Y)) > 1e-3 ||
			math.Abs(float64(back.Z-p.Z)) > 1e-3 {
			t.Errorf("unproject(project(%v)) = %v", p, back)
		}
	}
}

func TestLookAtEyeMapsToOrigin(t *testing.T) {
	eye := Vec3{1, 2, 3}
	view := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	p := view.TransformPoint(eye)
	if math.Abs(float64(p.X)) > 1e-5 || math.Abs(float64(p.Y)) > 1e-5 || math.Abs(float64(p.Z)) > 1e-5 {
		t.Errorf("view matrix should map the eye to the origin, got %v", p)
	}
}

func TestDiagonal3(t *testing.T) {
	d := Diagonal3(Vec3{2, 3, 4})
	if d[0] != 2 || d[4] != 3 || d[8] != 4 {
		t.Errorf("Diagonal3 diagonal = (%f, %f, %f), want (2, 3, 4)", d[0], d[4], d[8])
	}
	if d[1] != 0 || d[3] != 0 {
		t.Error("Diagonal3 off-diagonal should be 0")
	}
}
