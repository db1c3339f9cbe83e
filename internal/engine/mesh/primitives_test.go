package mesh

import (
	"testing"

	"github.com/Faultbox/prism/pkg/math"
)

func checkUnitNormals(t *testing.T, m *Mesh) {
	t.Helper()
	normals, ok := m.Normals().Data()
	if !ok {
		t.Fatal("normals should be RAM-resident")
	}
	for i, n := range normals {
		l := n.Length()
		if l < 0.999 || l > 1.001 {
			t.Errorf("normal %d length = %v, want 1", i, l)
		}
	}
}

func TestCube(t *testing.T) {
	m := Cube(math.Vec3{X: 2, Y: 4, Z: 6})

	if m.Coords().Len() != 24 {
		t.Errorf("cube vertex count = %d, want 24", m.Coords().Len())
	}
	if m.Faces().Len() != 12 {
		t.Errorf("cube face count = %d, want 12", m.Faces().Len())
	}
	checkUnitNormals(t, m)

	coords, _ := m.Coords().Data()
	for i, c := range coords {
		if c.X < -1.001 || c.X > 1.001 || c.Y < -2.001 || c.Y > 2.001 || c.Z < -3.001 || c.Z > 3.001 {
			t.Errorf("vertex %d = %v outside extents", i, c)
		}
	}
}

func TestCubeNormalsMatchWinding(t *testing.T) {
	m := Cube(math.Vec3{X: 1, Y: 1, Z: 1})
	coords, _ := m.Coords().Data()
	faces, _ := m.Faces().Data()
	stored, _ := m.Normals().Data()

	// The cross-product normal of every face must agree with the stored
	// per-vertex normals; disagreement means broken winding.
	for fi, f := range faces {
		a, b, c := coords[f[0]], coords[f[1]], coords[f[2]]
		fn := b.Sub(a).Cross(c.Sub(a)).Normalize()
		if fn.Dot(stored[f[0]]) < 0.99 {
			t.Errorf("face %d winding normal %v disagrees with stored %v", fi, fn, stored[f[0]])
		}
	}
}

func TestQuad(t *testing.T) {
	m := Quad(2, 2, 3, 2)

	wantVerts := (3 + 1) * (2 + 1)
	if m.Coords().Len() != wantVerts {
		t.Errorf("quad vertex count = %d, want %d", m.Coords().Len(), wantVerts)
	}
	if m.Faces().Len() != 2*3*2 {
		t.Errorf("quad face count = %d, want 12", m.Faces().Len())
	}

	normals, _ := m.Normals().Data()
	for i, n := range normals {
		if n != (math.Vec3{Z: 1}) {
			t.Errorf("quad normal %d = %v, want +Z", i, n)
		}
	}
}

func TestSphere(t *testing.T) {
	const radius = 2.5
	m := Sphere(radius, 8, 12)

	checkUnitNormals(t, m)

	coords, _ := m.Coords().Data()
	normals, _ := m.Normals().Data()
	for i, c := range coords {
		r := c.Length()
		if r < radius-0.01 || r > radius+0.01 {
			t.Errorf("vertex %d at distance %v, want %v", i, r, float32(radius))
		}
		// Analytic normal points away from the center
		if normals[i].Distance(c.Normalize()) > 0.01 {
			t.Errorf("normal %d = %v, want %v", i, normals[i], c.Normalize())
		}
	}
}

func TestSphereWinding(t *testing.T) {
	m := Sphere(1, 6, 8)
	coords, _ := m.Coords().Data()
	faces, _ := m.Faces().Data()

	for fi, f := range faces {
		a, b, c := coords[f[0]], coords[f[1]], coords[f[2]]
		fn := b.Sub(a).Cross(c.Sub(a))
		if fn.Length() == 0 {
			continue // degenerate pole triangle
		}
		centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
		if fn.Dot(centroid) <= 0 {
			t.Errorf("face %d winds inward", fi)
		}
	}
}

func TestCylinder(t *testing.T) {
	m := Cylinder(1, 2, 8)
	checkUnitNormals(t, m)

	// 8 side segments * 2 + 8 per cap * 2
	if m.Faces().Len() != 8*2+8*2 {
		t.Errorf("cylinder face count = %d, want 32", m.Faces().Len())
	}

	coords, _ := m.Coords().Data()
	for i, c := range coords {
		if c.Y < -1.001 || c.Y > 1.001 {
			t.Errorf("vertex %d y = %v outside height", i, c.Y)
		}
	}
}

func TestCone(t *testing.T) {
	m := Cone(1, 2, 8)
	checkUnitNormals(t, m)

	// 8 side triangles + 8 base triangles
	if m.Faces().Len() != 16 {
		t.Errorf("cone face count = %d, want 16", m.Faces().Len())
	}
}

func TestCapsule(t *testing.T) {
	const radius, height = 1.0, 2.0
	m := Capsule(radius, height, 8, 12)
	checkUnitNormals(t, m)

	coords, _ := m.Coords().Data()
	for i, c := range coords {
		if c.Y < -(height/2+radius)-0.01 || c.Y > height/2+radius+0.01 {
			t.Errorf("vertex %d y = %v outside capsule", i, c.Y)
		}
		// Distance from the axis segment never exceeds the radius
		d := c.XZ().Length()
		if d > radius+0.01 {
			t.Errorf("vertex %d radial distance %v > radius", i, d)
		}
	}
}
