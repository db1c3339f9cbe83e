package mesh

import (
	"testing"

	"github.com/Faultbox/prism/pkg/math"
)

// trianglePositions resolves each face to its corner coordinates, the
// winding-order-preserving geometric identity of the triangle set.
func trianglePositions(coords []math.Vec3, faces []Face) [][3]math.Vec3 {
	out := make([][3]math.Vec3, len(faces))
	for i, f := range faces {
		out[i] = [3]math.Vec3{coords[f[0]], coords[f[1]], coords[f[2]]}
	}
	return out
}

func TestUnifyDuplicatesDisagreeingVertices(t *testing.T) {
	// Two triangles sharing an edge but with different normals per face:
	// the two shared corners must be duplicated.
	s := &SplitMesh{
		Coords: []math.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		Normals: []math.Vec3{{Z: 1}, {X: 1}},
		Faces: []SplitFace{
			{Coords: [3]uint32{0, 1, 2}, Normals: [3]uint32{0, 0, 0}},
			{Coords: [3]uint32{0, 2, 3}, Normals: [3]uint32{1, 1, 1}},
		},
	}

	coords, faces, normals, _, err := s.Unify()
	if err != nil {
		t.Fatalf("Unify: %v", err)
	}

	if len(coords) != 6 {
		t.Errorf("unified vertex count = %d, want 6 (shared corners split)", len(coords))
	}
	if len(faces) != 2 {
		t.Errorf("face count = %d, want 2", len(faces))
	}
	if len(normals) != len(coords) {
		t.Errorf("normal count = %d, want %d", len(normals), len(coords))
	}
}

func TestUnifyKeepsAgreeingVerticesShared(t *testing.T) {
	s := &SplitMesh{
		Coords: []math.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		Normals: []math.Vec3{{Z: 1}},
		Faces: []SplitFace{
			{Coords: [3]uint32{0, 1, 2}, Normals: [3]uint32{0, 0, 0}},
			{Coords: [3]uint32{0, 2, 3}, Normals: [3]uint32{0, 0, 0}},
		},
	}

	coords, _, _, _, err := s.Unify()
	if err != nil {
		t.Fatalf("Unify: %v", err)
	}
	if len(coords) != 4 {
		t.Errorf("unified vertex count = %d, want 4 (all streams agree)", len(coords))
	}
}

func TestUnifyIdempotent(t *testing.T) {
	s := &SplitMesh{
		Coords: []math.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		UVs:     []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}},
		Normals: []math.Vec3{{Z: 1}, {X: 1}},
		Faces: []SplitFace{
			{Coords: [3]uint32{0, 1, 2}, UVs: [3]uint32{0, 0, 1}, Normals: [3]uint32{0, 0, 0}},
			{Coords: [3]uint32{0, 2, 3}, UVs: [3]uint32{0, 1, 1}, Normals: [3]uint32{1, 1, 1}},
		},
	}

	coords1, faces1, normals1, uvs1, err := s.Unify()
	if err != nil {
		t.Fatalf("first Unify: %v", err)
	}

	// Re-split the unified mesh with identical indices per stream
	s2 := &SplitMesh{Coords: coords1, UVs: uvs1, Normals: normals1}
	for _, f := range faces1 {
		idx := [3]uint32{f[0], f[1], f[2]}
		s2.Faces = append(s2.Faces, SplitFace{Coords: idx, UVs: idx, Normals: idx})
	}

	coords2, faces2, _, _, err := s2.Unify()
	if err != nil {
		t.Fatalf("second Unify: %v", err)
	}

	if len(coords2) != len(coords1) {
		t.Errorf("second unify changed vertex count: %d != %d", len(coords2), len(coords1))
	}
	if len(faces2) != len(faces1) {
		t.Fatalf("second unify changed face count: %d != %d", len(faces2), len(faces1))
	}

	// Same triangle set, corner for corner
	tris1 := trianglePositions(coords1, faces1)
	tris2 := trianglePositions(coords2, faces2)
	for i := range tris1 {
		for c := 0; c < 3; c++ {
			if tris1[i][c] != tris2[i][c] {
				t.Errorf("triangle %d corner %d: %v != %v", i, c, tris1[i][c], tris2[i][c])
			}
		}
	}
}

func TestUnifyPreservesTriangleSet(t *testing.T) {
	s := &SplitMesh{
		Coords:  []math.Vec3{{X: 0}, {X: 1}, {Y: 1}, {Z: 1}},
		Normals: []math.Vec3{{Z: 1}, {X: 1}},
		Faces: []SplitFace{
			{Coords: [3]uint32{0, 1, 2}, Normals: [3]uint32{0, 0, 1}},
			{Coords: [3]uint32{1, 3, 2}, Normals: [3]uint32{1, 1, 1}},
		},
	}

	coords, faces, _, _, err := s.Unify()
	if err != nil {
		t.Fatalf("Unify: %v", err)
	}
	if len(faces) != len(s.Faces) {
		t.Fatalf("face count changed: %d != %d", len(faces), len(s.Faces))
	}

	got := trianglePositions(coords, faces)
	for i, f := range s.Faces {
		for c := 0; c < 3; c++ {
			want := s.Coords[f.Coords[c]]
			if got[i][c] != want {
				t.Errorf("triangle %d corner %d: %v != %v", i, c, got[i][c], want)
			}
		}
	}
}

func TestUnifyOutOfRange(t *testing.T) {
	s := &SplitMesh{
		Coords: []math.Vec3{{X: 0}, {X: 1}},
		Faces:  []SplitFace{{Coords: [3]uint32{0, 1, 7}}},
	}
	if _, _, _, _, err := s.Unify(); err == nil {
		t.Error("out-of-range coord index should fail")
	}
}

func TestToMesh(t *testing.T) {
	s := &SplitMesh{
		Coords: []math.Vec3{{X: 0}, {X: 1}, {Y: 1}},
		Faces:  []SplitFace{{Coords: [3]uint32{0, 1, 2}}},
	}
	m, err := s.ToMesh(false)
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}
	if m.NumPts() != 3 {
		t.Errorf("NumPts = %d, want 3", m.NumPts())
	}
	// Normals were computed since the split mesh had none
	if m.Normals().Len() != 3 {
		t.Errorf("normal count = %d, want 3", m.Normals().Len())
	}
}
