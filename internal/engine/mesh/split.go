package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/pkg/math"
)

// SplitFace indexes each attribute stream independently, the form OBJ-style
// loaders produce. GL addresses every stream with one index per vertex, so a
// split mesh must be unified (duplicating vertices where streams disagree)
// before it can be uploaded.
type SplitFace struct {
	Coords  [3]uint32
	UVs     [3]uint32
	Normals [3]uint32
}

// SplitMesh is triangle geometry with independent per-stream indices.
type SplitMesh struct {
	Coords  []math.Vec3
	UVs     []math.Vec2
	Normals []math.Vec3
	Faces   []SplitFace
}

// vertexKey identifies a unique (coord, uv, normal) index combination.
type vertexKey struct {
	coord, uv, normal uint32
}

// Unify converts the split form into unified arrays sharing one index per
// vertex. Vertices referenced with differing uv/normal indices are
// duplicated. The conversion is idempotent: unifying an already-unified
// mesh (every key distinct per vertex use) yields the same triangle set.
func (s *SplitMesh) Unify() (coords []math.Vec3, faces []Face, normals []math.Vec3, uvs []math.Vec2, err error) {
	hasUVs := len(s.UVs) > 0
	hasNormals := len(s.Normals) > 0

	lookup := make(map[vertexKey]uint32)
	faces = make([]Face, 0, len(s.Faces))

	for fi, f := range s.Faces {
		var out Face
		for corner := 0; corner < 3; corner++ {
			key := vertexKey{coord: f.Coords[corner]}
			if hasUVs {
				key.uv = f.UVs[corner]
			}
			if hasNormals {
				key.normal = f.Normals[corner]
			}

			if int(key.coord) >= len(s.Coords) {
				return nil, nil, nil, nil, fmt.Errorf("mesh: face %d coord index %d out of range", fi, key.coord)
			}
			if hasUVs && int(key.uv) >= len(s.UVs) {
				return nil, nil, nil, nil, fmt.Errorf("mesh: face %d uv index %d out of range", fi, key.uv)
			}
			if hasNormals && int(key.normal) >= len(s.Normals) {
				return nil, nil, nil, nil, fmt.Errorf("mesh: face %d normal index %d out of range", fi, key.normal)
			}

			idx, seen := lookup[key]
			if !seen {
				idx = uint32(len(coords))
				lookup[key] = idx
				coords = append(coords, s.Coords[key.coord])
				if hasUVs {
					uvs = append(uvs, s.UVs[key.uv])
				}
				if hasNormals {
					normals = append(normals, s.Normals[key.normal])
				}
			}
			out[corner] = idx
		}
		faces = append(faces, out)
	}

	// Heavy seam duplication can balloon memory on large meshes; report it
	// rather than capping, since faceted geometry legitimately expands.
	if len(s.Coords) > 0 && len(coords) > 3*len(s.Coords) {
		logger.Warn("mesh unify duplicated heavily",
			zap.Int("split_vertices", len(s.Coords)),
			zap.Int("unified_vertices", len(coords)),
		)
	}

	return coords, faces, normals, uvs, nil
}

// ToMesh unifies the split mesh and builds a drawable Mesh from it.
func (s *SplitMesh) ToMesh(dynamic bool) (*Mesh, error) {
	coords, faces, normals, uvs, err := s.Unify()
	if err != nil {
		return nil, err
	}
	return New(coords, faces, normals, uvs, dynamic)
}
