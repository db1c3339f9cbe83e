// Package mesh holds triangle geometry as GPU-synchronized vectors and
// derives the data streams rendering needs: vertex normals and wireframe
// edge lists.
package mesh

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/pkg/math"
)

// Face is a triangle as three indices into the vertex streams.
type Face [3]uint32

// Edge is a pair of vertex indices drawn as a line segment.
type Edge [2]uint32

// Mesh is indexed triangle geometry. All attribute streams share one index
// per vertex (the unified form); see SplitMesh for the split-index form.
type Mesh struct {
	coords  *gpu.Vector[math.Vec3]
	faces   *gpu.Vector[Face]
	normals *gpu.Vector[math.Vec3]
	uvs     *gpu.Vector[math.Vec2]

	// Derived lazily from faces for wireframe drawing. Shared edges are
	// emitted twice; line drawing does not care.
	edges *gpu.Vector[Edge]

	dynamic bool
}

// New creates a mesh from vertex coordinates and a triangle list.
// If normals is nil they are computed from face winding. uvs may be nil.
// dynamic selects the buffer usage hint for meshes mutated per frame.
// Fails if any index is out of range for the coordinate array.
func New(coords []math.Vec3, faces []Face, normals []math.Vec3, uvs []math.Vec2, dynamic bool) (*Mesh, error) {
	for fi, f := range faces {
		for _, idx := range f {
			if int(idx) >= len(coords) {
				return nil, fmt.Errorf("mesh: face %d references vertex %d, only %d vertices", fi, idx, len(coords))
			}
		}
	}
	if normals != nil && len(normals) != len(coords) {
		return nil, fmt.Errorf("mesh: %d normals for %d vertices", len(normals), len(coords))
	}
	if uvs != nil && len(uvs) != len(coords) {
		return nil, fmt.Errorf("mesh: %d uvs for %d vertices", len(uvs), len(coords))
	}

	if normals == nil {
		normals = ComputeNormals(coords, faces)
	}

	usage := gpu.StaticDraw
	if dynamic {
		usage = gpu.DynamicDraw
	}

	m := &Mesh{
		coords:  gpu.NewVector(coords, gpu.ArrayBuffer, usage),
		faces:   gpu.NewVector(faces, gpu.ElementArrayBuffer, usage),
		normals: gpu.NewVector(normals, gpu.ArrayBuffer, usage),
		dynamic: dynamic,
	}
	if uvs != nil {
		m.uvs = gpu.NewVector(uvs, gpu.ArrayBuffer, usage)
	}
	return m, nil
}

// NumPts returns 3 * triangle count, the element count for the draw call.
func (m *Mesh) NumPts() int {
	return 3 * m.faces.Len()
}

// Coords returns the vertex coordinate vector.
func (m *Mesh) Coords() *gpu.Vector[math.Vec3] { return m.coords }

// Faces returns the triangle index vector.
func (m *Mesh) Faces() *gpu.Vector[Face] { return m.faces }

// Normals returns the vertex normal vector.
func (m *Mesh) Normals() *gpu.Vector[math.Vec3] { return m.normals }

// UVs returns the texture coordinate vector, nil if the mesh has none.
func (m *Mesh) UVs() *gpu.Vector[math.Vec2] { return m.uvs }

// HasUVs reports whether the mesh carries texture coordinates.
func (m *Mesh) HasUVs() bool { return m.uvs != nil }

// Edges returns the wireframe edge list, deriving it from the face list on
// first use. Requires the face data to still be RAM-resident.
func (m *Mesh) Edges() (*gpu.Vector[Edge], error) {
	if m.edges != nil {
		return m.edges, nil
	}
	faces, ok := m.faces.Data()
	if !ok {
		return nil, gpu.ErrUnloaded
	}
	edges := make([]Edge, 0, 3*len(faces))
	for _, f := range faces {
		edges = append(edges, Edge{f[0], f[1]}, Edge{f[1], f[2]}, Edge{f[2], f[0]})
	}
	m.edges = gpu.NewVector(edges, gpu.ElementArrayBuffer, gpu.StaticDraw)
	return m.edges, nil
}

// RecomputeNormals re-derives vertex normals after coordinate mutation and
// marks the normal stream for re-upload.
func (m *Mesh) RecomputeNormals() error {
	coords, ok := m.coords.Data()
	if !ok {
		return gpu.ErrUnloaded
	}
	faces, ok := m.faces.Data()
	if !ok {
		return gpu.ErrUnloaded
	}
	m.normals.SetData(ComputeNormals(coords, faces))
	return nil
}

// ComputeNormals derives per-vertex normals by accumulating the raw
// triangle cross products over every incident face and normalizing the sum.
// The unnormalized cross product weights each face by its area, so large
// faces dominate as they should. Winding follows the right-hand rule.
func ComputeNormals(coords []math.Vec3, faces []Face) []math.Vec3 {
	normals := make([]math.Vec3, len(coords))
	for _, f := range faces {
		a, b, c := coords[f[0]], coords[f[1]], coords[f[2]]
		fn := b.Sub(a).Cross(c.Sub(a))
		normals[f[0]] = normals[f[0]].Add(fn)
		normals[f[1]] = normals[f[1]].Add(fn)
		normals[f[2]] = normals[f[2]].Add(fn)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// BindCoords binds the coordinate stream to a shader attribute.
func (m *Mesh) BindCoords(b gpu.Backend, attrib uint32) {
	m.coords.Bind(b)
	gl.VertexAttribPointer(attrib, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(attrib)
}

// BindNormals binds the normal stream to a shader attribute.
func (m *Mesh) BindNormals(b gpu.Backend, attrib uint32) {
	m.normals.Bind(b)
	gl.VertexAttribPointer(attrib, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(attrib)
}

// BindUVs binds the texture coordinate stream to a shader attribute.
// A mesh without UVs leaves the attribute untouched.
func (m *Mesh) BindUVs(b gpu.Backend, attrib uint32) {
	if m.uvs == nil {
		return
	}
	m.uvs.Bind(b)
	gl.VertexAttribPointer(attrib, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(attrib)
}

// BindFaces binds the element buffer for indexed drawing.
func (m *Mesh) BindFaces(b gpu.Backend) {
	m.faces.Bind(b)
}

// BindEdges binds the wireframe edge element buffer, deriving it if needed.
func (m *Mesh) BindEdges(b gpu.Backend) error {
	edges, err := m.Edges()
	if err != nil {
		return err
	}
	edges.Bind(b)
	return nil
}

// UnloadFromRAM drops the CPU copies of all uploaded streams.
func (m *Mesh) UnloadFromRAM() error {
	if err := m.coords.UnloadFromRAM(); err != nil {
		return err
	}
	if err := m.faces.UnloadFromRAM(); err != nil {
		return err
	}
	if err := m.normals.UnloadFromRAM(); err != nil {
		return err
	}
	if m.uvs != nil {
		return m.uvs.UnloadFromRAM()
	}
	return nil
}

// Release frees all device buffers. Must run while the GL context is alive.
func (m *Mesh) Release(b gpu.Backend) {
	m.coords.Release(b)
	m.faces.Release(b)
	m.normals.Release(b)
	if m.uvs != nil {
		m.uvs.Release(b)
	}
	if m.edges != nil {
		m.edges.Release(b)
	}
}
