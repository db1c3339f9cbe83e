// Package scene implements the node tree, transform composition, and the
// renderable payload model.
package scene

import (
	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/pkg/math"
)

// Material is the rendering strategy invoked for every visible object.
// Implementations activate their own shader, bind the mesh streams,
// upload uniforms, draw, and disable what they enabled, leaving GL state
// clean for the next material.
type Material interface {
	Render(pass int, world math.Isometry, scale math.Vec3,
		cam camera.Camera, lights *lighting.Buffer,
		data *ObjectData, m *mesh.Mesh)
}

// Instance carries per-copy data for hardware instancing. Deform is a
// full per-instance transform applied on top of the node's own.
type Instance struct {
	Position math.Vec3
	Color    math.Vec3
	Deform   math.Mat4
}

// ObjectData is the renderable payload of a node. It references shared
// mesh and texture resources; mutating the mesh mutates it for every
// node drawing it.
type ObjectData struct {
	Mesh     *mesh.Mesh
	Material Material
	Texture  *texture.Texture

	Color math.Vec3

	// SurfaceRendering off skips the fill pass; wireframe and point
	// overlays still draw when their sizes are set.
	SurfaceRendering bool
	BackfaceCulling  bool
	// LinesWidth above zero draws the mesh edge list as lines.
	LinesWidth float32
	// PointsSize above zero draws the vertices as points.
	PointsSize float32

	Instances []Instance
}

func newObjectData(m *mesh.Mesh) *ObjectData {
	return &ObjectData{
		Mesh:             m,
		Color:            math.Vec3{X: 1, Y: 1, Z: 1},
		SurfaceRendering: true,
		BackfaceCulling:  true,
	}
}
