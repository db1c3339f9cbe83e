package material

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/material/shaders"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/pkg/math"
)

// Skybox renders a cube sampled by direction from a cubemap, pinned to
// the far plane. Attach it to an inward-facing cube node drawn last.
type Skybox struct {
	prog     *shader.Program
	sky      *texture.Cubemap
	position uint32
}

// NewSkybox compiles the sky material around the given cubemap. The
// material does not own the cubemap.
func NewSkybox(sky *texture.Cubemap) (*Skybox, error) {
	prog, err := shader.New(shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader)
	if err != nil {
		return nil, err
	}
	return &Skybox{
		prog:     prog,
		sky:      sky,
		position: prog.MustAttrib("position"),
	}, nil
}

// SetCubemap swaps the sky texture.
func (m *Skybox) SetCubemap(sky *texture.Cubemap) { m.sky = sky }

// Render implements the scene.Material contract. The node transform and
// lights are ignored; the sky sits at infinity.
func (m *Skybox) Render(pass int, _ math.Isometry, _ math.Vec3,
	cam camera.Camera, _ *lighting.Buffer,
	data *scene.ObjectData, msh *mesh.Mesh) {

	if !data.SurfaceRendering || m.sky == nil {
		return
	}

	m.prog.Use()
	msh.BindCoords(gpu.GL, m.position)
	cam.Upload(pass, m.prog)

	m.sky.Bind(0)
	if loc, ok := m.prog.Uniform("sky"); ok {
		gl.Uniform1i(loc, 0)
	}

	// The cube is viewed from inside and must pass at depth == 1.
	gl.Disable(gl.CULL_FACE)
	gl.DepthFunc(gl.LEQUAL)

	msh.BindFaces(gpu.GL)
	gl.DrawElements(gl.TRIANGLES, int32(msh.NumPts()), gl.UNSIGNED_INT, nil)

	gl.DepthFunc(gl.LESS)
	gl.DisableVertexAttribArray(m.position)
}

// Release frees the program. The cubemap is owned by the caller.
func (m *Skybox) Release() { m.prog.Release() }
