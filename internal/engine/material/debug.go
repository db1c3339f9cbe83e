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
	"github.com/Faultbox/prism/pkg/math"
)

// Normals color-codes surface normals, a quick check that winding and
// normal computation agree.
type Normals struct {
	prog     *shader.Program
	position uint32
	normal   uint32
}

// NewNormals compiles the normals visualization material.
func NewNormals() (*Normals, error) {
	prog, err := shader.New(shaders.NormalsVertexShader, shaders.NormalsFragmentShader)
	if err != nil {
		return nil, err
	}
	return &Normals{
		prog:     prog,
		position: prog.MustAttrib("position"),
		normal:   prog.MustAttrib("normal"),
	}, nil
}

// Render implements the scene.Material contract.
func (m *Normals) Render(pass int, world math.Isometry, scale math.Vec3,
	cam camera.Camera, _ *lighting.Buffer,
	data *scene.ObjectData, msh *mesh.Mesh) {

	if !data.SurfaceRendering {
		return
	}

	m.prog.Use()
	msh.BindCoords(gpu.GL, m.position)
	msh.BindNormals(gpu.GL, m.normal)
	cam.Upload(pass, m.prog)
	uploadTransform(m.prog, world, scale)
	setCulling(data.BackfaceCulling)

	msh.BindFaces(gpu.GL)
	gl.DrawElements(gl.TRIANGLES, int32(msh.NumPts()), gl.UNSIGNED_INT, nil)

	gl.DisableVertexAttribArray(m.position)
	gl.DisableVertexAttribArray(m.normal)
	gl.Disable(gl.CULL_FACE)
}

// Release frees the program.
func (m *Normals) Release() { m.prog.Release() }

// UV visualizes texture coordinates as red/green.
type UV struct {
	prog     *shader.Program
	position uint32
	uv       uint32
}

// NewUV compiles the UV visualization material.
func NewUV() (*UV, error) {
	prog, err := shader.New(shaders.UVVertexShader, shaders.UVFragmentShader)
	if err != nil {
		return nil, err
	}
	return &UV{
		prog:     prog,
		position: prog.MustAttrib("position"),
		uv:       prog.MustAttrib("uv"),
	}, nil
}

// Render implements the scene.Material contract.
func (m *UV) Render(pass int, world math.Isometry, scale math.Vec3,
	cam camera.Camera, _ *lighting.Buffer,
	data *scene.ObjectData, msh *mesh.Mesh) {

	if !data.SurfaceRendering {
		return
	}

	m.prog.Use()
	msh.BindCoords(gpu.GL, m.position)
	if msh.HasUVs() {
		msh.BindUVs(gpu.GL, m.uv)
	} else {
		gl.DisableVertexAttribArray(m.uv)
		gl.VertexAttrib2f(m.uv, 0, 0)
	}
	cam.Upload(pass, m.prog)
	uploadTransform(m.prog, world, scale)
	setCulling(data.BackfaceCulling)

	msh.BindFaces(gpu.GL)
	gl.DrawElements(gl.TRIANGLES, int32(msh.NumPts()), gl.UNSIGNED_INT, nil)

	gl.DisableVertexAttribArray(m.position)
	if msh.HasUVs() {
		gl.DisableVertexAttribArray(m.uv)
	}
	gl.Disable(gl.CULL_FACE)
}

// Release frees the program.
func (m *UV) Release() { m.prog.Release() }

func uploadTransform(prog *shader.Program, world math.Isometry, scale math.Vec3) {
	if loc, ok := prog.Uniform("transform"); ok {
		transform := world.ToMat4()
		gl.UniformMatrix4fv(loc, 1, false, transform.Ptr())
	}
	if loc, ok := prog.Uniform("scale"); ok {
		sc := math.Diagonal3(scale)
		gl.UniformMatrix3fv(loc, 1, false, &sc[0])
	}
}

func setCulling(on bool) {
	if on {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}
