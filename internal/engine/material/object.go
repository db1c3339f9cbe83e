// Package material implements the built-in rendering strategies: the
// default lit material, the normals and UV debug materials, and the
// cubemap sky material.
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

// instanceStride is the per-instance float count: a 4x4 deform matrix,
// a position, and a color.
const instanceStride = 16 + 3 + 3

// Object is the default lit material: Phong shading under the frame's
// point lights, modulated by the object color and texture. It also draws
// the optional wireframe and point overlays and supports hardware
// instancing through the payload's instance list.
type Object struct {
	prog  *shader.Program
	white *texture.Texture

	// Streaming buffer refilled per instanced draw.
	instances *gpu.Vector[float32]

	position uint32
	normal   uint32
	hasNorm  bool
	uv       uint32
	hasUV    bool

	instPosition uint32
	instColor    uint32
	instDeform   uint32
}

// NewObject compiles the lit material. Shader failure is fatal for the
// material and reported with the driver diagnostic.
func NewObject() (*Object, error) {
	prog, err := shader.New(shaders.ObjectVertexShader, shaders.ObjectFragmentShader)
	if err != nil {
		return nil, err
	}

	m := &Object{
		prog:      prog,
		white:     texture.White(),
		instances: gpu.NewVector[float32](nil, gpu.ArrayBuffer, gpu.StreamDraw),
		position:  prog.MustAttrib("position"),
	}
	m.normal, m.hasNorm = prog.Attrib("normal")
	m.uv, m.hasUV = prog.Attrib("uv")
	m.instPosition = prog.MustAttrib("inst_position")
	m.instColor = prog.MustAttrib("inst_color")
	m.instDeform = prog.MustAttrib("inst_deform")
	return m, nil
}

// Render implements the scene.Material contract.
func (m *Object) Render(pass int, world math.Isometry, scale math.Vec3,
	cam camera.Camera, lights *lighting.Buffer,
	data *scene.ObjectData, msh *mesh.Mesh) {

	drawLines := data.LinesWidth > 0
	drawPoints := data.PointsSize > 0
	if !data.SurfaceRendering && !drawLines && !drawPoints {
		return
	}

	m.prog.Use()
	msh.BindCoords(gpu.GL, m.position)
	if m.hasNorm {
		msh.BindNormals(gpu.GL, m.normal)
	}
	if m.hasUV {
		if msh.HasUVs() {
			msh.BindUVs(gpu.GL, m.uv)
		} else {
			gl.DisableVertexAttribArray(m.uv)
			gl.VertexAttrib2f(m.uv, 0, 0)
		}
	}

	cam.Upload(pass, m.prog)
	m.uploadUniforms(world, scale, cam, lights, data)

	if data.BackfaceCulling {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	} else {
		gl.Disable(gl.CULL_FACE)
	}

	count := len(data.Instances)
	if count > 0 {
		m.bindInstances(data.Instances)
	} else {
		m.constantInstance()
	}

	if data.SurfaceRendering {
		msh.BindFaces(gpu.GL)
		if count > 0 {
			gl.DrawElementsInstanced(gl.TRIANGLES, int32(msh.NumPts()), gl.UNSIGNED_INT, nil, int32(count))
		} else {
			gl.DrawElements(gl.TRIANGLES, int32(msh.NumPts()), gl.UNSIGNED_INT, nil)
		}
	}

	if drawLines {
		if edges, err := msh.Edges(); err == nil {
			gl.LineWidth(data.LinesWidth)
			edges.Bind(gpu.GL)
			gl.DrawElements(gl.LINES, int32(2*edges.Len()), gl.UNSIGNED_INT, nil)
			gl.LineWidth(1)
		}
	}

	if drawPoints {
		gl.PointSize(data.PointsSize)
		msh.BindFaces(gpu.GL)
		gl.DrawElements(gl.POINTS, int32(msh.NumPts()), gl.UNSIGNED_INT, nil)
		gl.PointSize(1)
	}

	m.disableAttribs()
	gl.Disable(gl.CULL_FACE)
}

func (m *Object) uploadUniforms(world math.Isometry, scale math.Vec3,
	cam camera.Camera, lights *lighting.Buffer, data *scene.ObjectData) {

	transform := world.ToMat4()
	if loc, ok := m.prog.Uniform("transform"); ok {
		gl.UniformMatrix4fv(loc, 1, false, transform.Ptr())
	}
	if loc, ok := m.prog.Uniform("scale"); ok {
		sc := math.Diagonal3(scale)
		gl.UniformMatrix3fv(loc, 1, false, &sc[0])
	}
	if loc, ok := m.prog.Uniform("color"); ok {
		gl.Uniform3f(loc, data.Color.X, data.Color.Y, data.Color.Z)
	}
	if loc, ok := m.prog.Uniform("eye"); ok {
		eye := cam.Eye()
		gl.Uniform3f(loc, eye.X, eye.Y, eye.Z)
	}
	if loc, ok := m.prog.Uniform("light_position"); ok {
		positions := lights.Positions(cam.Eye())
		gl.Uniform3fv(loc, lighting.MaxLights, &positions[0])
	}
	if loc, ok := m.prog.Uniform("light_color"); ok {
		colors := lights.Colors()
		gl.Uniform3fv(loc, lighting.MaxLights, &colors[0])
	}
	if loc, ok := m.prog.Uniform("light_count"); ok {
		gl.Uniform1i(loc, int32(lights.Count()))
	}
	if loc, ok := m.prog.Uniform("tex"); ok {
		if data.Texture != nil {
			data.Texture.Bind(0)
		} else {
			m.white.Bind(0)
		}
		gl.Uniform1i(loc, 0)
	}
}

// bindInstances streams the per-instance data and points the instance
// attributes at it with a divisor of one.
func (m *Object) bindInstances(instances []scene.Instance) {
	flat := make([]float32, 0, len(instances)*instanceStride)
	for _, inst := range instances {
		flat = append(flat, inst.Deform[:]...)
		flat = append(flat, inst.Position.X, inst.Position.Y, inst.Position.Z)
		flat = append(flat, inst.Color.X, inst.Color.Y, inst.Color.Z)
	}
	m.instances.SetData(flat)
	m.instances.Bind(gpu.GL)

	stride := int32(instanceStride * 4)
	// The mat4 attribute spans four consecutive locations, one column each.
	for col := uint32(0); col < 4; col++ {
		gl.EnableVertexAttribArray(m.instDeform + col)
		gl.VertexAttribPointer(m.instDeform+col, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(col)*16))
		gl.VertexAttribDivisor(m.instDeform+col, 1)
	}
	gl.EnableVertexAttribArray(m.instPosition)
	gl.VertexAttribPointer(m.instPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(16*4))
	gl.VertexAttribDivisor(m.instPosition, 1)
	gl.EnableVertexAttribArray(m.instColor)
	gl.VertexAttribPointer(m.instColor, 3, gl.FLOAT, false, stride, gl.PtrOffset(19*4))
	gl.VertexAttribDivisor(m.instColor, 1)
}

// constantInstance feeds identity instance values through constant
// attributes so the same shader serves single draws.
func (m *Object) constantInstance() {
	gl.DisableVertexAttribArray(m.instPosition)
	gl.VertexAttrib3f(m.instPosition, 0, 0, 0)
	gl.DisableVertexAttribArray(m.instColor)
	gl.VertexAttrib3f(m.instColor, 1, 1, 1)
	identity := math.Identity()
	for col := uint32(0); col < 4; col++ {
		gl.DisableVertexAttribArray(m.instDeform + col)
		gl.VertexAttrib4f(m.instDeform+col,
			identity[col*4], identity[col*4+1], identity[col*4+2], identity[col*4+3])
	}
}

func (m *Object) disableAttribs() {
	gl.DisableVertexAttribArray(m.position)
	if m.hasNorm {
		gl.DisableVertexAttribArray(m.normal)
	}
	if m.hasUV {
		gl.DisableVertexAttribArray(m.uv)
	}
	gl.DisableVertexAttribArray(m.instPosition)
	gl.VertexAttribDivisor(m.instPosition, 0)
	gl.DisableVertexAttribArray(m.instColor)
	gl.VertexAttribDivisor(m.instColor, 0)
	for col := uint32(0); col < 4; col++ {
		gl.DisableVertexAttribArray(m.instDeform + col)
		gl.VertexAttribDivisor(m.instDeform+col, 0)
	}
}

// Release frees the program and owned GPU resources.
func (m *Object) Release() {
	m.instances.Release(gpu.GL)
	m.white.Release()
	m.prog.Release()
}
