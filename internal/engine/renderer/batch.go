package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/renderer/shaders"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/pkg/math"
)

// vertexFloats is position plus color, interleaved.
const vertexFloats = 6

// batch accumulates colored vertices during a frame and draws them in
// one call. Lines and points share the machinery, differing only in the
// primitive mode.
type batch struct {
	prog *shader.Program
	buf  *gpu.Vector[float32]

	verts []float32
	mode  uint32

	position uint32
	color    uint32
}

func newBatch(mode uint32) (*batch, error) {
	prog, err := shader.New(shaders.FlatVertexShader, shaders.FlatFragmentShader)
	if err != nil {
		return nil, err
	}
	return &batch{
		prog:     prog,
		buf:      gpu.NewVector[float32](nil, gpu.ArrayBuffer, gpu.StreamDraw),
		mode:     mode,
		position: prog.MustAttrib("position"),
		color:    prog.MustAttrib("color"),
	}, nil
}

func (b *batch) push(p, c math.Vec3) {
	b.verts = append(b.verts, p.X, p.Y, p.Z, c.X, c.Y, c.Z)
}

// render draws the accumulated vertices without clearing them, so
// multi-pass cameras see the same batch every pass.
func (b *batch) render(pass int, cam camera.Camera) {
	n := len(b.verts) / vertexFloats
	if n == 0 {
		return
	}

	b.prog.Use()
	cam.Upload(pass, b.prog)

	b.buf.SetData(b.verts)
	b.buf.Bind(gpu.GL)

	stride := int32(vertexFloats * 4)
	gl.VertexAttribPointer(b.position, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(b.position)
	gl.VertexAttribPointer(b.color, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(b.color)

	gl.DrawArrays(b.mode, 0, int32(n))

	gl.DisableVertexAttribArray(b.position)
	gl.DisableVertexAttribArray(b.color)
}

// clear empties the accumulation buffer for the next frame.
func (b *batch) clear() {
	b.verts = b.verts[:0]
}

func (b *batch) release() {
	b.buf.Release(gpu.GL)
	b.prog.Release()
}

// Lines batches world-space line segments issued during the frame.
type Lines struct {
	batch *batch
	width float32
}

// NewLines creates the line batch.
func NewLines() (*Lines, error) {
	b, err := newBatch(gl.LINES)
	if err != nil {
		return nil, err
	}
	return &Lines{batch: b, width: 1}, nil
}

// SetWidth sets the line width for subsequent flushes.
func (l *Lines) SetWidth(width float32) { l.width = width }

// Draw queues one segment from a to b.
func (l *Lines) Draw(a, b, color math.Vec3) {
	l.batch.push(a, color)
	l.batch.push(b, color)
}

// Render flushes the queued segments for one camera pass.
func (l *Lines) Render(pass int, cam camera.Camera) {
	gl.LineWidth(l.width)
	l.batch.render(pass, cam)
	gl.LineWidth(1)
}

// Clear empties the queue.
func (l *Lines) Clear() { l.batch.clear() }

// Release frees the GL resources.
func (l *Lines) Release() { l.batch.release() }

// Points batches world-space points issued during the frame.
type Points struct {
	batch *batch
	size  float32
}

// NewPoints creates the point batch.
func NewPoints() (*Points, error) {
	b, err := newBatch(gl.POINTS)
	if err != nil {
		return nil, err
	}
	return &Points{batch: b, size: 1}, nil
}

// SetSize sets the point size for subsequent flushes.
func (p *Points) SetSize(size float32) { p.size = size }

// Draw queues one point.
func (p *Points) Draw(pt, color math.Vec3) {
	p.batch.push(pt, color)
}

// Render flushes the queued points for one camera pass.
func (p *Points) Render(pass int, cam camera.Camera) {
	gl.PointSize(p.size)
	p.batch.render(pass, cam)
	gl.PointSize(1)
}

// Clear empties the queue.
func (p *Points) Clear() { p.batch.clear() }

// Release frees the GL resources.
func (p *Points) Release() { p.batch.release() }
