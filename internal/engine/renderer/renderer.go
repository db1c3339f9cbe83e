// Package renderer drives the per-frame pass: event dispatch, camera
// update, scene traversal, batched line/point flushes, and optional
// post-processing.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/effect"
	"github.com/Faultbox/prism/internal/engine/framebuffer"
	"github.com/Faultbox/prism/internal/engine/gpu"
	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/window"
	"github.com/Faultbox/prism/pkg/math"
)

// PassRenderer is the plug-in point for custom drawing, invoked after
// the scene traversal once per camera pass.
type PassRenderer interface {
	Render(pass int, cam camera.Camera)
}

// PlanarRenderer draws a 2D overlay after the 3D passes, with depth
// testing off and the planar camera's transform uploaded by the
// renderer it belongs to.
type PlanarRenderer interface {
	Render(cam camera.PlanarCamera)
}

// Renderer owns the frame sequence and the scene root.
type Renderer struct {
	win *window.Window
	in  *input.Input
	cam camera.Camera

	root   *scene.Node
	lights *lighting.Buffer

	defaultMat *material.Object
	lines      *Lines
	points     *Points
	custom     []PassRenderer

	planarCam camera.PlanarCamera
	planar    []PlanarRenderer

	post      effect.Effect
	offscreen *framebuffer.Framebuffer

	background math.Vec3

	// Core profile requires a vertex array object for any attribute
	// array state; one shared VAO stays bound for the app's lifetime.
	vao uint32

	eventHandler func(*input.Event)
}

// New creates the renderer. The GL context must already be current.
func New(win *window.Window, cam camera.Camera, background math.Vec3) (*Renderer, error) {
	r := &Renderer{
		win:        win,
		in:         input.New(),
		cam:        cam,
		root:       scene.NewGroup(),
		lights:     lighting.NewBuffer(),
		background: background,
	}
	r.lights.Add(lighting.NewStickToCamera())

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gpu.Verify()

	var err error
	if r.defaultMat, err = material.NewObject(); err != nil {
		return nil, fmt.Errorf("renderer: default material: %w", err)
	}
	if r.lines, err = NewLines(); err != nil {
		return nil, fmt.Errorf("renderer: line batch: %w", err)
	}
	if r.points, err = NewPoints(); err != nil {
		return nil, fmt.Errorf("renderer: point batch: %w", err)
	}

	return r, nil
}

// Root returns the scene root node.
func (r *Renderer) Root() *scene.Node { return r.root }

// Lights returns the frame light buffer.
func (r *Renderer) Lights() *lighting.Buffer { return r.lights }

// Camera returns the active camera.
func (r *Renderer) Camera() camera.Camera { return r.cam }

// SetCamera swaps the active camera.
func (r *Renderer) SetCamera(cam camera.Camera) {
	r.cam = cam
	w, h := r.win.DrawableSize()
	cam.HandleResize(float32(w), float32(h))
}

// Input exposes held-state queries for application code.
func (r *Renderer) Input() *input.Input { return r.in }

// SetEventHandler installs a callback that sees every event before the
// camera. The callback may call Inhibit to consume an event.
func (r *Renderer) SetEventHandler(fn func(*input.Event)) {
	r.eventHandler = fn
}

// AddRenderer registers a custom per-pass renderer.
func (r *Renderer) AddRenderer(pr PassRenderer) {
	r.custom = append(r.custom, pr)
}

// SetPlanarCamera installs the camera driving 2D overlay renderers, or
// removes it with nil. The camera sees every input event after the 3D
// camera.
func (r *Renderer) SetPlanarCamera(cam camera.PlanarCamera) {
	r.planarCam = cam
	if cam != nil {
		w, h := r.win.DrawableSize()
		cam.HandleResize(float32(w), float32(h))
	}
}

// PlanarCamera returns the active overlay camera, or nil.
func (r *Renderer) PlanarCamera() camera.PlanarCamera { return r.planarCam }

// AddPlanarRenderer registers a 2D overlay renderer. Overlays draw only
// while a planar camera is set.
func (r *Renderer) AddPlanarRenderer(pr PlanarRenderer) {
	r.planar = append(r.planar, pr)
}

// SetEffect installs a post-processing pass, or removes it with nil.
func (r *Renderer) SetEffect(e effect.Effect) error {
	r.post = e
	if e != nil && r.offscreen == nil {
		w, h := r.win.DrawableSize()
		fb, err := framebuffer.New(int32(w), int32(h))
		if err != nil {
			return err
		}
		r.offscreen = fb
	}
	return nil
}

// DrawLine queues a world-space segment for this frame.
func (r *Renderer) DrawLine(a, b, color math.Vec3) {
	r.lines.Draw(a, b, color)
}

// DrawPoint queues a world-space point for this frame.
func (r *Renderer) DrawPoint(p, color math.Vec3) {
	r.points.Draw(p, color)
}

// Unproject maps a cursor position to a world ray through the active
// camera, for picking.
func (r *Renderer) Unproject(cursorX, cursorY float32) (math.Vec3, math.Vec3) {
	w, h := r.win.Size()
	return r.cam.Unproject(
		math.Vec2{X: cursorX, Y: cursorY},
		math.Vec2{X: float32(w), Y: float32(h)},
	)
}

// Frame runs one full frame and returns false when the application
// should quit.
func (r *Renderer) Frame(dt float32) bool {
	quit := r.in.Poll()

	events := r.in.Events()
	for i := range events {
		ev := &events[i]
		if r.eventHandler != nil {
			r.eventHandler(ev)
		}
		if ev.Type == input.EventResize {
			dw, dh := r.win.DrawableSize()
			gl.Viewport(0, 0, int32(dw), int32(dh))
			if r.offscreen != nil {
				r.offscreen.Resize(int32(dw), int32(dh))
			}
		}
		r.cam.HandleEvent(ev)
		if r.planarCam != nil {
			r.planarCam.HandleEvent(ev)
		}
	}

	r.cam.Update(dt, r.in)

	dw, dh := r.win.DrawableSize()
	if r.post != nil {
		r.offscreen.Resize(int32(dw), int32(dh))
		r.offscreen.Bind()
	}

	gl.ClearColor(r.background.X, r.background.Y, r.background.Z, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for pass := 0; pass < r.cam.NumPasses(); pass++ {
		r.root.Visit(func(n *scene.Node) {
			data := n.Data()
			if data == nil || data.Mesh == nil {
				return
			}
			mat := data.Material
			if mat == nil {
				mat = r.defaultMat
			}
			mat.Render(pass, n.World(), n.WorldScale(), r.cam, r.lights, data, data.Mesh)
		})

		r.lines.Render(pass, r.cam)
		r.points.Render(pass, r.cam)
		for _, pr := range r.custom {
			pr.Render(pass, r.cam)
		}
	}

	r.lines.Clear()
	r.points.Clear()

	// 2D overlays draw on top of the finished 3D frame.
	if r.planarCam != nil && len(r.planar) > 0 {
		gl.Disable(gl.DEPTH_TEST)
		r.renderPlanar()
		gl.Enable(gl.DEPTH_TEST)
	}

	if r.post != nil {
		r.offscreen.Unbind()
		gl.Viewport(0, 0, int32(dw), int32(dh))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		r.post.Apply(r.offscreen.ColorTexture(), int32(dw), int32(dh))
	}

	r.win.SwapBuffers()
	return !quit
}

// renderPlanar invokes every overlay renderer with the planar camera.
func (r *Renderer) renderPlanar() {
	for _, pr := range r.planar {
		pr.Render(r.planarCam)
	}
}

// Snapshot renders nothing; it reads back the offscreen target when a
// post effect is active. Without one there is no readable target and it
// returns false.
func (r *Renderer) Snapshot() (pixels []byte, w, h int32, ok bool) {
	if r.offscreen == nil {
		return nil, 0, 0, false
	}
	img := r.offscreen.Snapshot()
	fw, fh := r.offscreen.Size()
	return img.Pix, fw, fh, true
}

// Close releases all GL resources the renderer owns. Must run while the
// context is still current.
func (r *Renderer) Close() {
	r.lines.Release()
	r.points.Release()
	r.defaultMat.Release()
	if r.offscreen != nil {
		r.offscreen.Release()
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
}
