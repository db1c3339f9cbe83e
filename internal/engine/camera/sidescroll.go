package camera

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/pkg/math"
)

// Sidescroll is the planar camera. Right drag pans across the plane,
// the wheel zooms. Zoom is expressed in device pixels per world unit.
type Sidescroll struct {
	at   math.Vec2
	zoom float32

	panStep  float32
	zoomStep float32
	minZoom  float32

	width  float32
	height float32

	panning bool

	transf   math.Mat4
	invTrans math.Mat4
}

// NewSidescroll creates a planar camera centered on the origin.
func NewSidescroll(width, height float32) *Sidescroll {
	c := &Sidescroll{
		zoom:     1,
		panStep:  1,
		zoomStep: 0.1,
		minZoom:  0.00001,
		width:    width,
		height:   height,
	}
	c.updateProjView()
	return c
}

// At returns the world point at the center of the view.
func (c *Sidescroll) At() math.Vec2 { return c.at }

// SetAt recenters the view.
func (c *Sidescroll) SetAt(at math.Vec2) {
	c.at = at
	c.updateProjView()
}

// Zoom returns the current pixels-per-unit zoom factor.
func (c *Sidescroll) Zoom() float32 { return c.zoom }

// HandleEvent applies drag panning and wheel zoom.
func (c *Sidescroll) HandleEvent(ev *input.Event) {
	if ev.Inhibited {
		return
	}

	switch ev.Type {
	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_RIGHT {
			c.panning = true
		}

	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_RIGHT {
			c.panning = false
		}

	case input.EventMouseMove:
		if c.panning {
			c.at.X -= ev.DeltaX * c.panStep / c.zoom
			c.at.Y += ev.DeltaY * c.panStep / c.zoom
			c.updateProjView()
		}

	case input.EventScroll:
		c.zoom *= 1 + ev.DeltaY*c.zoomStep
		if c.zoom < c.minZoom {
			c.zoom = c.minZoom
		}
		c.updateProjView()

	case input.EventResize:
		c.HandleResize(float32(ev.Width), float32(ev.Height))
	}
}

// HandleResize adjusts the view extents to a new drawable size.
func (c *Sidescroll) HandleResize(width, height float32) {
	c.width, c.height = width, height
	c.updateProjView()
}

func (c *Sidescroll) Transformation() math.Mat4    { return c.transf }
func (c *Sidescroll) InvTransformation() math.Mat4 { return c.invTrans }

// Upload sets the combined proj uniform; planar programs fold view and
// projection into one matrix.
func (c *Sidescroll) Upload(prog *shader.Program) {
	if loc, ok := prog.Uniform("proj"); ok {
		gl.UniformMatrix4fv(loc, 1, false, c.transf.Ptr())
	}
}

// Unproject maps a cursor position to the world point under it.
func (c *Sidescroll) Unproject(cursor, size math.Vec2) math.Vec2 {
	ndc := math.Vec2{
		X: 2*cursor.X/size.X - 1,
		Y: 1 - 2*cursor.Y/size.Y,
	}
	p := c.invTrans.TransformPoint(math.Vec3{X: ndc.X, Y: ndc.Y})
	return math.Vec2{X: p.X, Y: p.Y}
}

func (c *Sidescroll) updateProjView() {
	hw := c.width / (2 * c.zoom)
	hh := c.height / (2 * c.zoom)
	c.transf = math.Ortho(c.at.X-hw, c.at.X+hw, c.at.Y-hh, c.at.Y+hh, -1, 1)
	c.invTrans = c.transf.Inverse()
}
