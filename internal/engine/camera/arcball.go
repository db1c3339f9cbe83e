package camera

import (
	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/pkg/math"
)

// pitchEpsilon keeps the arc-ball pitch away from the poles where the
// fixed up vector would degenerate.
const pitchEpsilon = 0.01

// ArcBall orbits a point of interest. Left drag rotates around the
// point, right drag pans it, the scroll wheel zooms toward it.
type ArcBall struct {
	at    math.Vec3
	yaw   float32
	pitch float32
	dist  float32

	minDist float32
	maxDist float32

	rotateStep float32
	panStep    float32
	zoomStep   float32

	fov    float32
	aspect float32
	znear  float32
	zfar   float32

	rotating bool
	panning  bool

	proj     math.Mat4
	view     math.Mat4
	transf   math.Mat4
	invTrans math.Mat4
}

// NewArcBall creates an arc-ball looking from eye toward at.
func NewArcBall(eye, at math.Vec3, fov, aspect, znear, zfar float32) *ArcBall {
	c := &ArcBall{
		at:         at,
		minDist:    0.00001,
		maxDist:    1024,
		rotateStep: 0.005,
		panStep:    0.001,
		zoomStep:   0.1,
		fov:        fov,
		aspect:     aspect,
		znear:      znear,
		zfar:       zfar,
	}
	c.LookAt(eye, at)
	return c
}

// LookAt repositions the camera to view at from eye.
func (c *ArcBall) LookAt(eye, at math.Vec3) {
	dir := eye.Sub(at)
	c.at = at
	c.dist = dir.Length()
	if c.dist < c.minDist {
		c.dist = c.minDist
	}
	// Pitch measured from +Y, in (0, pi)
	c.pitch = math32.Acos(dir.Y / c.dist)
	c.yaw = math32.Atan2(dir.Z, dir.X)
	c.clampPitch()
	c.updateProjView()
}

func (c *ArcBall) clampPitch() {
	if c.pitch < pitchEpsilon {
		c.pitch = pitchEpsilon
	}
	if c.pitch > math32.Pi-pitchEpsilon {
		c.pitch = math32.Pi - pitchEpsilon
	}
}

// Eye returns the camera position derived from the orbit parameters.
func (c *ArcBall) Eye() math.Vec3 {
	sp := math32.Sin(c.pitch)
	return math.Vec3{
		X: c.at.X + c.dist*math32.Cos(c.yaw)*sp,
		Y: c.at.Y + c.dist*math32.Cos(c.pitch),
		Z: c.at.Z + c.dist*math32.Sin(c.yaw)*sp,
	}
}

// At returns the orbit center.
func (c *ArcBall) At() math.Vec3 { return c.at }

// SetAt recenters the orbit on a new point of interest.
func (c *ArcBall) SetAt(at math.Vec3) {
	c.at = at
	c.updateProjView()
}

// Dist returns the distance from the eye to the orbit center.
func (c *ArcBall) Dist() float32 { return c.dist }

// SetSensitivity overrides the drag and zoom response. Values at or
// below zero keep the current setting.
func (c *ArcBall) SetSensitivity(rotate, pan, zoom float32) {
	if rotate > 0 {
		c.rotateStep = rotate
	}
	if pan > 0 {
		c.panStep = pan
	}
	if zoom > 0 {
		c.zoomStep = zoom
	}
}

// HandleEvent applies drag rotation, drag panning, and wheel zoom.
func (c *ArcBall) HandleEvent(ev *input.Event) {
	if ev.Inhibited {
		return
	}

	switch ev.Type {
	case input.EventMouseDown:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			c.rotating = true
		case sdl.BUTTON_RIGHT:
			c.panning = true
		}

	case input.EventMouseUp:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			c.rotating = false
		case sdl.BUTTON_RIGHT:
			c.panning = false
		}

	case input.EventMouseMove:
		if c.rotating {
			c.yaw += ev.DeltaX * c.rotateStep
			c.pitch -= ev.DeltaY * c.rotateStep
			c.clampPitch()
			c.updateProjView()
		}
		if c.panning {
			eye := c.Eye()
			fwd := c.at.Sub(eye).Normalize()
			right := fwd.Cross(math.Vec3{Y: 1}).Normalize()
			up := right.Cross(fwd)
			scale := c.dist * c.panStep
			c.at = c.at.
				Add(right.Scale(-ev.DeltaX * scale)).
				Add(up.Scale(ev.DeltaY * scale))
			c.updateProjView()
		}

	case input.EventScroll:
		c.dist *= 1 - ev.DeltaY*c.zoomStep
		if c.dist < c.minDist {
			c.dist = c.minDist
		}
		if c.dist > c.maxDist {
			c.dist = c.maxDist
		}
		c.updateProjView()

	case input.EventResize:
		c.HandleResize(float32(ev.Width), float32(ev.Height))
	}
}

// Update is a no-op; the arc-ball has no time-based motion.
func (c *ArcBall) Update(float32, *input.Input) {}

// HandleResize adjusts the projection aspect ratio.
func (c *ArcBall) HandleResize(width, height float32) {
	if height > 0 {
		c.aspect = width / height
		c.updateProjView()
	}
}

func (c *ArcBall) View() math.Mat4              { return c.view }
func (c *ArcBall) Projection() math.Mat4        { return c.proj }
func (c *ArcBall) Transformation() math.Mat4    { return c.transf }
func (c *ArcBall) InvTransformation() math.Mat4 { return c.invTrans }
func (c *ArcBall) NumPasses() int               { return 1 }

// Upload sets the view and proj uniforms.
func (c *ArcBall) Upload(_ int, prog *shader.Program) {
	uploadMatrices(prog, c.view, c.proj)
}

// Unproject maps a cursor position to a world-space ray.
func (c *ArcBall) Unproject(cursor, size math.Vec2) (math.Vec3, math.Vec3) {
	return unprojectRay(c.invTrans, cursor, size)
}

func (c *ArcBall) updateProjView() {
	c.proj = math.Perspective(c.fov, c.aspect, c.znear, c.zfar)
	c.view = math.LookAt(c.Eye(), c.at, math.Vec3{Y: 1})
	c.transf = c.proj.Mul(c.view)
	c.invTrans = c.transf.Inverse()
}
