package camera

import (
	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/pkg/math"
)

// FirstPerson is a free-flying camera. Left drag turns the view, WASD
// moves the eye along the view plane, the wheel moves along the view
// direction. Holding shift doubles the movement speed.
type FirstPerson struct {
	eye   math.Vec3
	yaw   float32
	pitch float32

	lookStep  float32
	moveSpeed float32

	fov    float32
	aspect float32
	znear  float32
	zfar   float32

	rotating bool

	proj     math.Mat4
	view     math.Mat4
	transf   math.Mat4
	invTrans math.Mat4
}

// NewFirstPerson creates a first-person camera at eye looking toward at.
func NewFirstPerson(eye, at math.Vec3, fov, aspect, znear, zfar float32) *FirstPerson {
	c := &FirstPerson{
		lookStep:  0.005,
		moveSpeed: 8,
		fov:       fov,
		aspect:    aspect,
		znear:     znear,
		zfar:      zfar,
	}
	c.LookAt(eye, at)
	return c
}

// LookAt repositions the camera at eye facing at.
func (c *FirstPerson) LookAt(eye, at math.Vec3) {
	dir := at.Sub(eye).Normalize()
	c.eye = eye
	c.pitch = math32.Asin(dir.Y)
	c.yaw = math32.Atan2(dir.Z, dir.X)
	c.clampPitch()
	c.updateProjView()
}

func (c *FirstPerson) clampPitch() {
	limit := math32.Pi/2 - pitchEpsilon
	if c.pitch > limit {
		c.pitch = limit
	}
	if c.pitch < -limit {
		c.pitch = -limit
	}
}

// Eye returns the camera position.
func (c *FirstPerson) Eye() math.Vec3 { return c.eye }

// SetSensitivity overrides the drag response and movement speed. Values
// at or below zero keep the current setting.
func (c *FirstPerson) SetSensitivity(look, move float32) {
	if look > 0 {
		c.lookStep = look
	}
	if move > 0 {
		c.moveSpeed = move
	}
}

// Dir returns the unit view direction.
func (c *FirstPerson) Dir() math.Vec3 {
	cp := math32.Cos(c.pitch)
	return math.Vec3{
		X: cp * math32.Cos(c.yaw),
		Y: math32.Sin(c.pitch),
		Z: cp * math32.Sin(c.yaw),
	}
}

// HandleEvent applies drag rotation and wheel motion.
func (c *FirstPerson) HandleEvent(ev *input.Event) {
	if ev.Inhibited {
		return
	}

	switch ev.Type {
	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_LEFT {
			c.rotating = true
		}

	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT {
			c.rotating = false
		}

	case input.EventMouseMove:
		if c.rotating {
			c.yaw += ev.DeltaX * c.lookStep
			c.pitch -= ev.DeltaY * c.lookStep
			c.clampPitch()
			c.updateProjView()
		}

	case input.EventScroll:
		c.eye = c.eye.Add(c.Dir().Scale(ev.DeltaY * c.moveSpeed * 0.25))
		c.updateProjView()

	case input.EventResize:
		c.HandleResize(float32(ev.Width), float32(ev.Height))
	}
}

// Update moves the eye from held keys.
func (c *FirstPerson) Update(dt float32, in *input.Input) {
	if in == nil {
		return
	}

	var fwd, strafe float32
	if in.KeyHeld(sdl.SCANCODE_W) {
		fwd++
	}
	if in.KeyHeld(sdl.SCANCODE_S) {
		fwd--
	}
	if in.KeyHeld(sdl.SCANCODE_D) {
		strafe++
	}
	if in.KeyHeld(sdl.SCANCODE_A) {
		strafe--
	}
	if fwd == 0 && strafe == 0 {
		return
	}

	speed := c.moveSpeed * dt
	if in.KeyHeld(sdl.SCANCODE_LSHIFT) || in.KeyHeld(sdl.SCANCODE_RSHIFT) {
		speed *= 2
	}

	dir := c.Dir()
	right := dir.Cross(math.Vec3{Y: 1}).Normalize()
	c.eye = c.eye.
		Add(dir.Scale(fwd * speed)).
		Add(right.Scale(strafe * speed))
	c.updateProjView()
}

// HandleResize adjusts the projection aspect ratio.
func (c *FirstPerson) HandleResize(width, height float32) {
	if height > 0 {
		c.aspect = width / height
		c.updateProjView()
	}
}

func (c *FirstPerson) View() math.Mat4              { return c.view }
func (c *FirstPerson) Projection() math.Mat4        { return c.proj }
func (c *FirstPerson) Transformation() math.Mat4    { return c.transf }
func (c *FirstPerson) InvTransformation() math.Mat4 { return c.invTrans }
func (c *FirstPerson) NumPasses() int               { return 1 }

// Upload sets the view and proj uniforms.
func (c *FirstPerson) Upload(_ int, prog *shader.Program) {
	uploadMatrices(prog, c.view, c.proj)
}

// Unproject maps a cursor position to a world-space ray.
func (c *FirstPerson) Unproject(cursor, size math.Vec2) (math.Vec3, math.Vec3) {
	return unprojectRay(c.invTrans, cursor, size)
}

func (c *FirstPerson) updateProjView() {
	c.proj = math.Perspective(c.fov, c.aspect, c.znear, c.zfar)
	c.view = math.LookAt(c.eye, c.eye.Add(c.Dir()), math.Vec3{Y: 1})
	c.transf = c.proj.Mul(c.view)
	c.invTrans = c.transf.Inverse()
}
