package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/pkg/math"
)

const (
	testFOV  = 0.785398
	testNear = 0.1
	testFar  = 1024.0
)

func newTestArcBall() *ArcBall {
	return NewArcBall(math.Vec3{Z: 5}, math.Vec3{}, testFOV, 16.0/9.0, testNear, testFar)
}

func drag(c Camera, button uint8, dx, dy float32) {
	c.HandleEvent(&input.Event{Type: input.EventMouseDown, Button: button})
	c.HandleEvent(&input.Event{Type: input.EventMouseMove, DeltaX: dx, DeltaY: dy})
	c.HandleEvent(&input.Event{Type: input.EventMouseUp, Button: button})
}

func TestArcBallLookAtRoundTrip(t *testing.T) {
	eye := math.Vec3{X: 3, Y: 4, Z: 5}
	at := math.Vec3{X: 1, Y: 0, Z: -2}
	c := NewArcBall(eye, at, testFOV, 1, testNear, testFar)

	if got := c.Eye(); got.Distance(eye) > 1e-3 {
		t.Errorf("Eye = %v, want %v", got, eye)
	}
	if c.At() != at {
		t.Errorf("At = %v, want %v", c.At(), at)
	}
}

func TestArcBallDragRotatesAroundAt(t *testing.T) {
	c := newTestArcBall()
	before := c.Eye()

	drag(c, sdl.BUTTON_LEFT, 40, 10)

	after := c.Eye()
	if after.Distance(before) < 1e-4 {
		t.Error("left drag should move the eye")
	}
	// Orbiting preserves the distance to the center
	if d := after.Length(); d < 4.99 || d > 5.01 {
		t.Errorf("orbit distance = %v, want 5", d)
	}
}

func TestArcBallDragWithoutButtonIsIgnored(t *testing.T) {
	c := newTestArcBall()
	before := c.Eye()

	c.HandleEvent(&input.Event{Type: input.EventMouseMove, DeltaX: 40, DeltaY: 10})

	if c.Eye() != before {
		t.Error("motion without a held button should not rotate")
	}
}

func TestArcBallInhibitedEventIgnored(t *testing.T) {
	c := newTestArcBall()
	before := c.Eye()

	ev := input.Event{Type: input.EventScroll, DeltaY: 2}
	ev.Inhibit()
	c.HandleEvent(&ev)

	if c.Eye() != before {
		t.Error("inhibited event should be skipped")
	}
}

func TestArcBallZoomClamped(t *testing.T) {
	c := newTestArcBall()

	// Zoom in far past the minimum distance
	for i := 0; i < 200; i++ {
		c.HandleEvent(&input.Event{Type: input.EventScroll, DeltaY: 5})
	}
	if c.Dist() <= 0 {
		t.Errorf("distance = %v, must stay positive", c.Dist())
	}

	// And far out past the maximum
	for i := 0; i < 200; i++ {
		c.HandleEvent(&input.Event{Type: input.EventScroll, DeltaY: -5})
	}
	if c.Dist() > 1024 {
		t.Errorf("distance = %v, want clamped to 1024", c.Dist())
	}
}

func TestArcBallPitchClamped(t *testing.T) {
	c := newTestArcBall()

	// Drag way past the pole; the eye must never flip over the top
	drag(c, sdl.BUTTON_LEFT, 0, 1e5)
	eye := c.Eye()
	up := eye.Sub(c.At()).Normalize().Y
	if up > 0.99999 {
		t.Errorf("pitch reached the pole: up component %v", up)
	}
}

func TestArcBallPanMovesAt(t *testing.T) {
	c := newTestArcBall()

	drag(c, sdl.BUTTON_RIGHT, 100, 0)
	if c.At() == (math.Vec3{}) {
		t.Error("right drag should translate the orbit center")
	}
}

func TestArcBallTransformationComposes(t *testing.T) {
	c := newTestArcBall()
	want := c.Projection().Mul(c.View())
	got := c.Transformation()
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-5 || diff < -1e-5 {
			t.Fatalf("Transformation[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestArcBallUnprojectCenterRay(t *testing.T) {
	c := newTestArcBall()
	size := math.Vec2{X: 800, Y: 600}

	origin, dir := c.Unproject(math.Vec2{X: 400, Y: 300}, size)

	// The center pixel's ray runs from the eye toward the orbit center
	want := c.At().Sub(c.Eye()).Normalize()
	if dir.Distance(want) > 1e-3 {
		t.Errorf("center ray dir = %v, want %v", dir, want)
	}
	// Ray origin lies on the near plane in front of the eye
	if origin.Distance(c.Eye()) > testNear*1.1 {
		t.Errorf("ray origin %v too far from eye %v", origin, c.Eye())
	}
}

func TestArcBallResizeChangesProjection(t *testing.T) {
	c := newTestArcBall()
	before := c.Projection()
	c.HandleResize(400, 400)
	if c.Projection() == before {
		t.Error("resize should rebuild the projection")
	}
}

func TestFirstPersonLookAt(t *testing.T) {
	eye := math.Vec3{X: 1, Y: 2, Z: 3}
	at := math.Vec3{X: 1, Y: 2, Z: -4}
	c := NewFirstPerson(eye, at, testFOV, 1, testNear, testFar)

	if c.Eye() != eye {
		t.Errorf("Eye = %v, want %v", c.Eye(), eye)
	}
	want := at.Sub(eye).Normalize()
	if c.Dir().Distance(want) > 1e-4 {
		t.Errorf("Dir = %v, want %v", c.Dir(), want)
	}
}

func TestFirstPersonDragTurns(t *testing.T) {
	c := NewFirstPerson(math.Vec3{}, math.Vec3{Z: -1}, testFOV, 1, testNear, testFar)
	before := c.Dir()

	drag(c, sdl.BUTTON_LEFT, 50, 0)

	if c.Dir().Distance(before) < 1e-4 {
		t.Error("left drag should turn the view")
	}
	if c.Eye() != (math.Vec3{}) {
		t.Error("turning should not move the eye")
	}
}

func TestFirstPersonScrollMovesAlongDir(t *testing.T) {
	c := NewFirstPerson(math.Vec3{}, math.Vec3{Z: -1}, testFOV, 1, testNear, testFar)

	c.HandleEvent(&input.Event{Type: input.EventScroll, DeltaY: 4})

	moved := c.Eye()
	if moved.Z >= 0 {
		t.Errorf("eye = %v, should have advanced toward -Z", moved)
	}
	if along := moved.Normalize().Distance(c.Dir()); along > 1e-4 {
		t.Errorf("movement not along the view direction: %v", along)
	}
}

func TestSidescrollPanAndZoom(t *testing.T) {
	c := NewSidescroll(800, 600)

	c.HandleEvent(&input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_RIGHT})
	c.HandleEvent(&input.Event{Type: input.EventMouseMove, DeltaX: 10, DeltaY: -20})
	c.HandleEvent(&input.Event{Type: input.EventMouseUp, Button: sdl.BUTTON_RIGHT})

	if c.At().X != -10 || c.At().Y != 20 {
		t.Errorf("At = %v, want {-10 20}", c.At())
	}

	c.HandleEvent(&input.Event{Type: input.EventScroll, DeltaY: 1})
	if c.Zoom() <= 1 {
		t.Errorf("zoom = %v, want > 1 after zooming in", c.Zoom())
	}

	// Zooming out indefinitely never reaches zero
	for i := 0; i < 500; i++ {
		c.HandleEvent(&input.Event{Type: input.EventScroll, DeltaY: -0.9})
	}
	if c.Zoom() <= 0 {
		t.Errorf("zoom = %v, must stay positive", c.Zoom())
	}
}

func TestSidescrollUnproject(t *testing.T) {
	c := NewSidescroll(800, 600)
	size := math.Vec2{X: 800, Y: 600}

	// Window center maps to the at point
	if got := c.Unproject(math.Vec2{X: 400, Y: 300}, size); got != (math.Vec2{}) {
		t.Errorf("center unprojects to %v, want origin", got)
	}

	// At zoom 1 a pixel is a world unit: the top-left corner sits at
	// (-width/2, +height/2)
	got := c.Unproject(math.Vec2{}, size)
	if got.X != -400 || got.Y != 300 {
		t.Errorf("corner unprojects to %v, want {-400 300}", got)
	}
}

func TestArcBallSensitivityScalesDrag(t *testing.T) {
	slow := newTestArcBall()
	fast := newTestArcBall()
	fast.SetSensitivity(0.01, 0, 0)

	drag(slow, sdl.BUTTON_LEFT, 40, 0)
	drag(fast, sdl.BUTTON_LEFT, 40, 0)

	slowYaw := slow.yaw - math32.Atan2(1, 0)
	fastYaw := fast.yaw - math32.Atan2(1, 0)
	if math32.Abs(fastYaw-2*slowYaw) > 1e-5 {
		t.Errorf("doubled rotate sensitivity turned %v, want %v", fastYaw, 2*slowYaw)
	}

	// Nonpositive values keep the current steps.
	before := fast.rotateStep
	fast.SetSensitivity(0, -1, 0)
	if fast.rotateStep != before {
		t.Error("zero sensitivity should not change the rotate step")
	}
}

func TestArcBallSensitivityScalesZoom(t *testing.T) {
	c := newTestArcBall()
	c.SetSensitivity(0, 0, 0.2)

	c.HandleEvent(&input.Event{Type: input.EventScroll, DeltaY: 1})

	if d := c.Dist(); math32.Abs(d-4) > 1e-4 {
		t.Errorf("distance after zoom = %v, want 4", d)
	}
}

func TestFirstPersonSensitivityScalesMotion(t *testing.T) {
	c := NewFirstPerson(math.Vec3{}, math.Vec3{Z: 5}, testFOV, 1, testNear, testFar)
	c.SetSensitivity(0, 16)

	c.HandleEvent(&input.Event{Type: input.EventScroll, DeltaY: 1})

	want := c.Dir().Scale(4)
	if c.Eye().Distance(want) > 1e-4 {
		t.Errorf("eye after scroll = %v, want %v", c.Eye(), want)
	}
}
