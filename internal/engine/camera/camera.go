// Package camera provides the cameras driving 3D and planar rendering.
package camera

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/pkg/math"
)

// Camera positions the viewer for 3D rendering. Implementations own
// their projection and keep the composed matrices cached; mutators
// refresh the cache so the per-frame accessors stay cheap.
//
// Multi-pass cameras report NumPasses greater than one and are uploaded
// once per pass with the pass index.
type Camera interface {
	// HandleEvent reacts to one input event. Inhibited events must be
	// ignored.
	HandleEvent(ev *input.Event)
	// Update advances time-based motion using currently held keys.
	Update(dt float32, in *input.Input)
	// HandleResize adjusts the projection to a new drawable size.
	HandleResize(width, height float32)

	Eye() math.Vec3
	View() math.Mat4
	Projection() math.Mat4
	// Transformation returns projection * view.
	Transformation() math.Mat4
	InvTransformation() math.Mat4

	NumPasses() int
	// Upload sets the view and proj uniforms for the given pass.
	Upload(pass int, prog *shader.Program)

	// Unproject maps a cursor position in window coordinates to a
	// world-space ray origin and direction.
	Unproject(cursor, size math.Vec2) (math.Vec3, math.Vec3)
}

// PlanarCamera positions the viewer for 2D rendering.
type PlanarCamera interface {
	HandleEvent(ev *input.Event)
	HandleResize(width, height float32)

	At() math.Vec2
	Transformation() math.Mat4
	InvTransformation() math.Mat4

	Upload(prog *shader.Program)

	// Unproject maps a cursor position in window coordinates to a
	// world-space point.
	Unproject(cursor, size math.Vec2) math.Vec2
}

// uploadMatrices sets the conventional view and proj uniforms. Programs
// without one of them (a skybox with a baked view, a flat 2D pass) just
// skip it.
func uploadMatrices(prog *shader.Program, view, proj math.Mat4) {
	if loc, ok := prog.Uniform("view"); ok {
		gl.UniformMatrix4fv(loc, 1, false, view.Ptr())
	}
	if loc, ok := prog.Uniform("proj"); ok {
		gl.UniformMatrix4fv(loc, 1, false, proj.Ptr())
	}
}

// unprojectRay pushes the cursor through an inverse view-projection,
// yielding the world ray entering the scene at that pixel.
func unprojectRay(inv math.Mat4, cursor, size math.Vec2) (math.Vec3, math.Vec3) {
	ndc := math.Vec2{
		X: 2*cursor.X/size.X - 1,
		Y: 1 - 2*cursor.Y/size.Y,
	}

	near := inv.TransformPoint(math.Vec3{X: ndc.X, Y: ndc.Y, Z: -1})
	far := inv.TransformPoint(math.Vec3{X: ndc.X, Y: ndc.Y, Z: 1})

	return near, far.Sub(near).Normalize()
}
