// Package lighting describes light sources and packs them for GPU upload.
package lighting

import "github.com/Faultbox/prism/pkg/math"

// Mode selects how a light's position is resolved each frame.
type Mode int

const (
	// Absolute keeps the light at a fixed world-space position.
	Absolute Mode = iota
	// StickToCamera moves the light with the camera eye, so geometry
	// facing the viewer is always lit.
	StickToCamera
)

// Light is a single point light source.
type Light struct {
	Mode      Mode
	Position  math.Vec3
	Color     math.Vec3
	Intensity float32
}

// NewAbsolute places a white light at a fixed world position.
func NewAbsolute(pos math.Vec3) Light {
	return Light{Mode: Absolute, Position: pos, Color: math.Vec3{X: 1, Y: 1, Z: 1}, Intensity: 1}
}

// NewStickToCamera glues a white light to the camera eye.
func NewStickToCamera() Light {
	return Light{Mode: StickToCamera, Color: math.Vec3{X: 1, Y: 1, Z: 1}, Intensity: 1}
}

// Resolve returns the light's effective world position given the camera
// eye for this frame.
func (l Light) Resolve(eye math.Vec3) math.Vec3 {
	if l.Mode == StickToCamera {
		return eye
	}
	return l.Position
}
