package lighting

import "github.com/Faultbox/prism/pkg/math"

// MaxLights is the light array size declared in the shaders.
const MaxLights = 32

// Buffer accumulates point lights for a frame and flattens them into the
// uniform-array layout the shaders consume.
type Buffer struct {
	lights []Light
}

// NewBuffer creates an empty light buffer.
func NewBuffer() *Buffer {
	return &Buffer{lights: make([]Light, 0, MaxLights)}
}

// Clear drops all lights.
func (b *Buffer) Clear() {
	b.lights = b.lights[:0]
}

// Add appends a light. Returns false when the shader array is full.
func (b *Buffer) Add(l Light) bool {
	if len(b.lights) >= MaxLights {
		return false
	}
	b.lights = append(b.lights, l)
	return true
}

// Set replaces the buffer contents, truncating to MaxLights.
func (b *Buffer) Set(lights []Light) {
	b.Clear()
	n := len(lights)
	if n > MaxLights {
		n = MaxLights
	}
	b.lights = append(b.lights, lights[:n]...)
}

// Count returns the number of active lights.
func (b *Buffer) Count() int { return len(b.lights) }

// Positions flattens resolved light positions to [x0 y0 z0 x1 ...],
// always MaxLights entries long so a single Uniform3fv covers the array.
func (b *Buffer) Positions(eye math.Vec3) []float32 {
	out := make([]float32, MaxLights*3)
	for i, l := range b.lights {
		p := l.Resolve(eye)
		out[i*3+0] = p.X
		out[i*3+1] = p.Y
		out[i*3+2] = p.Z
	}
	return out
}

// Colors flattens light colors scaled by intensity to [r0 g0 b0 r1 ...].
func (b *Buffer) Colors() []float32 {
	out := make([]float32, MaxLights*3)
	for i, l := range b.lights {
		out[i*3+0] = l.Color.X * l.Intensity
		out[i*3+1] = l.Color.Y * l.Intensity
		out[i*3+2] = l.Color.Z * l.Intensity
	}
	return out
}
