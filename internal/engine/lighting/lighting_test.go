package lighting

import (
	"testing"

	"github.com/Faultbox/prism/pkg/math"
)

func TestResolve(t *testing.T) {
	eye := math.Vec3{X: 1, Y: 2, Z: 3}

	abs := NewAbsolute(math.Vec3{X: 9})
	if abs.Resolve(eye) != (math.Vec3{X: 9}) {
		t.Errorf("absolute light moved with camera: %v", abs.Resolve(eye))
	}

	stick := NewStickToCamera()
	if stick.Resolve(eye) != eye {
		t.Errorf("camera-glued light = %v, want %v", stick.Resolve(eye), eye)
	}
}

func TestBufferCapacity(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < MaxLights; i++ {
		if !b.Add(NewStickToCamera()) {
			t.Fatalf("Add failed at %d, below capacity", i)
		}
	}
	if b.Add(NewStickToCamera()) {
		t.Error("Add should fail past MaxLights")
	}
	if b.Count() != MaxLights {
		t.Errorf("Count = %d, want %d", b.Count(), MaxLights)
	}

	b.Clear()
	if b.Count() != 0 {
		t.Errorf("Count after Clear = %d, want 0", b.Count())
	}
}

func TestBufferFlatten(t *testing.T) {
	b := NewBuffer()
	b.Set([]Light{
		{Mode: Absolute, Position: math.Vec3{X: 1, Y: 2, Z: 3}, Color: math.Vec3{X: 1, Y: 0.5}, Intensity: 2},
		{Mode: StickToCamera, Color: math.Vec3{Z: 1}, Intensity: 1},
	})

	eye := math.Vec3{X: 7, Y: 8, Z: 9}
	pos := b.Positions(eye)
	if len(pos) != MaxLights*3 {
		t.Fatalf("positions length = %d, want %d", len(pos), MaxLights*3)
	}
	if pos[0] != 1 || pos[1] != 2 || pos[2] != 3 {
		t.Errorf("light 0 position = %v", pos[:3])
	}
	if pos[3] != 7 || pos[4] != 8 || pos[5] != 9 {
		t.Errorf("camera-glued light position = %v, want eye", pos[3:6])
	}
	// Unused slots are zeroed
	if pos[6] != 0 || pos[7] != 0 || pos[8] != 0 {
		t.Errorf("unused slot not zeroed: %v", pos[6:9])
	}

	colors := b.Colors()
	if colors[0] != 2 || colors[1] != 1 || colors[2] != 0 {
		t.Errorf("light 0 color = %v, want intensity-scaled", colors[:3])
	}
}
