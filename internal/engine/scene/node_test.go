package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/pkg/math"
)

func quatDistance(a, b math.Quat) float32 {
	// Unit quaternions double-cover rotations; q and -q are the same.
	d := a.Dot(b)
	if d < 0 {
		d = -d
	}
	return 1 - d
}

func TestWorldComposesParentThenLocal(t *testing.T) {
	root := NewGroup()
	root.SetLocalTranslation(math.Vec3{X: 10})
	root.SetLocalRotation(math.QuatFromAxisAngle(math.Vec3{Y: 1}, math32.Pi/2))

	child := root.AddGroup()
	child.SetLocalTranslation(math.Vec3{X: 1})

	want := root.LocalTransform().Compose(child.LocalTransform())
	got := child.World()

	if got.Translation.Distance(want.Translation) > 1e-5 {
		t.Errorf("world translation = %v, want %v", got.Translation, want.Translation)
	}
	if quatDistance(got.Rotation, want.Rotation) > 1e-5 {
		t.Errorf("world rotation = %v, want %v", got.Rotation, want.Rotation)
	}

	// Rotation about Y by 90 degrees maps the child's +X offset to -Z
	p := got.Transform(math.Vec3{})
	if p.Distance(math.Vec3{X: 10, Z: -1}) > 1e-5 {
		t.Errorf("child origin in world = %v, want {10 0 -1}", p)
	}
}

func TestWorldCacheInvalidation(t *testing.T) {
	root := NewGroup()
	child := root.AddGroup()
	grandchild := child.AddGroup()

	if grandchild.World().Translation != (math.Vec3{}) {
		t.Fatalf("initial world should be identity")
	}

	// Mutating an ancestor must reach the cached grandchild
	root.SetLocalTranslation(math.Vec3{Y: 5})
	if grandchild.World().Translation != (math.Vec3{Y: 5}) {
		t.Errorf("grandchild world = %v, want {0 5 0}", grandchild.World().Translation)
	}
}

func TestPrependAndAppendRotationDiffer(t *testing.T) {
	r := math.QuatFromAxisAngle(math.Vec3{Y: 1}, 0.7)
	local := math.Isometry{
		Rotation:    math.QuatFromAxisAngle(math.Vec3{X: 1}, 0.3),
		Translation: math.Vec3{X: 2, Y: 1},
	}

	pre := NewGroup()
	pre.SetLocalTransform(local)
	pre.PrependToLocalRotation(r)

	app := NewGroup()
	app.SetLocalTransform(local)
	app.AppendRotation(r)

	// Prepending composes r after local, appending before it
	wantPre := (math.Isometry{Rotation: r}).Compose(local)
	wantApp := local.Compose(math.Isometry{Rotation: r})

	if quatDistance(pre.LocalRotation(), wantPre.Rotation) > 1e-5 {
		t.Errorf("prepend rotation = %v, want %v", pre.LocalRotation(), wantPre.Rotation)
	}
	if pre.LocalTranslation().Distance(wantPre.Translation) > 1e-5 {
		t.Errorf("prepend translation = %v, want %v", pre.LocalTranslation(), wantPre.Translation)
	}
	if quatDistance(app.LocalRotation(), wantApp.Rotation) > 1e-5 {
		t.Errorf("append rotation = %v, want %v", app.LocalRotation(), wantApp.Rotation)
	}
	if app.LocalTranslation() != local.Translation {
		t.Errorf("append moved the translation: %v", app.LocalTranslation())
	}

	// Order must matter for non-commuting rotations
	if quatDistance(pre.LocalRotation(), app.LocalRotation()) < 1e-5 {
		t.Error("prepend and append should differ for non-commuting rotations")
	}
}

func TestAppendRotationWrtCenterKeepsTranslation(t *testing.T) {
	n := NewGroup()
	n.SetLocalTranslation(math.Vec3{X: 3, Y: 4, Z: 5})

	n.AppendRotationWrtCenter(math.QuatFromAxisAngle(math.Vec3{Y: 1}, 1.2))

	if n.LocalTranslation() != (math.Vec3{X: 3, Y: 4, Z: 5}) {
		t.Errorf("rotation about own center moved the node to %v", n.LocalTranslation())
	}
}

func TestUnlinkDetachesSubtree(t *testing.T) {
	root := NewGroup()
	child := root.AddGroup()
	child.AddGroup()

	child.Unlink()

	if len(root.Children()) != 0 {
		t.Errorf("root still has %d children", len(root.Children()))
	}
	if child.Parent() != nil {
		t.Error("unlinked node still has a parent")
	}
}

func TestReparentingKeepsTreeStrict(t *testing.T) {
	a := NewGroup()
	b := NewGroup()
	n := a.AddGroup()

	b.AddChild(n)

	if len(a.Children()) != 0 {
		t.Error("node still attached to the old parent")
	}
	if n.Parent() != b {
		t.Error("node not attached to the new parent")
	}
	// World transform follows the new parent
	b.SetLocalTranslation(math.Vec3{Z: 7})
	if n.World().Translation != (math.Vec3{Z: 7}) {
		t.Errorf("world after reparent = %v", n.World().Translation)
	}
}

func TestVisitPrunesInvisible(t *testing.T) {
	root := NewGroup()
	shown := root.AddCube(math.Vec3{X: 1, Y: 1, Z: 1})
	hidden := root.AddGroup()
	buried := hidden.AddCube(math.Vec3{X: 1, Y: 1, Z: 1})
	hidden.SetVisible(false)

	var visited []*Node
	root.Visit(func(n *Node) { visited = append(visited, n) })

	for _, n := range visited {
		if n == hidden || n == buried {
			t.Error("visited a node under an invisible branch")
		}
	}
	found := false
	for _, n := range visited {
		if n == shown {
			found = true
		}
	}
	if !found {
		t.Error("visible object not visited")
	}
}

func TestWorldScaleAccumulates(t *testing.T) {
	root := NewGroup()
	root.SetLocalScale(math.Vec3{X: 2, Y: 2, Z: 2})
	child := root.AddGroup()
	child.SetLocalScale(math.Vec3{X: 1, Y: 3, Z: 1})

	if child.WorldScale() != (math.Vec3{X: 2, Y: 6, Z: 2}) {
		t.Errorf("world scale = %v, want {2 6 2}", child.WorldScale())
	}
	// Scale never leaks into the isometry
	if child.World().Translation != (math.Vec3{}) || quatDistance(child.World().Rotation, math.QuatIdentity()) > 1e-6 {
		t.Error("scale contaminated the world isometry")
	}
}

func TestCubeRotationScenario(t *testing.T) {
	const step = math32.Pi / 180
	inc := math.QuatFromAxisAngle(math.Vec3{Y: 1}, step)

	cube := NewGroup().AddCube(math.Vec3{X: 1, Y: 1, Z: 1})

	for frame := 1; frame <= 360; frame++ {
		cube.AppendRotationWrtCenter(inc)

		if frame == 90 {
			// A quarter turn about Y carries +X to -Z
			p := cube.World().Transform(math.Vec3{X: 1})
			if p.Distance(math.Vec3{Z: -1}) > 1e-3 {
				t.Errorf("frame 90: corner at %v, want {0 0 -1}", p)
			}
		}
	}

	// 360 steps of one degree come back to the identity
	if quatDistance(cube.LocalRotation(), math.QuatIdentity()) > 1e-3 {
		t.Errorf("after full turn rotation = %v, want identity", cube.LocalRotation())
	}
}

func TestSharedMeshInstancingScenario(t *testing.T) {
	shared, err := mesh.New(
		[]math.Vec3{{}, {X: 1}, {Y: 1}},
		[]mesh.Face{{0, 1, 2}},
		nil, nil, true,
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	root := NewGroup()
	a := root.AddObject(shared)
	a.SetColor(1, 0, 0)
	a.SetLocalTranslation(math.Vec3{X: -2})
	b := root.AddObject(shared)
	b.SetColor(0, 0, 1)
	b.SetLocalTranslation(math.Vec3{X: 2})

	// One mutation of the shared mesh is seen through both nodes
	pts, err := shared.Coords().Mut()
	if err != nil {
		t.Fatalf("Mut: %v", err)
	}
	pts[2] = math.Vec3{Y: 5}

	for _, n := range []*Node{a, b} {
		coords, ok := n.Data().Mesh.Coords().Data()
		if !ok {
			t.Fatal("mesh coords should be RAM-resident")
		}
		if coords[2] != (math.Vec3{Y: 5}) {
			t.Errorf("node sees stale geometry: %v", coords[2])
		}
	}

	// While per-node state stays independent
	if a.Data().Color == b.Data().Color {
		t.Error("node colors should be independent")
	}
	if a.World().Translation == b.World().Translation {
		t.Error("node transforms should be independent")
	}
}
