package scene

import (
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/pkg/math"
)

// Node is one element of the scene tree. It owns its children
// exclusively and carries a local transform split into an isometry
// (rotation plus translation) and a separate non-uniform scale, so
// rotation composition never shears.
//
// World transforms are cached; every mutation invalidates the node's
// subtree and the cache refills lazily on the next query.
type Node struct {
	parent   *Node
	children []*Node

	local math.Isometry
	scale math.Vec3

	visible bool
	data    *ObjectData

	world      math.Isometry
	worldScale math.Vec3
	dirty      bool
}

// NewGroup creates a payload-free node, a pure transform carrier.
func NewGroup() *Node {
	return &Node{
		local:   math.IsometryIdentity(),
		scale:   math.Vec3{X: 1, Y: 1, Z: 1},
		visible: true,
		dirty:   true,
	}
}

// NewObject creates a node rendering the given mesh.
func NewObject(m *mesh.Mesh) *Node {
	n := NewGroup()
	n.data = newObjectData(m)
	return n
}

// AddChild attaches a node. A node already attached elsewhere is
// unlinked from its old parent first, preserving the strict-tree shape.
func (n *Node) AddChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	child.invalidate()
	n.children = append(n.children, child)
	return child
}

// AddGroup creates and attaches an empty group node.
func (n *Node) AddGroup() *Node {
	return n.AddChild(NewGroup())
}

// AddObject creates and attaches a node rendering the given mesh.
func (n *Node) AddObject(m *mesh.Mesh) *Node {
	return n.AddChild(NewObject(m))
}

// AddCube attaches a box with the given half extents.
func (n *Node) AddCube(extents math.Vec3) *Node {
	return n.AddObject(mesh.Cube(extents))
}

// AddSphere attaches a UV sphere.
func (n *Node) AddSphere(radius float32) *Node {
	return n.AddObject(mesh.Sphere(radius, 16, 32))
}

// AddCylinder attaches a capped cylinder.
func (n *Node) AddCylinder(radius, height float32) *Node {
	return n.AddObject(mesh.Cylinder(radius, height, 32))
}

// AddCone attaches a cone pointing up.
func (n *Node) AddCone(radius, height float32) *Node {
	return n.AddObject(mesh.Cone(radius, height, 32))
}

// AddCapsule attaches a capsule.
func (n *Node) AddCapsule(radius, height float32) *Node {
	return n.AddObject(mesh.Capsule(radius, height, 8, 32))
}

// AddQuad attaches a subdivided plane facing +Z.
func (n *Node) AddQuad(width, height float32, usubdivs, vsubdivs int) *Node {
	return n.AddObject(mesh.Quad(width, height, usubdivs, vsubdivs))
}

// Unlink detaches the node and its subtree from the scene. Shared
// meshes and textures referenced by the subtree survive.
func (n *Node) Unlink() {
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
		n.invalidate()
	}
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Parent returns the owning node, nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The slice is owned by the node.
func (n *Node) Children() []*Node { return n.children }

// Data returns the renderable payload, nil for pure groups.
func (n *Node) Data() *ObjectData { return n.data }

// Visible reports whether the node itself is visible.
func (n *Node) Visible() bool { return n.visible }

// SetVisible toggles rendering of the node and its subtree.
func (n *Node) SetVisible(v bool) { n.visible = v }

// Visit walks the subtree depth-first, pruning invisible branches.
func (n *Node) Visit(fn func(*Node)) {
	if !n.visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.Visit(fn)
	}
}

// invalidate marks the node's cached world transform stale, and its
// whole subtree with it. Already-stale subtrees are not re-walked.
func (n *Node) invalidate() {
	if n.dirty {
		return
	}
	n.dirty = true
	for _, c := range n.children {
		c.invalidate()
	}
}

func (n *Node) refresh() {
	if !n.dirty {
		return
	}
	if n.parent == nil {
		n.world = n.local
		n.worldScale = n.scale
	} else {
		n.parent.refresh()
		n.world = n.parent.world.Compose(n.local)
		n.worldScale = n.parent.worldScale.Mul(n.scale)
	}
	n.dirty = false
}

// World returns the node's world-space isometry, parent world composed
// with the local transform.
func (n *Node) World() math.Isometry {
	n.refresh()
	return n.world
}

// WorldScale returns the accumulated non-uniform scale.
func (n *Node) WorldScale() math.Vec3 {
	n.refresh()
	return n.worldScale
}

// LocalTransform returns the node's local isometry.
func (n *Node) LocalTransform() math.Isometry { return n.local }

// SetLocalTransform replaces the local isometry.
func (n *Node) SetLocalTransform(t math.Isometry) {
	n.local = t
	n.invalidate()
}

// LocalTranslation returns the local translation.
func (n *Node) LocalTranslation() math.Vec3 { return n.local.Translation }

// SetLocalTranslation replaces the local translation.
func (n *Node) SetLocalTranslation(t math.Vec3) {
	n.local.Translation = t
	n.invalidate()
}

// AppendTranslation composes a translation onto the inside of the local
// transform, moving the node along its own axes.
func (n *Node) AppendTranslation(t math.Vec3) {
	n.local.Translation = n.local.Translation.Add(n.local.Rotation.Rotate(t))
	n.invalidate()
}

// PrependToLocalTranslation composes a translation onto the outside of
// the local transform, moving the node along the parent's axes.
func (n *Node) PrependToLocalTranslation(t math.Vec3) {
	n.local.Translation = n.local.Translation.Add(t)
	n.invalidate()
}

// LocalRotation returns the local rotation.
func (n *Node) LocalRotation() math.Quat { return n.local.Rotation }

// SetLocalRotation replaces the local rotation.
func (n *Node) SetLocalRotation(r math.Quat) {
	n.local.Rotation = r
	n.invalidate()
}

// PrependToLocalRotation composes r onto the outside of the local
// transform, yielding r following local. The node rotates about the
// parent-space origin.
func (n *Node) PrependToLocalRotation(r math.Quat) {
	n.local = (math.Isometry{Rotation: r}).Compose(n.local)
	n.invalidate()
}

// AppendRotation composes r onto the inside of the local transform,
// yielding local following r. The rotation acts in object space.
func (n *Node) AppendRotation(r math.Quat) {
	n.local = n.local.Compose(math.Isometry{Rotation: r})
	n.invalidate()
}

// AppendRotationWrtCenter rotates in parent space about the node's own
// translation rather than the origin, so the node spins in place.
func (n *Node) AppendRotationWrtCenter(r math.Quat) {
	n.local.Rotation = r.Mul(n.local.Rotation)
	n.invalidate()
}

// LocalScale returns the local non-uniform scale.
func (n *Node) LocalScale() math.Vec3 { return n.scale }

// SetLocalScale sets a non-uniform scale.
func (n *Node) SetLocalScale(s math.Vec3) {
	n.scale = s
	n.invalidate()
}

// SetColor sets the payload base color. No-op on groups.
func (n *Node) SetColor(r, g, b float32) {
	if n.data != nil {
		n.data.Color = math.Vec3{X: r, Y: g, Z: b}
	}
}

// SetTexture sets the payload texture. No-op on groups.
func (n *Node) SetTexture(t *texture.Texture) {
	if n.data != nil {
		n.data.Texture = t
	}
}

// SetMaterial overrides the payload material. No-op on groups.
func (n *Node) SetMaterial(m Material) {
	if n.data != nil {
		n.data.Material = m
	}
}

// SetSurfaceRendering toggles the fill pass. No-op on groups.
func (n *Node) SetSurfaceRendering(on bool) {
	if n.data != nil {
		n.data.SurfaceRendering = on
	}
}

// SetBackfaceCulling toggles back-face culling for the payload.
func (n *Node) SetBackfaceCulling(on bool) {
	if n.data != nil {
		n.data.BackfaceCulling = on
	}
}

// SetLinesWidth enables the wireframe overlay when width is positive.
func (n *Node) SetLinesWidth(width float32) {
	if n.data != nil {
		n.data.LinesWidth = width
	}
}

// SetPointsSize enables the vertex point overlay when size is positive.
func (n *Node) SetPointsSize(size float32) {
	if n.data != nil {
		n.data.PointsSize = size
	}
}

// SetInstances replaces the payload's hardware-instancing data.
func (n *Node) SetInstances(instances []Instance) {
	if n.data != nil {
		n.data.Instances = instances
	}
}
