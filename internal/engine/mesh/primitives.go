package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/prism/pkg/math"
)

// Procedural generators for the built-in primitives. All of them produce
// unified meshes with analytic normals and UVs, wound counter-clockwise
// when viewed from outside.

func mustNew(coords []math.Vec3, faces []Face, normals []math.Vec3, uvs []math.Vec2) *Mesh {
	m, err := New(coords, faces, normals, uvs, false)
	if err != nil {
		// Generators produce their own indices; an out-of-range index
		// here is a bug, not bad input.
		panic(err)
	}
	return m
}

// Cube returns an axis-aligned box with the given full extents, centered at
// the origin. Each face has its own four vertices so normals stay flat.
func Cube(extents math.Vec3) *Mesh {
	x := extents.X / 2
	y := extents.Y / 2
	z := extents.Z / 2

	type faceDef struct {
		corners [4]math.Vec3
		normal  math.Vec3
	}

	defs := []faceDef{
		// +X
		{[4]math.Vec3{{x, -y, -z}, {x, y, -z}, {x, y, z}, {x, -y, z}}, math.Vec3{X: 1}},
		// -X
		{[4]math.Vec3{{-x, -y, z}, {-x, y, z}, {-x, y, -z}, {-x, -y, -z}}, math.Vec3{X: -1}},
		// +Y
		{[4]math.Vec3{{-x, y, -z}, {-x, y, z}, {x, y, z}, {x, y, -z}}, math.Vec3{Y: 1}},
		// -Y
		{[4]math.Vec3{{-x, -y, z}, {-x, -y, -z}, {x, -y, -z}, {x, -y, z}}, math.Vec3{Y: -1}},
		// +Z
		{[4]math.Vec3{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}, math.Vec3{Z: 1}},
		// -Z
		{[4]math.Vec3{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}}, math.Vec3{Z: -1}},
	}

	coords := make([]math.Vec3, 0, 24)
	normals := make([]math.Vec3, 0, 24)
	uvs := make([]math.Vec2, 0, 24)
	faces := make([]Face, 0, 12)

	cornerUVs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	for _, d := range defs {
		base := uint32(len(coords))
		for ci, c := range d.corners {
			coords = append(coords, c)
			normals = append(normals, d.normal)
			uvs = append(uvs, cornerUVs[ci])
		}
		faces = append(faces,
			Face{base, base + 1, base + 2},
			Face{base, base + 2, base + 3},
		)
	}

	return mustNew(coords, faces, normals, uvs)
}

// Quad returns a subdivided rectangle in the XY plane, centered at the
// origin, facing +Z. usubdivs and vsubdivs are cell counts per axis.
func Quad(width, height float32, usubdivs, vsubdivs int) *Mesh {
	if usubdivs < 1 {
		usubdivs = 1
	}
	if vsubdivs < 1 {
		vsubdivs = 1
	}

	cols := usubdivs + 1
	rows := vsubdivs + 1

	coords := make([]math.Vec3, 0, cols*rows)
	normals := make([]math.Vec3, 0, cols*rows)
	uvs := make([]math.Vec2, 0, cols*rows)

	for i := 0; i < rows; i++ {
		v := float32(i) / float32(vsubdivs)
		for j := 0; j < cols; j++ {
			u := float32(j) / float32(usubdivs)
			coords = append(coords, math.Vec3{
				X: (u - 0.5) * width,
				Y: (v - 0.5) * height,
			})
			normals = append(normals, math.Vec3{Z: 1})
			uvs = append(uvs, math.Vec2{X: u, Y: v})
		}
	}

	idx := func(i, j int) uint32 { return uint32(i*cols + j) }
	faces := make([]Face, 0, 2*usubdivs*vsubdivs)
	for i := 0; i < vsubdivs; i++ {
		for j := 0; j < usubdivs; j++ {
			faces = append(faces,
				Face{idx(i, j), idx(i, j+1), idx(i+1, j+1)},
				Face{idx(i, j), idx(i+1, j+1), idx(i+1, j)},
			)
		}
	}

	return mustNew(coords, faces, normals, uvs)
}

// Sphere returns a UV sphere with the given radius. stacks is the
// subdivision count from pole to pole, slices around the equator.
func Sphere(radius float32, stacks, slices int) *Mesh {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}

	coords, normals, uvs := sphereRings(radius, stacks, slices, 0, func(int) float32 { return 0 })
	faces := gridFaces(stacks, slices)
	return mustNew(coords, faces, normals, uvs)
}

// Capsule returns a cylinder of the given height capped with hemispheres of
// the given radius; total height is height + 2*radius. The axis is Y.
func Capsule(radius, height float32, stacks, slices int) *Mesh {
	if stacks < 2 {
		stacks = 2
	}
	if stacks%2 != 0 {
		stacks++
	}
	if slices < 3 {
		slices = 3
	}

	half := height / 2
	// One extra ring: the equator appears twice, once at +half and once at
	// -half, forming the cylindrical band.
	offset := func(i int) float32 {
		if i <= stacks/2 {
			return half
		}
		return -half
	}
	coords, normals, uvs := sphereRings(radius, stacks, slices, 1, offset)
	faces := gridFaces(stacks+1, slices)
	return mustNew(coords, faces, normals, uvs)
}

// sphereRings emits rings of a UV sphere from the +Y pole down, with
// extraRings duplicate equator rings and a per-ring Y offset.
func sphereRings(radius float32, stacks, slices, extraRings int, offset func(int) float32) ([]math.Vec3, []math.Vec3, []math.Vec2) {
	rows := stacks + 1 + extraRings
	cols := slices + 1

	coords := make([]math.Vec3, 0, rows*cols)
	normals := make([]math.Vec3, 0, rows*cols)
	uvs := make([]math.Vec2, 0, rows*cols)

	for row, i := 0, 0; row < rows; row++ {
		theta := math32.Pi * float32(i) / float32(stacks)
		sinT := math32.Sin(theta)
		cosT := math32.Cos(theta)
		yc := offset(row)

		for j := 0; j < cols; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(slices)
			n := math.Vec3{
				X: sinT * math32.Cos(phi),
				Y: cosT,
				Z: sinT * math32.Sin(phi),
			}
			coords = append(coords, math.Vec3{X: n.X * radius, Y: n.Y*radius + yc, Z: n.Z * radius})
			normals = append(normals, n)
			uvs = append(uvs, math.Vec2{
				X: float32(j) / float32(slices),
				Y: float32(i) / float32(stacks),
			})
		}

		// Duplicate equator rows extraRings times before advancing
		if extraRings > 0 && i == stacks/2 {
			extraRings--
		} else {
			i++
		}
	}

	return coords, normals, uvs
}

// gridFaces builds the triangle list for a (bands+1) x (slices+1) vertex
// grid with a duplicated seam column.
func gridFaces(bands, slices int) []Face {
	cols := slices + 1
	idx := func(i, j int) uint32 { return uint32(i*cols + j) }

	faces := make([]Face, 0, 2*bands*slices)
	for i := 0; i < bands; i++ {
		for j := 0; j < slices; j++ {
			a := idx(i, j)
			a1 := idx(i, j+1)
			b := idx(i+1, j)
			b1 := idx(i+1, j+1)
			faces = append(faces, Face{a, a1, b}, Face{a1, b1, b})
		}
	}
	return faces
}

// Cylinder returns a capped cylinder with the given radius and height,
// centered at the origin with the Y axis as its axis.
func Cylinder(radius, height float32, slices int) *Mesh {
	if slices < 3 {
		slices = 3
	}

	half := height / 2
	cols := slices + 1

	var coords []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec2
	var faces []Face

	// Side: bottom ring then top ring, radial normals
	for j := 0; j < cols; j++ {
		phi := 2 * math32.Pi * float32(j) / float32(slices)
		c, s := math32.Cos(phi), math32.Sin(phi)
		u := float32(j) / float32(slices)

		coords = append(coords, math.Vec3{X: radius * c, Y: -half, Z: radius * s})
		normals = append(normals, math.Vec3{X: c, Z: s})
		uvs = append(uvs, math.Vec2{X: u, Y: 1})
	}
	for j := 0; j < cols; j++ {
		phi := 2 * math32.Pi * float32(j) / float32(slices)
		c, s := math32.Cos(phi), math32.Sin(phi)
		u := float32(j) / float32(slices)

		coords = append(coords, math.Vec3{X: radius * c, Y: half, Z: radius * s})
		normals = append(normals, math.Vec3{X: c, Z: s})
		uvs = append(uvs, math.Vec2{X: u, Y: 0})
	}
	for j := 0; j < slices; j++ {
		b := uint32(j)
		t := uint32(cols + j)
		faces = append(faces, Face{b, t, b + 1}, Face{b + 1, t, t + 1})
	}

	// Caps
	faces = append(faces, diskFaces(&coords, &normals, &uvs, radius, half, slices, true)...)
	faces = append(faces, diskFaces(&coords, &normals, &uvs, radius, -half, slices, false)...)

	return mustNew(coords, faces, normals, uvs)
}

// Cone returns a cone with its apex at +height/2 and a base disk at
// -height/2, centered on the Y axis.
func Cone(radius, height float32, slices int) *Mesh {
	if slices < 3 {
		slices = 3
	}

	half := height / 2
	cols := slices + 1

	var coords []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec2
	var faces []Face

	slant := math32.Sqrt(radius*radius + height*height)
	ny := radius / slant
	nr := height / slant

	// Base ring + per-segment apex vertices
	for j := 0; j < cols; j++ {
		phi := 2 * math32.Pi * float32(j) / float32(slices)
		c, s := math32.Cos(phi), math32.Sin(phi)
		u := float32(j) / float32(slices)

		coords = append(coords, math.Vec3{X: radius * c, Y: -half, Z: radius * s})
		normals = append(normals, math.Vec3{X: nr * c, Y: ny, Z: nr * s})
		uvs = append(uvs, math.Vec2{X: u, Y: 1})
	}
	for j := 0; j < cols; j++ {
		phi := 2 * math32.Pi * (float32(j) + 0.5) / float32(slices)
		c, s := math32.Cos(phi), math32.Sin(phi)
		u := (float32(j) + 0.5) / float32(slices)

		coords = append(coords, math.Vec3{Y: half})
		normals = append(normals, math.Vec3{X: nr * c, Y: ny, Z: nr * s})
		uvs = append(uvs, math.Vec2{X: u, Y: 0})
	}
	for j := 0; j < slices; j++ {
		b := uint32(j)
		apex := uint32(cols + j)
		faces = append(faces, Face{b, apex, b + 1})
	}

	faces = append(faces, diskFaces(&coords, &normals, &uvs, radius, -half, slices, false)...)

	return mustNew(coords, faces, normals, uvs)
}

// diskFaces appends a cap disk at the given Y and returns its triangles.
// top selects a +Y-facing cap, otherwise -Y.
func diskFaces(coords *[]math.Vec3, normals *[]math.Vec3, uvs *[]math.Vec2, radius, y float32, slices int, top bool) []Face {
	n := math.Vec3{Y: -1}
	if top {
		n = math.Vec3{Y: 1}
	}

	center := uint32(len(*coords))
	*coords = append(*coords, math.Vec3{Y: y})
	*normals = append(*normals, n)
	*uvs = append(*uvs, math.Vec2{X: 0.5, Y: 0.5})

	ring := uint32(len(*coords))
	cols := slices + 1
	for j := 0; j < cols; j++ {
		phi := 2 * math32.Pi * float32(j) / float32(slices)
		c, s := math32.Cos(phi), math32.Sin(phi)
		*coords = append(*coords, math.Vec3{X: radius * c, Y: y, Z: radius * s})
		*normals = append(*normals, n)
		*uvs = append(*uvs, math.Vec2{X: 0.5 + c/2, Y: 0.5 + s/2})
	}

	faces := make([]Face, 0, slices)
	for j := 0; j < slices; j++ {
		a := ring + uint32(j)
		if top {
			faces = append(faces, Face{center, a + 1, a})
		} else {
			faces = append(faces, Face{center, a, a + 1})
		}
	}
	return faces
}
