package math

// Isometry is a rigid transform: a rotation followed by a translation.
// Scale is deliberately excluded so that composing isometries can never
// introduce shear; renderers apply scale separately per object.
type Isometry struct {
	Rotation    Quat
	Translation Vec3
}

// IsometryIdentity returns the identity transform.
func IsometryIdentity() Isometry {
	return Isometry{Rotation: QuatIdentity()}
}

// Compose returns the transform that applies other first, then i.
func (i Isometry) Compose(other Isometry) Isometry {
	return Isometry{
		Rotation:    i.Rotation.Mul(other.Rotation),
		Translation: i.Rotation.Rotate(other.Translation).Add(i.Translation),
	}
}

// Transform applies the isometry to a point.
func (i Isometry) Transform(p Vec3) Vec3 {
	return i.Rotation.Rotate(p).Add(i.Translation)
}

// Inverse returns the inverse transform.
func (i Isometry) Inverse() Isometry {
	inv := i.Rotation.Conjugate()
	return Isometry{
		Rotation:    inv,
		Translation: inv.Rotate(i.Translation).Neg(),
	}
}

// ToMat4 converts the isometry to a 4x4 matrix.
func (i Isometry) ToMat4() Mat4 {
	m := i.Rotation.ToMat4()
	m[12] = i.Translation.X
	m[13] = i.Translation.Y
	m[14] = i.Translation.Z
	return m
}
