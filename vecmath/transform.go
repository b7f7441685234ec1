package vecmath

import "math"

// Rotation is a unit quaternion (x,y,z,w).
type Rotation struct {
	X, Y, Z, W float64
}

// IdentityRotation applies no rotation.
var IdentityRotation = Rotation{W: 1}

// RotationFromAxisAngle builds a rotation of angle radians about axis.
func RotationFromAxisAngle(axis Vector, angle float64) Rotation {
	axis = axis.Normalized()
	s := math.Sin(angle / 2)
	return Rotation{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math.Cos(angle / 2)}
}

// RotationFromEuler builds a rotation from pitch(x), yaw(y), roll(z) radians
// (the `orientation` command's vector form), applying roll first, then
// pitch, then yaw.
func RotationFromEuler(pitch, yaw, roll float64) Rotation {
	rx := RotationFromAxisAngle(Vector{X: 1}, pitch)
	ry := RotationFromAxisAngle(Vector{Y: 1}, yaw)
	rz := RotationFromAxisAngle(Vector{Z: 1}, roll)
	return ry.Multiply(rx).Multiply(rz)
}

// Multiply composes rotations: (r.Multiply(o)) applies o first, then r.
func (r Rotation) Multiply(o Rotation) Rotation {
	return Rotation{
		X: r.W*o.X + r.X*o.W + r.Y*o.Z - r.Z*o.Y,
		Y: r.W*o.Y - r.X*o.Z + r.Y*o.W + r.Z*o.X,
		Z: r.W*o.Z + r.X*o.Y - r.Y*o.X + r.Z*o.W,
		W: r.W*o.W - r.X*o.X - r.Y*o.Y - r.Z*o.Z,
	}
}

// Rotate applies the rotation to v.
func (r Rotation) Rotate(v Vector) Vector {
	qv := Rotation{X: v.X, Y: v.Y, Z: v.Z, W: 0}
	conj := Rotation{X: -r.X, Y: -r.Y, Z: -r.Z, W: r.W}
	res := r.Multiply(qv).Multiply(conj)
	return Vector{X: res.X, Y: res.Y, Z: res.Z}
}

// Normalized returns a unit quaternion; the identity if r is degenerate.
func (r Rotation) Normalized() Rotation {
	l := math.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z + r.W*r.W)
	if l < Epsilon {
		return IdentityRotation
	}
	return Rotation{X: r.X / l, Y: r.Y / l, Z: r.Z / l, W: r.W / l}
}

// Equals reports tolerant equality.
func (r Rotation) Equals(o Rotation) bool {
	return math.Abs(r.X-o.X) <= Epsilon && math.Abs(r.Y-o.Y) <= Epsilon &&
		math.Abs(r.Z-o.Z) <= Epsilon && math.Abs(r.W-o.W) <= Epsilon
}

// Transform composes a translation, rotation and (non-uniform) scale,
// applied scale-then-rotate-then-translate to a point.
type Transform struct {
	Offset   Vector
	Rotation Rotation
	Scale    Vector
}

// IdentityTransform leaves points unchanged.
var IdentityTransform = Transform{Scale: Vector{1, 1, 1}, Rotation: IdentityRotation}

// ApplyPoint transforms a position.
func (t Transform) ApplyPoint(v Vector) Vector {
	scaled := v.Multiply(t.Scale)
	rotated := t.Rotation.Rotate(scaled)
	return rotated.Add(t.Offset)
}

// ApplyDirection transforms a direction (no translation); used for normals
// it additionally corrects for non-uniform scale by scaling with the
// reciprocal (the standard inverse-transpose trick specialized to diagonal
// scale matrices).
func (t Transform) ApplyDirection(v Vector) Vector {
	inv := Vector{X: safeRecip(t.Scale.X), Y: safeRecip(t.Scale.Y), Z: safeRecip(t.Scale.Z)}
	scaled := v.Multiply(inv)
	return t.Rotation.Rotate(scaled).Normalized()
}

func safeRecip(x float64) float64 {
	if math.Abs(x) < Epsilon {
		return 0
	}
	return 1 / x
}

// Then composes t followed by o: applying Then's result equals applying t
// then o to a point.
func (t Transform) Then(o Transform) Transform {
	return Transform{
		Offset:   o.ApplyPoint(t.Offset),
		Rotation: o.Rotation.Multiply(t.Rotation),
		Scale:    t.Scale.Multiply(o.Scale),
	}
}

// Translated returns t with an additional translation by v applied in t's
// own local frame (used by the `translate` command).
func (t Transform) Translated(v Vector) Transform {
	return Transform{Offset: t.Offset.Add(t.Rotation.Rotate(v.Multiply(t.Scale))), Rotation: t.Rotation, Scale: t.Scale}
}

// Rotated returns t with an additional rotation composed on.
func (t Transform) Rotated(r Rotation) Transform {
	return Transform{Offset: t.Offset, Rotation: t.Rotation.Multiply(r), Scale: t.Scale}
}

// Scaled returns t with an additional (local) scale applied.
func (t Transform) Scaled(v Vector) Transform {
	return Transform{Offset: t.Offset, Rotation: t.Rotation, Scale: t.Scale.Multiply(v)}
}
