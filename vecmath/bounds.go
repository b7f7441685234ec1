package vecmath

import "math"

// Bounds is an axis-aligned bounding box. An empty Bounds has Min components
// greater than Max components (see Bounds.IsEmpty).
type Bounds struct {
	Min, Max Vector
}

// EmptyBounds returns a bounds value that contains no points and unions
// with anything to produce that thing's own bounds.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Vector{inf, inf, inf},
		Max: Vector{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether b contains no points.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// BoundsForPoints returns the bounds of a set of points.
func BoundsForPoints(points []Vector) Bounds {
	b := EmptyBounds()
	for _, p := range points {
		b = b.ExtendedByPoint(p)
	}
	return b
}

// ExtendedByPoint returns b grown (if needed) to contain p.
func (b Bounds) ExtendedByPoint(p Vector) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Bounds{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// ContainsPoint reports whether p lies within b (inclusive).
func (b Bounds) ContainsPoint(p Vector) bool {
	return p.X >= b.Min.X-Epsilon && p.X <= b.Max.X+Epsilon &&
		p.Y >= b.Min.Y-Epsilon && p.Y <= b.Max.Y+Epsilon &&
		p.Z >= b.Min.Z-Epsilon && p.Z <= b.Max.Z+Epsilon
}

// Intersects reports whether b and o overlap.
func (b Bounds) Intersects(o Bounds) bool {
	return b.Min.X <= o.Max.X+Epsilon && b.Max.X >= o.Min.X-Epsilon &&
		b.Min.Y <= o.Max.Y+Epsilon && b.Max.Y >= o.Min.Y-Epsilon &&
		b.Min.Z <= o.Max.Z+Epsilon && b.Max.Z >= o.Min.Z-Epsilon
}

// Size returns Max-Min.
func (b Bounds) Size() Vector { return b.Max.Subtract(b.Min) }

// Center returns the midpoint of the box.
func (b Bounds) Center() Vector { return b.Min.Lerp(b.Max, 0.5) }

// Compare classifies the whole box against a plane: Front if every corner
// is Front or Coplanar, Back symmetrically, Spanning otherwise.
func (b Bounds) Compare(p Plane) Side {
	if b.IsEmpty() {
		return Coplanar
	}
	corners := [8]Vector{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
	sawFront, sawBack := false, false
	for _, c := range corners {
		switch c.Compare(p) {
		case Front:
			sawFront = true
		case Back:
			sawBack = true
		}
	}
	switch {
	case sawFront && sawBack:
		return Spanning
	case sawFront:
		return Front
	case sawBack:
		return Back
	default:
		return Coplanar
	}
}
