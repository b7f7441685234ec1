// Package geom implements the planar polygon representation (§3 Vertex,
// Polygon) together with plane-splitting (§4.1) and the Path type (§4.5).
package geom

import "github.com/solidforge/solidforge/vecmath"

// Vertex is a per-vertex attribute bundle: position, normal, texture
// coordinate and an optional color.
type Vertex struct {
	Position vecmath.Vector
	Normal   vecmath.Vector
	Texcoord vecmath.Vector
	Color    *vecmath.Color
}

// NewVertex builds a vertex; a zero normal is a valid "unset" sentinel that
// RecomputeNormal replaces with the owning polygon's plane normal.
func NewVertex(position vecmath.Vector) Vertex {
	return Vertex{Position: position}
}

// WithNormal returns a copy with Normal set.
func (v Vertex) WithNormal(n vecmath.Vector) Vertex { v.Normal = n; return v }

// WithTexcoord returns a copy with Texcoord set.
func (v Vertex) WithTexcoord(tc vecmath.Vector) Vertex { v.Texcoord = tc; return v }

// WithColor returns a copy with Color set.
func (v Vertex) WithColor(c vecmath.Color) Vertex { cc := c; v.Color = &cc; return v }

// HasZeroNormal reports whether the normal is unset (the zero vector).
func (v Vertex) HasZeroNormal() bool {
	return v.Normal.Equals(vecmath.Vector{})
}

// Lerp linearly interpolates every attribute between a and b at t. Used by
// plane-splitting (§4.1) to synthesize vertices at intersection points.
func Lerp(a, b Vertex, t float64) Vertex {
	out := Vertex{
		Position: a.Position.Lerp(b.Position, t),
		Normal:   a.Normal.Lerp(b.Normal, t),
		Texcoord: a.Texcoord.Lerp(b.Texcoord, t),
	}
	if a.Color != nil && b.Color != nil {
		c := a.Color.Lerp(*b.Color, t)
		out.Color = &c
	} else if a.Color != nil {
		out.Color = a.Color
	} else if b.Color != nil {
		out.Color = b.Color
	}
	return out
}

// Flipped returns the vertex with its normal negated, used when a polygon
// is inverted.
func (v Vertex) Flipped() Vertex {
	v.Normal = v.Normal.Negated()
	return v
}
