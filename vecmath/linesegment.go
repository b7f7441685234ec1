package vecmath

// LineSegment is an unordered pair of distinct Vectors, canonicalized on
// construction so that direction doesn't affect equality or hashing — used
// to detect shared edges between polygons regardless of winding.
type LineSegment struct {
	Start, End Vector
}

// less provides the lexicographic ordering used to canonicalize endpoints.
func less(a, b Vector) bool {
	qa := [3]int64{quantize(a.X), quantize(a.Y), quantize(a.Z)}
	qb := [3]int64{quantize(b.X), quantize(b.Y), quantize(b.Z)}
	for i := 0; i < 3; i++ {
		if qa[i] != qb[i] {
			return qa[i] < qb[i]
		}
	}
	return false
}

// NewLineSegment canonicalizes a,b so that Start <= End lexicographically.
func NewLineSegment(a, b Vector) LineSegment {
	if less(b, a) {
		return LineSegment{Start: b, End: a}
	}
	return LineSegment{Start: a, End: b}
}

// Equals reports whether two segments share the same (unordered) endpoints
// within tolerance.
func (s LineSegment) Equals(o LineSegment) bool {
	return s.Start.Equals(o.Start) && s.End.Equals(o.End)
}

// Hash is consistent with Equals.
func (s LineSegment) Hash() uint64 {
	h := s.Start.Hash()
	h ^= s.End.Hash() + 0x9e3779b9 + (h << 6) + (h >> 2)
	return h
}

// Degenerate reports whether the two endpoints coincide.
func (s LineSegment) Degenerate() bool { return s.Start.Equals(s.End) }
