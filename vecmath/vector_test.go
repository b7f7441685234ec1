package vecmath

import "testing"

func TestVectorEqualsTolerance(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{1 + Epsilon/2, 2, 3}
	if !a.Equals(b) {
		t.Fatalf("expected %v to equal %v within epsilon", a, b)
	}
	c := Vector{1 + Epsilon*10, 2, 3}
	if a.Equals(c) {
		t.Fatalf("expected %v to not equal %v", a, c)
	}
}

func TestVectorHashAgreesWithEquals(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{1 + Epsilon/4, 2 - Epsilon/4, 3}
	if a.Equals(b) && a.Hash() != b.Hash() {
		t.Fatalf("tolerant-equal vectors hashed differently: %d vs %d", a.Hash(), b.Hash())
	}
}

func TestVectorCompareToPlane(t *testing.T) {
	p := Plane{Normal: Vector{0, 0, 1}, W: 0}
	if Vector{0, 0, 1}.Compare(p) != Front {
		t.Fatalf("expected front")
	}
	if (Vector{0, 0, -1}).Compare(p) != Back {
		t.Fatalf("expected back")
	}
	if (Vector{5, 5, 0}).Compare(p) != Coplanar {
		t.Fatalf("expected coplanar")
	}
}

func TestBoundsUnionAndContains(t *testing.T) {
	b := BoundsForPoints([]Vector{{-1, -1, -1}, {1, 1, 1}})
	if !b.ContainsPoint(Vector{0, 0, 0}) {
		t.Fatalf("expected origin inside bounds")
	}
	other := BoundsForPoints([]Vector{{2, 2, 2}})
	u := b.Union(other)
	if u.Max.X != 2 {
		t.Fatalf("expected union max.x=2, got %v", u.Max.X)
	}
}

func TestRotationPreservesLength(t *testing.T) {
	r := RotationFromAxisAngle(Vector{0, 1, 0}, 1.2345)
	v := Vector{1, 0, 0}
	rv := r.Rotate(v)
	if diff := rv.Length() - v.Length(); diff > Epsilon*100 || diff < -Epsilon*100 {
		t.Fatalf("rotation changed length: %v -> %v", v.Length(), rv.Length())
	}
}

func TestRotationAroundYQuarterTurn(t *testing.T) {
	r := RotationFromAxisAngle(Vector{0, 1, 0}, 3.14159265358979/2)
	rv := r.Rotate(Vector{1, 0, 0})
	if !rv.Equals(Vector{0, 0, -1}) {
		t.Fatalf("expected quarter turn of (1,0,0) about Y to land near (0,0,-1), got %v", rv)
	}
}
