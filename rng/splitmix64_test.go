package rng

import "testing"

func TestDeterministicSequence(t *testing.T) {
	a := NewSource(1)
	b := NewSource(1)
	for i := 0; i < 4; i++ {
		av, bv := a.Float64(), b.Float64()
		if av != bv {
			t.Fatalf("iteration %d diverged: %v != %v", i, av, bv)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)
	if a.Float64() == b.Float64() {
		t.Fatalf("expected different seeds to produce different first values")
	}
}

func TestFloat64InUnitRange(t *testing.T) {
	s := NewSource(42)
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("value out of [0,1): %v", v)
		}
	}
}
