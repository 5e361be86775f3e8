package engine

import "testing"

func TestEaseEndpoints(t *testing.T) {
	if v := ease(0); v != 0 {
		t.Errorf("ease(0) = %v, want 0", v)
	}
	if v := ease(1); v != 1 {
		t.Errorf("ease(1) = %v, want 1", v)
	}
}

func TestEaseMonotone(t *testing.T) {
	prev := ease(0)
	for i := 1; i <= 20; i++ {
		p := float64(i) / 20
		v := ease(p)
		if v < prev {
			t.Fatalf("ease not monotone at p=%v: %v < %v", p, v, prev)
		}
		prev = v
	}
}

// The ease-in-out curve is symmetric, so it meets the linear one at the
// midpoint; its non-linearity shows away from the centre.
func TestEaseNonLinearOffMidpoint(t *testing.T) {
	if v := ease(0.25); v >= 0.25 {
		t.Errorf("expected a slow-start ease-in-out curve below linear at p=0.25, got %v", v)
	}
}

func TestLerp(t *testing.T) {
	if v := lerp(0, 10, 0.5); v != 5 {
		t.Errorf("lerp(0, 10, 0.5) = %v, want 5", v)
	}
	if v := lerp(100, 200, 0); v != 100 {
		t.Errorf("lerp(100, 200, 0) = %v, want 100", v)
	}
	if v := lerp(100, 200, 1); v != 200 {
		t.Errorf("lerp(100, 200, 1) = %v, want 200", v)
	}
}
