package domain

import "testing"

func TestWhitepointContinuityAt6600K(t *testing.T) {
	r1, g1, b1 := Whitepoint(6599)
	r2, g2, b2 := Whitepoint(6600)
	const tol = 0.01
	if diff := abs(r1 - r2); diff > tol {
		t.Errorf("red discontinuous at 6600K: %v vs %v (diff %v)", r1, r2, diff)
	}
	if diff := abs(g1 - g2); diff > tol {
		t.Errorf("green discontinuous at 6600K: %v vs %v (diff %v)", g1, g2, diff)
	}
	if diff := abs(b1 - b2); diff > tol {
		t.Errorf("blue discontinuous at 6600K: %v vs %v (diff %v)", b1, b2, diff)
	}
}

func TestWhitepointNeutralAtDaylight(t *testing.T) {
	r, _, b := Whitepoint(6500)
	if r < 0.95 || r > 1.0 {
		t.Errorf("expected red near 1.0 at 6500K, got %v", r)
	}
	if b < 0.9 {
		t.Errorf("expected blue near 1.0 at 6500K, got %v", b)
	}
}

func TestWhitepointWarmAtLowTemp(t *testing.T) {
	r, _, b := Whitepoint(3300)
	if r < b {
		t.Errorf("expected warmer (higher red relative to blue) whitepoint at 3300K, got r=%v b=%v", r, b)
	}
}

func TestBuildRampMonotoneAndStartsAtZero(t *testing.T) {
	ramp := BuildRamp(256, 4000, 100)
	if ramp.R[0] != 0 || ramp.G[0] != 0 || ramp.B[0] != 0 {
		t.Fatalf("ramp must start at 0, got R=%d G=%d B=%d", ramp.R[0], ramp.G[0], ramp.B[0])
	}
	for _, ch := range [][]uint16{ramp.R, ramp.G, ramp.B} {
		for i := 1; i < len(ch); i++ {
			if ch[i] < ch[i-1] {
				t.Fatalf("ramp not monotone non-decreasing at index %d: %d < %d", i, ch[i], ch[i-1])
			}
		}
	}
}

func TestBuildRampZeroLength(t *testing.T) {
	ramp := BuildRamp(0, 5000, 100)
	if len(ramp.R) != 0 || len(ramp.G) != 0 || len(ramp.B) != 0 {
		t.Errorf("expected empty ramp for n=0, got %+v", ramp)
	}
}

func TestBuildRampGammaScalesDown(t *testing.T) {
	full := BuildRamp(16, 6500, 100)
	half := BuildRamp(16, 6500, 50)
	last := len(full.R) - 1
	if half.R[last] >= full.R[last] {
		t.Errorf("lower gamma_pct should scale the ramp down: half=%d full=%d", half.R[last], full.R[last])
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
