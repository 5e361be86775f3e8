package engine

import "math"

// cubicBezierEase evaluates the y-value of a cubic Bézier curve running
// from (0,0) to (1,1) with control points (x1,y1) and (x2,y2), for a
// given x in [0,1]. This is the same construction CSS uses for
// `cubic-bezier()` timing functions: x is solved for its parametric t
// via Newton-Raphson (falling back to bisection if the derivative is
// too flat), then y is evaluated at that t.
func cubicBezierEase(x, x1, y1, x2, y2 float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	bezier := func(t, p1, p2 float64) float64 {
		u := 1 - t
		return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
	}
	bezierDerivative := func(t, p1, p2 float64) float64 {
		u := 1 - t
		return 3*u*u*p1 + 6*u*t*(p2-p1) + 3*t*t*(1-p2)
	}

	t := x
	for i := 0; i < 8; i++ {
		cx := bezier(t, x1, x2) - x
		d := bezierDerivative(t, x1, x2)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= cx / d
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
	}

	lo, hi := 0.0, 1.0
	for i := 0; i < 20 && math.Abs(bezier(t, x1, x2)-x) > 1e-5; i++ {
		if bezier(t, x1, x2) < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}

	return bezier(t, y1, y2)
}

// ease is the fixed easing curve the state engine applies to a
// transition's linear progress: a CSS-style "ease-in-out" shape, slow
// at both ends of the transition and fastest in the middle.
func ease(p float64) float64 {
	return cubicBezierEase(p, 0.42, 0.0, 0.58, 1.0)
}

// Ease exposes the same fixed ease-in-out curve for callers outside
// this package (the startup animator eases its own ramp the same way
// the state engine eases a live transition).
func Ease(p float64) float64 {
	return ease(p)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
