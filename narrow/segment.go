package narrow

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const segmentEpsilon = 1e-12

// ClosestPointsSegments computes the closest points c1 = p1 + s*(q1-p1) and
// c2 = p2 + t*(q2-p2) between segments p1q1 and p2q2, with s and t in [0, 1].
//
// The unclamped solution of the 2x2 system is clamped one parameter at a time; whenever
// one parameter hits a bound the other is solved again for that bound. Parallel
// segments (zero determinant) start from s = 0.
func ClosestPointsSegments(p1, q1, p2, q2 mgl64.Vec3) (s, t float64, c1, c2 mgl64.Vec3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	switch {
	case a <= segmentEpsilon && e <= segmentEpsilon:
		// both segments are points
	case a <= segmentEpsilon:
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= segmentEpsilon {
			s = clamp01(-c / a)
			break
		}

		b := d1.Dot(d2)
		denom := a*e - b*b
		if denom > segmentEpsilon*a*e {
			s = clamp01((b*f - c*e) / denom)
		}

		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clamp01(-c / a)
		} else if t > 1 {
			t = 1
			s = clamp01((b - c) / a)
		}
	}

	c1 = p1.Add(d1.Mul(s))
	c2 = p2.Add(d2.Mul(t))
	return s, t, c1, c2
}

// ClosestPointSegments returns the midpoint between the closest points of two
// segments, the single contact of an edge-edge collision
func ClosestPointSegments(p1, q1, p2, q2 mgl64.Vec3) mgl64.Vec3 {
	_, _, c1, c2 := ClosestPointsSegments(p1, q1, p2, q2)
	return c1.Add(c2).Mul(0.5)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
