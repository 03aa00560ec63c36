package msdf

import "math"

// Newton iteration budget for the cubic nearest-point query. The
// squared-distance function of a cubic has no closed-form minimum, so
// the search seeds cubicStarts parameters evenly across [0, 1] and
// refines each with cubicSteps second-order Newton steps.
const (
	cubicStarts = 4
	cubicSteps  = 4
)

// SignedDistance is a signed distance paired with a disambiguation
// score. Distance is positive inside the shape (for correctly wound
// contours); Dot is the absolute dot product between the edge tangent
// and the direction toward the query point at the nearest endpoint,
// used only to break ties between equidistant edges: the edge whose
// approach is more perpendicular (lower Dot) is the geometrically true
// nearest edge.
type SignedDistance struct {
	Distance float64
	Dot      float64
}

// infiniteDistance is the identity for closest-edge folds.
func infiniteDistance() SignedDistance {
	return SignedDistance{Distance: -math.MaxFloat64, Dot: 1}
}

// Less reports whether d is a better (closer) candidate than e.
func (d SignedDistance) Less(e SignedDistance) bool {
	if math.Abs(d.Distance) != math.Abs(e.Distance) {
		return math.Abs(d.Distance) < math.Abs(e.Distance)
	}
	return d.Dot < e.Dot
}

// SignedDistance returns the signed distance from origin to the line
// segment via closed-form projection clamped to [0, 1]. The sign comes
// from the cross product of the edge direction and the vector to the
// point.
func (s *Linear) SignedDistance(origin Point) (SignedDistance, float64) {
	aq := origin.Sub(s.P0)
	ab := s.P1.Sub(s.P0)
	denom := ab.Dot(ab)
	if denom == 0 {
		// Zero-length edge: raw distance, no usable tangent.
		return SignedDistance{Distance: aq.Length(), Dot: 0}, 0
	}
	param := aq.Dot(ab) / denom

	var eq Point
	if param > 0.5 {
		eq = s.P1.Sub(origin)
	} else {
		eq = s.P0.Sub(origin)
	}
	endpointDistance := eq.Length()

	if param > 0 && param < 1 {
		// Interior projection: the orthogonal distance is exact and
		// already signed by which side of the edge the origin is on.
		orthoDistance := ab.Orthonormal().Dot(aq)
		if math.Abs(orthoDistance) < endpointDistance {
			return SignedDistance{Distance: orthoDistance}, param
		}
	}
	return SignedDistance{
		Distance: nonZeroSign(aq.Cross(ab)) * endpointDistance,
		Dot:      math.Abs(ab.Normalize().Dot(eq.Normalize())),
	}, param
}

// SignedDistance returns the signed distance from origin to the
// quadratic curve. Stationary points of squared distance along the
// curve are the roots of a cubic polynomial; every root inside (0, 1)
// and both endpoints are candidates, and the minimum-magnitude signed
// distance wins.
func (s *Quadratic) SignedDistance(origin Point) (SignedDistance, float64) {
	qa := s.P0.Sub(origin)
	ab := s.P1.Sub(s.P0)
	br := s.P2.Sub(s.P1).Sub(ab)

	// d/dt |q(t) - origin|^2 = 0 expands to this cubic in t.
	a := br.Dot(br)
	b := 3 * ab.Dot(br)
	c := 2*ab.Dot(ab) + qa.Dot(br)
	d := qa.Dot(ab)

	epDir := s.Direction(0)
	minDistance := nonZeroSign(epDir.Cross(qa)) * qa.Length()
	param := -qa.Dot(epDir) / epDir.Dot(epDir)

	epDir = s.Direction(1)
	bq := s.P2.Sub(origin)
	if distance := nonZeroSign(epDir.Cross(bq)) * bq.Length(); math.Abs(distance) < math.Abs(minDistance) {
		minDistance = distance
		param = origin.Sub(s.P1).Dot(epDir) / epDir.Dot(epDir)
	}

	for _, t := range SolveCubic(a, b, c, d) {
		if t <= 0 || t >= 1 {
			continue
		}
		qe := s.Eval(t).Sub(origin)
		if distance := nonZeroSign(s.Direction(t).Cross(qe)) * qe.Length(); math.Abs(distance) <= math.Abs(minDistance) {
			minDistance = distance
			param = t
		}
	}

	return disambiguate(s, minDistance, param, qa, bq), param
}

// SignedDistance returns the signed distance from origin to the cubic
// curve. There is no closed form: the search seeds several starting
// parameters across [0, 1] and refines each with a bounded number of
// Newton steps on the squared-distance derivative, using the second
// derivative as well for faster convergence near flat regions. Both
// endpoints are always candidates.
func (s *Cubic) SignedDistance(origin Point) (SignedDistance, float64) {
	qa := s.P0.Sub(origin)

	epDir := s.Direction(0)
	minDistance := nonZeroSign(epDir.Cross(qa)) * qa.Length()
	param := -qa.Dot(epDir) / epDir.Dot(epDir)

	epDir = s.Direction(1)
	bq := s.P3.Sub(origin)
	if distance := nonZeroSign(epDir.Cross(bq)) * bq.Length(); math.Abs(distance) < math.Abs(minDistance) {
		minDistance = distance
		param = origin.Add(epDir).Sub(s.P3).Dot(epDir) / epDir.Dot(epDir)
	}

	for i := 0; i <= cubicStarts; i++ {
		t := float64(i) / cubicStarts
		qe := s.Eval(t).Sub(origin)
		for step := 0; step < cubicSteps; step++ {
			d1 := s.deriv(t)
			d2 := s.secondDeriv(t)
			// Second-order correction: minimize dot(qe, d1) in t.
			t -= qe.Dot(d1) / (d1.Dot(d1) + qe.Dot(d2))
			if t <= 0 || t >= 1 {
				break
			}
			qe = s.Eval(t).Sub(origin)
			if distance := nonZeroSign(s.Direction(t).Cross(qe)) * qe.Length(); math.Abs(distance) < math.Abs(minDistance) {
				minDistance = distance
				param = t
			}
		}
	}

	return disambiguate(s, minDistance, param, qa, bq), param
}

// secondDeriv returns the exact second derivative at t.
func (s *Cubic) secondDeriv(t float64) Point {
	d0 := s.P1.Sub(s.P0)
	d1 := s.P2.Sub(s.P1)
	d2 := s.P3.Sub(s.P2)
	ddx := d1.Sub(d0).Lerp(d2.Sub(d1), t)
	return ddx.Mul(6)
}

// disambiguate finalizes a curve distance query: a nearest point
// interior to the curve needs no tie-break score, while an endpoint
// winner records the tangent/approach dot product for equidistant-edge
// resolution.
func disambiguate(s Segment, minDistance, param float64, qa, bq Point) SignedDistance {
	if param >= 0 && param <= 1 {
		return SignedDistance{Distance: minDistance}
	}
	if param < 0.5 {
		return SignedDistance{
			Distance: minDistance,
			Dot:      math.Abs(s.Direction(0).Normalize().Dot(qa.Normalize())),
		}
	}
	return SignedDistance{
		Distance: minDistance,
		Dot:      math.Abs(s.Direction(1).Normalize().Dot(bq.Normalize())),
	}
}

// pseudoDistance converts a true distance into a pseudo-distance when
// the nearest parameter falls beyond an endpoint: the end tangent is
// extended as a ray and the perpendicular distance to it replaces the
// endpoint distance when no farther. This keeps MSDF channels linear
// past corners, which the median reconstruction depends on.
func pseudoDistance(s Segment, sd SignedDistance, origin Point, param float64) SignedDistance {
	if param < 0 {
		dir := s.Direction(0).Normalize()
		aq := origin.Sub(s.Start())
		if aq.Dot(dir) < 0 {
			if pd := aq.Cross(dir); math.Abs(pd) <= math.Abs(sd.Distance) {
				return SignedDistance{Distance: pd}
			}
		}
	} else if param > 1 {
		dir := s.Direction(1).Normalize()
		bq := origin.Sub(s.End())
		if bq.Dot(dir) > 0 {
			if pd := bq.Cross(dir); math.Abs(pd) <= math.Abs(sd.Distance) {
				return SignedDistance{Distance: pd}
			}
		}
	}
	return sd
}
