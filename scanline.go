package msdf

import "math"

// Winding-number inside/outside classification. The per-edge distance
// sign is only locally meaningful; the single-channel SDF and the
// MTSDF alpha channel need the shape's true inside/outside, which a
// horizontal ray-crossing count over the whole shape provides.

// crossingSamples is the number of sub-segments a curved edge is
// approximated with when counting ray crossings. Lines use a single
// sub-segment.
const crossingSamples = 16

// Inside reports whether p lies inside the shape under the non-zero
// winding rule: a conceptual horizontal ray is cast from p and signed
// crossings to its right are summed over every edge of every contour
// (+1 upward crossing, -1 downward).
func (s *Shape) Inside(p Point) bool {
	total := 0
	for _, c := range s.Contours {
		for _, e := range c.Edges {
			total += edgeCrossings(e, p)
		}
	}
	return total != 0
}

// edgeCrossings counts the signed horizontal-ray crossings of a single
// edge to the right of p.
func edgeCrossings(e Segment, p Point) int {
	samples := crossingSamples
	if _, ok := e.(*Linear); ok {
		samples = 1
	}

	crossings := 0
	prev := e.Start()
	for i := 1; i <= samples; i++ {
		cur := e.Eval(float64(i) / float64(samples))
		crossings += segmentCrossing(prev, cur, p)
		prev = cur
	}
	return crossings
}

// segmentCrossing tests one straight sub-segment against the
// rightward ray from p. The half-open interval at each endpoint keeps
// a crossing exactly at a vertex from being counted twice by the two
// edges that share it.
func segmentCrossing(a, b Point, p Point) int {
	if a.Y == b.Y {
		return 0
	}
	if a.Y < b.Y {
		// Upward crossing.
		if p.Y < a.Y || p.Y >= b.Y {
			return 0
		}
		if intersectX(a, b, p.Y) > p.X {
			return 1
		}
		return 0
	}
	// Downward crossing.
	if p.Y < b.Y || p.Y >= a.Y {
		return 0
	}
	if intersectX(a, b, p.Y) > p.X {
		return -1
	}
	return 0
}

// intersectX returns the x coordinate where segment a-b crosses the
// horizontal line at y.
func intersectX(a, b Point, y float64) float64 {
	t := (y - a.Y) / (b.Y - a.Y)
	return a.X + t*(b.X-a.X)
}

// signedAbs applies the classifier's verdict to a distance magnitude:
// inside yields a positive distance, outside negative.
func signedAbs(inside bool, distance float64) float64 {
	if inside {
		return math.Abs(distance)
	}
	return -math.Abs(distance)
}
