package msdf

import (
	"math"
	"math/rand/v2"
)

// Edge coloring partitions each contour's edges into the three distance
// channels so that the nearest edges per channel disagree exactly at
// true corners and agree everywhere else. The PRNG is a value seeded
// per call: the same seed always produces the same coloring, and
// concurrent coloring calls share no state.

// DefaultAngleThreshold is the corner detection threshold in radians.
// Two edges meeting at an angle sharper than this form a corner.
const DefaultAngleThreshold = 3.0

// cmyCycle is the fixed color rotation used across arcs.
var cmyCycle = [3]EdgeColor{Cyan, Magenta, Yellow}

// ColorEdges assigns channel masks to every edge of the shape using the
// simple corner-splitting strategy. angleThreshold is the corner
// detection limit in radians (DefaultAngleThreshold when <= 0); seed
// keys the deterministic PRNG that picks the rotation phase, so equal
// seeds yield byte-identical colorings.
func ColorEdges(shape *Shape, angleThreshold float64, seed uint64) {
	if angleThreshold <= 0 {
		angleThreshold = DefaultAngleThreshold
	}
	crossThreshold := math.Sin(angleThreshold)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	for _, contour := range shape.Contours {
		colorContour(contour, crossThreshold, rng)
	}
}

// ColorEdgesInkTrap is declared for parity with the ink-trap-preserving
// strategy; it currently degrades to the simple strategy. Callers must
// not rely on a quality difference until it is implemented.
func ColorEdgesInkTrap(shape *Shape, angleThreshold float64, seed uint64) {
	ColorEdges(shape, angleThreshold, seed)
}

// ColorEdgesByDistance is declared for parity with the distance-based
// strategy; it currently degrades to the simple strategy. Callers must
// not rely on a quality difference until it is implemented.
func ColorEdgesByDistance(shape *Shape, angleThreshold float64, seed uint64) {
	ColorEdges(shape, angleThreshold, seed)
}

// isCorner reports whether two consecutive unit tangents form a corner:
// the turn either exceeds 90 degrees or its cross product magnitude
// exceeds the sine of the angle threshold.
func isCorner(aDir, bDir Point, crossThreshold float64) bool {
	return aDir.Dot(bDir) <= 0 || math.Abs(aDir.Cross(bDir)) > crossThreshold
}

// colorContour colors one contour. The three cases (smooth, teardrop,
// multi-corner) follow the arc structure of the contour's corners.
func colorContour(contour *Contour, crossThreshold float64, rng *rand.Rand) {
	m := len(contour.Edges)
	if m == 0 {
		return
	}

	corners := findCorners(contour, crossThreshold)

	switch len(corners) {
	case 0:
		// Smooth contour: three roughly equal arcs cycling the fixed
		// colors. Degenerate contours with fewer than 3 edges cannot be
		// partitioned and stay fully white.
		if m < 3 {
			for _, e := range contour.Edges {
				e.SetColor(White)
			}
			return
		}
		phase := int(rng.Uint64() % 3)
		for i, e := range contour.Edges {
			e.SetColor(cmyCycle[(phase+i*3/m)%3])
		}

	case 1:
		colorTeardrop(contour, corners[0], rng)

	default:
		colorArcs(contour, corners, rng)
	}
}

// findCorners returns the indices of edges whose start vertex is a
// corner.
func findCorners(contour *Contour, crossThreshold float64) []int {
	var corners []int
	prevDir := contour.Edges[len(contour.Edges)-1].Direction(1)
	for i, e := range contour.Edges {
		if isCorner(prevDir.Normalize(), e.Direction(0).Normalize(), crossThreshold) {
			corners = append(corners, i)
		}
		prevDir = e.Direction(1)
	}
	return corners
}

// colorTeardrop handles a contour with exactly one corner: the contour
// is split by parametric distance from the corner into three thirds
// colored cyan, magenta and yellow, so the single corner still sees a
// channel change while the smooth remainder does not.
func colorTeardrop(contour *Contour, corner int, rng *rand.Rand) {
	m := len(contour.Edges)
	phase := int(rng.Uint64() % 3)

	if m >= 3 {
		for i := 0; i < m; i++ {
			third := i * 3 / m
			contour.Edges[(corner+i)%m].SetColor(cmyCycle[(phase+third)%3])
		}
		return
	}

	// Fewer than 3 edges: cut the edges themselves into thirds so the
	// contour still carries three color arcs.
	parts := make([]Segment, 0, 6)
	for i := 0; i < m; i++ {
		a, b, c := contour.Edges[(corner+i)%m].SplitInThirds()
		parts = append(parts, a, b, c)
	}
	for i, p := range parts {
		third := i * 3 / len(parts)
		p.SetColor(cmyCycle[(phase+third)%3])
	}
	contour.Edges = parts
}

// colorArcs handles two or more corners: each corner-to-corner arc gets
// one color, rotating through the fixed cyan-magenta-yellow cycle from
// a PRNG-chosen phase. The final arc avoids both its neighbors' colors
// where the cycle would close on the first arc's color.
func colorArcs(contour *Contour, corners []int, rng *rand.Rand) {
	m := len(contour.Edges)
	arcs := len(corners)
	phase := int(rng.Uint64() % 3)

	arcColor := func(arc int) EdgeColor {
		c := cmyCycle[(phase+arc)%3]
		if arc == arcs-1 && arcs > 2 {
			first := cmyCycle[phase%3]
			prev := cmyCycle[(phase+arc-1)%3]
			if c == first {
				// Pick the remaining color not used by either neighbor.
				for _, alt := range cmyCycle {
					if alt != first && alt != prev {
						return alt
					}
				}
			}
		}
		return c
	}

	spline := 0
	start := corners[0]
	for i := 0; i < m; i++ {
		idx := (start + i) % m
		if spline+1 < arcs && corners[spline+1] == idx {
			spline++
		}
		contour.Edges[idx].SetColor(arcColor(spline))
	}
}
