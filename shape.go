package msdf

import "math"

// windingSamples is the number of sub-steps per curved edge in the
// shoelace winding computation.
const windingSamples = 8

// Contour is one closed loop of connected edge segments. The last
// segment's endpoint must coincide with the first segment's start
// point; outline sources close contours automatically.
type Contour struct {
	// Edges is the ordered segment list. Append via AddSegment.
	Edges []Segment
}

// AddSegment appends an edge to the contour.
func (c *Contour) AddSegment(s Segment) {
	c.Edges = append(c.Edges, s)
}

// AddLine appends a line segment to the contour.
func (c *Contour) AddLine(p0, p1 Point) {
	c.AddSegment(NewLinear(p0, p1))
}

// AddQuadratic appends a quadratic Bezier segment to the contour.
func (c *Contour) AddQuadratic(p0, p1, p2 Point) {
	c.AddSegment(NewQuadratic(p0, p1, p2))
}

// AddCubic appends a cubic Bezier segment to the contour.
func (c *Contour) AddCubic(p0, p1, p2, p3 Point) {
	c.AddSegment(NewCubic(p0, p1, p2, p3))
}

// Bounds returns the union of the per-edge bounding boxes, or a zero
// rect for an empty contour.
func (c *Contour) Bounds() Rect {
	if len(c.Edges) == 0 {
		return Rect{}
	}
	bounds := c.Edges[0].Bounds()
	for _, e := range c.Edges[1:] {
		bounds = bounds.Union(e.Bounds())
	}
	return bounds
}

// Winding returns the orientation sign of the contour: the sign of its
// shoelace area, with curved edges sampled at 8 sub-steps. +1 means
// counter-clockwise in a Y-up coordinate system, -1 clockwise, 0 a
// degenerate contour.
func (c *Contour) Winding() int {
	if len(c.Edges) == 0 {
		return 0
	}
	var total float64
	prev := c.Edges[len(c.Edges)-1].End()
	for _, e := range c.Edges {
		switch e.(type) {
		case *Linear:
			cur := e.End()
			total += prev.Cross(cur)
			prev = cur
		default:
			for i := 1; i <= windingSamples; i++ {
				cur := e.Eval(float64(i) / windingSamples)
				total += prev.Cross(cur)
				prev = cur
			}
		}
	}
	if total > 0 {
		return 1
	}
	if total < 0 {
		return -1
	}
	return 0
}

// Reverse flips the contour's direction in place: the edge order is
// reversed and each segment is reversed, so the contour parametrizes
// the same geometry in the opposite direction.
func (c *Contour) Reverse() {
	for i, j := 0, len(c.Edges)-1; i < j; i, j = i+1, j-1 {
		c.Edges[i], c.Edges[j] = c.Edges[j], c.Edges[i]
	}
	for _, e := range c.Edges {
		e.Reverse()
	}
}

// Shape is a glyph outline: a sequence of closed contours. Holes use
// the opposite winding from the contours that contain them.
//
// A Shape is exclusively owned by its creator. Coloring and generation
// calls must not run concurrently against the same shape.
type Shape struct {
	// Contours is the ordered contour list. Append via AddContour.
	Contours []*Contour

	// InverseYAxis selects the output row order during generation:
	// when set, bitmap row 0 corresponds to the top of the shape
	// (top-left-origin raster convention) instead of the bottom.
	InverseYAxis bool
}

// NewShape creates an empty shape.
func NewShape() *Shape {
	return &Shape{}
}

// AddContour appends a new empty contour and returns it.
func (s *Shape) AddContour() *Contour {
	c := &Contour{}
	s.Contours = append(s.Contours, c)
	return c
}

// EdgeCount returns the total number of edges across all contours.
func (s *Shape) EdgeCount() int {
	n := 0
	for _, c := range s.Contours {
		n += len(c.Edges)
	}
	return n
}

// Bounds returns the union of the per-contour bounding boxes. Curved
// edges contribute approximate sampled boxes; see Segment.Bounds.
func (s *Shape) Bounds() Rect {
	first := true
	var bounds Rect
	for _, c := range s.Contours {
		if len(c.Edges) == 0 {
			continue
		}
		if first {
			bounds = c.Bounds()
			first = false
			continue
		}
		bounds = bounds.Union(c.Bounds())
	}
	return bounds
}

// Validate reports whether every contour is closed: each edge starts
// where the previous one ended and the last edge returns to the first
// edge's start point.
func (s *Shape) Validate() bool {
	const eps = 1e-9
	for _, c := range s.Contours {
		if len(c.Edges) == 0 {
			continue
		}
		prev := c.Edges[len(c.Edges)-1].End()
		for _, e := range c.Edges {
			start := e.Start()
			if math.Abs(start.X-prev.X) > eps || math.Abs(start.Y-prev.Y) > eps {
				return false
			}
			prev = e.End()
		}
	}
	return true
}

// Normalize rescales all control points uniformly so the longer
// bounding-box dimension maps to unit length, with the bounds midpoint
// moved to the origin. Run before distance-field generation so the
// pixel-range parameter is meaningful in bitmap-pixel units via
// ProjectionFromBounds.
func (s *Shape) Normalize() {
	bounds := s.Bounds()
	dim := math.Max(bounds.Width(), bounds.Height())
	if dim <= 0 {
		return
	}
	scale := 1 / dim
	center := bounds.Min.Lerp(bounds.Max, 0.5)
	transform := func(p Point) Point {
		return p.Sub(center).Mul(scale)
	}
	s.transform(transform)
}

// Scale rescales all control points uniformly about the origin.
func (s *Shape) Scale(factor float64) {
	s.transform(func(p Point) Point { return p.Mul(factor) })
}

// transform applies fn to every control point of every edge.
func (s *Shape) transform(fn func(Point) Point) {
	for _, c := range s.Contours {
		for _, e := range c.Edges {
			switch seg := e.(type) {
			case *Linear:
				seg.P0 = fn(seg.P0)
				seg.P1 = fn(seg.P1)
			case *Quadratic:
				seg.P0 = fn(seg.P0)
				seg.P1 = fn(seg.P1)
				seg.P2 = fn(seg.P2)
			case *Cubic:
				seg.P0 = fn(seg.P0)
				seg.P1 = fn(seg.P1)
				seg.P2 = fn(seg.P2)
				seg.P3 = fn(seg.P3)
			}
		}
	}
}
