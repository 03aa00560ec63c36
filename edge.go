package msdf

import "math"

// EdgeColor is a bit mask over the three distance-field channels.
// Edge coloring assigns every segment a subset of {red, green, blue};
// each channel then tracks its own nearest edge independently, which is
// what lets the median of three reconstruct sharp corners.
type EdgeColor uint8

// Edge color constants. Black carries no channel, White all three.
const (
	Black   EdgeColor = 0
	Red     EdgeColor = 1
	Green   EdgeColor = 2
	Yellow  EdgeColor = Red | Green
	Blue    EdgeColor = 4
	Magenta EdgeColor = Red | Blue
	Cyan    EdgeColor = Green | Blue
	White   EdgeColor = Red | Green | Blue
)

// Rect represents an axis-aligned bounding box.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points, normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// union extends the box to cover p.
func (r Rect) union(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}

// Segment is a single directed edge of a contour: a line segment or a
// quadratic or cubic Bezier curve. Segments are parametrized over
// [0, 1] from Start to End.
//
// Bounds is intentionally approximate for curves: it covers both
// endpoints and 7 interior samples at t = i/8 instead of solving for
// derivative roots. Downstream distance-range padding absorbs the
// slack of extrema that fall between samples.
type Segment interface {
	// Eval returns the point on the segment at parameter t.
	Eval(t float64) Point

	// Direction returns the (unnormalized) tangent at parameter t.
	Direction(t float64) Point

	// Start returns the first control point.
	Start() Point

	// End returns the last control point.
	End() Point

	// Bounds returns the approximate bounding box of the segment.
	Bounds() Rect

	// Reverse flips the segment's parametrization in place. The
	// reversed segment is geometrically identical.
	Reverse()

	// Subsegment returns the portion of the segment from t0 to t1 as a
	// new segment of the same type.
	Subsegment(t0, t1 float64) Segment

	// SplitInThirds cuts the segment at t=1/3 and t=2/3.
	SplitInThirds() (Segment, Segment, Segment)

	// SignedDistance returns the signed pseudo-distance from origin to
	// the segment and the parameter of the nearest point. The sign is
	// the local convention (which side of the directed tangent the
	// origin lies on), not yet the shape's inside/outside sign.
	SignedDistance(origin Point) (SignedDistance, float64)

	// Color returns the segment's channel mask.
	Color() EdgeColor

	// SetColor assigns the segment's channel mask.
	SetColor(c EdgeColor)
}

// Linear is a straight edge from P0 to P1.
type Linear struct {
	P0, P1 Point
	color  EdgeColor
}

// NewLinear creates a line segment.
func NewLinear(p0, p1 Point) *Linear {
	return &Linear{P0: p0, P1: p1}
}

// Eval evaluates the segment at parameter t.
func (s *Linear) Eval(t float64) Point { return s.P0.Lerp(s.P1, t) }

// Direction returns the constant edge direction.
func (s *Linear) Direction(float64) Point { return s.P1.Sub(s.P0) }

// Start returns the starting point.
func (s *Linear) Start() Point { return s.P0 }

// End returns the ending point.
func (s *Linear) End() Point { return s.P1 }

// Bounds returns the exact bounding box of the segment.
func (s *Linear) Bounds() Rect { return NewRect(s.P0, s.P1) }

// Reverse swaps the endpoints in place.
func (s *Linear) Reverse() { s.P0, s.P1 = s.P1, s.P0 }

// Subsegment returns the portion of the segment from t0 to t1.
func (s *Linear) Subsegment(t0, t1 float64) Segment {
	return &Linear{P0: s.Eval(t0), P1: s.Eval(t1), color: s.color}
}

// SplitInThirds cuts the segment at t=1/3 and t=2/3.
func (s *Linear) SplitInThirds() (Segment, Segment, Segment) {
	return s.Subsegment(0, 1.0/3.0), s.Subsegment(1.0/3.0, 2.0/3.0), s.Subsegment(2.0/3.0, 1)
}

// Color returns the segment's channel mask.
func (s *Linear) Color() EdgeColor { return s.color }

// SetColor assigns the segment's channel mask.
func (s *Linear) SetColor(c EdgeColor) { s.color = c }

// Quadratic is a quadratic Bezier edge with control point P1.
type Quadratic struct {
	P0, P1, P2 Point
	color      EdgeColor
}

// NewQuadratic creates a quadratic Bezier segment.
func NewQuadratic(p0, p1, p2 Point) *Quadratic {
	return &Quadratic{P0: p0, P1: p1, P2: p2}
}

// Eval evaluates the curve at parameter t in Bernstein form.
func (s *Quadratic) Eval(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*s.P0.X + 2*mt*t*s.P1.X + t*t*s.P2.X,
		Y: mt*mt*s.P0.Y + 2*mt*t*s.P1.Y + t*t*s.P2.Y,
	}
}

// Direction returns the tangent at parameter t. A degenerate control
// point (coincident with an endpoint) falls back to the chord so the
// tangent never vanishes at t=0 or t=1.
func (s *Quadratic) Direction(t float64) Point {
	tangent := s.P1.Sub(s.P0).Lerp(s.P2.Sub(s.P1), t)
	if tangent.X == 0 && tangent.Y == 0 {
		return s.P2.Sub(s.P0)
	}
	return tangent
}

// Start returns the starting point.
func (s *Quadratic) Start() Point { return s.P0 }

// End returns the ending point.
func (s *Quadratic) End() Point { return s.P2 }

// Bounds returns the sampled approximate bounding box.
func (s *Quadratic) Bounds() Rect { return sampledBounds(s) }

// Reverse flips the control point order in place.
func (s *Quadratic) Reverse() { s.P0, s.P2 = s.P2, s.P0 }

// Subsegment returns the portion of the curve from t0 to t1.
// The control point follows from the scaled tangent at t0.
func (s *Quadratic) Subsegment(t0, t1 float64) Segment {
	p0 := s.Eval(t0)
	p2 := s.Eval(t1)

	d0 := s.P1.Sub(s.P0)
	d1 := s.P2.Sub(s.P1)
	tangent := d0.Lerp(d1, t0)

	return &Quadratic{
		P0:    p0,
		P1:    p0.Add(tangent.Mul(t1 - t0)),
		P2:    p2,
		color: s.color,
	}
}

// SplitInThirds cuts the curve at t=1/3 and t=2/3.
func (s *Quadratic) SplitInThirds() (Segment, Segment, Segment) {
	return s.Subsegment(0, 1.0/3.0), s.Subsegment(1.0/3.0, 2.0/3.0), s.Subsegment(2.0/3.0, 1)
}

// Color returns the segment's channel mask.
func (s *Quadratic) Color() EdgeColor { return s.color }

// SetColor assigns the segment's channel mask.
func (s *Quadratic) SetColor(c EdgeColor) { s.color = c }

// Cubic is a cubic Bezier edge with control points P1 and P2.
type Cubic struct {
	P0, P1, P2, P3 Point
	color          EdgeColor
}

// NewCubic creates a cubic Bezier segment.
func NewCubic(p0, p1, p2, p3 Point) *Cubic {
	return &Cubic{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Eval evaluates the curve at parameter t in Bernstein form.
func (s *Cubic) Eval(t float64) Point {
	mt := 1 - t
	mt2 := mt * mt
	t2 := t * t
	return Point{
		X: mt2*mt*s.P0.X + 3*mt2*t*s.P1.X + 3*mt*t2*s.P2.X + t2*t*s.P3.X,
		Y: mt2*mt*s.P0.Y + 3*mt2*t*s.P1.Y + 3*mt*t2*s.P2.Y + t2*t*s.P3.Y,
	}
}

// Direction returns the tangent at parameter t, falling back across
// degenerate control points so the tangent never vanishes at the ends.
func (s *Cubic) Direction(t float64) Point {
	d0 := s.P1.Sub(s.P0)
	d1 := s.P2.Sub(s.P1)
	d2 := s.P3.Sub(s.P2)
	tangent := d0.Lerp(d1, t).Lerp(d1.Lerp(d2, t), t)
	if tangent.X == 0 && tangent.Y == 0 {
		if t == 0 {
			return s.P2.Sub(s.P0)
		}
		if t == 1 {
			return s.P3.Sub(s.P1)
		}
	}
	return tangent
}

// Start returns the starting point.
func (s *Cubic) Start() Point { return s.P0 }

// End returns the ending point.
func (s *Cubic) End() Point { return s.P3 }

// Bounds returns the sampled approximate bounding box.
func (s *Cubic) Bounds() Rect { return sampledBounds(s) }

// Reverse flips the control point order in place.
func (s *Cubic) Reverse() {
	s.P0, s.P3 = s.P3, s.P0
	s.P1, s.P2 = s.P2, s.P1
}

// Subsegment returns the portion of the curve from t0 to t1.
// Control points follow from the scaled endpoint derivatives.
func (s *Cubic) Subsegment(t0, t1 float64) Segment {
	p0 := s.Eval(t0)
	p3 := s.Eval(t1)
	scale := (t1 - t0) / 3

	d0 := s.deriv(t0)
	d1 := s.deriv(t1)

	return &Cubic{
		P0:    p0,
		P1:    p0.Add(d0.Mul(scale)),
		P2:    p3.Sub(d1.Mul(scale)),
		P3:    p3,
		color: s.color,
	}
}

// deriv returns the exact first derivative at t.
func (s *Cubic) deriv(t float64) Point {
	d0 := s.P1.Sub(s.P0)
	d1 := s.P2.Sub(s.P1)
	d2 := s.P3.Sub(s.P2)
	mt := 1 - t
	return Point{
		X: 3 * (d0.X*mt*mt + 2*d1.X*mt*t + d2.X*t*t),
		Y: 3 * (d0.Y*mt*mt + 2*d1.Y*mt*t + d2.Y*t*t),
	}
}

// SplitInThirds cuts the curve at t=1/3 and t=2/3.
func (s *Cubic) SplitInThirds() (Segment, Segment, Segment) {
	return s.Subsegment(0, 1.0/3.0), s.Subsegment(1.0/3.0, 2.0/3.0), s.Subsegment(2.0/3.0, 1)
}

// Color returns the segment's channel mask.
func (s *Cubic) Color() EdgeColor { return s.color }

// SetColor assigns the segment's channel mask.
func (s *Cubic) SetColor(c EdgeColor) { s.color = c }

// boundsSamples is the number of subdivisions used for approximate
// curve bounds; interior samples sit at t = i/boundsSamples.
const boundsSamples = 8

// sampledBounds covers both endpoints and 7 interior samples. True
// extrema require derivative root-finding that is deliberately skipped
// for a cheap approximate box.
func sampledBounds(s Segment) Rect {
	bounds := NewRect(s.Start(), s.End())
	for i := 1; i < boundsSamples; i++ {
		bounds = bounds.union(s.Eval(float64(i) / boundsSamples))
	}
	return bounds
}
