package msdf

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func testSegments() map[string]Segment {
	return map[string]Segment{
		"linear":    NewLinear(Pt(0, 0), Pt(4, 2)),
		"quadratic": NewQuadratic(Pt(0, 0), Pt(2, 4), Pt(4, 0)),
		"cubic":     NewCubic(Pt(0, 0), Pt(1, 3), Pt(3, -3), Pt(4, 0)),
	}
}

func TestSegmentEvalEndpoints(t *testing.T) {
	for name, seg := range testSegments() {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(seg.Start(), seg.Eval(0), approx); diff != "" {
				t.Errorf("Eval(0) != Start():\n%s", diff)
			}
			if diff := cmp.Diff(seg.End(), seg.Eval(1), approx); diff != "" {
				t.Errorf("Eval(1) != End():\n%s", diff)
			}
		})
	}
}

func TestSegmentReverseInvolution(t *testing.T) {
	for name, seg := range testSegments() {
		t.Run(name, func(t *testing.T) {
			orig := testSegments()[name]
			seg.Reverse()
			if diff := cmp.Diff(orig.Start(), seg.End(), approx); diff != "" {
				t.Errorf("reversed End() != original Start():\n%s", diff)
			}
			seg.Reverse()
			if diff := cmp.Diff(orig, seg, approx, cmp.AllowUnexported(Linear{}, Quadratic{}, Cubic{})); diff != "" {
				t.Errorf("double reverse changed segment:\n%s", diff)
			}
		})
	}
}

func TestSegmentReverseTracesBackward(t *testing.T) {
	for name, seg := range testSegments() {
		t.Run(name, func(t *testing.T) {
			orig := testSegments()[name]
			seg.Reverse()
			for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
				if diff := cmp.Diff(orig.Eval(1-tt), seg.Eval(tt), approx); diff != "" {
					t.Errorf("at t=%v:\n%s", tt, diff)
				}
			}
		})
	}
}

func TestSegmentBoundsContainCurve(t *testing.T) {
	for name, seg := range testSegments() {
		t.Run(name, func(t *testing.T) {
			b := seg.Bounds()
			for i := 0; i <= 16; i++ {
				p := seg.Eval(float64(i) / 16)
				const slack = 0.5 // sampled bounds are approximate
				if p.X < b.Min.X-slack || p.X > b.Max.X+slack ||
					p.Y < b.Min.Y-slack || p.Y > b.Max.Y+slack {
					t.Errorf("point %v at t=%v outside bounds %v", p, float64(i)/16, b)
				}
			}
		})
	}
}

func TestSegmentSubsegment(t *testing.T) {
	for name, seg := range testSegments() {
		t.Run(name, func(t *testing.T) {
			sub := seg.Subsegment(0.25, 0.75)
			if diff := cmp.Diff(seg.Eval(0.25), sub.Start(), approx); diff != "" {
				t.Errorf("Start():\n%s", diff)
			}
			if diff := cmp.Diff(seg.Eval(0.75), sub.End(), approx); diff != "" {
				t.Errorf("End():\n%s", diff)
			}
			if diff := cmp.Diff(seg.Eval(0.5), sub.Eval(0.5), approx); diff != "" {
				t.Errorf("midpoint:\n%s", diff)
			}
		})
	}
}

func TestSegmentSplitInThirds(t *testing.T) {
	for name, seg := range testSegments() {
		t.Run(name, func(t *testing.T) {
			p1, p2, p3 := seg.SplitInThirds()
			if diff := cmp.Diff(seg.Start(), p1.Start(), approx); diff != "" {
				t.Errorf("first part start:\n%s", diff)
			}
			if diff := cmp.Diff(p1.End(), p2.Start(), approx); diff != "" {
				t.Errorf("part 1/2 junction:\n%s", diff)
			}
			if diff := cmp.Diff(p2.End(), p3.Start(), approx); diff != "" {
				t.Errorf("part 2/3 junction:\n%s", diff)
			}
			if diff := cmp.Diff(seg.End(), p3.End(), approx); diff != "" {
				t.Errorf("last part end:\n%s", diff)
			}
			if diff := cmp.Diff(seg.Eval(0.5), p2.Eval(0.5), approx); diff != "" {
				t.Errorf("middle part midpoint:\n%s", diff)
			}
		})
	}
}

func TestSegmentDirectionMatchesDifference(t *testing.T) {
	for name, seg := range testSegments() {
		t.Run(name, func(t *testing.T) {
			for _, tt := range []float64{0, 0.3, 0.7, 1} {
				const h = 1e-6
				lo, hi := math.Max(0, tt-h), math.Min(1, tt+h)
				want := seg.Eval(hi).Sub(seg.Eval(lo)).Normalize()
				got := seg.Direction(tt).Normalize()
				if got.Sub(want).Length() > 1e-4 {
					t.Errorf("Direction(%v) = %v, finite difference %v", tt, got, want)
				}
			}
		})
	}
}

func TestPointOrthonormal(t *testing.T) {
	tests := []struct {
		name string
		p    Point
	}{
		{"axis aligned", Pt(3, 0)},
		{"diagonal", Pt(1, 1)},
		{"negative", Pt(-2, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.p.Orthonormal()
			if math.Abs(o.Length()-1) > 1e-9 {
				t.Errorf("length = %v, want 1", o.Length())
			}
			if math.Abs(o.Dot(tt.p)) > 1e-9 {
				t.Errorf("dot with original = %v, want 0", o.Dot(tt.p))
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(Pt(0, 0), Pt(2, 2))
	b := NewRect(Pt(1, -1), Pt(3, 1))
	got := a.Union(b)
	want := Rect{Min: Pt(0, -1), Max: Pt(3, 2)}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Union:\n%s", diff)
	}
}
