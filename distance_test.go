package msdf

import (
	"math"
	"testing"
)

func TestLinearSignedDistance(t *testing.T) {
	// Horizontal edge running right to left, as on the bottom of a
	// clockwise-wound contour: points above it are inside (positive).
	seg := NewLinear(Pt(4, 0), Pt(0, 0))

	tests := []struct {
		name      string
		origin    Point
		wantDist  float64
		wantParam float64
	}{
		{"above middle", Pt(2, 1), 1, 0.5},
		{"below middle", Pt(2, -1), -1, 0.5},
		{"on the edge", Pt(1, 0), 0, 0.75},
		{"beyond end", Pt(-3, 4), 5, 1.75},
		{"beyond start", Pt(7, -4), -5, -0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sd, param := seg.SignedDistance(tt.origin)
			if math.Abs(sd.Distance-tt.wantDist) > 1e-9 {
				t.Errorf("distance = %v, want %v", sd.Distance, tt.wantDist)
			}
			if math.Abs(param-tt.wantParam) > 1e-9 {
				t.Errorf("param = %v, want %v", param, tt.wantParam)
			}
		})
	}
}

func TestQuadraticSignedDistance(t *testing.T) {
	// Symmetric arch from (0,0) to (4,0) peaking at (2,2).
	seg := NewQuadratic(Pt(0, 0), Pt(2, 4), Pt(4, 0))

	t.Run("apex", func(t *testing.T) {
		sd, param := seg.SignedDistance(Pt(2, 2))
		if math.Abs(sd.Distance) > 1e-9 {
			t.Errorf("distance at apex = %v, want 0", sd.Distance)
		}
		if math.Abs(param-0.5) > 1e-9 {
			t.Errorf("param = %v, want 0.5", param)
		}
	})

	t.Run("magnitude matches sampling", func(t *testing.T) {
		for _, origin := range []Point{Pt(2, 3), Pt(0, 2), Pt(4, -1), Pt(2, 0)} {
			sd, _ := seg.SignedDistance(origin)
			want := sampleMinDistance(seg, origin)
			if math.Abs(math.Abs(sd.Distance)-want) > 1e-5 {
				t.Errorf("|distance| at %v = %v, sampled %v", origin, math.Abs(sd.Distance), want)
			}
		}
	})

	t.Run("sign flips across the curve", func(t *testing.T) {
		above, _ := seg.SignedDistance(Pt(2, 3))
		below, _ := seg.SignedDistance(Pt(2, 1))
		if above.Distance*below.Distance >= 0 {
			t.Errorf("same sign on both sides: above=%v below=%v", above.Distance, below.Distance)
		}
	})
}

func TestCubicSignedDistance(t *testing.T) {
	seg := NewCubic(Pt(0, 0), Pt(1, 3), Pt(3, 3), Pt(4, 0))

	t.Run("on curve", func(t *testing.T) {
		on := seg.Eval(0.3)
		sd, _ := seg.SignedDistance(on)
		if math.Abs(sd.Distance) > 1e-6 {
			t.Errorf("distance on curve = %v, want 0", sd.Distance)
		}
	})

	t.Run("magnitude matches sampling", func(t *testing.T) {
		for _, origin := range []Point{Pt(2, 4), Pt(-1, -1), Pt(5, 1), Pt(2, 1)} {
			sd, _ := seg.SignedDistance(origin)
			want := sampleMinDistance(seg, origin)
			if math.Abs(math.Abs(sd.Distance)-want) > 1e-4 {
				t.Errorf("|distance| at %v = %v, sampled %v", origin, math.Abs(sd.Distance), want)
			}
		}
	})
}

// sampleMinDistance brute-forces the unsigned distance to a segment.
func sampleMinDistance(s Segment, origin Point) float64 {
	best := math.MaxFloat64
	for i := 0; i <= 4096; i++ {
		d := s.Eval(float64(i) / 4096).Sub(origin).Length()
		if d < best {
			best = d
		}
	}
	return best
}

func TestSignedDistanceLess(t *testing.T) {
	tests := []struct {
		name string
		a, b SignedDistance
		want bool
	}{
		{"closer wins", SignedDistance{Distance: 1, Dot: 1}, SignedDistance{Distance: -2, Dot: 0}, true},
		{"farther loses", SignedDistance{Distance: 3, Dot: 0}, SignedDistance{Distance: 2, Dot: 1}, false},
		{"tie broken by dot", SignedDistance{Distance: 2, Dot: 0.1}, SignedDistance{Distance: -2, Dot: 0.9}, true},
		{"tie dot loses", SignedDistance{Distance: 2, Dot: 0.9}, SignedDistance{Distance: 2, Dot: 0.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInfiniteDistanceAlwaysLoses(t *testing.T) {
	inf := infiniteDistance()
	near := SignedDistance{Distance: -1e9, Dot: 1}
	if !near.Less(inf) {
		t.Error("any finite distance should beat the sentinel")
	}
	if inf.Less(near) {
		t.Error("the sentinel should never beat a finite distance")
	}
}
