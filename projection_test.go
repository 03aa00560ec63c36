package msdf

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProjectionRoundTrip(t *testing.T) {
	proj := Projection{Scale: Pt(2, 3), Translate: Pt(-5, 7)}
	for _, p := range []Point{Pt(0, 0), Pt(1, 1), Pt(-4, 12.5), Pt(100, -3)} {
		got := proj.Unproject(proj.Project(p))
		if diff := cmp.Diff(p, got, approx); diff != "" {
			t.Errorf("round trip of %v:\n%s", p, diff)
		}
	}
}

func TestIdentityProjection(t *testing.T) {
	proj := IdentityProjection()
	p := Pt(3.5, -2)
	if diff := cmp.Diff(p, proj.Project(p), approx); diff != "" {
		t.Errorf("identity projection moved the point:\n%s", diff)
	}
}

func TestProjectionFromBounds(t *testing.T) {
	bounds := Rect{Min: Pt(0, 0), Max: Pt(100, 100)}
	proj := ProjectionFromBounds(bounds, 32, 32, 2)

	if math.Abs(proj.Scale.X-0.28) > 1e-9 || math.Abs(proj.Scale.Y-0.28) > 1e-9 {
		t.Errorf("scale = %v, want (0.28, 0.28)", proj.Scale)
	}
	if diff := cmp.Diff(Pt(2, 2), proj.Translate, approx); diff != "" {
		t.Errorf("translate:\n%s", diff)
	}

	// bounds.Min lands on the padding corner, bounds.Max opposite it.
	if diff := cmp.Diff(Pt(2, 2), proj.Project(bounds.Min), approx); diff != "" {
		t.Errorf("projected min:\n%s", diff)
	}
	if diff := cmp.Diff(Pt(30, 30), proj.Project(bounds.Max), approx); diff != "" {
		t.Errorf("projected max:\n%s", diff)
	}
}

func TestProjectionFromBoundsNonSquare(t *testing.T) {
	// A wide shape must be limited by the horizontal fit.
	bounds := Rect{Min: Pt(0, 0), Max: Pt(200, 50)}
	proj := ProjectionFromBounds(bounds, 100, 100, 10)

	want := 80.0 / 200.0
	if math.Abs(proj.Scale.X-want) > 1e-9 {
		t.Errorf("scale = %v, want %v", proj.Scale.X, want)
	}
	max := proj.Project(bounds.Max)
	if max.X > 90+1e-9 || max.Y > 90+1e-9 {
		t.Errorf("projected max %v escapes the padded target", max)
	}
}

func TestProjectionFromBoundsEmptyBounds(t *testing.T) {
	proj := ProjectionFromBounds(Rect{}, 32, 32, 2)
	if proj.Scale.X != 1 || proj.Scale.Y != 1 {
		t.Errorf("scale = %v, want identity for empty bounds", proj.Scale)
	}
}
