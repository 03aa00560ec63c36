package msdf

import (
	"errors"
	"testing"
)

// fitSquare is the shared scenario: a 100x100 square rendered into a
// 32x32 field, fitted with 2px padding.
func fitSquare() (*Shape, Projection) {
	shape := squareShape(0, 0, 100, 100)
	proj := ProjectionFromBounds(shape.Bounds(), 32, 32, 2)
	return shape, proj
}

func TestGenerateSDFSquare(t *testing.T) {
	shape, proj := fitSquare()
	bmp := NewBitmap(32, 32, 1)
	if err := GenerateSDF(bmp, shape, proj, 4); err != nil {
		t.Fatalf("GenerateSDF: %v", err)
	}

	if v := bmp.Get(16, 16, 0); v <= 0.5 {
		t.Errorf("center pixel = %v, want > 0.5 (inside)", v)
	}
	if v := bmp.Get(0, 0, 0); v >= 0.5 {
		t.Errorf("corner pixel = %v, want < 0.5 (outside)", v)
	}
}

func TestGenerateSDFBoundaryPixel(t *testing.T) {
	shape, proj := fitSquare()
	bmp := NewBitmap(32, 32, 1)
	if err := GenerateSDF(bmp, shape, proj, 4); err != nil {
		t.Fatalf("GenerateSDF: %v", err)
	}

	// The left boundary of the square projects to pixel x = 2; the
	// pixels straddling it must land near the 0.5 encoding.
	left := bmp.Get(1, 16, 0)
	right := bmp.Get(3, 16, 0)
	if left >= 0.5 {
		t.Errorf("pixel left of the boundary = %v, want < 0.5", left)
	}
	if right <= 0.5 {
		t.Errorf("pixel right of the boundary = %v, want > 0.5", right)
	}
	if left <= 0 || right >= 1 {
		t.Errorf("boundary pixels (%v, %v) should be inside the transition band", left, right)
	}
}

func TestGenerateMSDFSquare(t *testing.T) {
	shape, proj := fitSquare()
	ColorEdges(shape, DefaultAngleThreshold, 1)
	bmp := NewBitmap(32, 32, 3)
	if err := GenerateMSDF(bmp, shape, proj, 4); err != nil {
		t.Fatalf("GenerateMSDF: %v", err)
	}

	center := median3(bmp.Get(16, 16, 0), bmp.Get(16, 16, 1), bmp.Get(16, 16, 2))
	if center <= 0.5 {
		t.Errorf("center median = %v, want > 0.5", center)
	}
	corner := median3(bmp.Get(0, 0, 0), bmp.Get(0, 0, 1), bmp.Get(0, 0, 2))
	if corner >= 0.5 {
		t.Errorf("corner median = %v, want < 0.5", corner)
	}
}

func TestGenerateMTSDFAlphaMatchesSDF(t *testing.T) {
	shape, proj := fitSquare()
	ColorEdges(shape, DefaultAngleThreshold, 1)

	mtsdf := NewBitmap(32, 32, 4)
	if err := GenerateMTSDF(mtsdf, shape, proj, 4); err != nil {
		t.Fatalf("GenerateMTSDF: %v", err)
	}
	sdf := NewBitmap(32, 32, 1)
	if err := GenerateSDF(sdf, shape, proj, 4); err != nil {
		t.Fatalf("GenerateSDF: %v", err)
	}

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if a, s := mtsdf.Get(x, y, 3), sdf.Get(x, y, 0); a != s {
				t.Fatalf("alpha at (%d,%d) = %v, SDF = %v", x, y, a, s)
			}
		}
	}
}

func TestGenerateFormatMismatch(t *testing.T) {
	shape, proj := fitSquare()
	ColorEdges(shape, DefaultAngleThreshold, 1)

	tests := []struct {
		name     string
		channels int
		generate func(*Bitmap) error
	}{
		{"sdf into 3ch", 3, func(b *Bitmap) error { return GenerateSDF(b, shape, proj, 4) }},
		{"msdf into 1ch", 1, func(b *Bitmap) error { return GenerateMSDF(b, shape, proj, 4) }},
		{"msdf into 4ch", 4, func(b *Bitmap) error { return GenerateMSDF(b, shape, proj, 4) }},
		{"mtsdf into 3ch", 3, func(b *Bitmap) error { return GenerateMTSDF(b, shape, proj, 4) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bmp := NewBitmap(8, 8, tt.channels)
			const sentinel = 0.123
			for i := range bmp.Pix() {
				bmp.Pix()[i] = sentinel
			}

			err := tt.generate(bmp)
			if !errors.Is(err, ErrBitmapFormat) {
				t.Fatalf("err = %v, want ErrBitmapFormat", err)
			}
			for i, v := range bmp.Pix() {
				if v != sentinel {
					t.Fatalf("pixel %d modified to %v despite the error", i, v)
				}
			}
		})
	}
}

func TestGenerateNilArguments(t *testing.T) {
	bmp := NewBitmap(8, 8, 1)
	if err := GenerateSDF(bmp, nil, IdentityProjection(), 4); !errors.Is(err, ErrNilShape) {
		t.Errorf("nil shape: err = %v, want ErrNilShape", err)
	}
	if err := GenerateSDF(nil, NewShape(), IdentityProjection(), 4); !errors.Is(err, ErrNilShape) {
		t.Errorf("nil bitmap: err = %v, want ErrNilShape", err)
	}
}

func TestGenerateInverseYAxis(t *testing.T) {
	// A square filling the lower half of the fitted bounds: with the Y
	// axis inverted, the inside region moves to the high row indices.
	shape := squareShape(0, 0, 100, 50)
	shape.InverseYAxis = true
	proj := ProjectionFromBounds(Rect{Min: Pt(0, 0), Max: Pt(100, 100)}, 32, 32, 2)

	bmp := NewBitmap(32, 32, 1)
	if err := GenerateSDF(bmp, shape, proj, 4); err != nil {
		t.Fatalf("GenerateSDF: %v", err)
	}

	if v := bmp.Get(16, 22, 0); v <= 0.5 {
		t.Errorf("bottom-area pixel = %v, want inside (> 0.5)", v)
	}
	if v := bmp.Get(16, 9, 0); v >= 0.5 {
		t.Errorf("top-area pixel = %v, want outside (< 0.5)", v)
	}
}

func TestGenerateEmptyShape(t *testing.T) {
	bmp := NewBitmap(8, 8, 1)
	if err := GenerateSDF(bmp, NewShape(), IdentityProjection(), 4); err != nil {
		t.Fatalf("GenerateSDF: %v", err)
	}
	// No edges: everything is outside and fully clamped.
	for i, v := range bmp.Pix() {
		if v != 0 {
			t.Fatalf("pixel %d = %v, want 0 for an empty shape", i, v)
		}
	}
}

func TestResolveOverlapsRepairsCorruptPixel(t *testing.T) {
	shape, proj := fitSquare()
	ColorEdges(shape, DefaultAngleThreshold, 1)
	bmp := NewBitmap(32, 32, 3)
	if err := GenerateMSDF(bmp, shape, proj, 4); err != nil {
		t.Fatalf("GenerateMSDF: %v", err)
	}

	// Force an inside pixel's median below 0.5.
	bmp.Set(16, 16, 0, 0.1)
	bmp.Set(16, 16, 1, 0.1)
	bmp.Set(16, 16, 2, 0.1)

	if err := ResolveOverlaps(bmp, shape, proj, 4); err != nil {
		t.Fatalf("ResolveOverlaps: %v", err)
	}
	med := median3(bmp.Get(16, 16, 0), bmp.Get(16, 16, 1), bmp.Get(16, 16, 2))
	if med <= 0.5 {
		t.Errorf("median after repair = %v, want > 0.5", med)
	}
}

func TestMedian3(t *testing.T) {
	tests := []struct {
		a, b, c, want float32
	}{
		{1, 2, 3, 2},
		{3, 1, 2, 2},
		{2, 3, 1, 2},
		{5, 5, 1, 5},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := median3(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("median3(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}
