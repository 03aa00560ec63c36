package msdf

import "testing"

func TestBitmapGetSet(t *testing.T) {
	bmp := NewBitmap(4, 3, 3)
	if bmp.Width() != 4 || bmp.Height() != 3 || bmp.Channels() != 3 {
		t.Fatalf("dimensions = %dx%dx%d, want 4x3x3", bmp.Width(), bmp.Height(), bmp.Channels())
	}
	if got := len(bmp.Pix()); got != 4*3*3 {
		t.Fatalf("len(Pix()) = %d, want %d", got, 4*3*3)
	}

	bmp.Set(2, 1, 1, 0.75)
	if got := bmp.Get(2, 1, 1); got != 0.75 {
		t.Errorf("Get(2,1,1) = %v, want 0.75", got)
	}
	if got := bmp.Get(2, 1, 0); got != 0 {
		t.Errorf("neighboring channel = %v, want 0", got)
	}
}

func TestBitmapOutOfRange(t *testing.T) {
	bmp := NewBitmap(2, 2, 1)
	bmp.Set(-1, 0, 0, 1)
	bmp.Set(0, 5, 0, 1)
	bmp.Set(0, 0, 3, 1)
	for i, v := range bmp.Pix() {
		if v != 0 {
			t.Fatalf("pixel %d = %v after out-of-range writes, want 0", i, v)
		}
	}
	if got := bmp.Get(9, 9, 0); got != 0 {
		t.Errorf("out-of-range Get = %v, want 0", got)
	}
}
