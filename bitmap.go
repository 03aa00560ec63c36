package msdf

// Bitmap is a width x height grid of float32 channels, row-major and
// channel-interleaved. Valid channel counts are 1 (SDF), 3 (MSDF) and
// 4 (MTSDF). The pixel buffer is owned exclusively by the bitmap.
type Bitmap struct {
	width    int
	height   int
	channels int
	pix      []float32
}

// NewBitmap creates a zeroed bitmap. channels must be 1, 3 or 4 and
// dimensions non-negative; invalid arguments yield an empty bitmap.
func NewBitmap(width, height, channels int) *Bitmap {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	switch channels {
	case 1, 3, 4:
	default:
		channels = 1
	}
	return &Bitmap{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]float32, width*height*channels),
	}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Channels returns the number of float channels per pixel.
func (b *Bitmap) Channels() int { return b.channels }

// Pix returns the raw interleaved pixel buffer.
func (b *Bitmap) Pix() []float32 { return b.pix }

// index returns the buffer offset of pixel (x, y), without bounds
// checking. Callers iterate within the bitmap's own dimensions.
func (b *Bitmap) index(x, y int) int {
	return (y*b.width + x) * b.channels
}

// Get returns channel ch of pixel (x, y), or 0 outside the bitmap.
func (b *Bitmap) Get(x, y, ch int) float32 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || ch < 0 || ch >= b.channels {
		return 0
	}
	return b.pix[b.index(x, y)+ch]
}

// Set assigns channel ch of pixel (x, y); out-of-range writes are
// dropped.
func (b *Bitmap) Set(x, y, ch int, v float32) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || ch < 0 || ch >= b.channels {
		return
	}
	b.pix[b.index(x, y)+ch] = v
}
