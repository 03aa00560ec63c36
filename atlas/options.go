package atlas

import "github.com/gogpu/msdf"

// Format selects how many distance channels each atlas pixel carries.
type Format int

const (
	// FormatSDF produces a single-channel true signed distance field.
	FormatSDF Format = iota

	// FormatMSDF produces a three-channel multi-channel field. This is
	// the default.
	FormatMSDF

	// FormatMTSDF produces MSDF in RGB plus the true SDF in alpha.
	FormatMTSDF
)

// Channels returns the per-pixel channel count of the format.
func (f Format) Channels() int {
	switch f {
	case FormatSDF:
		return 1
	case FormatMTSDF:
		return 4
	default:
		return 3
	}
}

// Option configures an Atlas during creation.
//
// Example:
//
//	a, err := atlas.New(fontBytes,
//		atlas.WithDimensions(512, 512),
//		atlas.WithGlyphScale(32),
//	)
type Option func(*options)

type options struct {
	width      int
	height     int
	glyphScale float64
	pixelRange float64
	padding    int
	format     Format
	copyFont   bool
	overlaps   bool
	correction msdf.ErrorCorrectionConfig
	angle      float64
	seed       uint64
	source     OutlineSource
}

func defaultOptions() options {
	return options{
		width:      1024,
		height:     1024,
		glyphScale: 48,
		pixelRange: 4,
		padding:    2,
		format:     FormatMSDF,
		copyFont:   true,
		correction: msdf.DefaultErrorCorrection(),
		angle:      msdf.DefaultAngleThreshold,
	}
}

// WithDimensions sets the atlas texture size in pixels.
func WithDimensions(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithGlyphScale sets the rasterization scale in pixels per em.
func WithGlyphScale(scale float64) Option {
	return func(o *options) {
		o.glyphScale = scale
	}
}

// WithPixelRange sets the width in output pixels of the encoded
// distance transition around each edge.
func WithPixelRange(r float64) Option {
	return func(o *options) {
		o.pixelRange = r
	}
}

// WithPadding sets the spacing in pixels added around each glyph cell,
// on top of the distance-range border.
func WithPadding(p int) Option {
	return func(o *options) {
		o.padding = p
	}
}

// WithFormat selects the distance-field format. The default is
// FormatMSDF.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithFontCopy controls whether New copies the font bytes. Copying is
// on by default so the caller may reuse its buffer; disable it only
// when the slice is known to stay untouched for the atlas lifetime.
func WithFontCopy(enabled bool) Option {
	return func(o *options) {
		o.copyFont = enabled
	}
}

// WithOverlapSupport enables the overlap-resolution pass for fonts with
// self-intersecting outlines. Off by default.
func WithOverlapSupport(enabled bool) Option {
	return func(o *options) {
		o.overlaps = enabled
	}
}

// WithErrorCorrection sets the error-correction configuration applied
// to each generated glyph field.
func WithErrorCorrection(cfg msdf.ErrorCorrectionConfig) Option {
	return func(o *options) {
		o.correction = cfg
	}
}

// WithAngleThreshold sets the corner angle threshold in radians used
// by edge coloring.
func WithAngleThreshold(radians float64) Option {
	return func(o *options) {
		o.angle = radians
	}
}

// WithSeed sets the base seed for the deterministic edge-coloring
// PRNG. Atlases built with the same font, glyphs, options and seed are
// bit-identical.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithOutlineSource replaces the default sfnt-backed outline source.
// The font bytes passed to New are ignored for outline extraction when
// a source is supplied.
func WithOutlineSource(src OutlineSource) Option {
	return func(o *options) {
		o.source = src
	}
}
