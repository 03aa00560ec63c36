// Package atlas builds packed distance-field font atlases: it extracts
// glyph outlines from TrueType/OpenType fonts, generates a signed
// distance field per glyph via the msdf package, and packs the results
// into a single texture with per-glyph placement records.
package atlas

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/msdf"
)

// Metrics holds aggregate font metrics, em-normalized: divide pixel
// values by the glyph scale to compare. Ascender is positive above the
// baseline, Descender negative below it. Width and Height are the
// atlas texture dimensions in pixels; outline sources leave them zero
// and the atlas fills them in after generation.
type Metrics struct {
	EmSize     float64
	Ascender   float64
	Descender  float64
	LineHeight float64
	Width      int
	Height     int
}

// OutlineSource yields glyph outlines and metrics from a parsed font.
// Shapes are returned in a Y-up coordinate system at the requested
// pixel scale (pixels per em). Implementations tolerate empty glyphs
// (e.g. space) by returning a shape with zero contours, skip
// zero-length edges, and close unclosed contours.
type OutlineSource interface {
	// GlyphIndex maps a codepoint to a glyph index. The second return
	// is false when the font has no glyph for the rune.
	GlyphIndex(r rune) (uint16, bool)

	// Shape extracts the outline of a glyph at the given pixel scale.
	Shape(gid uint16, scale float64) (*msdf.Shape, error)

	// Advance returns the horizontal advance of a glyph in pixels at
	// the given scale.
	Advance(gid uint16, scale float64) (float64, error)

	// Metrics returns the font's em-normalized vertical metrics.
	Metrics() Metrics
}

// KerningSource is implemented by outline sources that expose kerning
// pairs. Kern returns the kerning adjustment in pixels at the given
// scale, 0 when the pair has none.
type KerningSource interface {
	Kern(a, b uint16, scale float64) float64
}

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("atlas: empty font data")

// SFNTSource extracts outlines through golang.org/x/image/font/sfnt.
// It is the default source used by New. The sfnt buffer is reused
// across calls, so an SFNTSource must not be shared between
// goroutines.
type SFNTSource struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

// NewSFNTSource parses TrueType/OpenType font bytes.
func NewSFNTSource(data []byte) (*SFNTSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("atlas: parsing font: %w", err)
	}
	return &SFNTSource{font: f}, nil
}

// GlyphIndex maps a codepoint to a glyph index.
func (s *SFNTSource) GlyphIndex(r rune) (uint16, bool) {
	gid, err := s.font.GlyphIndex(&s.buf, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return uint16(gid), true
}

// Shape extracts a glyph outline at the given pixel scale. sfnt yields
// segments in a Y-down pixel space; the Y axis is negated so the
// returned shape is Y-up with the winding convention the distance
// generators assume.
func (s *SFNTSource) Shape(gid uint16, scale float64) (*msdf.Shape, error) {
	ppem := fixed.Int26_6(scale * 64)
	segments, err := s.font.LoadGlyph(&s.buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrNotFound) {
			return msdf.NewShape(), nil
		}
		return nil, fmt.Errorf("atlas: loading glyph %d: %w", gid, err)
	}

	b := newShapeBuilder()
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.moveTo(fixedPoint(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.lineTo(fixedPoint(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.quadTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.cubeTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]), fixedPoint(seg.Args[2]))
		}
	}
	return b.finish(), nil
}

// Advance returns the horizontal advance in pixels at the given scale.
func (s *SFNTSource) Advance(gid uint16, scale float64) (float64, error) {
	ppem := fixed.Int26_6(scale * 64)
	adv, err := s.font.GlyphAdvance(&s.buf, sfnt.GlyphIndex(gid), ppem, font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("atlas: glyph %d advance: %w", gid, err)
	}
	return fixedToFloat(adv), nil
}

// Metrics returns em-normalized vertical metrics.
func (s *SFNTSource) Metrics() Metrics {
	// Query at a fixed reference size and normalize back to em units.
	const refScale = 64.0
	ppem := fixed.Int26_6(refScale * 64)
	m, err := s.font.Metrics(&s.buf, ppem, font.HintingNone)
	if err != nil {
		return Metrics{EmSize: 1}
	}
	return Metrics{
		EmSize:     1,
		Ascender:   fixedToFloat(m.Ascent) / refScale,
		Descender:  -fixedToFloat(m.Descent) / refScale,
		LineHeight: fixedToFloat(m.Height) / refScale,
	}
}

// Kern returns the kerning adjustment between two glyphs in pixels at
// the given scale, or 0 when the font defines none.
func (s *SFNTSource) Kern(a, b uint16, scale float64) float64 {
	ppem := fixed.Int26_6(scale * 64)
	k, err := s.font.Kern(&s.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// fixedPoint converts a fixed.Point26_6 in sfnt's Y-down pixel space
// to a Y-up msdf point.
func fixedPoint(p fixed.Point26_6) msdf.Point {
	return msdf.Point{
		X: fixedToFloat(p.X),
		Y: -fixedToFloat(p.Y),
	}
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// shapeBuilder assembles a shape from move/line/quad/cubic commands,
// closing contours and dropping zero-length edges. A single bad edge
// must not abort a whole glyph, so degenerate input degrades instead
// of failing.
type shapeBuilder struct {
	shape   *msdf.Shape
	contour *msdf.Contour
	start   msdf.Point
	pen     msdf.Point
}

func newShapeBuilder() *shapeBuilder {
	return &shapeBuilder{shape: msdf.NewShape()}
}

func (b *shapeBuilder) moveTo(p msdf.Point) {
	b.closeContour()
	b.contour = b.shape.AddContour()
	b.start = p
	b.pen = p
}

func (b *shapeBuilder) lineTo(p msdf.Point) {
	if b.contour == nil || samePoint(b.pen, p) {
		return
	}
	b.contour.AddLine(b.pen, p)
	b.pen = p
}

func (b *shapeBuilder) quadTo(ctrl, p msdf.Point) {
	if b.contour == nil {
		return
	}
	if samePoint(b.pen, p) && samePoint(b.pen, ctrl) {
		return
	}
	b.contour.AddQuadratic(b.pen, ctrl, p)
	b.pen = p
}

func (b *shapeBuilder) cubeTo(c1, c2, p msdf.Point) {
	if b.contour == nil {
		return
	}
	if samePoint(b.pen, p) && samePoint(b.pen, c1) && samePoint(b.pen, c2) {
		return
	}
	b.contour.AddCubic(b.pen, c1, c2, p)
	b.pen = p
}

// closeContour appends the closing line back to the contour start if
// the pen has not returned there. Empty contours are discarded.
func (b *shapeBuilder) closeContour() {
	if b.contour == nil {
		return
	}
	if len(b.contour.Edges) == 0 {
		b.shape.Contours = b.shape.Contours[:len(b.shape.Contours)-1]
		b.contour = nil
		return
	}
	if !samePoint(b.pen, b.start) {
		b.contour.AddLine(b.pen, b.start)
	}
	b.contour = nil
}

func (b *shapeBuilder) finish() *msdf.Shape {
	b.closeContour()
	return b.shape
}

// samePoint reports near-coincidence; edges between such points are
// zero-length and skipped.
func samePoint(a, b msdf.Point) bool {
	const eps = 1e-9
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx < eps && dx > -eps && dy < eps && dy > -eps
}
