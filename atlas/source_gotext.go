package atlas

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/msdf"
)

// GoTextSource extracts outlines through go-text/typesetting. It is an
// opt-in replacement for SFNTSource (via WithOutlineSource) for fonts
// that x/image/font/sfnt does not handle, such as CFF2 or variable
// fonts after instancing.
//
// typesetting's font.Face caches glyph lookups and is not safe for
// concurrent use, so neither is GoTextSource.
type GoTextSource struct {
	face *font.Face
	upem float64
}

// NewGoTextSource parses TrueType/OpenType font bytes with
// go-text/typesetting.
func NewGoTextSource(data []byte) (*GoTextSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("atlas: parsing font: %w", err)
	}
	return &GoTextSource{
		face: face,
		upem: float64(face.Upem()),
	}, nil
}

// GlyphIndex maps a codepoint to a glyph index.
func (s *GoTextSource) GlyphIndex(r rune) (uint16, bool) {
	gid, ok := s.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return uint16(gid), true
}

// Shape extracts a glyph outline at the given pixel scale. typesetting
// yields outlines in Y-up font units; only uniform scaling is needed.
func (s *GoTextSource) Shape(gid uint16, scale float64) (*msdf.Shape, error) {
	data := s.face.GlyphData(font.GID(gid))
	outline, ok := data.(font.GlyphOutline)
	if !ok {
		// Bitmap or SVG glyph, or no glyph data at all: treat as empty
		// rather than failing the whole batch.
		return msdf.NewShape(), nil
	}

	factor := scale / s.upem
	b := newShapeBuilder()
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			b.moveTo(outlinePoint(seg.Args[0], factor))
		case ot.SegmentOpLineTo:
			b.lineTo(outlinePoint(seg.Args[0], factor))
		case ot.SegmentOpQuadTo:
			b.quadTo(outlinePoint(seg.Args[0], factor), outlinePoint(seg.Args[1], factor))
		case ot.SegmentOpCubeTo:
			b.cubeTo(outlinePoint(seg.Args[0], factor), outlinePoint(seg.Args[1], factor), outlinePoint(seg.Args[2], factor))
		}
	}
	return b.finish(), nil
}

// Advance returns the horizontal advance in pixels at the given scale.
func (s *GoTextSource) Advance(gid uint16, scale float64) (float64, error) {
	adv := s.face.HorizontalAdvance(font.GID(gid))
	return float64(adv) * scale / s.upem, nil
}

// Metrics returns em-normalized vertical metrics. typesetting reports
// the descender as a negative value already.
func (s *GoTextSource) Metrics() Metrics {
	ext, ok := s.face.FontHExtents()
	if !ok {
		return Metrics{EmSize: 1}
	}
	asc := float64(ext.Ascender) / s.upem
	desc := float64(ext.Descender) / s.upem
	gap := float64(ext.LineGap) / s.upem
	return Metrics{
		EmSize:     1,
		Ascender:   asc,
		Descender:  desc,
		LineHeight: asc - desc + gap,
	}
}

// outlinePoint scales a typesetting segment point into pixel space.
func outlinePoint(p font.SegmentPoint, factor float64) msdf.Point {
	return msdf.Point{
		X: float64(p.X) * factor,
		Y: float64(p.Y) * factor,
	}
}
