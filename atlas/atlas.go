package atlas

import (
	"errors"
	"fmt"
	"math"
	"unicode"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gogpu/msdf"
)

// Sentinel errors reported by Generate.
var (
	// ErrAtlasFull is returned when the registered glyphs cannot be
	// packed into the configured atlas dimensions. The atlas keeps its
	// previous generated state, if any.
	ErrAtlasFull = errors.New("atlas: glyphs do not fit atlas dimensions")

	// ErrNoGlyphs is returned by Generate when no codepoints have been
	// registered.
	ErrNoGlyphs = errors.New("atlas: no codepoints registered")
)

// Bounds is an axis-aligned rectangle. For plane bounds the axes are
// em units, Y-up, relative to the glyph pen position, so Bottom < Top.
// For atlas and UV bounds the axes follow the texture's row-major
// top-left origin, so Top < Bottom.
type Bounds struct {
	Left   float64
	Bottom float64
	Right  float64
	Top    float64
}

// Glyph is the placement record of one generated glyph.
type Glyph struct {
	// Codepoint is the rune this glyph was registered under.
	Codepoint rune

	// GID is the glyph index within the font.
	GID uint16

	// Advance is the horizontal advance in em units.
	Advance float64

	// PlaneBounds is the quad to emit around the pen position, in em
	// units (Y-up). Zero for glyphs with no outline, such as space.
	PlaneBounds Bounds

	// AtlasBounds is the glyph cell in atlas pixels, top-left origin.
	// Zero for glyphs with no outline.
	AtlasBounds Bounds

	// UVBounds is AtlasBounds normalized to [0, 1] texture coordinates.
	UVBounds Bounds
}

// Empty reports whether the glyph has no atlas cell (no outline).
func (g Glyph) Empty() bool {
	return g.AtlasBounds == Bounds{}
}

// KernPair keys the kerning table by left and right codepoint.
type KernPair struct {
	Left  rune
	Right rune
}

// Atlas accumulates codepoints and generates a packed distance-field
// texture for them. The zero value is not usable; construct with New.
//
// An Atlas is single-owner: methods must not be called concurrently.
// After Generate returns, read-only queries (Glyph, Bitmap, Metrics,
// Kern, Image) are safe from multiple goroutines as long as no
// Add* or Generate call runs alongside them.
type Atlas struct {
	fontData []byte
	opts     options
	source   OutlineSource

	requested map[rune]struct{}

	// Generated state, replaced atomically by a successful Generate.
	glyphs  map[rune]Glyph
	bitmap  *msdf.Bitmap
	metrics Metrics
	kerning map[KernPair]float64
}

// New creates an atlas for the given font bytes. The bytes are copied
// unless WithFontCopy(false) is set. When WithOutlineSource supplies a
// source, fontData may be nil.
func New(fontData []byte, opts ...Option) (*Atlas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("atlas: invalid dimensions %dx%d", o.width, o.height)
	}
	if o.glyphScale <= 0 {
		return nil, fmt.Errorf("atlas: invalid glyph scale %g", o.glyphScale)
	}
	if o.pixelRange <= 0 {
		return nil, fmt.Errorf("atlas: invalid pixel range %g", o.pixelRange)
	}
	if o.padding < 0 {
		return nil, fmt.Errorf("atlas: invalid padding %d", o.padding)
	}

	src := o.source
	if src == nil {
		var err error
		src, err = NewSFNTSource(fontData)
		if err != nil {
			return nil, err
		}
	}
	if o.copyFont && len(fontData) > 0 {
		fontData = append([]byte(nil), fontData...)
	}
	return &Atlas{
		fontData:  fontData,
		opts:      o,
		source:    src,
		requested: make(map[rune]struct{}),
	}, nil
}

// AddRune registers a codepoint for the next Generate. Duplicates are
// ignored.
func (a *Atlas) AddRune(r rune) {
	a.requested[r] = struct{}{}
}

// AddRunes registers a set of codepoints.
func (a *Atlas) AddRunes(runes []rune) {
	for _, r := range runes {
		a.AddRune(r)
	}
}

// AddString registers every codepoint of s.
func (a *Atlas) AddString(s string) {
	for _, r := range s {
		a.AddRune(r)
	}
}

// AddRangeTable registers every codepoint of a unicode.RangeTable,
// e.g. atlas.ASCII or unicode.Greek.
func (a *Atlas) AddRangeTable(t *unicode.RangeTable) {
	rangeTableRunes(t, a.AddRune)
}

// pendingGlyph carries one glyph through generation until compositing.
type pendingGlyph struct {
	r       rune
	gid     uint16
	advance float64
	shift   msdf.Point
	cell    *msdf.Bitmap
	rect    packRect
}

// Generate renders every registered codepoint and packs the results
// into a fresh atlas bitmap. Generation is all-or-nothing: on error the
// previously generated state, if any, is kept. Given the same font,
// codepoints, options and seed, repeated runs produce bit-identical
// atlases.
func (a *Atlas) Generate() error {
	if len(a.requested) == 0 {
		return ErrNoGlyphs
	}

	runes := maps.Keys(a.requested)
	slices.Sort(runes)

	log := msdf.Logger()
	scale := a.opts.glyphScale
	border := int(math.Ceil(a.opts.pixelRange)) + a.opts.padding
	channels := a.opts.format.Channels()

	glyphs := make(map[rune]Glyph, len(runes))
	var pending []*pendingGlyph
	for _, r := range runes {
		gid, ok := a.source.GlyphIndex(r)
		if !ok {
			log.Warn("atlas: font has no glyph for codepoint", "codepoint", r)
			continue
		}
		adv, err := a.source.Advance(gid, scale)
		if err != nil {
			return err
		}
		shape, err := a.source.Shape(gid, scale)
		if err != nil {
			return err
		}
		if shape.EdgeCount() == 0 {
			glyphs[r] = Glyph{Codepoint: r, GID: gid, Advance: adv / scale}
			continue
		}
		if !shape.Validate() {
			log.Warn("atlas: skipping glyph with open contours", "codepoint", r)
			continue
		}

		shape.InverseYAxis = true
		msdf.ColorEdges(shape, a.opts.angle, glyphSeed(a.opts.seed, r))

		bounds := shape.Bounds()
		w := int(math.Ceil(bounds.Max.X-bounds.Min.X)) + 2*border
		h := int(math.Ceil(bounds.Max.Y-bounds.Min.Y)) + 2*border
		shift := msdf.Point{
			X: float64(border) - bounds.Min.X,
			Y: float64(border) - bounds.Min.Y,
		}
		proj := msdf.Projection{Scale: msdf.Point{X: 1, Y: 1}, Translate: shift}

		cell := msdf.NewBitmap(w, h, channels)
		if err := a.generateCell(cell, shape, proj); err != nil {
			return err
		}

		p := &pendingGlyph{r: r, gid: gid, advance: adv, shift: shift, cell: cell}
		p.rect = packRect{id: len(pending), w: w, h: h}
		pending = append(pending, p)
		log.Debug("atlas: generated glyph",
			"codepoint", r, "width", w, "height", h)
	}

	rects := make([]*packRect, len(pending))
	for i, p := range pending {
		rects[i] = &p.rect
	}
	packer := newSkylinePacker(a.opts.width, a.opts.height)
	if !packer.pack(rects) {
		return fmt.Errorf("%w: %d glyphs into %dx%d",
			ErrAtlasFull, len(pending), a.opts.width, a.opts.height)
	}

	sheet := msdf.NewBitmap(a.opts.width, a.opts.height, channels)
	fw, fh := float64(a.opts.width), float64(a.opts.height)
	for _, p := range pending {
		composite(sheet, p.cell, p.rect.x, p.rect.y)
		w, h := p.cell.Width(), p.cell.Height()
		p.cell = nil

		glyphs[p.r] = Glyph{
			Codepoint: p.r,
			GID:       p.gid,
			Advance:   p.advance / scale,
			PlaneBounds: Bounds{
				Left:   -p.shift.X / scale,
				Bottom: -p.shift.Y / scale,
				Right:  (float64(w) - p.shift.X) / scale,
				Top:    (float64(h) - p.shift.Y) / scale,
			},
			AtlasBounds: Bounds{
				Left:   float64(p.rect.x),
				Top:    float64(p.rect.y),
				Right:  float64(p.rect.x + w),
				Bottom: float64(p.rect.y + h),
			},
			UVBounds: Bounds{
				Left:   float64(p.rect.x) / fw,
				Top:    float64(p.rect.y) / fh,
				Right:  float64(p.rect.x+w) / fw,
				Bottom: float64(p.rect.y+h) / fh,
			},
		}
	}

	a.glyphs = glyphs
	a.bitmap = sheet
	a.metrics = a.source.Metrics()
	a.metrics.Width = a.opts.width
	a.metrics.Height = a.opts.height
	a.kerning = a.collectKerning(glyphs, scale)

	log.Info("atlas: generated",
		"glyphs", len(glyphs),
		"width", a.opts.width,
		"height", a.opts.height,
		"format", channels)
	return nil
}

// generateCell renders one glyph field in the configured format and
// runs the post passes.
func (a *Atlas) generateCell(cell *msdf.Bitmap, shape *msdf.Shape, proj msdf.Projection) error {
	var err error
	switch a.opts.format {
	case FormatSDF:
		err = msdf.GenerateSDF(cell, shape, proj, a.opts.pixelRange)
	case FormatMTSDF:
		err = msdf.GenerateMTSDF(cell, shape, proj, a.opts.pixelRange)
	default:
		err = msdf.GenerateMSDF(cell, shape, proj, a.opts.pixelRange)
	}
	if err != nil {
		return err
	}
	if a.opts.format == FormatSDF {
		return nil
	}
	if a.opts.overlaps {
		if err := msdf.ResolveOverlaps(cell, shape, proj, a.opts.pixelRange); err != nil {
			return err
		}
	}
	msdf.CorrectErrors(cell, a.opts.pixelRange, a.opts.correction)
	return nil
}

// collectKerning queries the source for kerning between every ordered
// pair of generated glyphs, keeping non-zero pairs in em units.
func (a *Atlas) collectKerning(glyphs map[rune]Glyph, scale float64) map[KernPair]float64 {
	ks, ok := a.source.(KerningSource)
	if !ok {
		return nil
	}
	runes := maps.Keys(glyphs)
	slices.Sort(runes)

	kerning := make(map[KernPair]float64)
	for _, left := range runes {
		for _, right := range runes {
			k := ks.Kern(glyphs[left].GID, glyphs[right].GID, scale)
			if k != 0 {
				kerning[KernPair{Left: left, Right: right}] = k / scale
			}
		}
	}
	return kerning
}

// composite copies a glyph cell into the sheet at (dx, dy). Both
// bitmaps share the channel count and cells never overlap, so this is
// a plain row copy.
func composite(sheet, cell *msdf.Bitmap, dx, dy int) {
	ch := cell.Channels()
	rowLen := cell.Width() * ch
	for y := 0; y < cell.Height(); y++ {
		src := cell.Pix()[y*rowLen : (y+1)*rowLen]
		dstOff := ((dy+y)*sheet.Width() + dx) * ch
		copy(sheet.Pix()[dstOff:dstOff+rowLen], src)
	}
}

// glyphSeed derives a per-glyph coloring seed from the atlas seed and
// the codepoint, so the coloring of one glyph does not depend on which
// other glyphs are registered.
func glyphSeed(base uint64, r rune) uint64 {
	return base ^ (uint64(r)+1)*0x9e3779b97f4a7c15
}

// Glyph returns the placement record for a codepoint from the last
// successful Generate.
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// Glyphs returns the generated records in codepoint order.
func (a *Atlas) Glyphs() []Glyph {
	runes := maps.Keys(a.glyphs)
	slices.Sort(runes)
	out := make([]Glyph, 0, len(runes))
	for _, r := range runes {
		out = append(out, a.glyphs[r])
	}
	return out
}

// Bitmap returns the generated atlas bitmap, nil before the first
// successful Generate.
func (a *Atlas) Bitmap() *msdf.Bitmap {
	return a.bitmap
}

// Metrics returns the font metrics together with the atlas dimensions.
func (a *Atlas) Metrics() Metrics {
	return a.metrics
}

// Kern returns the kerning adjustment in em units between two
// codepoints, 0 when the pair has none.
func (a *Atlas) Kern(left, right rune) float64 {
	return a.kerning[KernPair{Left: left, Right: right}]
}

// FontData returns the font bytes the atlas was built from, for
// callers that ship the font alongside the atlas. With
// WithFontCopy(false) this is the caller's original slice.
func (a *Atlas) FontData() []byte {
	return a.fontData
}
