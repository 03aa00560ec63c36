package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Image quantizes the generated atlas into an 8-bit NRGBA image.
// Single-channel fields are replicated into RGB with opaque alpha,
// three-channel fields get opaque alpha, four-channel fields map
// directly. Returns nil before the first successful Generate.
func (a *Atlas) Image() *image.NRGBA {
	if a.bitmap == nil {
		return nil
	}
	bmp := a.bitmap
	img := image.NewNRGBA(image.Rect(0, 0, bmp.Width(), bmp.Height()))
	for y := 0; y < bmp.Height(); y++ {
		for x := 0; x < bmp.Width(); x++ {
			off := img.PixOffset(x, y)
			switch bmp.Channels() {
			case 1:
				v := quantize(bmp.Get(x, y, 0))
				img.Pix[off+0] = v
				img.Pix[off+1] = v
				img.Pix[off+2] = v
				img.Pix[off+3] = 0xff
			case 3:
				img.Pix[off+0] = quantize(bmp.Get(x, y, 0))
				img.Pix[off+1] = quantize(bmp.Get(x, y, 1))
				img.Pix[off+2] = quantize(bmp.Get(x, y, 2))
				img.Pix[off+3] = 0xff
			default:
				img.Pix[off+0] = quantize(bmp.Get(x, y, 0))
				img.Pix[off+1] = quantize(bmp.Get(x, y, 1))
				img.Pix[off+2] = quantize(bmp.Get(x, y, 2))
				img.Pix[off+3] = quantize(bmp.Get(x, y, 3))
			}
		}
	}
	return img
}

// quantize maps an encoded distance in [0, 1] to an 8-bit value,
// clamping out-of-range input.
func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(math.Round(float64(v) * 255))
}

// JSON metadata mirroring the msdf-atlas layout consumed by common
// text renderers. Plane bounds and kerning advances are in em units;
// atlas bounds are in pixels with a bottom-left origin, matching the
// layout's yOrigin=bottom convention.

type metaRect struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
}

type metaGlyph struct {
	Unicode     int32     `json:"unicode"`
	Advance     float64   `json:"advance"`
	PlaneBounds *metaRect `json:"planeBounds,omitempty"`
	AtlasBounds *metaRect `json:"atlasBounds,omitempty"`
}

type metaAtlas struct {
	Type          string  `json:"type"`
	DistanceRange float64 `json:"distanceRange"`
	Size          float64 `json:"size"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	YOrigin       string  `json:"yOrigin"`
}

type metaMetrics struct {
	EmSize     float64 `json:"emSize"`
	LineHeight float64 `json:"lineHeight"`
	Ascender   float64 `json:"ascender"`
	Descender  float64 `json:"descender"`
}

type metaKerning struct {
	Unicode1 int32   `json:"unicode1"`
	Unicode2 int32   `json:"unicode2"`
	Advance  float64 `json:"advance"`
}

type metadata struct {
	Atlas   metaAtlas     `json:"atlas"`
	Metrics metaMetrics   `json:"metrics"`
	Glyphs  []metaGlyph   `json:"glyphs"`
	Kerning []metaKerning `json:"kerning,omitempty"`
}

func (f Format) metaType() string {
	switch f {
	case FormatSDF:
		return "sdf"
	case FormatMTSDF:
		return "mtsdf"
	default:
		return "msdf"
	}
}

// WriteMetadata writes the glyph placement table as JSON. Call after a
// successful Generate.
func (a *Atlas) WriteMetadata(w io.Writer) error {
	if a.bitmap == nil {
		return fmt.Errorf("atlas: no generated atlas to export")
	}

	meta := metadata{
		Atlas: metaAtlas{
			Type:          a.opts.format.metaType(),
			DistanceRange: a.opts.pixelRange,
			Size:          a.opts.glyphScale,
			Width:         a.opts.width,
			Height:        a.opts.height,
			YOrigin:       "bottom",
		},
		Metrics: metaMetrics{
			EmSize:     a.metrics.EmSize,
			LineHeight: a.metrics.LineHeight,
			Ascender:   a.metrics.Ascender,
			Descender:  a.metrics.Descender,
		},
	}

	height := float64(a.opts.height)
	for _, g := range a.Glyphs() {
		mg := metaGlyph{Unicode: int32(g.Codepoint), Advance: g.Advance}
		if !g.Empty() {
			mg.PlaneBounds = &metaRect{
				Left:   g.PlaneBounds.Left,
				Bottom: g.PlaneBounds.Bottom,
				Right:  g.PlaneBounds.Right,
				Top:    g.PlaneBounds.Top,
			}
			// Flip the row-major atlas bounds to a bottom-left origin.
			mg.AtlasBounds = &metaRect{
				Left:   g.AtlasBounds.Left,
				Bottom: height - g.AtlasBounds.Bottom,
				Right:  g.AtlasBounds.Right,
				Top:    height - g.AtlasBounds.Top,
			}
		}
		meta.Glyphs = append(meta.Glyphs, mg)
	}

	pairs := maps.Keys(a.kerning)
	slices.SortFunc(pairs, func(p, q KernPair) int {
		if p.Left != q.Left {
			return int(p.Left) - int(q.Left)
		}
		return int(p.Right) - int(q.Right)
	})
	for _, p := range pairs {
		meta.Kerning = append(meta.Kerning, metaKerning{
			Unicode1: int32(p.Left),
			Unicode2: int32(p.Right),
			Advance:  a.kerning[p],
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(meta)
}
