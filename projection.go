package msdf

import "math"

// Projection is the affine mapping from shape space to bitmap pixel
// space: independent per-axis scale plus a translation in pixels.
// Value type, recomputed per glyph.
type Projection struct {
	// Scale is the per-axis shape-to-pixel scale factor.
	Scale Point

	// Translate is the pixel-space offset applied after scaling.
	Translate Point
}

// IdentityProjection maps shape space directly onto pixel space.
func IdentityProjection() Projection {
	return Projection{Scale: Point{X: 1, Y: 1}}
}

// Project maps a shape-space point to pixel space.
func (p Projection) Project(pt Point) Point {
	return Point{
		X: p.Scale.X*pt.X + p.Translate.X,
		Y: p.Scale.Y*pt.Y + p.Translate.Y,
	}
}

// Unproject maps a pixel-space point back to shape space.
func (p Projection) Unproject(pt Point) Point {
	return Point{
		X: (pt.X - p.Translate.X) / p.Scale.X,
		Y: (pt.Y - p.Translate.Y) / p.Scale.Y,
	}
}

// ProjectionFromBounds fits bounds into a width x height pixel target
// with the given padding on every side, preserving aspect ratio. The
// returned projection maps bounds.Min to (padding, padding) and scales
// the longer dimension to fill the padded target.
func ProjectionFromBounds(bounds Rect, width, height int, padding float64) Projection {
	availW := float64(width) - 2*padding
	availH := float64(height) - 2*padding

	scale := 1.0
	if bounds.Width() > 0 && bounds.Height() > 0 {
		scale = math.Min(availW/bounds.Width(), availH/bounds.Height())
	}

	return Projection{
		Scale: Point{X: scale, Y: scale},
		Translate: Point{
			X: padding - scale*bounds.Min.X,
			Y: padding - scale*bounds.Min.Y,
		},
	}
}
