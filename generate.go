package msdf

import "math"

// Distance-field generation. Every generator unprojects each pixel
// center through the projection into shape space, queries the closest
// edges, and encodes the signed distance into [0, 1] so that 0.5 is the
// shape boundary and the transition spans pixelRange output pixels.

// channel indexes into the interleaved bitmap and the EdgeColor mask.
const (
	chanRed = iota
	chanGreen
	chanBlue
)

// edgeCandidate tracks the best edge seen so far for one channel.
type edgeCandidate struct {
	dist  SignedDistance
	edge  Segment
	param float64
}

// GenerateSDF renders a single-channel signed distance field. The
// definitive inside/outside sign comes from the shape's winding
// classifier, not from the locally-signed per-edge distance.
//
// bmp must have exactly 1 channel; otherwise ErrBitmapFormat is
// returned and no pixels are written.
func GenerateSDF(bmp *Bitmap, shape *Shape, proj Projection, pixelRange float64) error {
	if bmp == nil || shape == nil {
		return ErrNilShape
	}
	if bmp.Channels() != 1 {
		return ErrBitmapFormat
	}

	distRange := shapeDistanceRange(proj, pixelRange)
	forEachPixel(bmp, shape, proj, func(x, row int, origin Point) {
		best := infiniteDistance()
		for _, c := range shape.Contours {
			for _, e := range c.Edges {
				if sd, _ := e.SignedDistance(origin); sd.Less(best) {
					best = sd
				}
			}
		}
		d := signedAbs(shape.Inside(origin), best.Distance)
		bmp.Set(x, row, 0, encodeDistance(d, distRange))
	})
	return nil
}

// GenerateMSDF renders a three-channel multi-channel signed distance
// field: each of R/G/B independently takes the minimum pseudo-distance
// among the edges whose color includes that channel. Run ColorEdges on
// the shape first; uncolored (black) edges contribute to no channel.
//
// bmp must have exactly 3 channels; otherwise ErrBitmapFormat is
// returned and no pixels are written.
func GenerateMSDF(bmp *Bitmap, shape *Shape, proj Projection, pixelRange float64) error {
	if bmp == nil || shape == nil {
		return ErrNilShape
	}
	if bmp.Channels() != 3 {
		return ErrBitmapFormat
	}
	generateMulti(bmp, shape, proj, pixelRange, false)
	return nil
}

// GenerateMTSDF renders a four-channel field: MSDF in RGB plus the true
// winding-signed SDF in alpha.
//
// bmp must have exactly 4 channels; otherwise ErrBitmapFormat is
// returned and no pixels are written.
func GenerateMTSDF(bmp *Bitmap, shape *Shape, proj Projection, pixelRange float64) error {
	if bmp == nil || shape == nil {
		return ErrNilShape
	}
	if bmp.Channels() != 4 {
		return ErrBitmapFormat
	}
	generateMulti(bmp, shape, proj, pixelRange, true)
	return nil
}

// generateMulti is the shared RGB(+A) pixel loop.
func generateMulti(bmp *Bitmap, shape *Shape, proj Projection, pixelRange float64, alpha bool) {
	distRange := shapeDistanceRange(proj, pixelRange)

	forEachPixel(bmp, shape, proj, func(x, row int, origin Point) {
		channels := [3]edgeCandidate{
			{dist: infiniteDistance()},
			{dist: infiniteDistance()},
			{dist: infiniteDistance()},
		}
		trueDist := infiniteDistance()

		for _, c := range shape.Contours {
			for _, e := range c.Edges {
				sd, param := e.SignedDistance(origin)
				if alpha && sd.Less(trueDist) {
					trueDist = sd
				}
				color := e.Color()
				if color&Red != 0 && sd.Less(channels[chanRed].dist) {
					channels[chanRed] = edgeCandidate{dist: sd, edge: e, param: param}
				}
				if color&Green != 0 && sd.Less(channels[chanGreen].dist) {
					channels[chanGreen] = edgeCandidate{dist: sd, edge: e, param: param}
				}
				if color&Blue != 0 && sd.Less(channels[chanBlue].dist) {
					channels[chanBlue] = edgeCandidate{dist: sd, edge: e, param: param}
				}
			}
		}

		for ch, cand := range channels {
			d := cand.dist
			if cand.edge != nil {
				d = pseudoDistance(cand.edge, d, origin, cand.param)
			}
			bmp.Set(x, row, ch, encodeDistance(d.Distance, distRange))
		}
		if alpha {
			d := signedAbs(shape.Inside(origin), trueDist.Distance)
			bmp.Set(x, row, 3, encodeDistance(d, distRange))
		}
	})
}

// ResolveOverlaps repairs self-intersecting contours in a generated
// 3- or 4-channel field: any pixel whose channel median disagrees with
// the winding classifier is overwritten in all color channels with the
// true signed distance. Run after generation (and before error
// correction) when the shape may contain overlapping contours.
func ResolveOverlaps(bmp *Bitmap, shape *Shape, proj Projection, pixelRange float64) error {
	if bmp == nil || shape == nil {
		return ErrNilShape
	}
	if bmp.Channels() < 3 {
		return ErrBitmapFormat
	}

	distRange := shapeDistanceRange(proj, pixelRange)
	forEachPixel(bmp, shape, proj, func(x, row int, origin Point) {
		med := median3(bmp.Get(x, row, 0), bmp.Get(x, row, 1), bmp.Get(x, row, 2))
		inside := shape.Inside(origin)
		if (med > 0.5) == inside {
			return
		}
		best := infiniteDistance()
		for _, c := range shape.Contours {
			for _, e := range c.Edges {
				if sd, _ := e.SignedDistance(origin); sd.Less(best) {
					best = sd
				}
			}
		}
		v := encodeDistance(signedAbs(inside, best.Distance), distRange)
		bmp.Set(x, row, 0, v)
		bmp.Set(x, row, 1, v)
		bmp.Set(x, row, 2, v)
	})
	return nil
}

// forEachPixel walks the bitmap, unprojecting each pixel center into
// shape space. The row index honors the shape's Y-axis orientation:
// with InverseYAxis set, row 0 holds the top of the shape.
func forEachPixel(bmp *Bitmap, shape *Shape, proj Projection, fn func(x, row int, origin Point)) {
	h := bmp.Height()
	for y := 0; y < h; y++ {
		row := y
		if shape.InverseYAxis {
			row = h - 1 - y
		}
		for x := 0; x < bmp.Width(); x++ {
			origin := proj.Unproject(Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			fn(x, row, origin)
		}
	}
}

// shapeDistanceRange converts the pixel-space range into shape units
// using the horizontal scale.
func shapeDistanceRange(proj Projection, pixelRange float64) float64 {
	scale := math.Abs(proj.Scale.X)
	if scale == 0 || pixelRange <= 0 {
		return 1
	}
	return pixelRange / scale
}

// encodeDistance maps a shape-space signed distance into the [0, 1]
// output encoding: 0.5 at the boundary, clamped beyond half the range
// on either side.
func encodeDistance(d, distRange float64) float32 {
	return float32(clamp01(0.5 + d/distRange))
}

// median3 returns the median of three values.
func median3(a, b, c float32) float32 {
	return max(min(a, b), min(max(a, b), c))
}
