package atlas

import "golang.org/x/exp/slices"

// Skyline bottom-left rectangle packing. Rectangles are placed at the
// lowest (then leftmost) position where they fit, and the skyline is
// the set of horizontal segments describing the top of the packed
// region. Input order is normalized before packing so the layout
// depends only on the rectangle set, not on insertion order.

// packRect is one rectangle to place. X and Y are filled in by the
// packer.
type packRect struct {
	id   int
	w, h int
	x, y int
}

// skylineSegment is one horizontal run of the packing front.
type skylineSegment struct {
	x, y, width int
}

type skylinePacker struct {
	width    int
	height   int
	segments []skylineSegment
}

func newSkylinePacker(width, height int) *skylinePacker {
	return &skylinePacker{
		width:    width,
		height:   height,
		segments: []skylineSegment{{x: 0, y: 0, width: width}},
	}
}

// pack places every rectangle, mutating their x/y. It reports false as
// soon as any rectangle does not fit; placements made before the
// failure are not rolled back, so callers treat failure as total.
func (p *skylinePacker) pack(rects []*packRect) bool {
	sortRects(rects)
	for _, r := range rects {
		if !p.place(r) {
			return false
		}
	}
	return true
}

// sortRects orders tallest first, widest second, with the id as the
// final tie-break so packing is deterministic.
func sortRects(rects []*packRect) {
	slices.SortFunc(rects, func(a, b *packRect) int {
		if a.h != b.h {
			return b.h - a.h
		}
		if a.w != b.w {
			return b.w - a.w
		}
		return a.id - b.id
	})
}

func (p *skylinePacker) place(r *packRect) bool {
	if r.w > p.width || r.h > p.height {
		return false
	}
	bestY := -1
	bestX := 0
	bestIdx := -1
	for i := range p.segments {
		y, ok := p.fitAt(i, r.w)
		if !ok || y+r.h > p.height {
			continue
		}
		if bestY < 0 || y < bestY || (y == bestY && p.segments[i].x < bestX) {
			bestY = y
			bestX = p.segments[i].x
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return false
	}
	r.x = bestX
	r.y = bestY
	p.addSegment(bestIdx, skylineSegment{x: bestX, y: bestY + r.h, width: r.w})
	return true
}

// fitAt returns the y at which a rectangle of the given width placed at
// segment i would rest, i.e. the maximum skyline height under its span.
func (p *skylinePacker) fitAt(i, width int) (int, bool) {
	x := p.segments[i].x
	if x+width > p.width {
		return 0, false
	}
	y := p.segments[i].y
	remaining := width
	for j := i; remaining > 0; j++ {
		if j >= len(p.segments) {
			return 0, false
		}
		if p.segments[j].y > y {
			y = p.segments[j].y
		}
		remaining -= p.segments[j].width
	}
	return y, true
}

// addSegment splices the new top segment into the skyline and merges
// the segments it shadows.
func (p *skylinePacker) addSegment(i int, seg skylineSegment) {
	p.segments = slices.Insert(p.segments, i, seg)

	// Trim or remove the segments covered by the new one.
	for j := i + 1; j < len(p.segments); {
		cur := &p.segments[j]
		if cur.x >= seg.x+seg.width {
			break
		}
		overlap := seg.x + seg.width - cur.x
		if overlap < cur.width {
			cur.x += overlap
			cur.width -= overlap
			break
		}
		p.segments = slices.Delete(p.segments, j, j+1)
	}

	// Merge adjacent segments at equal height.
	for j := 0; j < len(p.segments)-1; {
		if p.segments[j].y == p.segments[j+1].y {
			p.segments[j].width += p.segments[j+1].width
			p.segments = slices.Delete(p.segments, j+1, j+2)
			continue
		}
		j++
	}
}
