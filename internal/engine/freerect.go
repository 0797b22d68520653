package engine

// rect is a free region of a sheet. Free-rectangle bookkeeping is an arena
// of records addressed by index; removal swaps with the last element and
// truncates, so split and merge stay allocation-light.
type rect struct {
	x, y, w, h float64
}

func (r rect) area() float64 {
	return r.w * r.h
}

// fits reports whether a footprint of wk x hk (kerf included) fits in r.
func (r rect) fits(wk, hk float64) bool {
	return wk <= r.w+eps && hk <= r.h+eps
}

// swapRemove removes index i without preserving order.
func swapRemove(rects []rect, i int) []rect {
	rects[i] = rects[len(rects)-1]
	return rects[:len(rects)-1]
}

// appendIfUsable appends r unless it is degenerate.
func appendIfUsable(rects []rect, r rect) []rect {
	if r.w > eps && r.h > eps {
		return append(rects, r)
	}
	return rects
}

// bestRect selects the free rectangle with the minimum leftover area for a
// footprint, ties broken by the smaller rectangle width. Returns -1 when
// nothing fits.
func bestRect(rects []rect, wk, hk, unitArea float64) int {
	bestIdx := -1
	bestLeftover := -1.0
	for i, r := range rects {
		if !r.fits(wk, hk) {
			continue
		}
		leftover := r.area() - unitArea
		switch {
		case bestIdx < 0 || leftover < bestLeftover-eps:
			bestIdx, bestLeftover = i, leftover
		case leftover < bestLeftover+eps && r.w < rects[bestIdx].w-eps:
			bestIdx, bestLeftover = i, leftover
		}
	}
	return bestIdx
}

// mergeAdjacent coalesces pairs of free rectangles that share a full edge:
// same width stacked vertically, or same height side by side. It repeats
// until no pair merges, countering fragmentation from repeated splits.
func mergeAdjacent(rects []rect) []rect {
	merged := true
	for merged {
		merged = false
		for i := 0; i < len(rects) && !merged; i++ {
			for j := i + 1; j < len(rects); j++ {
				if m, ok := mergePair(rects[i], rects[j]); ok {
					rects[i] = m
					rects = swapRemove(rects, j)
					merged = true
					break
				}
			}
		}
	}
	return rects
}

func mergePair(a, b rect) (rect, bool) {
	sameCol := near(a.x, b.x) && near(a.w, b.w)
	if sameCol && near(a.y+a.h, b.y) {
		return rect{x: a.x, y: a.y, w: a.w, h: a.h + b.h}, true
	}
	if sameCol && near(b.y+b.h, a.y) {
		return rect{x: a.x, y: b.y, w: a.w, h: a.h + b.h}, true
	}
	sameRow := near(a.y, b.y) && near(a.h, b.h)
	if sameRow && near(a.x+a.w, b.x) {
		return rect{x: a.x, y: a.y, w: a.w + b.w, h: a.h}, true
	}
	if sameRow && near(b.x+b.w, a.x) {
		return rect{x: b.x, y: a.y, w: a.w + b.w, h: a.h}, true
	}
	return rect{}, false
}

func near(a, b float64) bool {
	d := a - b
	return d < eps && d > -eps
}
