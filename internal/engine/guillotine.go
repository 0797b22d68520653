package engine

import "github.com/cutlistpro/cutlist/internal/model"

// defaultMaxFreeRects bounds the free-rectangle arena when the config does
// not say otherwise.
const defaultMaxFreeRects = 256

// guillotineSplit refines best-fit packing with an adaptive split rule:
// after each placement the consumed rectangle is cut along whichever axis
// leaves the larger single leftover, keeping room for subsequent large
// parts. Adjacent free rectangles are re-merged after every placement, and
// a cap on the arena size bounds fragmentation; once exceeded, the rest of
// the units are deferred to the next sheet.
type guillotineSplit struct {
	maxFreeRects int
}

func (s *guillotineSplit) Name() StrategyName {
	return GuillotineSplit
}

func (s *guillotineSplit) Pack(units []model.UnitPart, sheetW, sheetH, kerf float64, allowRotation bool) ([]model.Placement, []model.UnitPart) {
	budget := s.maxFreeRects
	if budget <= 0 {
		budget = defaultMaxFreeRects
	}

	sorted := sortByArea(units)
	freeRects := []rect{{x: 0, y: 0, w: sheetW, h: sheetH}}

	var placements []model.Placement
	var remaining []model.UnitPart

	for i, u := range sorted {
		if !fitsAnyOrientation(u, sheetW, sheetH, kerf, allowRotation) {
			remaining = append(remaining, u)
			continue
		}

		idx, o, ok := findBestFit(freeRects, u, kerf, allowRotation)
		if !ok {
			remaining = append(remaining, u)
			continue
		}

		chosen := freeRects[idx]
		placements = append(placements, model.Placement{
			Part: u, X: chosen.x, Y: chosen.y,
			Width: o.w, Height: o.h, Rotated: o.rotated,
		})

		freeRects = swapRemove(freeRects, idx)
		freeRects = splitAdaptive(freeRects, chosen, o.w+kerf, o.h+kerf)
		freeRects = mergeAdjacent(freeRects)

		if len(freeRects) > budget {
			// Fragmentation budget exhausted: defer everything left to a
			// fresh sheet instead of scanning an ever-growing arena.
			remaining = append(remaining, sorted[i+1:]...)
			break
		}
	}

	return placements, remaining
}

// splitAdaptive cuts the consumed rectangle along the axis that leaves the
// larger single leftover rectangle.
//
// A vertical cut yields a full-height strip to the right and a stub below
// the unit; a horizontal cut yields a full-width strip below and a stub to
// the right.
func splitAdaptive(rects []rect, r rect, wk, hk float64) []rect {
	if wk > r.w {
		wk = r.w
	}
	if hk > r.h {
		hk = r.h
	}

	rightFull := rect{x: r.x + wk, y: r.y, w: r.w - wk, h: r.h}
	belowStub := rect{x: r.x, y: r.y + hk, w: wk, h: r.h - hk}

	rightStub := rect{x: r.x + wk, y: r.y, w: r.w - wk, h: hk}
	belowFull := rect{x: r.x, y: r.y + hk, w: r.w, h: r.h - hk}

	verticalBest := maxArea(rightFull, belowStub)
	horizontalBest := maxArea(rightStub, belowFull)

	if verticalBest >= horizontalBest {
		rects = appendIfUsable(rects, rightFull)
		rects = appendIfUsable(rects, belowStub)
	} else {
		rects = appendIfUsable(rects, rightStub)
		rects = appendIfUsable(rects, belowFull)
	}
	return rects
}

func maxArea(a, b rect) float64 {
	if a.area() > b.area() {
		return a.area()
	}
	return b.area()
}
