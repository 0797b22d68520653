package engine

import "github.com/cutlistpro/cutlist/internal/model"

// bestFitDecreasing packs largest-area parts first into whichever free
// rectangle leaves the least slack, then splits the chosen rectangle with a
// fixed guillotine rule: one strip to the right of the placed unit, one
// strip below it spanning the full rectangle width.
type bestFitDecreasing struct{}

func (s *bestFitDecreasing) Name() StrategyName {
	return BestFitDecreasing
}

func (s *bestFitDecreasing) Pack(units []model.UnitPart, sheetW, sheetH, kerf float64, allowRotation bool) ([]model.Placement, []model.UnitPart) {
	sorted := sortByArea(units)
	freeRects := []rect{{x: 0, y: 0, w: sheetW, h: sheetH}}

	var placements []model.Placement
	var remaining []model.UnitPart

	for _, u := range sorted {
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
		freeRects = splitFixed(freeRects, chosen, o.w+kerf, o.h+kerf)
	}

	return placements, remaining
}

// findBestFit scans the arena for the rectangle minimizing leftover area
// over all permitted orientations. Ties prefer the narrower rectangle, then
// the unrotated orientation.
func findBestFit(rects []rect, u model.UnitPart, kerf float64, allowRotation bool) (int, orientation, bool) {
	w, h := u.Footprint()
	unitArea := u.Area()

	bestIdx := -1
	bestLeftover := -1.0
	var bestOrient orientation

	for _, o := range orientations(w, h, canRotate(u, allowRotation)) {
		idx := bestRect(rects, o.w+kerf, o.h+kerf, unitArea)
		if idx < 0 {
			continue
		}
		leftover := rects[idx].area() - unitArea
		switch {
		case bestIdx < 0 || leftover < bestLeftover-eps:
			bestIdx, bestLeftover, bestOrient = idx, leftover, o
		case leftover < bestLeftover+eps && rects[idx].w < rects[bestIdx].w-eps:
			bestIdx, bestLeftover, bestOrient = idx, leftover, o
		}
	}

	return bestIdx, bestOrient, bestIdx >= 0
}

// splitFixed splits a consumed free rectangle around a footprint of
// wk x hk anchored at its top-left corner: right strip beside the unit,
// bottom strip across the full width. Degenerate slivers are dropped.
func splitFixed(rects []rect, r rect, wk, hk float64) []rect {
	if wk > r.w {
		wk = r.w
	}
	if hk > r.h {
		hk = r.h
	}
	rects = appendIfUsable(rects, rect{x: r.x + wk, y: r.y, w: r.w - wk, h: hk})
	rects = appendIfUsable(rects, rect{x: r.x, y: r.y + hk, w: r.w, h: r.h - hk})
	return rects
}
