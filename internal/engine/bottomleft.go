package engine

import "github.com/cutlistpro/cutlist/internal/model"

// bottomLeftFill is the simplest strategy: shelf packing in row order.
// Units are sorted tallest-first so each row is started by its tallest
// member; the cursor walks left to right and wraps to a new row when the
// next unit would cross the right edge. Gaps left behind by a wrapped row
// are never revisited.
type bottomLeftFill struct{}

func (s *bottomLeftFill) Name() StrategyName {
	return BottomLeftFill
}

func (s *bottomLeftFill) Pack(units []model.UnitPart, sheetW, sheetH, kerf float64, allowRotation bool) ([]model.Placement, []model.UnitPart) {
	sorted := sortByHeight(units)

	var placements []model.Placement
	var remaining []model.UnitPart

	var x, y, rowH float64

	for _, u := range sorted {
		if !fitsAnyOrientation(u, sheetW, sheetH, kerf, allowRotation) {
			remaining = append(remaining, u)
			continue
		}

		w, h := u.Footprint()
		placed := false

		for _, o := range orientations(w, h, canRotate(u, allowRotation)) {
			if !fitsSheet(o.w, o.h, sheetW, sheetH, kerf) {
				continue
			}

			px, py, prow := x, y, rowH
			// Close the row early when the unit crosses the right edge.
			if px > 0 && px+o.w+kerf > sheetW+eps {
				px, py, prow = 0, py+prow+kerf, 0
			}
			if py+o.h+kerf > sheetH+eps {
				continue // no vertical room left for this orientation
			}

			placements = append(placements, model.Placement{
				Part: u, X: px, Y: py,
				Width: o.w, Height: o.h, Rotated: o.rotated,
			})
			x, y, rowH = px+o.w+kerf, py, prow
			if o.h > rowH {
				rowH = o.h
			}
			placed = true
			break
		}

		if !placed {
			remaining = append(remaining, u)
		}
	}

	return placements, remaining
}

// orientation is one candidate footprint for a unit.
type orientation struct {
	w, h    float64
	rotated bool
}

// orientations returns the footprints to try, unrotated first.
func orientations(w, h float64, rotatable bool) []orientation {
	if !rotatable || w == h {
		return []orientation{{w: w, h: h}}
	}
	return []orientation{{w: w, h: h}, {w: h, h: w, rotated: true}}
}
