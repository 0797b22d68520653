package engine

import "github.com/cutlistpro/cutlist/internal/model"

// allocator drives one strategy across as many sheets as a material group
// needs. Sheets are opened lazily: a sheet only exists once the strategy
// has placed at least one unit on it.
type allocator struct {
	strategy      Strategy
	kerf          float64
	allowRotation bool
}

// groupResult is the outcome of packing a single material group. Sheet
// sequence numbers are assigned later, after all groups are merged.
type groupResult struct {
	materialID string
	sheets     []model.Sheet
	unplaced   []model.UnplacedPart
}

// packGroup packs all units of one material. Units that cannot fit any of
// the material's standard sizes in any permitted orientation are reported
// as exceeds-sheet-bounds up front; the rest are fed to the strategy on
// fresh sheets sized from the material's first standard size until either
// everything is placed or a full pass places nothing, which stops sheet
// allocation for the group.
func (a *allocator) packGroup(mat model.Material, units []model.UnitPart) groupResult {
	res := groupResult{materialID: mat.ID}

	if len(mat.StandardSizes) == 0 {
		for _, u := range units {
			res.unplaced = append(res.unplaced, model.UnplacedPart{Part: u, Reason: model.ReasonExceedsSheet})
		}
		return res
	}

	var pending []model.UnitPart
	for _, u := range units {
		if a.fitsAnyStandardSize(u, mat.StandardSizes) {
			pending = append(pending, u)
		} else {
			res.unplaced = append(res.unplaced, model.UnplacedPart{Part: u, Reason: model.ReasonExceedsSheet})
		}
	}

	size := mat.StandardSizes[0]
	for len(pending) > 0 {
		placements, rest := a.strategy.Pack(pending, size.Width, size.Height, a.kerf, a.allowRotation)
		if len(placements) == 0 {
			// Zero progress over a full pass: stop allocating sheets for
			// this group rather than looping forever.
			for _, u := range rest {
				res.unplaced = append(res.unplaced, model.UnplacedPart{Part: u, Reason: model.ReasonAllocatorGaveUp})
			}
			break
		}

		res.sheets = append(res.sheets, model.Sheet{
			MaterialID: mat.ID,
			Width:      size.Width,
			Height:     size.Height,
			Placements: placements,
		})
		pending = rest
	}

	return res
}

func (a *allocator) fitsAnyStandardSize(u model.UnitPart, sizes []model.SheetSize) bool {
	for _, s := range sizes {
		if fitsAnyOrientation(u, s.Width, s.Height, a.kerf, a.allowRotation) {
			return true
		}
	}
	return false
}
