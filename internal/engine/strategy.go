package engine

import (
	"errors"
	"sort"

	"github.com/cutlistpro/cutlist/internal/model"
)

// Geometric comparisons tolerate sub-micron float noise.
const eps = 0.001

// StrategyName selects a packing strategy at configuration time.
type StrategyName string

const (
	BottomLeftFill    StrategyName = "bottom-left-fill"
	BestFitDecreasing StrategyName = "best-fit-decreasing"
	GuillotineSplit   StrategyName = "guillotine-split"
)

// StrategyNames lists the supported strategies in presentation order.
func StrategyNames() []StrategyName {
	return []StrategyName{BottomLeftFill, BestFitDecreasing, GuillotineSplit}
}

// Strategy packs unit parts onto a single sheet. Implementations are pure:
// the same unit list (including order) and parameters always produce the
// same placements. Units whose footprint, kerf included, exceeds the sheet
// in every permitted orientation are returned in remaining untouched.
type Strategy interface {
	Name() StrategyName
	Pack(units []model.UnitPart, sheetW, sheetH, kerf float64, allowRotation bool) (placements []model.Placement, remaining []model.UnitPart)
}

// ErrUnknownStrategy is returned when a config names a strategy that does
// not exist.
var ErrUnknownStrategy = errors.New("unknown packing strategy")

func strategyFor(cfg Config) (Strategy, error) {
	switch cfg.Strategy {
	case BottomLeftFill:
		return &bottomLeftFill{}, nil
	case BestFitDecreasing:
		return &bestFitDecreasing{}, nil
	case GuillotineSplit:
		return &guillotineSplit{maxFreeRects: cfg.MaxFreeRectangles}, nil
	default:
		return nil, ErrUnknownStrategy
	}
}

// canRotate reports whether a unit may be placed rotated 90 degrees.
func canRotate(u model.UnitPart, allowRotation bool) bool {
	return allowRotation && u.Spec.Rotatable
}

// fitsSheet reports whether a footprint, trailing kerf included, fits an
// empty sheet.
func fitsSheet(w, h, sheetW, sheetH, kerf float64) bool {
	return w+kerf <= sheetW+eps && h+kerf <= sheetH+eps
}

// fitsAnyOrientation reports whether the unit fits an empty sheet in at
// least one permitted orientation.
func fitsAnyOrientation(u model.UnitPart, sheetW, sheetH, kerf float64, allowRotation bool) bool {
	w, h := u.Footprint()
	if fitsSheet(w, h, sheetW, sheetH, kerf) {
		return true
	}
	return canRotate(u, allowRotation) && fitsSheet(h, w, sheetW, sheetH, kerf)
}

// sortByHeight orders units by decreasing height, then decreasing width,
// then original order. Returns a copy; the caller's slice is not reordered.
func sortByHeight(units []model.UnitPart) []model.UnitPart {
	sorted := make([]model.UnitPart, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool {
		wi, hi := sorted[i].Footprint()
		wj, hj := sorted[j].Footprint()
		if hi != hj {
			return hi > hj
		}
		if wi != wj {
			return wi > wj
		}
		return lessByOrigin(sorted[i], sorted[j])
	})
	return sorted
}

// sortByArea orders units by decreasing area, then decreasing longest edge,
// then original order. Returns a copy.
func sortByArea(units []model.UnitPart) []model.UnitPart {
	sorted := make([]model.UnitPart, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := sorted[i].Area(), sorted[j].Area()
		if ai != aj {
			return ai > aj
		}
		ei, ej := longestEdge(sorted[i]), longestEdge(sorted[j])
		if ei != ej {
			return ei > ej
		}
		return lessByOrigin(sorted[i], sorted[j])
	})
	return sorted
}

func longestEdge(u model.UnitPart) float64 {
	w, h := u.Footprint()
	if w > h {
		return w
	}
	return h
}

// lessByOrigin is the final tie-break for every sort: original spec order,
// then copy index. It makes all strategies deterministic.
func lessByOrigin(a, b model.UnitPart) bool {
	if a.Spec.Order != b.Spec.Order {
		return a.Spec.Order < b.Spec.Order
	}
	return a.Copy < b.Copy
}
