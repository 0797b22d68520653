package engine

import "github.com/cutlistpro/cutlist/internal/model"

// computeMetrics derives per-sheet and aggregate utilization for a plan.
// The aggregate is area-weighted: total placed area over total sheet area,
// so a half-empty overflow sheet does not skew the figure the way an
// average of percentages would.
func computeMetrics(sheets []model.Sheet, unplaced []model.UnplacedPart) model.PlanMetrics {
	m := model.PlanMetrics{
		SheetCount:    len(sheets),
		UnplacedCount: len(unplaced),
	}

	for _, s := range sheets {
		used := s.UsedArea()
		total := s.TotalArea()
		m.PerSheet = append(m.PerSheet, model.SheetMetrics{
			SheetIndex:  s.Index,
			UsedArea:    used,
			SheetArea:   total,
			Utilization: s.Utilization(),
			Waste:       s.Waste(),
		})
		m.UsedArea += used
		m.SheetArea += total
		m.PlacedCount += len(s.Placements)
	}

	if m.SheetArea > 0 {
		m.Utilization = m.UsedArea / m.SheetArea * 100.0
		m.Waste = 100.0 - m.Utilization
	}

	return m
}
