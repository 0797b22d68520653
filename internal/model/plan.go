package model

// ReasonCode explains why a unit part ended up in the unplaced set or why a
// material's cost contribution was degraded. All reasons are recoverable at
// the level of a single part or material.
type ReasonCode string

const (
	ReasonInvalidDimensions ReasonCode = "invalid-dimensions"
	ReasonUnknownMaterial   ReasonCode = "unknown-material"
	ReasonExceedsSheet      ReasonCode = "exceeds-sheet-bounds"
	ReasonAllocatorGaveUp   ReasonCode = "allocator-gave-up"
	ReasonMissingPrice      ReasonCode = "missing-price"
)

// Placement is a single unit part placed on a sheet. Width and Height are
// the effective dimensions after rotation; the kerf margin lives in the
// spacing between placements, not inside these dimensions.
type Placement struct {
	Part    UnitPart `json:"part"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Rotated bool     `json:"rotated"`
}

// Area returns the effective area of the placement in square mm.
func (p Placement) Area() float64 {
	return p.Width * p.Height
}

// Sheet is one allocated stock sheet with its ordered placements.
type Sheet struct {
	MaterialID string      `json:"material_id"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Index      int         `json:"index"` // sequence number within the plan, assigned after merge
	Placements []Placement `json:"placements"`
}

// UsedArea returns the total effective area of placed parts in square mm.
func (s Sheet) UsedArea() float64 {
	var total float64
	for _, p := range s.Placements {
		total += p.Area()
	}
	return total
}

// TotalArea returns the sheet area in square mm.
func (s Sheet) TotalArea() float64 {
	return s.Width * s.Height
}

// Utilization returns the percentage of the sheet covered by placements.
func (s Sheet) Utilization() float64 {
	ta := s.TotalArea()
	if ta == 0 {
		return 0
	}
	return s.UsedArea() / ta * 100.0
}

// Waste returns the complement of Utilization.
func (s Sheet) Waste() float64 {
	return 100.0 - s.Utilization()
}

// UnplacedPart is a requested unit that no sheet could accommodate,
// reported rather than dropped.
type UnplacedPart struct {
	Part   UnitPart   `json:"part"`
	Reason ReasonCode `json:"reason"`
}

// SheetMetrics holds per-sheet utilization figures.
type SheetMetrics struct {
	SheetIndex  int     `json:"sheet_index"`
	UsedArea    float64 `json:"used_area"`  // sq mm
	SheetArea   float64 `json:"sheet_area"` // sq mm
	Utilization float64 `json:"utilization"`
	Waste       float64 `json:"waste"`
}

// PlanMetrics aggregates utilization across all sheets of a plan. The
// aggregate is area-weighted, not an average of per-sheet percentages, so a
// nearly empty last sheet is counted by its actual area.
type PlanMetrics struct {
	PerSheet      []SheetMetrics `json:"per_sheet"`
	UsedArea      float64        `json:"used_area"`  // sq mm
	SheetArea     float64        `json:"sheet_area"` // sq mm
	Utilization   float64        `json:"utilization"`
	Waste         float64        `json:"waste"`
	SheetCount    int            `json:"sheet_count"`
	PlacedCount   int            `json:"placed_count"`
	UnplacedCount int            `json:"unplaced_count"`
}

// CuttingPlan is the full outcome of one optimization request. It is built
// once and never mutated; re-optimization produces a new plan.
type CuttingPlan struct {
	Sheets   []Sheet        `json:"sheets"`
	Unplaced []UnplacedPart `json:"unplaced"`
	Metrics  PlanMetrics    `json:"metrics"`
}

// PlacedCount returns the number of placements across all sheets.
func (p CuttingPlan) PlacedCount() int {
	count := 0
	for _, s := range p.Sheets {
		count += len(s.Placements)
	}
	return count
}

// UnplacedFor returns the unplaced units belonging to one material.
func (p CuttingPlan) UnplacedFor(materialID string) []UnplacedPart {
	var out []UnplacedPart
	for _, u := range p.Unplaced {
		if u.Part.Spec.MaterialID == materialID {
			out = append(out, u)
		}
	}
	return out
}
