// Package costing turns a cutting plan and a material catalog into a
// layered cost breakdown: material cost priced per the material's unit,
// with waste, labor, overhead and profit margin stacked on top.
package costing

import (
	"fmt"
	"sort"

	"github.com/cutlistpro/cutlist/internal/model"
)

// Unit conversions from the engine's millimeter space.
const (
	sqmmPerSqm = 1_000_000.0
	mmPerM     = 1000.0
)

// Factors are the configurable fractions layered on top of material cost.
// Each must be in [0, 1].
type Factors struct {
	Waste    float64 `json:"waste_factor"`
	Labor    float64 `json:"labor_factor"`
	Overhead float64 `json:"overhead_factor"`
	Margin   float64 `json:"margin_factor"`
}

// DefaultFactors returns the stock pricing assumptions: 15% waste, 30%
// labor, 10% overhead, 20% margin on the running subtotal.
func DefaultFactors() Factors {
	return Factors{Waste: 0.15, Labor: 0.30, Overhead: 0.10, Margin: 0.20}
}

// Validate rejects factors outside [0, 1] before any estimation starts.
func (f Factors) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"waste", f.Waste},
		{"labor", f.Labor},
		{"overhead", f.Overhead},
		{"margin", f.Margin},
	} {
		if v.value < 0 || v.value > 1 {
			return fmt.Errorf("%s factor must be in [0,1], got %g", v.name, v.value)
		}
	}
	return nil
}

// MaterialLine is the per-material slice of the breakdown, for reporting.
type MaterialLine struct {
	MaterialID   string          `json:"material_id"`
	Name         string          `json:"name"`
	PriceUnit    model.PriceUnit `json:"price_unit"`
	Sheets       int             `json:"sheets"`
	Units        int             `json:"units"`
	PlacedAreaM2 float64         `json:"placed_area_m2"`
	WeightKg     float64         `json:"weight_kg"`
	Cost         float64         `json:"cost"`
	MissingPrice bool            `json:"missing_price,omitempty"`
}

// CostBreakdown is derived entirely from a plan and a catalog and never
// mutated after creation. Total is exactly the sum of its five layers.
type CostBreakdown struct {
	MaterialCost float64        `json:"material_cost"`
	WasteCost    float64        `json:"waste_cost"`
	LaborCost    float64        `json:"labor_cost"`
	OverheadCost float64        `json:"overhead_cost"`
	Margin       float64        `json:"margin"`
	Total        float64        `json:"total"`
	Materials    []MaterialLine `json:"materials"`
	Warnings     []string       `json:"warnings,omitempty"`
}

// Estimate prices a cutting plan against a material catalog.
//
// Material cost follows the material's price unit: area-priced stock
// charges full sheet area, length-priced stock (edge banding, lumber)
// charges the summed length of placed units, piece-priced stock charges per
// placed unit. A material without a resolvable positive price contributes
// zero and is flagged rather than failing the whole estimate.
func Estimate(plan model.CuttingPlan, materials []model.Material, factors Factors) (CostBreakdown, error) {
	if err := factors.Validate(); err != nil {
		return CostBreakdown{}, err
	}

	catalog := model.NewCatalog(materials)
	lines := buildMaterialLines(plan, catalog)

	var breakdown CostBreakdown
	for _, line := range lines {
		breakdown.MaterialCost += line.Cost
		if line.MissingPrice {
			breakdown.Warnings = append(breakdown.Warnings,
				fmt.Sprintf("material %s (%s): no resolvable price, contribution reported as zero", line.MaterialID, line.Name))
		}
	}
	breakdown.Materials = lines

	breakdown.WasteCost = breakdown.MaterialCost * factors.Waste
	breakdown.LaborCost = breakdown.MaterialCost * factors.Labor
	breakdown.OverheadCost = breakdown.MaterialCost * factors.Overhead
	subtotal := breakdown.MaterialCost + breakdown.WasteCost + breakdown.LaborCost + breakdown.OverheadCost
	breakdown.Margin = subtotal * factors.Margin
	breakdown.Total = subtotal + breakdown.Margin

	return breakdown, nil
}

func buildMaterialLines(plan model.CuttingPlan, catalog model.Catalog) []MaterialLine {
	byID := make(map[string]*MaterialLine)
	order := []string{}

	lineFor := func(materialID string) *MaterialLine {
		if line, ok := byID[materialID]; ok {
			return line
		}
		line := &MaterialLine{MaterialID: materialID}
		if mat, ok := catalog.Resolve(materialID); ok {
			line.Name = mat.Name
			line.PriceUnit = mat.PriceUnit
		} else {
			line.MissingPrice = true
		}
		byID[materialID] = line
		order = append(order, materialID)
		return line
	}

	for _, sheet := range plan.Sheets {
		line := lineFor(sheet.MaterialID)
		line.Sheets++
		line.Units += len(sheet.Placements)
		line.PlacedAreaM2 += sheet.UsedArea() / sqmmPerSqm

		mat, ok := catalog.Resolve(sheet.MaterialID)
		if !ok {
			continue // flagged at line creation
		}
		line.WeightKg += sheetWeightKg(mat, sheet)
		if mat.PricePerUnit <= 0 {
			line.MissingPrice = true
			continue
		}
		line.Cost += sheetCost(mat, sheet)
	}

	sort.Strings(order)
	lines := make([]MaterialLine, 0, len(order))
	for _, id := range order {
		lines = append(lines, *byID[id])
	}
	return lines
}

// sheetCost prices one allocated sheet according to its material's unit.
func sheetCost(mat model.Material, sheet model.Sheet) float64 {
	switch mat.PriceUnit {
	case model.PriceUnitLength:
		var meters float64
		for _, p := range sheet.Placements {
			meters += p.Part.Spec.Length / mmPerM
		}
		return meters * mat.PricePerUnit
	case model.PriceUnitPiece:
		return float64(len(sheet.Placements)) * mat.PricePerUnit
	default: // area
		return sheet.TotalArea() / sqmmPerSqm * mat.PricePerUnit
	}
}

// sheetWeightKg estimates the mass of the placed parts from the material's
// density and thickness.
func sheetWeightKg(mat model.Material, sheet model.Sheet) float64 {
	volumeM3 := sheet.UsedArea() / sqmmPerSqm * mat.Thickness / mmPerM
	return volumeM3 * mat.Density
}
