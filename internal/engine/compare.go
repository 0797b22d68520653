package engine

import (
	"context"

	"github.com/cutlistpro/cutlist/internal/model"
)

// ComparisonScenario defines a named config to run side by side with others.
type ComparisonScenario struct {
	Name   string `json:"name"`
	Config Config `json:"config"`
}

// ComparisonResult holds the plan and headline statistics for one scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario `json:"scenario"`
	Plan          model.CuttingPlan  `json:"plan"`
	SheetsUsed    int                `json:"sheets_used"`
	WastePercent  float64            `json:"waste_percent"`
	UnplacedCount int                `json:"unplaced_count"`
}

// CompareScenarios optimizes the same request under each scenario and
// returns results in scenario order, enabling what-if comparison of
// strategies and kerf settings.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, parts []model.PartSpec, materials []model.Material) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan, err := Optimize(ctx, parts, materials, scenario.Config)
		if err != nil {
			return nil, err
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Plan:          plan,
			SheetsUsed:    plan.Metrics.SheetCount,
			WastePercent:  plan.Metrics.Waste,
			UnplacedCount: plan.Metrics.UnplacedCount,
		})
	}

	return results, nil
}

// BuildStrategyScenarios generates one scenario per packing strategy,
// holding every other option from the base config fixed.
func BuildStrategyScenarios(base Config) []ComparisonScenario {
	scenarios := make([]ComparisonScenario, 0, len(StrategyNames()))
	for _, name := range StrategyNames() {
		cfg := base
		cfg.Strategy = name
		scenarios = append(scenarios, ComparisonScenario{
			Name:   string(name),
			Config: cfg,
		})
	}
	return scenarios
}
