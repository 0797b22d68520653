package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cutlistpro/cutlist/internal/model"
)

// Structurally invalid input is rejected before any packing starts;
// everything else degrades to per-part issues inside the plan.
var (
	ErrEmptyCatalog = errors.New("material catalog is empty")
	ErrInvalidKerf  = errors.New("kerf must be >= 0")
)

// Config holds the recognized optimization options.
type Config struct {
	Strategy          StrategyName `json:"strategy"`
	KerfMm            float64      `json:"kerf_mm"`
	AllowRotation     bool         `json:"allow_rotation"`
	MaxFreeRectangles int          `json:"max_free_rectangles"`
}

// DefaultConfig mirrors the defaults of the original settings screen:
// bottom-left fill with a 3mm blade.
func DefaultConfig() Config {
	return Config{
		Strategy:          BottomLeftFill,
		KerfMm:            3.0,
		AllowRotation:     true,
		MaxFreeRectangles: defaultMaxFreeRects,
	}
}

// withDefaults fills unset options: an empty strategy and a zero
// free-rectangle budget fall back to the defaults, so partial configs
// (typically from JSON requests) stay valid.
func (c Config) withDefaults() Config {
	if c.Strategy == "" {
		c.Strategy = BottomLeftFill
	}
	if c.MaxFreeRectangles == 0 {
		c.MaxFreeRectangles = defaultMaxFreeRects
	}
	return c
}

// Validate reports structural problems with the config.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.KerfMm < 0 {
		return ErrInvalidKerf
	}
	if c.MaxFreeRectangles <= 0 {
		return fmt.Errorf("max free rectangles must be > 0, got %d", c.MaxFreeRectangles)
	}
	if _, err := strategyFor(c); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Strategy)
	}
	return nil
}

// Optimize turns a part list and a material catalog into a cutting plan.
//
// Parts are normalized to unit parts, grouped by material, packed group by
// group (groups run in parallel, each owning its free-rectangle state) and
// merged in material-id order so the output is deterministic regardless of
// scheduling. The returned plan always satisfies, per material group,
// placed + unplaced == requested units.
func Optimize(ctx context.Context, parts []model.PartSpec, materials []model.Material, cfg Config) (model.CuttingPlan, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return model.CuttingPlan{}, err
	}
	if len(materials) == 0 && len(parts) > 0 {
		return model.CuttingPlan{}, ErrEmptyCatalog
	}

	strategy, err := strategyFor(cfg)
	if err != nil {
		return model.CuttingPlan{}, err
	}

	catalog := model.NewCatalog(materials)
	units, unplaced := normalize(parts, catalog)
	groups := groupByMaterial(units)

	alloc := &allocator{
		strategy:      strategy,
		kerf:          cfg.KerfMm,
		allowRotation: cfg.AllowRotation,
	}

	results := make([]groupResult, len(groups))
	g, _ := errgroup.WithContext(ctx)
	for i, grp := range groups {
		i, grp := i, grp
		mat, _ := catalog.Resolve(grp.materialID)
		g.Go(func() error {
			results[i] = alloc.packGroup(mat, grp.units)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.CuttingPlan{}, err
	}

	plan := model.CuttingPlan{Unplaced: unplaced}
	for _, res := range results {
		plan.Sheets = append(plan.Sheets, res.sheets...)
		plan.Unplaced = append(plan.Unplaced, res.unplaced...)
	}

	// Sequence numbers exist only after the merge so that parallel
	// execution order cannot leak into the output.
	for i := range plan.Sheets {
		plan.Sheets[i].Index = i
	}

	plan.Metrics = computeMetrics(plan.Sheets, plan.Unplaced)
	return plan, nil
}

// materialUnits is one material group awaiting packing.
type materialUnits struct {
	materialID string
	units      []model.UnitPart
}

// groupByMaterial splits units into per-material groups, ordered by
// material id. Unit order within a group follows input order.
func groupByMaterial(units []model.UnitPart) []materialUnits {
	byID := make(map[string][]model.UnitPart)
	for _, u := range units {
		byID[u.Spec.MaterialID] = append(byID[u.Spec.MaterialID], u)
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	groups := make([]materialUnits, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, materialUnits{materialID: id, units: byID[id]})
	}
	return groups
}
