package engine

import "github.com/cutlistpro/cutlist/internal/model"

// normalize expands part specs into unit parts, preserving input order as
// the original-order index used by every downstream tie-break.
//
// Validation follows partial-failure semantics: a spec with non-positive
// dimensions or quantity, or with a material the catalog cannot resolve, is
// reported in the unplaced set with a reason code instead of aborting the
// batch.
func normalize(parts []model.PartSpec, catalog model.Catalog) ([]model.UnitPart, []model.UnplacedPart) {
	var units []model.UnitPart
	var rejected []model.UnplacedPart

	for i, spec := range parts {
		spec.Order = i

		if spec.Length <= 0 || spec.Width <= 0 || spec.Quantity <= 0 {
			// One record per requested copy keeps the conservation count
			// intact; a non-positive quantity has no copies to expand, so
			// the spec itself is the one record.
			copies := spec.Quantity
			if copies < 1 {
				copies = 1
			}
			for c := 0; c < copies; c++ {
				rejected = append(rejected, model.UnplacedPart{
					Part:   model.UnitPart{Spec: spec, Copy: c},
					Reason: model.ReasonInvalidDimensions,
				})
			}
			continue
		}

		if _, ok := catalog.Resolve(spec.MaterialID); !ok {
			for c := 0; c < spec.Quantity; c++ {
				rejected = append(rejected, model.UnplacedPart{
					Part:   model.UnitPart{Spec: spec, Copy: c},
					Reason: model.ReasonUnknownMaterial,
				})
			}
			continue
		}

		for c := 0; c < spec.Quantity; c++ {
			units = append(units, model.UnitPart{Spec: spec, Copy: c})
		}
	}

	return units, rejected
}
