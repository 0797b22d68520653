package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutlistpro/cutlist/internal/model"
)

func TestNormalize_ExpandsQuantities(t *testing.T) {
	catalog := model.NewCatalog([]model.Material{testMaterial("mdf")})
	parts := []model.PartSpec{
		partFor("mdf", 600, 300, 3),
		partFor("mdf", 400, 200, 1),
	}

	units, rejected := normalize(parts, catalog)

	assert.Empty(t, rejected)
	require.Len(t, units, 4)
	for i, u := range units[:3] {
		assert.Equal(t, 0, u.Spec.Order)
		assert.Equal(t, i, u.Copy)
	}
	assert.Equal(t, 1, units[3].Spec.Order)
	assert.Equal(t, 0, units[3].Copy)
}

func TestNormalize_RejectsInvalidDimensionsPerCopy(t *testing.T) {
	catalog := model.NewCatalog([]model.Material{testMaterial("mdf")})

	cases := []struct {
		spec    model.PartSpec
		records int
	}{
		{partFor("mdf", 0, 300, 1), 1},
		{partFor("mdf", 600, -1, 1), 1},
		{partFor("mdf", -5, 300, 3), 3},
		{partFor("mdf", 600, 300, 0), 1},
		{partFor("mdf", 600, 300, -2), 1},
	}

	for _, c := range cases {
		units, rejected := normalize([]model.PartSpec{c.spec}, catalog)
		assert.Empty(t, units)
		require.Len(t, rejected, c.records,
			"every requested copy must surface in the unplaced set")
		for i, r := range rejected {
			assert.Equal(t, model.ReasonInvalidDimensions, r.Reason)
			assert.Equal(t, i, r.Part.Copy)
		}
	}
}

func TestNormalize_RejectsUnknownMaterialPerCopy(t *testing.T) {
	catalog := model.NewCatalog([]model.Material{testMaterial("mdf")})

	units, rejected := normalize([]model.PartSpec{partFor("granite", 600, 300, 3)}, catalog)

	assert.Empty(t, units)
	require.Len(t, rejected, 3)
	for i, r := range rejected {
		assert.Equal(t, model.ReasonUnknownMaterial, r.Reason)
		assert.Equal(t, i, r.Part.Copy)
	}
}

func TestComputeMetrics_AreaWeightedAggregate(t *testing.T) {
	sheets := []model.Sheet{
		{
			Index: 0, Width: 1000, Height: 1000,
			Placements: []model.Placement{{Width: 500, Height: 500}},
		},
		{
			Index: 1, Width: 2000, Height: 1000,
			Placements: []model.Placement{{Width: 1000, Height: 1000}},
		},
	}

	m := computeMetrics(sheets, nil)

	require.Len(t, m.PerSheet, 2)
	assert.InDelta(t, 25.0, m.PerSheet[0].Utilization, eps)
	assert.InDelta(t, 50.0, m.PerSheet[1].Utilization, eps)
	// 1.25m2 placed over 3m2 of stock, not the 37.5 a naive average gives.
	assert.InDelta(t, 41.6667, m.Utilization, 0.001)
	assert.InDelta(t, 58.3333, m.Waste, 0.001)
	assert.Equal(t, 2, m.SheetCount)
	assert.Equal(t, 2, m.PlacedCount)
}

func TestComputeMetrics_EmptyPlan(t *testing.T) {
	m := computeMetrics(nil, nil)

	assert.Zero(t, m.Utilization)
	assert.Zero(t, m.Waste)
	assert.Zero(t, m.SheetCount)
	assert.Empty(t, m.PerSheet)
}
