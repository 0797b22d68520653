package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuillotineSplit_FillsSheetExactly(t *testing.T) {
	s := &guillotineSplit{}
	units := unitsOf(spec("Quad", 500, 500, 4))

	placements, remaining := s.Pack(units, 1000, 1000, 0, false)

	require.Len(t, placements, 4)
	assert.Empty(t, remaining)

	var used float64
	for _, p := range placements {
		used += p.Area()
	}
	assert.Equal(t, 1000.0*1000.0, used, "four quarters tile the sheet with no waste")
}

// A tall first part splits the sheet vertically, preserving a full-height
// strip beside it; the fixed-rule splitter caps its right strip at the
// placed part's height and cannot take the second part at all.
func TestGuillotineSplit_AdaptiveSplitBeatsFixed(t *testing.T) {
	units := unitsOf(spec("Column", 300, 900, 1), spec("Slab", 280, 950, 1))

	g := &guillotineSplit{}
	placed, remaining := g.Pack(units, 1000, 1000, 0, false)
	require.Len(t, placed, 2)
	assert.Empty(t, remaining)
	slab := placementByName(t, placed, "Slab")
	assert.Equal(t, 300.0, slab.X)
	assert.Equal(t, 0.0, slab.Y)

	b := &bestFitDecreasing{}
	placed, remaining = b.Pack(units, 1000, 1000, 0, false)
	require.Len(t, placed, 1)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Slab", remaining[0].Spec.Name)
}

func TestGuillotineSplit_FreeRectBudgetDefersToNextSheet(t *testing.T) {
	s := &guillotineSplit{maxFreeRects: 1}
	units := unitsOf(spec("A", 200, 200, 3))

	placements, remaining := s.Pack(units, 1000, 1000, 0, false)

	require.Len(t, placements, 1)
	require.Len(t, remaining, 2, "arena over budget defers the rest")
}

func TestGuillotineSplit_ZeroBudgetFallsBackToDefault(t *testing.T) {
	s := &guillotineSplit{maxFreeRects: 0}
	units := unitsOf(spec("A", 200, 200, 6))

	placements, remaining := s.Pack(units, 1000, 1000, 0, false)

	require.Len(t, placements, 6)
	assert.Empty(t, remaining)
}

func TestGuillotineSplit_Deterministic(t *testing.T) {
	s := &guillotineSplit{}
	units := unitsOf(spec("A", 600, 300, 2), spec("B", 570, 270, 3), spec("C", 400, 400, 2))

	first, firstRem := s.Pack(units, 2440, 1220, 5, true)
	second, secondRem := s.Pack(units, 2440, 1220, 5, true)

	assert.Equal(t, first, second)
	assert.Equal(t, firstRem, secondRem)
}

func TestMergeAdjacent(t *testing.T) {
	t.Run("stacked same-width rects merge", func(t *testing.T) {
		rects := []rect{
			{x: 0, y: 0, w: 300, h: 200},
			{x: 0, y: 200, w: 300, h: 100},
		}
		merged := mergeAdjacent(rects)
		require.Len(t, merged, 1)
		assert.Equal(t, rect{x: 0, y: 0, w: 300, h: 300}, merged[0])
	})

	t.Run("side-by-side same-height rects merge", func(t *testing.T) {
		rects := []rect{
			{x: 400, y: 100, w: 200, h: 500},
			{x: 600, y: 100, w: 150, h: 500},
		}
		merged := mergeAdjacent(rects)
		require.Len(t, merged, 1)
		assert.Equal(t, rect{x: 400, y: 100, w: 350, h: 500}, merged[0])
	})

	t.Run("chain of three collapses to one", func(t *testing.T) {
		rects := []rect{
			{x: 0, y: 0, w: 100, h: 100},
			{x: 200, y: 0, w: 100, h: 100},
			{x: 100, y: 0, w: 100, h: 100},
		}
		merged := mergeAdjacent(rects)
		require.Len(t, merged, 1)
		assert.Equal(t, rect{x: 0, y: 0, w: 300, h: 100}, merged[0])
	})

	t.Run("misaligned rects stay apart", func(t *testing.T) {
		rects := []rect{
			{x: 0, y: 0, w: 300, h: 200},
			{x: 0, y: 250, w: 300, h: 100},
		}
		merged := mergeAdjacent(rects)
		assert.Len(t, merged, 2)
	})
}

func TestBestRect(t *testing.T) {
	rects := []rect{
		{x: 0, y: 0, w: 500, h: 500},
		{x: 500, y: 0, w: 300, h: 300},
	}

	idx := bestRect(rects, 250, 250, 250*250)
	assert.Equal(t, 1, idx, "tighter rectangle wins")

	idx = bestRect(rects, 400, 400, 400*400)
	assert.Equal(t, 0, idx)

	idx = bestRect(rects, 600, 600, 600*600)
	assert.Equal(t, -1, idx)
}
