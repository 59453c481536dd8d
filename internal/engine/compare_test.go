package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

func TestStats_TwoSquares(t *testing.T) {
	st := Stats(model.Layout{geom.NewRect(0, 0, 1, 1), geom.NewRect(1, 0, 1, 1)})

	assert.Equal(t, 2, st.Modules)
	assert.InDelta(t, 2.0, st.ModuleArea, 1e-9)
	assert.InDelta(t, 2.0, st.BoundingArea, 1e-9)
	assert.InDelta(t, 100.0, st.Efficiency, 1e-9)
	assert.InDelta(t, 2.0, st.AspectRatio, 1e-9)
	assert.InDelta(t, 6.0, st.PerimeterLength, 1e-9)
}

func TestStats_Empty(t *testing.T) {
	st := Stats(nil)
	assert.Zero(t, st.Modules)
	assert.Zero(t, st.Efficiency)
	assert.Zero(t, st.AspectRatio)
}

func TestRankLayouts(t *testing.T) {
	strip := model.Layout{geom.NewRect(0, 0, 1, 1), geom.NewRect(1, 0, 1, 1), geom.NewRect(2, 0, 1, 1), geom.NewRect(3, 0, 1, 1)}
	block := model.Layout{geom.NewRect(0, 0, 1, 1), geom.NewRect(1, 0, 1, 1), geom.NewRect(0, 1, 1, 1), geom.NewRect(1, 1, 1, 1)}
	layouts := []model.Layout{strip, block}

	bySquare := RankLayouts(layouts, model.RankSquareness)
	require.Len(t, bySquare, 2)
	assert.Equal(t, block.Signature(), bySquare[0].Signature())

	byCompact := RankLayouts(layouts, model.RankCompactness)
	assert.Equal(t, block.Signature(), byCompact[0].Signature())

	none := RankLayouts(layouts, model.RankNone)
	assert.Equal(t, strip.Signature(), none[0].Signature())

	// input order untouched
	assert.Equal(t, strip.Signature(), layouts[0].Signature())
}

func TestCompareCombinations(t *testing.T) {
	s := defaultTestSettings()
	s.Site = model.Site{Width: 10, Height: 10}
	types := []model.ModuleType{mod(6, 4), mod(4, 4)}
	combos := []model.Combination{
		{Counts: map[int]int{0: 1, 1: 1}, TotalArea: 40},
		{Counts: map[int]int{5: 1}, TotalArea: 1},
		{Counts: map[int]int{0: 5}, TotalArea: 120},
	}

	results, err := CompareCombinations(context.Background(), s, types, combos)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Index)
	assert.Positive(t, results[0].Layouts)
	require.NotNil(t, results[0].Best)

	assert.ErrorIs(t, results[1].Err, model.ErrTypeIndexOutOfRange)

	assert.NoError(t, results[2].Err)
	assert.Zero(t, results[2].Layouts)
	assert.Nil(t, results[2].Best)
}

func TestSelectCombination(t *testing.T) {
	combos := []model.Combination{{TotalArea: 1}, {TotalArea: 2}}

	c, err := SelectCombination(combos, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.TotalArea)

	_, err = SelectCombination(combos, 0)
	assert.ErrorIs(t, err, ErrNoSuchCombination)
	_, err = SelectCombination(combos, 3)
	assert.ErrorIs(t, err, ErrNoSuchCombination)
}
