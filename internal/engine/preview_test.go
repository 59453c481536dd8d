package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ModuPlan/internal/model"
)

func TestPreviewLayout_SameHeightSharesRow(t *testing.T) {
	site := model.Site{Width: 10, Height: 10}
	l, err := PreviewLayout(site, []model.ModuleType{mod(6, 4), mod(4, 4)}, site.Center())
	require.NoError(t, err)
	require.Len(t, l, 2)

	min0, _ := l[0].Bounds()
	min1, _ := l[1].Bounds()
	assert.InDelta(t, min0.Y, min1.Y, 1e-9)
	assert.InDelta(t, 6.0, min1.X-min0.X, 1e-9)
	assertNoOverlap(t, l)
}

func TestPreviewLayout_DifferentHeightOpensRow(t *testing.T) {
	site := model.Site{Width: 10, Height: 10}
	l, err := PreviewLayout(site, []model.ModuleType{mod(6, 4), mod(3, 3)}, site.Center())
	require.NoError(t, err)
	require.Len(t, l, 2)

	min0, _ := l[0].Bounds()
	min1, _ := l[1].Bounds()
	assert.InDelta(t, 4.0, min1.Y-min0.Y, 1e-9)
	assert.InDelta(t, min0.X, min1.X, 1e-9)
}

func TestPreviewLayout_RotatesToMatchRow(t *testing.T) {
	site := model.Site{Width: 10, Height: 10}
	// 4x6 does not match the row height 4 as given, but 6x4 does.
	l, err := PreviewLayout(site, []model.ModuleType{mod(3, 4), mod(4, 6)}, site.Center())
	require.NoError(t, err)
	assert.InDelta(t, 6.0, l[1].Width(), 1e-9)
	assert.InDelta(t, 4.0, l[1].Height(), 1e-9)
}

func TestPreviewLayout_ModuleDoesNotFit(t *testing.T) {
	site := model.Site{Width: 5, Height: 5}
	_, err := PreviewLayout(site, []model.ModuleType{mod(6, 6)}, site.Center())
	assert.ErrorIs(t, err, ErrModuleDoesNotFit)
}

func TestPreviewLayout_Validation(t *testing.T) {
	_, err := PreviewLayout(model.Site{Width: 5, Height: 5}, nil, model.Site{}.Center())
	assert.ErrorIs(t, err, ErrNoModules)
}
