package engine

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// Stats computes the summary statistics of one layout.
func Stats(layout model.Layout) model.LayoutStats {
	w, h := layout.Size()
	st := model.LayoutStats{
		Modules:         len(layout),
		ModuleArea:      layout.ModuleArea(),
		BoundingWidth:   w,
		BoundingHeight:  h,
		BoundingArea:    w * h,
		PerimeterLength: geom.TotalLength(ExtractPerimeter(layout)),
	}
	if st.BoundingArea > 0 {
		st.Efficiency = st.ModuleArea / st.BoundingArea * 100
	}
	if short := math.Min(w, h); short > 0 {
		st.AspectRatio = math.Max(w, h) / short
	}
	return st
}

// RankLayouts returns a copy of layouts ordered by the given mode. Equal
// scores keep discovery order. Unknown modes behave like RankNone.
func RankLayouts(layouts []model.Layout, by model.RankMode) []model.Layout {
	out := make([]model.Layout, len(layouts))
	copy(out, layouts)

	var score func(model.LayoutStats) float64
	switch by {
	case model.RankSquareness:
		score = func(s model.LayoutStats) float64 { return s.AspectRatio }
	case model.RankCompactness:
		score = func(s model.LayoutStats) float64 { return s.PerimeterLength }
	default:
		return out
	}

	scores := make(map[int]float64, len(out))
	idx := make([]int, len(out))
	for i := range out {
		idx[i] = i
		scores[i] = score(Stats(out[i]))
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] < scores[idx[b]]-geom.Epsilon
	})

	ranked := make([]model.Layout, len(idx))
	for i, j := range idx {
		ranked[i] = out[j]
	}
	return ranked
}

// ComparisonResult holds the arrangement outcome of one combination.
type ComparisonResult struct {
	Index       int // 1-based position in the combination list
	Combination model.Combination
	Layouts     int
	Best        *model.LayoutStats // first layout after ranking, nil when none fit
	Err         error
}

// CompareCombinations runs the packer for every combination and reports how
// many layouts each admits. It stops early only when ctx is done.
func CompareCombinations(ctx context.Context, settings model.Settings, types []model.ModuleType, combos []model.Combination) ([]ComparisonResult, error) {
	packer := New(settings)
	results := make([]ComparisonResult, 0, len(combos))

	for i, c := range combos {
		res := ComparisonResult{Index: i + 1, Combination: c}
		modules, err := c.Expand(types)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		layouts, err := packer.Pack(ctx, settings.Site, modules, settings.Reference())
		if err != nil && ctx.Err() != nil {
			return results, err
		}
		res.Err = err
		res.Layouts = len(layouts)
		if len(layouts) > 0 {
			best := Stats(RankLayouts(layouts, settings.Rank)[0])
			res.Best = &best
		}
		results = append(results, res)
	}
	return results, nil
}

// SelectCombination returns the n-th (1-based) combination.
func SelectCombination(combos []model.Combination, n int) (model.Combination, error) {
	if n < 1 || n > len(combos) {
		return model.Combination{}, fmt.Errorf("%w: %d of %d", ErrNoSuchCombination, n, len(combos))
	}
	return combos[n-1], nil
}
