package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// EnumerateCombinations is EnumerateCombinationsContext without a deadline.
func EnumerateCombinations(types []model.ModuleType, lower, upper float64, maxModules int) ([]model.Combination, error) {
	return EnumerateCombinationsContext(context.Background(), types, lower, upper, maxModules)
}

// EnumerateCombinationsContext lists every multiset of module types with
// 1..maxModules members whose total area lies in [lower, upper]. Each
// multiset appears once. Results are sorted by total area ascending; ties
// keep discovery order.
//
// When ctx is done the combinations found so far are returned, sorted the
// same way, with ctx.Err().
func EnumerateCombinationsContext(ctx context.Context, types []model.ModuleType, lower, upper float64, maxModules int) ([]model.Combination, error) {
	if err := validateModules(types); err != nil {
		return nil, err
	}
	if lower > upper {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidBounds, lower, upper)
	}
	if maxModules < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidModuleCap, maxModules)
	}

	e := &enumerator{
		ctx:    ctx,
		areas:  make([]float64, len(types)),
		counts: make([]int, len(types)),
		lower:  lower,
		upper:  upper,
		max:    maxModules,
	}
	for i, t := range types {
		e.areas[i] = t.Area()
	}

	err := e.visit(0, 0, 0)
	sort.SliceStable(e.found, func(i, j int) bool {
		return e.found[i].TotalArea < e.found[j].TotalArea
	})
	if e.found == nil {
		e.found = []model.Combination{}
	}
	return e.found, err
}

type enumerator struct {
	ctx          context.Context
	areas        []float64
	counts       []int
	lower, upper float64
	max          int
	found        []model.Combination
}

// visit extends the current count vector with types at index start or
// later, so each multiset is generated exactly once.
func (e *enumerator) visit(start, used int, sum float64) error {
	if err := e.ctx.Err(); err != nil {
		return err
	}
	if used > 0 && sum >= e.lower-geom.Epsilon && sum <= e.upper+geom.Epsilon {
		e.record(sum)
	}
	if used == e.max || sum > e.upper+geom.Epsilon {
		return nil
	}
	for i := start; i < len(e.areas); i++ {
		e.counts[i]++
		err := e.visit(i, used+1, sum+e.areas[i])
		e.counts[i]--
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *enumerator) record(sum float64) {
	counts := make(map[int]int)
	for i, n := range e.counts {
		if n > 0 {
			counts[i] = n
		}
	}
	e.found = append(e.found, model.Combination{Counts: counts, TotalArea: sum})
}

// DeriveAreaBand computes the combination area band for a site.
func DeriveAreaBand(site model.Site, types []model.ModuleType, settings model.Settings) (model.AreaBand, error) {
	if err := site.Validate(); err != nil {
		return model.AreaBand{}, err
	}
	if err := validateModules(types); err != nil {
		return model.AreaBand{}, err
	}
	return model.CalculateAreaBand(site, types, settings), nil
}
