package engine

import (
	"context"
	"errors"
	"sort"

	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// Packer enumerates row-by-row arrangements of a module list on a site.
// A Packer holds no search state and may be shared; every Pack call runs an
// independent search.
type Packer struct {
	Settings model.Settings
}

func New(settings model.Settings) *Packer {
	return &Packer{Settings: settings}
}

// errSolutionLimit stops the search once MaxSolutions layouts are kept.
var errSolutionLimit = errors.New("engine: solution limit reached")

// search is the state of one Pack call.
type search struct {
	ctx     context.Context
	site    model.Site
	modules []model.ModuleType
	ref     geom.Point
	limit   int

	placed  []geom.Rect
	seen    map[model.Signature]struct{}
	layouts []model.Layout
}

// Pack returns every distinct arrangement of modules that fits on site,
// each centered on ref. Modules are placed largest first, left to right in
// rows, trying both orientations and both "continue the row" and "start a
// new row" at every step.
//
// Modules that cannot all be placed yield an empty result and a nil error.
// When ctx is done the layouts found so far are returned with ctx.Err().
func (p *Packer) Pack(ctx context.Context, site model.Site, modules []model.ModuleType, ref geom.Point) ([]model.Layout, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	if err := validateModules(modules); err != nil {
		return nil, err
	}

	sorted := make([]model.ModuleType, len(modules))
	copy(sorted, modules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})

	s := &search{
		ctx:     ctx,
		site:    site,
		modules: sorted,
		ref:     ref,
		limit:   p.Settings.MaxSolutions,
		placed:  make([]geom.Rect, 0, len(sorted)),
		seen:    make(map[model.Signature]struct{}),
	}

	err := s.place(0, 0, 0, 0)
	if errors.Is(err, errSolutionLimit) {
		err = nil
	}
	if s.layouts == nil {
		s.layouts = []model.Layout{}
	}
	return s.layouts, err
}

// orientations returns (L,W) and, for non-square modules, (W,L).
func orientations(m model.ModuleType) [][2]float64 {
	if geom.NearlyEqual(m.Length, m.Width) {
		return [][2]float64{{m.Length, m.Width}}
	}
	return [][2]float64{{m.Length, m.Width}, {m.Width, m.Length}}
}

func (s *search) push(r geom.Rect) { s.placed = append(s.placed, r) }
func (s *search) pop()             { s.placed = s.placed[:len(s.placed)-1] }

func (s *search) place(index int, offsetX, offsetY, rowHeight float64) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	w, h := s.site.Width, s.site.Height

	if index == len(s.modules) {
		if offsetY+rowHeight <= h+geom.Epsilon {
			return s.record()
		}
		return nil
	}

	m := s.modules[index]

	// Continue the current row.
	for _, o := range orientations(m) {
		x, y := o[0], o[1]
		rh := max(rowHeight, y)
		if offsetX+x <= w+geom.Epsilon && offsetY+rh <= h+geom.Epsilon {
			s.push(geom.NewRect(offsetX, offsetY, x, y))
			err := s.place(index+1, offsetX+x, offsetY, rh)
			s.pop()
			if err != nil {
				return err
			}
		}
	}

	// Start a new row above the current one.
	if offsetX > 0 {
		newY := offsetY + rowHeight
		if newY < h {
			for _, o := range orientations(m) {
				x, y := o[0], o[1]
				if x <= w+geom.Epsilon && newY+y <= h+geom.Epsilon {
					s.push(geom.NewRect(0, newY, x, y))
					err := s.place(index+1, x, newY, y)
					s.pop()
					if err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// record keeps a centered copy of the placed rectangles if its signature is
// new.
func (s *search) record() error {
	layout := NormalizeLayout(model.Layout(s.placed).Clone(), s.ref)
	sig := layout.Signature()
	if _, ok := s.seen[sig]; ok {
		return nil
	}
	s.seen[sig] = struct{}{}
	s.layouts = append(s.layouts, layout)
	if s.limit > 0 && len(s.layouts) >= s.limit {
		return errSolutionLimit
	}
	return nil
}
