package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/ModuPlan/internal/engine"
	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

var errBadRequest = errors.New("server: bad request")

type combinationsRequest struct {
	Site             *model.Site        `json:"site"`
	ModuleTypes      []model.ModuleType `json:"module_types"`
	Lower            *float64           `json:"lower"`
	Upper            *float64           `json:"upper"`
	MaxModules       int                `json:"max_modules"`
	BuildingCoverage *float64           `json:"building_coverage"`
	SpaceReduction   *float64           `json:"space_reduction"`
}

type combinationView struct {
	Index       int         `json:"index"`
	Counts      map[int]int `json:"counts"`
	TotalArea   float64     `json:"total_area"`
	Modules     int         `json:"modules"`
	Description string      `json:"description"`
}

type combinationsResponse struct {
	Band         model.AreaBand    `json:"band"`
	Count        int               `json:"count"`
	Partial      bool              `json:"partial"`
	Combinations []combinationView `json:"combinations"`
}

type arrangementsRequest struct {
	Site            *model.Site        `json:"site"`
	ModuleTypes     []model.ModuleType `json:"module_types"`
	Combination     map[int]int        `json:"combination"`
	ReferenceCenter *geom.Point        `json:"reference_center"`
	MaxSolutions    *int               `json:"max_solutions"`
	Rank            model.RankMode     `json:"rank"`
	Preview         bool               `json:"preview"`
}

type layoutView struct {
	Modules model.Layout      `json:"modules"`
	Stats   model.LayoutStats `json:"stats"`
}

type arrangementsResponse struct {
	Count   int          `json:"count"`
	Partial bool         `json:"partial"`
	Layouts []layoutView `json:"layouts"`
}

type perimeterRequest struct {
	Layout model.Layout `json:"layout"`
}

type perimeterResponse struct {
	Segments []geom.Segment `json:"segments"`
	Length   float64        `json:"length"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCombinations(c *gin.Context) {
	var req combinationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	settings := s.settings
	if req.Site != nil {
		settings.Site = *req.Site
	}
	if req.BuildingCoverage != nil {
		settings.BuildingCoverage = *req.BuildingCoverage
	}
	if req.SpaceReduction != nil {
		settings.SpaceReduction = *req.SpaceReduction
	}
	band, err := engine.DeriveAreaBand(settings.Site, req.ModuleTypes, settings)
	if err != nil {
		s.fail(c, err)
		return
	}
	if req.Lower != nil {
		band.Lower = *req.Lower
	}
	if req.Upper != nil {
		band.Upper = *req.Upper
	}
	if req.MaxModules > 0 {
		band.MaxModules = req.MaxModules
	}

	ctx, cancel := s.searchContext(c, settings)
	defer cancel()

	combos, err := engine.EnumerateCombinationsContext(ctx, req.ModuleTypes, band.Lower, band.Upper, band.MaxModules)
	partial := errors.Is(err, context.DeadlineExceeded)
	if err != nil && !partial {
		s.fail(c, err)
		return
	}

	resp := combinationsResponse{
		Band:         band,
		Count:        len(combos),
		Partial:      partial,
		Combinations: make([]combinationView, len(combos)),
	}
	for i, combo := range combos {
		resp.Combinations[i] = combinationView{
			Index:       i + 1,
			Counts:      combo.Counts,
			TotalArea:   combo.TotalArea,
			Modules:     combo.ModuleCount(),
			Description: combo.Describe(req.ModuleTypes),
		}
	}
	s.logger.Debug("combinations", "band", fmt.Sprintf("%.2f-%.2f", band.Lower, band.Upper), "found", len(combos), "partial", partial)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleArrangements(c *gin.Context) {
	var req arrangementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	settings := s.settings
	if req.Site != nil {
		settings.Site = *req.Site
	}
	if req.ReferenceCenter != nil {
		settings.ReferenceCenter = req.ReferenceCenter
	}
	if req.MaxSolutions != nil {
		settings.MaxSolutions = *req.MaxSolutions
	}
	if req.Rank != "" {
		settings.Rank = req.Rank
	}

	modules := req.ModuleTypes
	if req.Combination != nil {
		var err error
		modules, err = model.Combination{Counts: req.Combination}.Expand(req.ModuleTypes)
		if err != nil {
			s.fail(c, err)
			return
		}
	}

	if req.Preview {
		layout, err := engine.PreviewLayout(settings.Site, modules, settings.Reference())
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, arrangementsResponse{
			Count:   1,
			Layouts: []layoutView{{Modules: layout, Stats: engine.Stats(layout)}},
		})
		return
	}

	ctx, cancel := s.searchContext(c, settings)
	defer cancel()

	layouts, err := engine.New(settings).Pack(ctx, settings.Site, modules, settings.Reference())
	partial := errors.Is(err, context.DeadlineExceeded)
	if err != nil && !partial {
		s.fail(c, err)
		return
	}
	layouts = engine.RankLayouts(layouts, settings.Rank)

	resp := arrangementsResponse{Count: len(layouts), Partial: partial, Layouts: make([]layoutView, len(layouts))}
	for i, l := range layouts {
		resp.Layouts[i] = layoutView{Modules: l, Stats: engine.Stats(l)}
	}
	s.logger.Debug("arrangements", "modules", len(modules), "layouts", len(layouts), "partial", partial)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePerimeter(c *gin.Context) {
	var req perimeterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	segs := engine.ExtractPerimeter(req.Layout)
	if segs == nil {
		segs = []geom.Segment{}
	}
	c.JSON(http.StatusOK, perimeterResponse{Segments: segs, Length: geom.TotalLength(segs)})
}
