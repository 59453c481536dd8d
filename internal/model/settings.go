package model

import "github.com/piwi3910/ModuPlan/internal/geom"

// RankMode selects how arrangement results are ordered for presentation.
type RankMode string

const (
	RankNone        RankMode = "none"        // Discovery order
	RankSquareness  RankMode = "squareness"  // Bounding box closest to a square first
	RankCompactness RankMode = "compactness" // Shortest outline first
)

// Settings holds the inputs of one planning run.
type Settings struct {
	Site Site `json:"site" toml:"site"`

	// Area band: upper = BuildingCoverage * site area,
	// lower = upper - SpaceReduction * upper.
	BuildingCoverage float64 `json:"building_coverage" toml:"building_coverage"`
	SpaceReduction   float64 `json:"space_reduction" toml:"space_reduction"`

	MaxModules    int      `json:"max_modules" toml:"max_modules"`       // 0 = derive from smallest module area
	MaxSolutions  int      `json:"max_solutions" toml:"max_solutions"`   // 0 = unlimited
	SearchTimeout int      `json:"search_timeout" toml:"search_timeout"` // seconds, 0 = none
	Rank          RankMode `json:"rank" toml:"rank"`

	// ReferenceCenter is where layouts are centered. Nil centers on the site.
	ReferenceCenter *geom.Point `json:"reference_center,omitempty" toml:"reference_center,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		Site:             Site{Width: 100, Height: 80},
		BuildingCoverage: 0.6,
		SpaceReduction:   0.15,
		MaxModules:       0,
		MaxSolutions:     500,
		SearchTimeout:    30,
		Rank:             RankSquareness,
	}
}

// Reference returns the point layouts are centered on.
func (s Settings) Reference() geom.Point {
	if s.ReferenceCenter != nil {
		return *s.ReferenceCenter
	}
	return s.Site.Center()
}
