package model

import "math"

// AreaBand is the total module area range a combination must fall in,
// plus the cap on how many modules a combination may hold.
type AreaBand struct {
	LandArea   float64 `json:"land_area"`
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	MaxModules int     `json:"max_modules"`
}

// CalculateAreaBand derives the band from the site and coverage settings.
// upper is BuildingCoverage of the land area and lower is SpaceReduction
// below upper. When settings.MaxModules is zero the cap is the number of
// the smallest module type that fits in upper; otherwise the smaller of the
// two is used.
func CalculateAreaBand(site Site, types []ModuleType, settings Settings) AreaBand {
	land := site.Area()
	upper := land * settings.BuildingCoverage
	lower := upper - settings.SpaceReduction*upper

	band := AreaBand{LandArea: land, Lower: lower, Upper: upper}

	smallest := math.MaxFloat64
	for _, t := range types {
		if a := t.Area(); a > 0 && a < smallest {
			smallest = a
		}
	}
	if smallest == math.MaxFloat64 || upper <= 0 {
		band.MaxModules = settings.MaxModules
		return band
	}

	derived := int(math.Ceil(upper / smallest))
	if settings.MaxModules > 0 && settings.MaxModules < derived {
		derived = settings.MaxModules
	}
	band.MaxModules = derived
	return band
}
