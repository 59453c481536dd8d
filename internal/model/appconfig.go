package model

// AppConfig holds application-wide preferences, default settings and the
// module type catalog used when no import file is given.
type AppConfig struct {
	// Defaults applied to every run
	DefaultSiteWidth        float64  `json:"default_site_width" toml:"default_site_width"`
	DefaultSiteHeight       float64  `json:"default_site_height" toml:"default_site_height"`
	DefaultBuildingCoverage float64  `json:"default_building_coverage" toml:"default_building_coverage"`
	DefaultSpaceReduction   float64  `json:"default_space_reduction" toml:"default_space_reduction"`
	DefaultMaxModules       int      `json:"default_max_modules" toml:"default_max_modules"`
	DefaultMaxSolutions     int      `json:"default_max_solutions" toml:"default_max_solutions"`
	DefaultSearchTimeout    int      `json:"default_search_timeout" toml:"default_search_timeout"`
	DefaultRank             RankMode `json:"default_rank" toml:"default_rank"`

	ModuleTypes []ModuleType `json:"module_types" toml:"module_types"`

	// Application preferences
	ServerAddr    string   `json:"server_addr" toml:"server_addr"`
	RecentOutputs []string `json:"recent_outputs" toml:"recent_outputs"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings and the default catalog.
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultSiteWidth:        defaults.Site.Width,
		DefaultSiteHeight:       defaults.Site.Height,
		DefaultBuildingCoverage: defaults.BuildingCoverage,
		DefaultSpaceReduction:   defaults.SpaceReduction,
		DefaultMaxModules:       defaults.MaxModules,
		DefaultMaxSolutions:     defaults.MaxSolutions,
		DefaultSearchTimeout:    defaults.SearchTimeout,
		DefaultRank:             defaults.Rank,
		ModuleTypes:             DefaultInventory().Modules,
		ServerAddr:              ":8080",
		RecentOutputs:           []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into s.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.Site = Site{Width: c.DefaultSiteWidth, Height: c.DefaultSiteHeight}
	s.BuildingCoverage = c.DefaultBuildingCoverage
	s.SpaceReduction = c.DefaultSpaceReduction
	s.MaxModules = c.DefaultMaxModules
	s.MaxSolutions = c.DefaultMaxSolutions
	s.SearchTimeout = c.DefaultSearchTimeout
	if c.DefaultRank != "" {
		s.Rank = c.DefaultRank
	}
}

// AddRecentOutput records path at the front of RecentOutputs, dropping
// duplicates and keeping at most 10 entries.
func (c *AppConfig) AddRecentOutput(path string) {
	recent := []string{path}
	for _, p := range c.RecentOutputs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentOutputs = recent
}
