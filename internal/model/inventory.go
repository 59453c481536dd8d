package model

import "github.com/google/uuid"

// SitePreset is a reusable named site definition.
type SitePreset struct {
	ID     string  `json:"id" toml:"id"`
	Name   string  `json:"name" toml:"name"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// NewSitePreset creates a new SitePreset with a generated ID.
func NewSitePreset(name string, width, height float64) SitePreset {
	return SitePreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  width,
		Height: height,
	}
}

// ToSite converts the preset into a Site.
func (sp SitePreset) ToSite() Site {
	return Site{Width: sp.Width, Height: sp.Height}
}

// Inventory holds the user's saved module types and site presets.
type Inventory struct {
	Modules []ModuleType `json:"modules" toml:"modules"`
	Sites   []SitePreset `json:"sites" toml:"sites"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Modules: []ModuleType{
			NewModuleType("Studio 6x4", 6, 4),
			NewModuleType("Square 4x4", 4, 4),
			NewModuleType("Double 12x4", 12, 4),
			NewModuleType("Family 10x6", 10, 6),
		},
		Sites: []SitePreset{
			NewSitePreset("Plot 20x15", 20, 15),
			NewSitePreset("Plot 30x20", 30, 20),
			NewSitePreset("Corner 40x25", 40, 25),
		},
	}
}

// FindModuleByID returns a pointer to the module type with the given ID, or nil.
func (inv *Inventory) FindModuleByID(id string) *ModuleType {
	for i := range inv.Modules {
		if inv.Modules[i].ID == id {
			return &inv.Modules[i]
		}
	}
	return nil
}

// FindSiteByID returns a pointer to the site preset with the given ID, or nil.
func (inv *Inventory) FindSiteByID(id string) *SitePreset {
	for i := range inv.Sites {
		if inv.Sites[i].ID == id {
			return &inv.Sites[i]
		}
	}
	return nil
}

func (inv *Inventory) FindModuleByLabel(label string) *ModuleType {
	for i := range inv.Modules {
		if inv.Modules[i].Label == label {
			return &inv.Modules[i]
		}
	}
	return nil
}

func (inv *Inventory) FindSiteByName(name string) *SitePreset {
	for i := range inv.Sites {
		if inv.Sites[i].Name == name {
			return &inv.Sites[i]
		}
	}
	return nil
}

// Merge adds entries from other whose IDs are not already present and
// reports how many were added.
func (inv *Inventory) Merge(other Inventory) int {
	added := 0
	for _, m := range other.Modules {
		if inv.FindModuleByID(m.ID) == nil {
			inv.Modules = append(inv.Modules, m)
			added++
		}
	}
	for _, s := range other.Sites {
		if inv.FindSiteByID(s.ID) == nil {
			inv.Sites = append(inv.Sites, s)
			added++
		}
	}
	return added
}
