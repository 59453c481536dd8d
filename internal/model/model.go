package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/piwi3910/ModuPlan/internal/geom"
)

// ModuleType is a distinct (length, width) building block. A combination
// places some number of copies of each type; an expanded module list is a
// []ModuleType with repeats.
type ModuleType struct {
	ID     string  `json:"id" toml:"id"`
	Label  string  `json:"label" toml:"label"`
	Length float64 `json:"length" toml:"length"` // site units
	Width  float64 `json:"width" toml:"width"`   // site units
}

func NewModuleType(label string, length, width float64) ModuleType {
	return ModuleType{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Length: length,
		Width:  width,
	}
}

// Area returns Length*Width.
func (m ModuleType) Area() float64 {
	return m.Length * m.Width
}

// Validate rejects non-positive dimensions.
func (m ModuleType) Validate() error {
	if m.Length <= 0 || m.Width <= 0 {
		return fmt.Errorf("%w: %q is %gx%g", ErrInvalidModule, m.Label, m.Length, m.Width)
	}
	return nil
}

// Site is the rectangular area available for placement, anchored at the
// origin.
type Site struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Area returns Width*Height.
func (s Site) Area() float64 {
	return s.Width * s.Height
}

// Center returns the middle of [0,Width]x[0,Height].
func (s Site) Center() geom.Point {
	return geom.Pt(s.Width/2, s.Height/2)
}

// Validate rejects non-positive dimensions.
func (s Site) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidSite, s.Width, s.Height)
	}
	return nil
}

// Combination is a count vector over module types. Counts only holds
// nonzero entries, keyed by index into the module type list.
type Combination struct {
	Counts    map[int]int `json:"counts"`
	TotalArea float64     `json:"total_area"`
}

// ModuleCount returns the number of modules the combination places.
func (c Combination) ModuleCount() int {
	n := 0
	for _, count := range c.Counts {
		n += count
	}
	return n
}

// Indices returns the module type indices in ascending order.
func (c Combination) Indices() []int {
	idx := make([]int, 0, len(c.Counts))
	for i := range c.Counts {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Expand turns the combination into a concrete module list, type by type
// in index order.
func (c Combination) Expand(types []ModuleType) ([]ModuleType, error) {
	var modules []ModuleType
	for _, i := range c.Indices() {
		if i < 0 || i >= len(types) {
			return nil, fmt.Errorf("%w: %d (have %d types)", ErrTypeIndexOutOfRange, i, len(types))
		}
		count := c.Counts[i]
		if count <= 0 {
			return nil, fmt.Errorf("%w: %d of type %d", ErrInvalidCount, count, i)
		}
		for n := 0; n < count; n++ {
			modules = append(modules, types[i])
		}
	}
	return modules, nil
}

// String renders the combination as "2 x Type 1 + 1 x Type 3 = 704".
// Type numbers are 1-based.
func (c Combination) String() string {
	parts := make([]string, 0, len(c.Counts))
	for _, i := range c.Indices() {
		parts = append(parts, fmt.Sprintf("%d x Type %d", c.Counts[i], i+1))
	}
	return fmt.Sprintf("%s = %g", strings.Join(parts, " + "), c.TotalArea)
}

// Describe is like String but uses the type labels.
func (c Combination) Describe(types []ModuleType) string {
	parts := make([]string, 0, len(c.Counts))
	for _, i := range c.Indices() {
		name := fmt.Sprintf("Type %d", i+1)
		if i >= 0 && i < len(types) && types[i].Label != "" {
			name = types[i].Label
		}
		parts = append(parts, fmt.Sprintf("%d x %s", c.Counts[i], name))
	}
	return fmt.Sprintf("%s = %g", strings.Join(parts, " + "), c.TotalArea)
}
