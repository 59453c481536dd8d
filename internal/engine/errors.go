package engine

import (
	"errors"

	"github.com/piwi3910/ModuPlan/internal/model"
)

var (
	// ErrInvalidSite and ErrInvalidModule are shared with the model package so
	// callers can match either with errors.Is.
	ErrInvalidSite   = model.ErrInvalidSite
	ErrInvalidModule = model.ErrInvalidModule

	// ErrNoModules indicates an empty module or module type list.
	ErrNoModules = errors.New("engine: at least one module is required")
	// ErrInvalidBounds indicates an area band whose lower bound exceeds the upper.
	ErrInvalidBounds = errors.New("engine: lower area bound exceeds upper bound")
	// ErrInvalidModuleCap indicates a combination size cap below one.
	ErrInvalidModuleCap = errors.New("engine: module cap must be at least 1")
	// ErrModuleDoesNotFit indicates the preview could not place a module even
	// in a fresh row.
	ErrModuleDoesNotFit = errors.New("engine: module does not fit in a new row")
	// ErrNoSuchCombination indicates a combination number outside the list.
	ErrNoSuchCombination = errors.New("engine: combination number out of range")
)

func validateModules(modules []model.ModuleType) error {
	if len(modules) == 0 {
		return ErrNoModules
	}
	for _, m := range modules {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
