package model

import "errors"

var (
	// ErrInvalidSite indicates a site with a non-positive width or height.
	ErrInvalidSite = errors.New("model: site dimensions must be positive")
	// ErrInvalidModule indicates a module type with a non-positive dimension.
	ErrInvalidModule = errors.New("model: module dimensions must be positive")
	// ErrTypeIndexOutOfRange indicates a combination referring to a missing module type.
	ErrTypeIndexOutOfRange = errors.New("model: module type index out of range")
	// ErrInvalidCount indicates a combination entry with a non-positive count.
	ErrInvalidCount = errors.New("model: module count must be positive")
)
