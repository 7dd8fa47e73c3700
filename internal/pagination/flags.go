package pagination

import (
	"errors"
	"fmt"
)

// Flag validation limits.
const (
	MinPage     = 1
	MinPageSize = 1
	MaxPageSize = 1000
)

// Common validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = errors.New("page-size must be between 1 and 1000")
)

// Params holds the --page and --page-size flags of a list command.
// A zero Page means "first page"; a zero PageSize means "use the configured default".
type Params struct {
	Page     int
	PageSize int
}

// Validate checks the flag values for obvious mistakes.
func (p Params) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < 0 || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// EffectivePage returns the requested page, defaulting to the first page.
func (p Params) EffectivePage() int {
	if p.Page < MinPage {
		return MinPage
	}
	return p.Page
}

// EffectivePageSize returns the requested page size or fallback when unset.
func (p Params) EffectivePageSize(fallback int) int {
	if p.PageSize >= MinPageSize {
		return p.PageSize
	}
	if fallback >= MinPageSize {
		return fallback
	}
	return DefaultPerPage
}
