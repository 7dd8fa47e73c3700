// Package record defines the minimal contract every console entity satisfies:
// a stable identifier and an ACTIVE/INACTIVE lifecycle status.
package record

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle status carried by every record.
type Status string

// Lifecycle statuses. There is no hard-deleted state.
const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ErrInvalidStatus is returned when a status string is neither ACTIVE nor INACTIVE.
var ErrInvalidStatus = errors.New("status must be ACTIVE or INACTIVE")

// ParseStatus parses a status case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidStatus, s)
	}
}

// IsActive reports whether the status is ACTIVE.
func (s Status) IsActive() bool {
	return s == StatusActive
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Visibility selects which server collection a list shows.
type Visibility int

const (
	// VisibilityActive loads the active collection (GET /{resource}).
	VisibilityActive Visibility = iota
	// VisibilityInactive loads the inactive collection (GET /{resource}/inactive).
	VisibilityInactive
)

// String returns the status name matching the visibility.
func (v Visibility) String() string {
	return string(v.Status())
}

// Status returns the record status shown by this visibility.
func (v Visibility) Status() Status {
	if v == VisibilityInactive {
		return StatusInactive
	}
	return StatusActive
}

// Toggle returns the opposite visibility.
func (v Visibility) Toggle() Visibility {
	if v == VisibilityInactive {
		return VisibilityActive
	}
	return VisibilityInactive
}

// Record is any entity the generic list and lifecycle machinery can manage.
type Record interface {
	RecordID() string
	RecordStatus() Status
}
