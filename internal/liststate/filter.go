package liststate

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter is the operator's free-text search and optional category.
type Filter struct {
	Search   string
	Category string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && f.Category == ""
}

// Matcher tells the generic list which record fields the filter applies to.
type Matcher[T any] struct {
	// Fields returns the searchable text fields of a record.
	Fields func(T) []string
	// Category returns the record's category value. Nil disables category filtering.
	Category func(T) string
}

// apply returns the records matching f, preserving order.
func (m Matcher[T]) apply(items []T, f Filter) []T {
	if f.IsZero() {
		return items
	}

	// Casers carry state and are not shared across calls.
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.Search))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.Category != "" && (m.Category == nil || m.Category(item) != f.Category) {
			continue
		}
		if needle != "" && !m.matchesText(fold, item, needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (m Matcher[T]) matchesText(fold cases.Caser, item T, needle string) bool {
	if m.Fields == nil {
		return false
	}
	for _, field := range m.Fields(item) {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
