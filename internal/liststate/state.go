package liststate

import (
	"github.com/rshade/schoolconsole/internal/pagination"
	"github.com/rshade/schoolconsole/internal/record"
)

// State is the immutable list state of one module instance.
//
// Invariant: 1 <= CurrentPage() <= max(TotalPages(), 1) after every transition.
type State[T record.Record] struct {
	matcher    Matcher[T]
	perPage    int
	items      []T
	filtered   []T
	loading    bool
	visibility record.Visibility
	filter     Filter
	page       int
	seq        uint64
	err        error
	diagnostic string
}

// New returns an empty, idle state showing the active collection.
func New[T record.Record](matcher Matcher[T], perPage int) State[T] {
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return State[T]{
		matcher:    matcher,
		perPage:    perPage,
		items:      []T{},
		filtered:   []T{},
		visibility: record.VisibilityActive,
		page:       1,
	}
}

// LoadStarted marks a new request for the given collection and returns the
// sequence number its response must carry. Switching visibility resets the
// page to 1. The current items stay visible until the response arrives.
func (s State[T]) LoadStarted(v record.Visibility) (State[T], uint64) {
	s.seq++
	s.loading = true
	if v != s.visibility {
		s.visibility = v
		s.page = 1
	}
	return s, s.seq
}

// LoadSucceeded replaces the collection. Responses for any sequence other
// than the latest issued are discarded.
func (s State[T]) LoadSucceeded(seq uint64, items []T) State[T] {
	if seq != s.seq {
		return s
	}
	if items == nil {
		items = []T{}
	}
	s.items = items
	s.loading = false
	s.err = nil
	s.diagnostic = ""
	return s.refilter()
}

// LoadMalformed handles a response whose payload was not a sequence: the
// collection becomes empty and the diagnostic is kept for display.
func (s State[T]) LoadMalformed(seq uint64, diagnostic string) State[T] {
	if seq != s.seq {
		return s
	}
	s = s.LoadSucceeded(seq, []T{})
	s.diagnostic = diagnostic
	return s
}

// LoadFailed records a failed load. The previous collection stays in place.
func (s State[T]) LoadFailed(seq uint64, err error) State[T] {
	if seq != s.seq {
		return s
	}
	s.loading = false
	s.err = err
	return s
}

// FilterChanged applies a new filter. The page is clamped, not reset.
func (s State[T]) FilterChanged(f Filter) State[T] {
	s.filter = f
	return s.refilter()
}

// GoToPage moves to page n. Pages outside [1, TotalPages()] are ignored.
func (s State[T]) GoToPage(n int) State[T] {
	if n < 1 || n > s.TotalPages() {
		return s
	}
	s.page = n
	return s
}

// RequestPage moves to page n clamped into [1, max(TotalPages(), 1)].
func (s State[T]) RequestPage(n int) State[T] {
	s.page = n
	return s.clamp()
}

// Next moves one page forward; a no-op on the last page.
func (s State[T]) Next() State[T] {
	return s.GoToPage(s.page + 1)
}

// Previous moves one page back; a no-op on the first page.
func (s State[T]) Previous() State[T] {
	return s.GoToPage(s.page - 1)
}

func (s State[T]) refilter() State[T] {
	s.filtered = s.matcher.apply(s.items, s.filter)
	return s.clamp()
}

func (s State[T]) clamp() State[T] {
	last := max(s.TotalPages(), 1)
	switch {
	case s.page < 1:
		s.page = 1
	case s.page > last:
		s.page = last
	}
	return s
}

// Items returns the raw collection as loaded.
func (s State[T]) Items() []T { return s.items }

// Filtered returns the records matching the current filter.
func (s State[T]) Filtered() []T { return s.filtered }

// Page returns the records on the current page.
func (s State[T]) Page() []T {
	return pagination.Paginate(s.filtered, s.page, s.perPage)
}

// CurrentPage returns the 1-based current page.
func (s State[T]) CurrentPage() int { return s.page }

// PerPage returns the page size.
func (s State[T]) PerPage() int { return s.perPage }

// TotalPages returns the page count of the filtered collection.
func (s State[T]) TotalPages() int {
	return pagination.TotalPages(len(s.filtered), s.perPage)
}

// Window returns the page selector for the current page.
func (s State[T]) Window(maxVisible int) pagination.Window {
	return pagination.PageWindow(s.page, s.TotalPages(), maxVisible)
}

// Meta returns pagination metadata for the filtered collection.
func (s State[T]) Meta() pagination.Meta {
	return pagination.NewMeta(s.page, s.perPage, len(s.filtered))
}

// Loading reports whether a request is in flight.
func (s State[T]) Loading() bool { return s.loading }

// Err returns the error of the last failed load, if it was the latest request.
func (s State[T]) Err() error { return s.err }

// Diagnostic describes a malformed response that was rendered as empty.
func (s State[T]) Diagnostic() string { return s.diagnostic }

// Visibility returns which server collection is shown.
func (s State[T]) Visibility() record.Visibility { return s.visibility }

// Filter returns the current filter.
func (s State[T]) Filter() Filter { return s.filter }

// Seq returns the sequence number of the latest issued request.
func (s State[T]) Seq() uint64 { return s.seq }

// Find returns the loaded record with the given id.
func (s State[T]) Find(id string) (T, bool) {
	for _, item := range s.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
