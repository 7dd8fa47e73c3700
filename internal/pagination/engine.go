package pagination

import "strconv"

// Defaults used by every list unless configured otherwise.
const (
	DefaultPerPage    = 8
	DefaultMaxVisible = 5
)

// window shape constants for PageWindow.
const (
	leadingPages  = 4 // pages shown before the trailing ellipsis near the start
	trailingPages = 4 // pages shown after the leading ellipsis near the end
	edgeThreshold = 3 // distance from an edge that switches to the edge layouts
)

// Paginate returns the items on the given 1-based page.
// It returns an empty slice when page is out of range; it never clamps.
func Paginate[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage <= 0 {
		return []T{}
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := min(start+perPage, len(items))
	return items[start:end]
}

// TotalPages returns ceil(count/perPage). TotalPages(0, k) is 0.
func TotalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	pages := count / perPage
	if count%perPage > 0 {
		pages++
	}
	return pages
}

// Token is one element of a page selector: either a page number or an ellipsis.
type Token struct {
	Page     int
	Ellipsis bool
}

// String renders the token as a page number or "…".
func (t Token) String() string {
	if t.Ellipsis {
		return "…"
	}
	return strconv.Itoa(t.Page)
}

// Window is an ordered page selector. It never holds more than two ellipses.
type Window []Token

// Pages returns the page numbers in the window, skipping ellipses.
func (w Window) Pages() []int {
	pages := make([]int, 0, len(w))
	for _, t := range w {
		if !t.Ellipsis {
			pages = append(pages, t.Page)
		}
	}
	return pages
}

// Strings renders every token.
func (w Window) Strings() []string {
	out := make([]string, len(w))
	for i, t := range w {
		out[i] = t.String()
	}
	return out
}

// PageWindow builds the page selector for the current page.
//
// When total fits within maxVisible every page is listed. Otherwise both
// endpoints are always present and the layout depends on where current sits:
// near the start (1,2,3,4,…,N), near the end (1,…,N-3..N) or in the middle
// (1,…,c-1,c,c+1,…,N).
func PageWindow(current, total, maxVisible int) Window {
	if total <= 0 {
		return Window{}
	}
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}

	// The edge layouts need at least leadingPages+1 pages to stay well formed.
	if total <= maxVisible || total <= leadingPages+1 {
		return pageRange(1, total)
	}

	ellipsis := Token{Ellipsis: true}
	switch {
	case current <= edgeThreshold:
		w := pageRange(1, leadingPages)
		return append(w, ellipsis, Token{Page: total})
	case current >= total-2:
		w := Window{{Page: 1}, ellipsis}
		return append(w, pageRange(total-trailingPages+1, total)...)
	default:
		w := Window{{Page: 1}, ellipsis}
		w = append(w, pageRange(current-1, current+1)...)
		return append(w, ellipsis, Token{Page: total})
	}
}

func pageRange(from, to int) Window {
	w := make(Window, 0, to-from+1)
	for p := from; p <= to; p++ {
		w = append(w, Token{Page: p})
	}
	return w
}
