package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, perPage, want int
	}{
		{0, 8, 0},
		{0, 1, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{23, 8, 3},
		{24, 8, 3},
		{25, 8, 4},
		{100, 10, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.count, tt.perPage), "TotalPages(%d, %d)", tt.count, tt.perPage)
	}
}

func TestTotalPages_MatchesCeil(t *testing.T) {
	for k := 1; k <= 12; k++ {
		for n := 0; n <= 60; n++ {
			want := (n + k - 1) / k
			assert.Equal(t, want, TotalPages(n, k), "n=%d k=%d", n, k)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := seq(23)

	assert.Equal(t, seq(8), Paginate(items, 1, 8))
	assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16}, Paginate(items, 2, 8))
	assert.Equal(t, []int{17, 18, 19, 20, 21, 22, 23}, Paginate(items, 3, 8))
	assert.Empty(t, Paginate(items, 4, 8), "out-of-range page is empty, not clamped")
	assert.Empty(t, Paginate(items, 0, 8))
	assert.Empty(t, Paginate([]int{}, 1, 8))
}

func TestPaginate_IsPartition(t *testing.T) {
	for perPage := 1; perPage <= 10; perPage++ {
		for n := 0; n <= 40; n++ {
			items := seq(n)
			var joined []int
			for page := 1; page <= TotalPages(n, perPage); page++ {
				joined = append(joined, Paginate(items, page, perPage)...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			require.Equal(t, items, joined, "n=%d perPage=%d", n, perPage)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []string
	}{
		{name: "no pages", current: 1, total: 0, want: []string{}},
		{name: "single page", current: 1, total: 1, want: []string{"1"}},
		{name: "fits exactly", current: 3, total: 5, want: []string{"1", "2", "3", "4", "5"}},
		{name: "start of ten", current: 1, total: 10, want: []string{"1", "2", "3", "4", "…", "10"}},
		{name: "third of ten", current: 3, total: 10, want: []string{"1", "2", "3", "4", "…", "10"}},
		{name: "middle of ten", current: 5, total: 10, want: []string{"1", "…", "4", "5", "6", "…", "10"}},
		{name: "seventh of ten", current: 7, total: 10, want: []string{"1", "…", "6", "7", "8", "…", "10"}},
		{name: "eighth of ten", current: 8, total: 10, want: []string{"1", "…", "7", "8", "9", "10"}},
		{name: "end of ten", current: 10, total: 10, want: []string{"1", "…", "7", "8", "9", "10"}},
		{name: "six pages near end", current: 4, total: 6, want: []string{"1", "…", "3", "4", "5", "6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageWindow(tt.current, tt.total, DefaultMaxVisible)
			assert.Equal(t, tt.want, got.Strings())
		})
	}
}

func TestPageWindow_SmallMaxVisible(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		total      int
		maxVisible int
		want       []string
	}{
		// Five pages or fewer never get an ellipsis: the leading layout
		// would place one between 4 and 5 with nothing hidden.
		{name: "five pages", current: 1, total: 5, maxVisible: 3, want: []string{"1", "2", "3", "4", "5"}},
		{name: "five pages at end", current: 5, total: 5, maxVisible: 3, want: []string{"1", "2", "3", "4", "5"}},
		{name: "four pages", current: 3, total: 4, maxVisible: 2, want: []string{"1", "2", "3", "4"}},
		{name: "six pages start", current: 1, total: 6, maxVisible: 3, want: []string{"1", "2", "3", "4", "…", "6"}},
		{name: "six pages end", current: 6, total: 6, maxVisible: 3, want: []string{"1", "…", "3", "4", "5", "6"}},
		{name: "eight pages middle", current: 4, total: 8, maxVisible: 3, want: []string{"1", "…", "3", "4", "5", "…", "8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total, tt.maxVisible).Strings())
		})
	}
}

func TestPageWindow_Invariants(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for current := 1; current <= total; current++ {
			w := PageWindow(current, total, DefaultMaxVisible)

			ellipses := 0
			for _, tok := range w {
				if tok.Ellipsis {
					ellipses++
				}
			}
			assert.LessOrEqual(t, ellipses, 2)
			assert.LessOrEqual(t, len(w), 7)

			pages := w.Pages()
			assert.Contains(t, pages, current, "current page is always selectable")
			assert.Equal(t, 1, pages[0])
			assert.Equal(t, total, pages[len(pages)-1])
			for i := 1; i < len(pages); i++ {
				assert.Greater(t, pages[i], pages[i-1], "pages are strictly increasing")
			}
		}
	}
}

func TestPageWindow_Deterministic(t *testing.T) {
	assert.Equal(t, PageWindow(5, 10, 5), PageWindow(5, 10, 5))
}

func TestPageWindow_NonPositiveMaxVisibleUsesDefault(t *testing.T) {
	assert.Equal(t, PageWindow(1, 10, DefaultMaxVisible), PageWindow(1, 10, 0))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 8, 23)

	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 8, meta.PageSize)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 23, meta.TotalItems)
	assert.True(t, meta.HasPrevious)
	assert.True(t, meta.HasNext)

	empty := NewMeta(0, 8, 0)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasPrevious)
	assert.False(t, empty.HasNext)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "zero value", params: Params{}},
		{name: "explicit", params: Params{Page: 3, PageSize: 20}},
		{name: "negative page", params: Params{Page: -1}, wantErr: ErrInvalidPage},
		{name: "negative size", params: Params{PageSize: -2}, wantErr: ErrInvalidPageSize},
		{name: "oversized", params: Params{PageSize: MaxPageSize + 1}, wantErr: ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParams_Effective(t *testing.T) {
	assert.Equal(t, 1, Params{}.EffectivePage())
	assert.Equal(t, 4, Params{Page: 4}.EffectivePage())
	assert.Equal(t, 12, Params{}.EffectivePageSize(12))
	assert.Equal(t, 5, Params{PageSize: 5}.EffectivePageSize(12))
	assert.Equal(t, DefaultPerPage, Params{}.EffectivePageSize(0))
}
