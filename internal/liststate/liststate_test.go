package liststate_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/schoolconsole/internal/liststate"
	"github.com/rshade/schoolconsole/internal/record"
	"github.com/rshade/schoolconsole/internal/repository"
)

type pupil struct {
	ID     string
	Name   string
	Email  string
	Grade  string
	Status record.Status
}

func (p pupil) RecordID() string            { return p.ID }
func (p pupil) RecordStatus() record.Status { return p.Status }

var pupilMatcher = liststate.Matcher[pupil]{
	Fields:   func(p pupil) []string { return []string{p.Name, p.Email} },
	Category: func(p pupil) string { return p.Grade },
}

func pupils(n int) []pupil {
	out := make([]pupil, n)
	for i := range out {
		out[i] = pupil{
			ID:     fmt.Sprintf("%d", i+1),
			Name:   fmt.Sprintf("Pupil %02d", i+1),
			Grade:  fmt.Sprintf("grade-%d", i%3),
			Status: record.StatusActive,
		}
	}
	return out
}

func ids(items []pupil) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func loaded(items []pupil) liststate.State[pupil] {
	s, seq := liststate.New(pupilMatcher, 8).LoadStarted(record.VisibilityActive)
	return s.LoadSucceeded(seq, items)
}

func TestNew_Defaults(t *testing.T) {
	s := liststate.New(pupilMatcher, 0)
	assert.Equal(t, 8, s.PerPage())
	assert.Equal(t, 1, s.CurrentPage())
	assert.Equal(t, 0, s.TotalPages())
	assert.Equal(t, record.VisibilityActive, s.Visibility())
	assert.False(t, s.Loading())
	assert.Empty(t, s.Page())
}

func TestPagingScenario(t *testing.T) {
	s := loaded(pupils(23))
	require.Equal(t, 3, s.TotalPages())
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, ids(s.Page()))

	s = s.GoToPage(2)
	assert.Equal(t, []string{"9", "10", "11", "12", "13", "14", "15", "16"}, ids(s.Page()))

	s = s.RequestPage(4)
	assert.Equal(t, 3, s.CurrentPage())
	assert.Equal(t, []string{"17", "18", "19", "20", "21", "22", "23"}, ids(s.Page()))
}

func TestGoToPage_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		page int
		want int
	}{
		{name: "zero ignored", page: 0, want: 2},
		{name: "negative ignored", page: -1, want: 2},
		{name: "past end ignored", page: 4, want: 2},
		{name: "first", page: 1, want: 1},
		{name: "last", page: 3, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(pupils(23)).GoToPage(2)
			assert.Equal(t, tt.want, s.GoToPage(tt.page).CurrentPage())
		})
	}
}

func TestNextPrevious(t *testing.T) {
	s := loaded(pupils(23))
	assert.Equal(t, 1, s.Previous().CurrentPage())
	assert.Equal(t, 2, s.Next().CurrentPage())
	assert.Equal(t, 3, s.Next().Next().Next().CurrentPage())
}

func TestRequestPage_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		count int
		page  int
		want  int
	}{
		{name: "below range", count: 23, page: -3, want: 1},
		{name: "above range", count: 23, page: 99, want: 3},
		{name: "in range", count: 23, page: 2, want: 2},
		{name: "empty collection", count: 0, page: 5, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loaded(pupils(tt.count)).RequestPage(tt.page).CurrentPage())
		})
	}
}

func TestFilterChanged(t *testing.T) {
	items := []pupil{
		{ID: "1", Name: "Ana Gómez", Email: "ana@school.test", Grade: "5"},
		{ID: "2", Name: "Bruno Díaz", Email: "bruno@school.test", Grade: "6"},
		{ID: "3", Name: "ÁLVARO Ruiz", Email: "alvaro@school.test", Grade: "5"},
	}

	tests := []struct {
		name   string
		filter liststate.Filter
		want   []string
	}{
		{name: "empty matches all", filter: liststate.Filter{}, want: []string{"1", "2", "3"}},
		{name: "case insensitive", filter: liststate.Filter{Search: "bruno"}, want: []string{"2"}},
		{name: "unicode fold", filter: liststate.Filter{Search: "álvaro"}, want: []string{"3"}},
		{name: "any field", filter: liststate.Filter{Search: "ANA@"}, want: []string{"1"}},
		{name: "category", filter: liststate.Filter{Category: "5"}, want: []string{"1", "3"}},
		{name: "category and search", filter: liststate.Filter{Search: "ruiz", Category: "5"}, want: []string{"3"}},
		{name: "no match", filter: liststate.Filter{Search: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(items).FilterChanged(tt.filter)
			assert.Equal(t, tt.want, ids(s.Filtered()))
			assert.Len(t, s.Items(), 3)
		})
	}
}

func TestFilterChanged_ClampsPage(t *testing.T) {
	s := loaded(pupils(23)).GoToPage(3)
	s = s.FilterChanged(liststate.Filter{Category: "grade-0"})
	// 8 matches fit on one page.
	assert.Equal(t, 1, s.TotalPages())
	assert.Equal(t, 1, s.CurrentPage())

	s = loaded(pupils(23)).GoToPage(2).FilterChanged(liststate.Filter{Search: "Pupil"})
	assert.Equal(t, 2, s.CurrentPage(), "page is kept when still in range")
}

func TestPageInvariant(t *testing.T) {
	s := loaded(pupils(40))
	steps := []func(liststate.State[pupil]) liststate.State[pupil]{
		func(s liststate.State[pupil]) liststate.State[pupil] { return s.GoToPage(5) },
		func(s liststate.State[pupil]) liststate.State[pupil] {
			return s.FilterChanged(liststate.Filter{Search: "Pupil 0"})
		},
		func(s liststate.State[pupil]) liststate.State[pupil] { return s.RequestPage(100) },
		func(s liststate.State[pupil]) liststate.State[pupil] {
			return s.FilterChanged(liststate.Filter{Search: "nothing"})
		},
		func(s liststate.State[pupil]) liststate.State[pupil] { return s.Next() },
		func(s liststate.State[pupil]) liststate.State[pupil] {
			next, seq := s.LoadStarted(record.VisibilityActive)
			return next.LoadSucceeded(seq, pupils(3))
		},
	}

	for i, step := range steps {
		s = step(s)
		assert.GreaterOrEqual(t, s.CurrentPage(), 1, "step %d", i)
		assert.LessOrEqual(t, s.CurrentPage(), max(s.TotalPages(), 1), "step %d", i)
	}
}

func TestLoadStarted_KeepsItemsWhileLoading(t *testing.T) {
	s := loaded(pupils(5))
	s, _ = s.LoadStarted(record.VisibilityActive)
	assert.True(t, s.Loading())
	assert.Len(t, s.Page(), 5)
}

func TestLoadStarted_VisibilityResetsPage(t *testing.T) {
	s := loaded(pupils(23)).GoToPage(3)

	same, _ := s.LoadStarted(record.VisibilityActive)
	assert.Equal(t, 3, same.CurrentPage())

	toggled, _ := s.LoadStarted(record.VisibilityInactive)
	assert.Equal(t, 1, toggled.CurrentPage())
	assert.Equal(t, record.VisibilityInactive, toggled.Visibility())
}

func TestLoad_StaleResponsesDiscarded(t *testing.T) {
	s := liststate.New(pupilMatcher, 8)
	s, first := s.LoadStarted(record.VisibilityActive)
	s, second := s.LoadStarted(record.VisibilityInactive)
	require.Greater(t, second, first)

	s = s.LoadSucceeded(second, pupils(2))
	s = s.LoadSucceeded(first, pupils(9))
	assert.Len(t, s.Items(), 2)

	s = s.LoadFailed(first, errors.New("late failure"))
	assert.NoError(t, s.Err())
	assert.False(t, s.Loading())
}

func TestLoadFailed_KeepsItems(t *testing.T) {
	s := loaded(pupils(4))
	s, seq := s.LoadStarted(record.VisibilityActive)
	s = s.LoadFailed(seq, errors.New("boom"))
	assert.False(t, s.Loading())
	assert.EqualError(t, s.Err(), "boom")
	assert.Len(t, s.Items(), 4)
}

func TestLoadMalformed(t *testing.T) {
	s := loaded(pupils(4))
	s, seq := s.LoadStarted(record.VisibilityActive)
	s = s.LoadMalformed(seq, "data is not a list")
	assert.Empty(t, s.Items())
	assert.Empty(t, s.Page())
	assert.Equal(t, "data is not a list", s.Diagnostic())
	assert.NoError(t, s.Err())
	assert.Equal(t, 1, s.CurrentPage())

	s, seq = s.LoadStarted(record.VisibilityActive)
	s = s.LoadSucceeded(seq, pupils(1))
	assert.Empty(t, s.Diagnostic())
}

func TestWindowAndMeta(t *testing.T) {
	s := loaded(pupils(80)).GoToPage(5)
	assert.Equal(t, []string{"1", "…", "4", "5", "6", "…", "10"}, s.Window(5).Strings())

	meta := s.Meta()
	assert.Equal(t, 5, meta.CurrentPage)
	assert.Equal(t, 10, meta.TotalPages)
	assert.Equal(t, 80, meta.TotalItems)
	assert.True(t, meta.HasPrevious)
	assert.True(t, meta.HasNext)
}

func TestFind(t *testing.T) {
	s := loaded(pupils(3))
	p, ok := s.Find("2")
	require.True(t, ok)
	assert.Equal(t, "Pupil 02", p.Name)

	_, ok = s.Find("nope")
	assert.False(t, ok)
}

type fakeLister struct {
	mu       sync.Mutex
	active   []pupil
	inactive []pupil
	err      error
	calls    []record.Visibility
}

func (f *fakeLister) ListActive(context.Context) ([]pupil, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, record.VisibilityActive)
	return f.active, f.err
}

func (f *fakeLister) ListInactive(context.Context) ([]pupil, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, record.VisibilityInactive)
	return f.inactive, f.err
}

func TestStore_Reload(t *testing.T) {
	lister := &fakeLister{active: pupils(10), inactive: pupils(2)}
	store := liststate.NewStore[pupil](lister, liststate.New(pupilMatcher, 8))

	require.NoError(t, store.Reload(context.Background(), record.VisibilityActive))
	assert.Len(t, store.State().Items(), 10)
	assert.False(t, store.State().Loading())

	require.NoError(t, store.Reload(context.Background(), record.VisibilityInactive))
	assert.Len(t, store.State().Items(), 2)
	assert.Equal(t, []record.Visibility{record.VisibilityActive, record.VisibilityInactive}, lister.calls)

	require.NoError(t, store.ReloadCurrent(context.Background()))
	assert.Equal(t, record.VisibilityInactive, lister.calls[2])
}

func TestStore_ReloadMalformed(t *testing.T) {
	lister := &fakeLister{err: fmt.Errorf("%w: data is a string", repository.ErrEnvelopeShape)}
	store := liststate.NewStore[pupil](lister, loaded(pupils(3)))

	require.NoError(t, store.Reload(context.Background(), record.VisibilityActive))
	st := store.State()
	assert.Empty(t, st.Items())
	assert.Contains(t, st.Diagnostic(), "data is a string")
	assert.NoError(t, st.Err())
}

func TestStore_ReloadFailure(t *testing.T) {
	lister := &fakeLister{err: errors.New("connection refused")}
	store := liststate.NewStore[pupil](lister, loaded(pupils(3)))

	err := store.Reload(context.Background(), record.VisibilityActive)
	require.Error(t, err)
	st := store.State()
	assert.Len(t, st.Items(), 3)
	assert.ErrorIs(t, st.Err(), err)
}

func TestStore_Apply(t *testing.T) {
	store := liststate.NewStore[pupil](&fakeLister{}, loaded(pupils(23)))
	st := store.Apply(func(s liststate.State[pupil]) liststate.State[pupil] { return s.GoToPage(3) })
	assert.Equal(t, 3, st.CurrentPage())
	assert.Equal(t, 3, store.State().CurrentPage())
}

type gatedLister struct {
	release map[record.Visibility]chan struct{}
	data    map[record.Visibility][]pupil
}

func (g *gatedLister) ListActive(ctx context.Context) ([]pupil, error) {
	return g.wait(ctx, record.VisibilityActive)
}

func (g *gatedLister) ListInactive(ctx context.Context) ([]pupil, error) {
	return g.wait(ctx, record.VisibilityInactive)
}

func (g *gatedLister) wait(ctx context.Context, v record.Visibility) ([]pupil, error) {
	select {
	case <-g.release[v]:
		return g.data[v], nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestStore_OutOfOrderResponses(t *testing.T) {
	lister := &gatedLister{
		release: map[record.Visibility]chan struct{}{
			record.VisibilityActive:   make(chan struct{}),
			record.VisibilityInactive: make(chan struct{}),
		},
		data: map[record.Visibility][]pupil{
			record.VisibilityActive:   pupils(9),
			record.VisibilityInactive: pupils(1),
		},
	}
	store := liststate.NewStore[pupil](lister, liststate.New(pupilMatcher, 8))

	firstDone := make(chan error, 1)
	go func() { firstDone <- store.Reload(context.Background(), record.VisibilityActive) }()
	require.Eventually(t, func() bool { return store.State().Seq() == 1 }, timeoutShort, tick)

	secondDone := make(chan error, 1)
	go func() { secondDone <- store.Reload(context.Background(), record.VisibilityInactive) }()
	require.Eventually(t, func() bool { return store.State().Seq() == 2 }, timeoutShort, tick)

	close(lister.release[record.VisibilityInactive])
	require.NoError(t, <-secondDone)
	close(lister.release[record.VisibilityActive])
	require.NoError(t, <-firstDone)

	st := store.State()
	assert.Len(t, st.Items(), 1)
	assert.Equal(t, record.VisibilityInactive, st.Visibility())
	assert.False(t, st.Loading())
}
