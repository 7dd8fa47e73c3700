package console

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/schoolconsole/internal/lifecycle"
	"github.com/rshade/schoolconsole/internal/liststate"
	"github.com/rshade/schoolconsole/internal/record"
	"github.com/rshade/schoolconsole/internal/repository"
)

// Definition binds an entity type to the generic core.
type Definition[T record.Record] struct {
	Resource string
	Alias    []string
	Singular string
	Plural   string
	// Category names the categorical field; empty when the module has none.
	Category string
	Headers  []string

	Cells    func(T) []string
	Label    func(T) string
	Search   func(T) []string
	Classify func(T) string
}

// Name implements Module.
func (d *Definition[T]) Name() string { return d.Resource }

// Aliases implements Module.
func (d *Definition[T]) Aliases() []string { return d.Alias }

// Noun implements Module.
func (d *Definition[T]) Noun() string { return d.Singular }

// Title implements Module.
func (d *Definition[T]) Title() string { return d.Plural }

// CategoryField implements Module.
func (d *Definition[T]) CategoryField() string { return d.Category }

// Columns implements Module.
func (d *Definition[T]) Columns() []string { return d.Headers }

// Open implements Module.
func (d *Definition[T]) Open(env Env) Session {
	resource := repository.NewResource[T](env.Client, d.Resource)
	matcher := liststate.Matcher[T]{Fields: d.Search}
	if d.Classify != nil {
		matcher.Category = d.Classify
	}

	store := liststate.NewStore[T](resource, liststate.New(matcher, env.PerPage),
		liststate.WithLoadTimeout(env.LoadTimeout),
		liststate.WithLogger(env.Logger),
	)
	ctrl := lifecycle.New(lifecycle.Config[T]{
		Module:     d.Resource,
		Noun:       d.Singular,
		Label:      d.label,
		Repository: resource,
		Reloader:   store,
		Gateway:    env.Gateway,
		Notifier:   env.Notifier,
		Logger:     env.Logger,
	})

	return &session[T]{
		def:      d,
		resource: resource,
		store:    store,
		ctrl:     ctrl,
		logger:   env.Logger.With().Str("component", "console").Str("module", d.Resource).Logger(),
	}
}

func (d *Definition[T]) label(item T) string {
	if d.Label != nil {
		if l := d.Label(item); l != "" {
			return l
		}
	}
	return item.RecordID()
}

type session[T record.Record] struct {
	def      *Definition[T]
	resource *repository.Resource[T]
	store    *liststate.Store[T]
	ctrl     *lifecycle.Controller[T]
	logger   zerolog.Logger
}

func (s *session[T]) Module() Module { return s.def }

func (s *session[T]) Reload(ctx context.Context) error {
	return s.store.ReloadCurrent(ctx)
}

func (s *session[T]) SetVisibility(ctx context.Context, v record.Visibility) error {
	return s.store.Reload(ctx, v)
}

func (s *session[T]) ToggleVisibility(ctx context.Context) error {
	return s.store.Reload(ctx, s.store.State().Visibility().Toggle())
}

func (s *session[T]) SetFilter(f liststate.Filter) {
	s.store.Apply(func(st liststate.State[T]) liststate.State[T] { return st.FilterChanged(f) })
}

func (s *session[T]) GoToPage(n int) {
	s.store.Apply(func(st liststate.State[T]) liststate.State[T] { return st.GoToPage(n) })
}

func (s *session[T]) RequestPage(n int) {
	s.store.Apply(func(st liststate.State[T]) liststate.State[T] { return st.RequestPage(n) })
}

func (s *session[T]) Next() {
	s.store.Apply(liststate.State[T].Next)
}

func (s *session[T]) Previous() {
	s.store.Apply(liststate.State[T].Previous)
}

func (s *session[T]) Snapshot(maxVisible int) Snapshot {
	st := s.store.State()
	page := st.Page()

	rows := make([]Row, 0, len(page))
	records := make([]any, 0, len(page))
	for _, item := range page {
		rows = append(rows, s.row(item))
		records = append(records, item)
	}

	return Snapshot{
		Rows:       rows,
		Records:    records,
		Loading:    st.Loading(),
		Err:        st.Err(),
		Diagnostic: st.Diagnostic(),
		Visibility: st.Visibility(),
		Filter:     st.Filter(),
		Meta:       st.Meta(),
		Window:     st.Window(maxVisible),
		Seq:        st.Seq(),
	}
}

func (s *session[T]) row(item T) Row {
	var cells []string
	if s.def.Cells != nil {
		cells = s.def.Cells(item)
	}
	return Row{
		ID:     item.RecordID(),
		Status: item.RecordStatus(),
		Label:  s.def.label(item),
		Cells:  cells,
	}
}

// Categories returns the distinct category values of the loaded collection.
func (s *session[T]) Categories() []string {
	if s.def.Classify == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, item := range s.store.State().Items() {
		if c := s.def.Classify(item); c != "" {
			seen[c] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Counts lists both collections without touching the session's state.
// A malformed collection counts as empty, as it does when loaded.
func (s *session[T]) Counts(ctx context.Context) (Counts, error) {
	active, err := s.count(ctx, record.VisibilityActive, s.resource.ListActive)
	if err != nil {
		return Counts{}, err
	}
	inactive, err := s.count(ctx, record.VisibilityInactive, s.resource.ListInactive)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Active: active, Inactive: inactive}, nil
}

func (s *session[T]) count(ctx context.Context, v record.Visibility, list func(context.Context) ([]T, error)) (int, error) {
	items, err := list(ctx)
	switch {
	case err == nil:
		return len(items), nil
	case errors.Is(err, repository.ErrEnvelopeShape):
		s.logger.Warn().Ctx(ctx).
			Str("visibility", v.String()).
			Err(err).
			Msg("malformed collection counted as empty")
		return 0, nil
	default:
		return 0, fmt.Errorf("listing %s %s: %w", strings.ToLower(v.String()), s.def.Resource, err)
	}
}

func (s *session[T]) Get(ctx context.Context, id string) (any, error) {
	return s.resource.Get(ctx, id)
}

// lookup prefers the loaded record and falls back to the server.
func (s *session[T]) lookup(ctx context.Context, id string) (T, error) {
	if item, ok := s.store.State().Find(id); ok {
		return item, nil
	}
	return s.resource.Get(ctx, id)
}

func (s *session[T]) Create(ctx context.Context, fields map[string]any) (any, lifecycle.Outcome, error) {
	var draft T
	if err := repository.Decode(withoutKeys(fields, "id", "status"), &draft); err != nil {
		return nil, lifecycle.OutcomeFailed, fmt.Errorf("decoding %s: %w", s.def.Singular, err)
	}
	created, outcome, err := s.ctrl.Create(ctx, draft)
	if outcome != lifecycle.OutcomeCommitted {
		return nil, outcome, err
	}
	return created, outcome, err
}

// Update overlays fields onto the server's current copy of the record.
// The id and status of the record cannot be changed this way.
func (s *session[T]) Update(ctx context.Context, id string, fields map[string]any) (any, lifecycle.Outcome, error) {
	current, err := s.resource.Get(ctx, id)
	if err != nil {
		return nil, lifecycle.OutcomeFailed, err
	}
	draft := current
	if err := repository.Decode(withoutKeys(fields, "id", "status"), &draft); err != nil {
		return nil, lifecycle.OutcomeFailed, fmt.Errorf("decoding %s: %w", s.def.Singular, err)
	}
	updated, outcome, err := s.ctrl.Update(ctx, draft)
	if outcome != lifecycle.OutcomeCommitted {
		return nil, outcome, err
	}
	return updated, outcome, err
}

func (s *session[T]) Delete(ctx context.Context, id string) (lifecycle.Outcome, error) {
	item, err := s.lookup(ctx, id)
	if err != nil {
		return lifecycle.OutcomeFailed, err
	}
	return s.ctrl.Delete(ctx, item)
}

func (s *session[T]) Restore(ctx context.Context, id string) (lifecycle.Outcome, error) {
	item, err := s.lookup(ctx, id)
	if err != nil {
		return lifecycle.OutcomeFailed, err
	}
	return s.ctrl.Restore(ctx, item)
}

func withoutKeys(fields map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if !slices.Contains(keys, k) {
			out[k] = v
		}
	}
	return out
}
