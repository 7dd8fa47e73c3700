package liststate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/schoolconsole/internal/logging"
	"github.com/rshade/schoolconsole/internal/record"
	"github.com/rshade/schoolconsole/internal/repository"
)

// Lister fetches the two server collections of a module.
type Lister[T any] interface {
	ListActive(ctx context.Context) ([]T, error)
	ListInactive(ctx context.Context) ([]T, error)
}

// Store owns the State of one module instance and performs reloads.
// It is safe for concurrent use; overlapping reloads resolve to the most
// recently started one regardless of completion order.
type Store[T record.Record] struct {
	mu      sync.Mutex
	state   State[T]
	lister  Lister[T]
	timeout time.Duration
	logger  zerolog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	timeout time.Duration
	logger  zerolog.Logger
}

// WithLoadTimeout bounds each reload. Zero means no bound beyond the caller's context.
func WithLoadTimeout(d time.Duration) StoreOption {
	return func(o *storeOptions) { o.timeout = d }
}

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(o *storeOptions) { o.logger = logger }
}

// NewStore creates a store around an initial state.
func NewStore[T record.Record](lister Lister[T], initial State[T], opts ...StoreOption) *Store[T] {
	o := storeOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		state:   initial,
		lister:  lister,
		timeout: o.timeout,
		logger:  logging.ComponentLogger(o.logger, "liststate"),
	}
}

// State returns the current state value.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply runs a pure transition under the store lock and returns the result.
func (s *Store[T]) Apply(transition func(State[T]) State[T]) State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = transition(s.state)
	return s.state
}

// Reload fetches the collection for v and replaces the state's items.
//
// A malformed payload becomes an empty collection with a diagnostic and is
// not reported as an error. A transport failure keeps the previous items and
// is returned. Responses superseded by a newer Reload are dropped and return nil.
func (s *Store[T]) Reload(ctx context.Context, v record.Visibility) error {
	s.mu.Lock()
	var seq uint64
	s.state, seq = s.state.LoadStarted(v)
	s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		items []T
		err   error
	)
	if v == record.VisibilityInactive {
		items, err = s.lister.ListInactive(ctx)
	} else {
		items, err = s.lister.ListActive(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.state.Seq() {
		s.logger.Debug().
			Uint64("seq", seq).
			Uint64("latest", s.state.Seq()).
			Msg("discarding superseded response")
		return nil
	}

	switch {
	case err == nil:
		s.state = s.state.LoadSucceeded(seq, items)
		s.logger.Debug().
			Str("visibility", v.String()).
			Int("count", len(items)).
			Msg("collection loaded")
		return nil
	case errors.Is(err, repository.ErrEnvelopeShape):
		s.logger.Warn().
			Str("visibility", v.String()).
			Err(err).
			Msg("malformed collection rendered as empty")
		s.state = s.state.LoadMalformed(seq, err.Error())
		return nil
	default:
		s.logger.Error().
			Str("visibility", v.String()).
			Err(err).
			Msg("collection load failed")
		s.state = s.state.LoadFailed(seq, err)
		return err
	}
}

// ReloadCurrent reloads whichever collection is currently shown.
func (s *Store[T]) ReloadCurrent(ctx context.Context) error {
	return s.Reload(ctx, s.State().Visibility())
}
