package console

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/schoolconsole/internal/lifecycle"
	"github.com/rshade/schoolconsole/internal/liststate"
	"github.com/rshade/schoolconsole/internal/pagination"
	"github.com/rshade/schoolconsole/internal/record"
	"github.com/rshade/schoolconsole/internal/repository"
)

// Module is a registered entity module.
type Module interface {
	// Name is the REST resource name, e.g. "behavior-records".
	Name() string
	Aliases() []string
	// Noun is the capitalized singular, e.g. "Behavior record".
	Noun() string
	// Title is the display name of the list, e.g. "Behavior records".
	Title() string
	// CategoryField names the field the category filter applies to.
	CategoryField() string
	Columns() []string
	Open(env Env) Session
}

// Env carries the collaborators a Session needs.
type Env struct {
	Client      *repository.Client
	Gateway     lifecycle.Gateway
	Notifier    lifecycle.Notifier
	PerPage     int
	LoadTimeout time.Duration
	Logger      zerolog.Logger
}

// Row is one rendered record.
type Row struct {
	ID     string
	Status record.Status
	Label  string
	Cells  []string
}

// Snapshot is a consistent view of a session's list state.
type Snapshot struct {
	Rows       []Row
	Records    []any
	Loading    bool
	Err        error
	Diagnostic string
	Visibility record.Visibility
	Filter     liststate.Filter
	Meta       pagination.Meta
	Window     pagination.Window
	Seq        uint64
}

// Counts is the size of both server collections.
type Counts struct {
	Active   int `json:"active" yaml:"active"`
	Inactive int `json:"inactive" yaml:"inactive"`
}

// Session is an opened module.
type Session interface {
	Module() Module

	Reload(ctx context.Context) error
	SetVisibility(ctx context.Context, v record.Visibility) error
	ToggleVisibility(ctx context.Context) error

	SetFilter(f liststate.Filter)
	GoToPage(n int)
	RequestPage(n int)
	Next()
	Previous()

	Snapshot(maxVisible int) Snapshot
	Categories() []string
	Counts(ctx context.Context) (Counts, error)

	Get(ctx context.Context, id string) (any, error)
	Create(ctx context.Context, fields map[string]any) (any, lifecycle.Outcome, error)
	Update(ctx context.Context, id string, fields map[string]any) (any, lifecycle.Outcome, error)
	Delete(ctx context.Context, id string) (lifecycle.Outcome, error)
	Restore(ctx context.Context, id string) (lifecycle.Outcome, error)
}
