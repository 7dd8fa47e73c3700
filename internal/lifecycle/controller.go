// Package lifecycle runs the soft-delete/restore state machine of console
// records and the confirm-then-mutate-then-reload sequence shared by every
// mutating action.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/schoolconsole/internal/logging"
	"github.com/rshade/schoolconsole/internal/record"
	"github.com/rshade/schoolconsole/internal/validate"
)

var (
	// ErrInvalidTransition is returned when deleting a non-ACTIVE record or
	// restoring a non-INACTIVE one.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	// ErrNotEditable is returned when updating a record that is not ACTIVE.
	ErrNotEditable = errors.New("only active records can be edited")
)

// Outcome is the result of one action.
type Outcome int

// Action outcomes.
const (
	// OutcomeDeclined means the operator said no; nothing was sent.
	OutcomeDeclined Outcome = iota
	// OutcomeCommitted means the server accepted the mutation.
	OutcomeCommitted
	// OutcomeFailed means the action was refused locally or by the server.
	OutcomeFailed
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeDeclined:
		return "declined"
	case OutcomeCommitted:
		return "committed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Repository is the mutating half of the entity repository.
type Repository[T any] interface {
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (T, error)
}

// Reloader refreshes the list after a committed mutation.
type Reloader interface {
	Reload(ctx context.Context, v record.Visibility) error
	ReloadCurrent(ctx context.Context) error
}

// Config wires a Controller.
type Config[T record.Record] struct {
	// Module is the resource name recorded in audit entries, e.g. "students".
	Module string
	// Noun is the capitalized singular used in notices, e.g. "Student".
	Noun string
	// Label renders a record for prompts and notices.
	Label      func(T) string
	Repository Repository[T]
	Reloader   Reloader
	Gateway    Gateway
	Notifier   Notifier
	Logger     zerolog.Logger
}

// Controller performs lifecycle actions for one module.
type Controller[T record.Record] struct {
	module   string
	noun     string
	label    func(T) string
	repo     Repository[T]
	reloader Reloader
	gateway  Gateway
	notifier Notifier
	logger   zerolog.Logger
}

// New creates a controller. A nil Gateway declines everything; a nil
// Notifier discards notices.
func New[T record.Record](cfg Config[T]) *Controller[T] {
	c := &Controller[T]{
		module:   cfg.Module,
		noun:     cfg.Noun,
		label:    cfg.Label,
		repo:     cfg.Repository,
		reloader: cfg.Reloader,
		gateway:  cfg.Gateway,
		notifier: cfg.Notifier,
		logger:   logging.ComponentLogger(cfg.Logger, "lifecycle").With().Str("module", cfg.Module).Logger(),
	}
	if c.gateway == nil {
		c.gateway = AutoDecline{}
	}
	if c.notifier == nil {
		c.notifier = discardNotifier{}
	}
	if c.label == nil {
		c.label = func(item T) string { return item.RecordID() }
	}
	if c.noun == "" {
		c.noun = "Record"
	}
	return c
}

// Delete soft-deletes an ACTIVE record after confirmation and reloads the
// currently shown collection.
func (c *Controller[T]) Delete(ctx context.Context, item T) (Outcome, error) {
	if item.RecordStatus() != record.StatusActive {
		return c.refuse(ctx, ActionDelete, item,
			fmt.Errorf("%w: cannot delete %s record", ErrInvalidTransition, item.RecordStatus()))
	}

	label := c.label(item)
	ok, err := c.gateway.ConfirmDelete(ctx, label)
	if outcome, done := c.checkConfirm(ctx, ActionDelete, item, ok, err); done {
		return outcome, nil
	}

	if err := c.repo.SoftDelete(ctx, item.RecordID()); err != nil {
		return c.fail(ctx, ActionDelete, item, err)
	}
	c.commit(ctx, ActionDelete, item, c.reloader.ReloadCurrent)
	return OutcomeCommitted, nil
}

// Restore reactivates an INACTIVE record after confirmation and reloads
// the active collection.
func (c *Controller[T]) Restore(ctx context.Context, item T) (Outcome, error) {
	if item.RecordStatus() != record.StatusInactive {
		return c.refuse(ctx, ActionRestore, item,
			fmt.Errorf("%w: cannot restore %s record", ErrInvalidTransition, item.RecordStatus()))
	}

	label := c.label(item)
	ok, err := c.gateway.ConfirmRestore(ctx, label)
	if outcome, done := c.checkConfirm(ctx, ActionRestore, item, ok, err); done {
		return outcome, nil
	}

	if _, err := c.repo.Restore(ctx, item.RecordID()); err != nil {
		return c.fail(ctx, ActionRestore, item, err)
	}
	c.commit(ctx, ActionRestore, item, func(ctx context.Context) error {
		return c.reloader.Reload(ctx, record.VisibilityActive)
	})
	return OutcomeCommitted, nil
}

// Create validates and submits a new record. On failure the caller keeps
// its draft; nothing is reloaded.
func (c *Controller[T]) Create(ctx context.Context, draft T) (T, Outcome, error) {
	var zero T
	if err := validate.Struct(draft); err != nil {
		outcome, err := c.refuse(ctx, ActionCreate, draft, err)
		return zero, outcome, err
	}

	label := c.label(draft)
	ok, err := c.gateway.Confirm(ctx, "Create "+c.noun, fmt.Sprintf("Create %s %q?", c.noun, label))
	if outcome, done := c.checkConfirm(ctx, ActionCreate, draft, ok, err); done {
		return zero, outcome, nil
	}

	created, err := c.repo.Create(ctx, draft)
	if err != nil {
		outcome, err := c.fail(ctx, ActionCreate, draft, err)
		return zero, outcome, err
	}
	c.commit(ctx, ActionCreate, created, c.reloader.ReloadCurrent)
	return created, OutcomeCommitted, nil
}

// Update validates and submits an edited ACTIVE record.
func (c *Controller[T]) Update(ctx context.Context, draft T) (T, Outcome, error) {
	var zero T
	if draft.RecordStatus() != record.StatusActive {
		outcome, err := c.refuse(ctx, ActionUpdate, draft, ErrNotEditable)
		return zero, outcome, err
	}
	if err := validate.Struct(draft); err != nil {
		outcome, err := c.refuse(ctx, ActionUpdate, draft, err)
		return zero, outcome, err
	}

	label := c.label(draft)
	ok, err := c.gateway.Confirm(ctx, "Update "+c.noun, fmt.Sprintf("Save changes to %s %q?", c.noun, label))
	if outcome, done := c.checkConfirm(ctx, ActionUpdate, draft, ok, err); done {
		return zero, outcome, nil
	}

	updated, err := c.repo.Update(ctx, draft.RecordID(), draft)
	if err != nil {
		outcome, err := c.fail(ctx, ActionUpdate, draft, err)
		return zero, outcome, err
	}
	c.commit(ctx, ActionUpdate, draft, c.reloader.ReloadCurrent)
	return updated, OutcomeCommitted, nil
}

// checkConfirm reports done=true when the action must stop after the prompt.
func (c *Controller[T]) checkConfirm(ctx context.Context, action Action, item T, ok bool, err error) (Outcome, bool) {
	if err != nil {
		// A prompt that could not be shown counts as a refusal.
		c.logger.Warn().Ctx(ctx).
			Str("action", string(action)).
			Err(err).
			Msg("confirmation unavailable, treating as declined")
		return OutcomeDeclined, true
	}
	if !ok {
		c.logger.Debug().Ctx(ctx).
			Str("action", string(action)).
			Str("record_id", item.RecordID()).
			Msg("action declined")
		return OutcomeDeclined, true
	}
	return OutcomeCommitted, false
}

func (c *Controller[T]) refuse(ctx context.Context, action Action, item T, err error) (Outcome, error) {
	c.logger.Debug().Ctx(ctx).
		Str("action", string(action)).
		Str("record_id", item.RecordID()).
		Err(err).
		Msg("action refused")
	c.notifier.Notify(Notice{
		Level:    LevelError,
		Action:   action,
		RecordID: item.RecordID(),
		Message:  fmt.Sprintf("Cannot %s %s: %v", action, c.noun, err),
		Err:      err,
	})
	return OutcomeFailed, err
}

func (c *Controller[T]) fail(ctx context.Context, action Action, item T, err error) (Outcome, error) {
	c.logger.Error().Ctx(ctx).
		Str("action", string(action)).
		Str("record_id", item.RecordID()).
		Err(err).
		Msg("action failed")
	c.audit(ctx, action, item, OutcomeFailed, err)
	c.notifier.Notify(Notice{
		Level:    LevelError,
		Action:   action,
		RecordID: item.RecordID(),
		Message:  fmt.Sprintf("Could not %s %s %q: %v", action, c.noun, c.label(item), err),
		Err:      err,
	})
	return OutcomeFailed, fmt.Errorf("%s %s %s: %w", action, c.module, item.RecordID(), err)
}

func (c *Controller[T]) commit(ctx context.Context, action Action, item T, reload func(context.Context) error) {
	c.audit(ctx, action, item, OutcomeCommitted, nil)
	if err := reload(ctx); err != nil {
		// The mutation stands; the list keeps the reload error for display.
		c.logger.Warn().Ctx(ctx).
			Str("action", string(action)).
			Err(err).
			Msg("reload after mutation failed")
	}
	c.logger.Info().Ctx(ctx).
		Str("action", string(action)).
		Str("record_id", item.RecordID()).
		Msg("action committed")
	c.notifier.Notify(Notice{
		Level:    LevelSuccess,
		Action:   action,
		RecordID: item.RecordID(),
		Message:  fmt.Sprintf("%s %q %s", c.noun, c.label(item), action.pastTense()),
	})
}

func (c *Controller[T]) audit(ctx context.Context, action Action, item T, outcome Outcome, err error) {
	logging.AuditLoggerFromContext(ctx).Log(ctx, logging.AuditEntry{
		Action:   string(action),
		Module:   c.module,
		RecordID: item.RecordID(),
		Outcome:  outcome.String(),
		Err:      err,
	})
}
