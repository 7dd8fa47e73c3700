package lifecycle

import "context"

// Gateway asks the operator to confirm a destructive or mutating action.
// A false result with a nil error means the operator declined.
type Gateway interface {
	ConfirmDelete(ctx context.Context, label string) (bool, error)
	ConfirmRestore(ctx context.Context, label string) (bool, error)
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// AutoConfirm approves every prompt. Used for --force and tests.
type AutoConfirm struct{}

// ConfirmDelete implements Gateway.
func (AutoConfirm) ConfirmDelete(context.Context, string) (bool, error) { return true, nil }

// ConfirmRestore implements Gateway.
func (AutoConfirm) ConfirmRestore(context.Context, string) (bool, error) { return true, nil }

// Confirm implements Gateway.
func (AutoConfirm) Confirm(context.Context, string, string) (bool, error) { return true, nil }

// AutoDecline declines every prompt, e.g. for non-interactive sessions.
type AutoDecline struct{}

// ConfirmDelete implements Gateway.
func (AutoDecline) ConfirmDelete(context.Context, string) (bool, error) { return false, nil }

// ConfirmRestore implements Gateway.
func (AutoDecline) ConfirmRestore(context.Context, string) (bool, error) { return false, nil }

// Confirm implements Gateway.
func (AutoDecline) Confirm(context.Context, string, string) (bool, error) { return false, nil }
