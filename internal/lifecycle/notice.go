package lifecycle

// Action is a lifecycle operation.
type Action string

// Lifecycle actions.
const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionRestore Action = "restore"
)

// pastTense returns the verb used in success notices.
func (a Action) pastTense() string {
	switch a {
	case ActionCreate:
		return "created"
	case ActionUpdate:
		return "updated"
	case ActionDelete:
		return "deactivated"
	case ActionRestore:
		return "restored"
	default:
		return string(a)
	}
}

// Level is the severity of a notice.
type Level int

// Notice levels.
const (
	LevelSuccess Level = iota
	LevelError
)

// String implements fmt.Stringer.
func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notice is the user-facing result of an action. Declined confirmations
// produce no notice.
type Notice struct {
	Level    Level
	Action   Action
	RecordID string
	Message  string
	Err      error
}

// Notifier receives notices.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}
