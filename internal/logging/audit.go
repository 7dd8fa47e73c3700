package logging

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// AuditLoggerConfig configures the mutation audit trail.
type AuditLoggerConfig struct {
	Enabled bool
	File    string
}

// AuditEntry describes one operator mutation.
type AuditEntry struct {
	Action   string
	Module   string
	RecordID string
	Outcome  string
	Err      error
}

// AuditLogger appends mutation entries as JSON lines. A disabled logger is a no-op.
type AuditLogger struct {
	mu     sync.Mutex
	logger zerolog.Logger
	file   *os.File
}

// NewAuditLogger opens the audit file when enabled. Failures to open the file
// produce a disabled logger; auditing never blocks an operator action.
func NewAuditLogger(cfg AuditLoggerConfig) *AuditLogger {
	if !cfg.Enabled || cfg.File == "" {
		return &AuditLogger{logger: zerolog.Nop()}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
		return &AuditLogger{logger: zerolog.Nop()}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return &AuditLogger{logger: zerolog.Nop()}
	}

	return &AuditLogger{
		logger: zerolog.New(f).With().Timestamp().Logger(),
		file:   f,
	}
}

// Log records an entry, tagging it with the trace id from ctx.
func (a *AuditLogger) Log(ctx context.Context, entry AuditEntry) {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	ev := a.logger.Info().
		Str("trace_id", TraceIDFromContext(ctx)).
		Str("action", entry.Action).
		Str("module", entry.Module).
		Str("record_id", entry.RecordID).
		Str("outcome", entry.Outcome)
	if entry.Err != nil {
		ev = ev.Err(entry.Err)
	}
	ev.Msg("audit")
}

// Close closes the audit file.
func (a *AuditLogger) Close() error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	a.logger = zerolog.Nop()
	return err
}

type auditLoggerKey struct{}

// ContextWithAuditLogger stores the audit logger in ctx.
func ContextWithAuditLogger(ctx context.Context, a *AuditLogger) context.Context {
	return context.WithValue(ctx, auditLoggerKey{}, a)
}

// AuditLoggerFromContext returns the audit logger in ctx or a disabled one.
func AuditLoggerFromContext(ctx context.Context) *AuditLogger {
	if a, ok := ctx.Value(auditLoggerKey{}).(*AuditLogger); ok && a != nil {
		return a
	}
	return &AuditLogger{logger: zerolog.Nop()}
}
