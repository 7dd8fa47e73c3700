package config

import (
	"github.com/rshade/schoolconsole/internal/logging"
)

// ToLoggingConfig maps the logging section onto logging.Config. A non-empty
// File selects file output; otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// ToAuditConfig converts the audit section for logging.NewAuditLogger.
func (lc *LoggingConfig) ToAuditConfig() logging.AuditLoggerConfig {
	return logging.AuditLoggerConfig{
		Enabled: lc.Audit.Enabled,
		File:    lc.Audit.File,
	}
}
