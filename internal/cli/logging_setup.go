package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/schoolconsole/internal/config"
	"github.com/rshade/schoolconsole/internal/logging"
)

// effectiveLogging returns the logging section with --debug applied.
// Debug output always goes to the terminal in human-readable form.
func effectiveLogging(cmd *cobra.Command, cfg *config.Config) config.LoggingConfig {
	lc := cfg.Logging
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		lc.Level, lc.Format, lc.File = "debug", "console", ""
	}
	return lc
}

// setupLogging builds the cli logger and stores it, the trace id and the
// audit logger in the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) logging.LogPathResult {
	lc := effectiveLogging(cmd, cfg)
	stderr := cmd.ErrOrStderr()

	result := logging.NewLoggerWithPath(lc.ToLoggingConfig())
	switch {
	case result.UsingFile:
		logging.PrintLogPathMessage(stderr, result.FilePath)
	case result.FallbackUsed:
		logging.PrintFallbackWarning(stderr, result.FallbackReason)
	}
	logger = logging.ComponentLogger(result.Logger, "cli")

	ctx := cmd.Context()
	ctx = logging.ContextWithTraceID(ctx, logging.GetOrGenerateTraceID(ctx))
	ctx = logging.ContextWithAuditLogger(logger.WithContext(ctx), logging.NewAuditLogger(lc.ToAuditConfig()))
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")
	return result
}

// cleanupLogging flushes the audit log and releases the log file.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	if err := logging.AuditLoggerFromContext(cmd.Context()).Close(); err != nil {
		return err
	}
	if logResult == nil {
		return nil
	}
	return logResult.Close()
}
