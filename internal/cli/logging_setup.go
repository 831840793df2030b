package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/b62/internal/config"
	"github.com/rshade/b62/internal/logging"
)

// setupLogging configures logging from the resolved configuration and the --debug flag,
// then stores the logger and a trace ID in the command context.
func setupLogging(cmd *cobra.Command, s *session) logging.LogPathResult {
	loggingCfg := s.cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg = config.LoggingConfig{Level: "debug", Format: "console"}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	s.logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	s.logger = s.logger.With().Str("trace_id", traceID).Logger()
	ctx = s.logger.WithContext(ctx)
	cmd.SetContext(ctx)

	s.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("config", s.cfg.ConfigPath()).
		Int("max_batch_size", s.cfg.Batch.MaxSize).
		Int("workers", s.cfg.Batch.Workers).
		Str("output", s.cfg.Output.DefaultFormat).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
