package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output and format names accepted in Config.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"

	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config describes how a logger is built.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Unknown values fall back to info.
	Level string

	// Format is "console" for human-readable output or "json".
	Format string

	// Output is "stderr" or "file".
	Output string

	// File is the log file path when Output is "file".
	File string

	// Caller adds file:line to each event.
	Caller bool
}

// LogPathResult is the outcome of NewLoggerWithPath.
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile is true when events are written to FilePath.
	UsingFile bool
	FilePath  string

	// FallbackUsed is true when a file was requested but stderr is used instead.
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ParseLevel parses a zerolog level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger builds a logger writing to w according to cfg.
// Output and File are ignored; see NewLoggerWithPath.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Format != FormatJSON {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// NewLoggerWithPath builds a logger for cfg, opening the log file when
// Output is "file". If the file cannot be opened the logger falls back to
// stderr and the result records why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	if cfg.Output != OutputFile || cfg.File == "" {
		return LogPathResult{Logger: NewLogger(cfg, os.Stderr)}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
		return LogPathResult{
			Logger:         NewLogger(cfg, os.Stderr),
			FallbackUsed:   true,
			FallbackReason: fmt.Sprintf("cannot create log directory: %v", err),
		}
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return LogPathResult{
			Logger:         NewLogger(cfg, os.Stderr),
			FallbackUsed:   true,
			FallbackReason: fmt.Sprintf("cannot open log file: %v", err),
		}
	}

	// Files always get JSON so they stay machine-readable.
	fileCfg := cfg
	fileCfg.Format = FormatJSON
	return LogPathResult{
		Logger:    NewLogger(fileCfg, f),
		UsingFile: true,
		FilePath:  cfg.File,
		file:      f,
	}
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where log events are going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user that file logging was requested but unavailable.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: %s, logging to stderr\n", reason)
}
