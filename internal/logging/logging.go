// Package logging builds the zerolog loggers used by the service and the
// terminal client. Output always goes to a file; the TUI owns the terminal.
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

// Config controls where and how much is logged.
type Config struct {
	Level string // trace, debug, info, warn, error
	File  string // empty = DefaultPath(app)
	App   string // used for the default path and the "app" field
}

// DefaultPath returns ~/.local/state/pharmacare/<app>.log.
func DefaultPath(app string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if app == "" {
		app = "pharmacare"
	}
	return filepath.Join(home, ".local", "state", "pharmacare", app+".log"), nil
}

// ParseLevel maps a level name onto a zerolog level. Unknown names are info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New opens the log file and returns a logger writing to it plus a cleanup
// func closing the file.
func New(cfg Config) (zerolog.Logger, func(), error) {
	path := cfg.File
	if path == "" {
		p, err := DefaultPath(cfg.App)
		if err != nil {
			return zerolog.Nop(), func() {}, fmt.Errorf("resolving log path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("opening log file: %w", err)
	}

	logger := NewWriter(f, cfg)
	logger.Info().Str("path", path).Str("loglevel", logger.GetLevel().String()).Msg("Logging set up")
	return logger, func() { _ = f.Close() }, nil
}

// NewWriter builds a logger on an arbitrary writer in console format without colors.
func NewWriter(w io.Writer, cfg Config) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.App != "" {
		ctx = ctx.Str("app", cfg.App)
	}
	return ctx.Logger()
}
