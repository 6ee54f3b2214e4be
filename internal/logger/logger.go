// Package logger configures the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
)

// Options controls the console level and the optional JSON log file
type Options struct {
	// Verbosity is one of DEBUG, INFO, WARN, ERROR. Unknown values mean INFO.
	Verbosity string
	// File, when set, additionally receives JSON records.
	File string
	// Writer overrides stderr for the console handler.
	Writer io.Writer
}

// ParseLevel maps a verbosity name to a slog level
func ParseLevel(verbosity string) slog.Level {
	switch strings.ToUpper(verbosity) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger from o. The returned closer releases the log file
// and must be called on shutdown.
func New(o Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(o.Verbosity)

	w := o.Writer
	noColor := true
	if w == nil {
		w = os.Stderr
		noColor = !isatty.IsTerminal(os.Stderr.Fd())
	}

	console := tint.NewHandler(w, &tint.Options{
		NoColor:   noColor,
		Level:     level,
		AddSource: level < slog.LevelInfo, // only for debugging
	})

	if o.File == "" {
		return slog.New(console), nopCloser{}, nil
	}

	f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(console, file)), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
