package cli

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger on w. Debug records are only emitted
// with --verbose; a nil writer discards everything.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
