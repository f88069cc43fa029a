// Package applog wires up the structured logger used across the
// assembler. No third-party structured logging library appears in the
// retrieval pack's real, non-test code, so this is a thin wrapper over
// the standard library's log/slog rather than an adopted dependency —
// see DESIGN.md's ambient-stack notes for the reasoning.
package applog

import (
	"log/slog"
	"os"
)

// New builds a logger writing human-readable text to stderr. verbose
// lowers the level to Debug; otherwise only Info and above are emitted.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
