// Package logging builds the process logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"

	"crowdfund/internal/config/configs"
)

// New returns a logger writing to w in the configured format: the stdlib
// text or JSON handlers, or tint for colored console output.
func New(w io.Writer, cfg configs.Logger) *slog.Logger {
	level := cfg.SlogLevel()
	var handler slog.Handler
	switch cfg.SlogFormat() {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "tint":
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
