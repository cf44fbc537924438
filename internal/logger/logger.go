// Package logger builds the application's *slog.Logger from config.
package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aanand-mishra/timezone-buddy/internal/config"
)

// New returns a logger configured for cfg.Env.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging / production: JSON output (DEBUG / INFO).
//
// Records go to stderr, or to a size-rotated file when cfg.Log.File is
// set. quiet raises the minimum level to WARN; interactive commands use
// it so log lines never mix with rendered views.
func New(cfg *config.Config, quiet bool) *slog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Log.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		}
	}

	level := slog.LevelDebug
	if cfg.Env == "prod" {
		level = slog.LevelInfo
	}
	if quiet {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Env {
	case "prod", "staging":
		return slog.New(slog.NewJSONHandler(w, opts))
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, opts))
	}
}
