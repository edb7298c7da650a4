/*
PURPOSE:
  Provides a structured logger for Hydro Runner.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.
  - --verbose shows per-attempt engine detail.

  Implementation-discovered:
  - Needs to support Debug/Info/Error levels switchable at runtime.

ARCHITECTURE INTEGRATION:
  - Used everywhere.

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).
  - Log to stderr so `decode` output on stdout stays clean.

USAGE:
  output.Logger.Info("message", "key", "value")
  output.SetLevel(slog.LevelDebug)

SELF-HEALING INSTRUCTIONS:
  - Ensure Go 1.21+ is used.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - JSON handler for non-interactive use if ever needed.
*/

package output

import (
	"log/slog"
	"os"
)

var (
	Logger *slog.Logger
	level  = new(slog.LevelVar)
)

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// SetLevel changes the level of the default logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}
