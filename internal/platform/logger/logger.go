package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Production runs JSON to
// stdout; dev gets the text handler for readability.
func New(env string) *slog.Logger {
	if env == "dev" {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
