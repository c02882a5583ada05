package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide logger: JSON records to stdout at INFO.
// Once the database is up, main replaces it with a MultiHandler that adds
// the system_logs sink on top of this one.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
