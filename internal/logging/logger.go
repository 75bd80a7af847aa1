package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// StdoutHandler builds the process log handler: pretty colored output
// in development, JSON everywhere else.
func StdoutHandler(env string) slog.Handler {
	if env == "development" {
		return tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// Setup initializes the global slog logger for stdout only. The server
// swaps in a Fanout with the DB handler once the database is up.
func Setup(env string) {
	slog.SetDefault(slog.New(StdoutHandler(env)))
}
