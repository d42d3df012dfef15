package main

import (
	"log/slog"

	"github.com/dasdy/holdlight/cmd/holdlight"
)

func main() {
	// Replaced once --log-level is parsed.
	slog.SetDefault(holdlight.NewLogger(slog.LevelInfo))

	holdlight.Execute()
}
