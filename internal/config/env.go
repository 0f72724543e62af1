package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/apidocs/internal/logfields"
)

// envFiles are tried in order; the first that exists is loaded. Variables
// already present in the process environment are not overridden.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(path), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment file", logfields.Path(path))
		return
	}
}
