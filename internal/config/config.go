// Package config resolves runtime configuration for duetrack: where data
// lives and which storage backend serves it.
package config

import (
	"os"

	"github.com/duetrack/duetrack/internal/storage"
)

// EnvDataDir is the environment variable overriding the data directory.
// The special value ":memory:" forces the volatile backend.
const EnvDataDir = "DUETRACK_DIR"

// Config holds the resolved runtime configuration.
type Config struct {
	// DataDir is the storage location. Empty selects the memory backend.
	DataDir string
	// Driver optionally overrides the backend choice.
	Driver storage.Driver
}

// Resolve builds the configuration from the given flag values and the
// environment. Precedence for the data directory: flag, then EnvDataDir,
// then none (memory backend). flagDefault=true substitutes the XDG default
// path for an unset flag.
func Resolve(flagDir, flagDriver string, flagDefault bool) (Config, error) {
	cfg := Config{DataDir: flagDir}

	if cfg.DataDir == "" {
		if env := os.Getenv(EnvDataDir); env != "" {
			if env == ":memory:" {
				return resolveDriver(cfg, flagDriver)
			}
			cfg.DataDir = env
		}
	}
	if cfg.DataDir == "" && flagDefault {
		cfg.DataDir = storage.DefaultPath()
	}

	return resolveDriver(cfg, flagDriver)
}

func resolveDriver(cfg Config, flagDriver string) (Config, error) {
	if flagDriver == "" {
		return cfg, nil
	}
	driver, err := storage.ParseDriver(flagDriver)
	if err != nil {
		return cfg, err
	}
	cfg.Driver = driver
	return cfg, nil
}
