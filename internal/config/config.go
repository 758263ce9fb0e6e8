package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

const (
	envPrefix  = "PREVENTIVO"
	envDev     = "dev"
	dotEnvFile = ".env"
)

// Config holds application configuration sourced from environment variables.
// Every variable is read with the PREVENTIVO_ prefix first, then without it.
type Config struct {
	DBPath         string `envconfig:"DB_PATH" default:"./dev.db"`
	Port           string `envconfig:"PORT" default:"8080"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	Env            string `envconfig:"ENV" default:"dev"`
	MigrateOnStart bool   `envconfig:"MIGRATE_ON_START" default:"true"`
	Seed           bool   `envconfig:"SEED" default:"true"`
}

// Load reads the local .env file, if any, then the environment.
func Load() (Config, error) {
	return load(dotEnvFile)
}

func load(envFile string) (Config, error) {
	// Best-effort: variables already set in the environment win over the file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		zap.S().Warnw("ignoring unreadable .env file", "path", envFile, "error", err)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if !cfg.IsDev() && cfg.DBPath == "./dev.db" {
		zap.S().Warnw("using the development database outside dev", "env", cfg.Env)
	}

	return cfg, nil
}

// IsDev reports whether the service runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == envDev
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
