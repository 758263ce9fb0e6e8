package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}

func TestLoad_ReadsDotEnvFile(t *testing.T) {
	unsetEnv(t, "PREVENTIVO_PORT", "PREVENTIVO_DB_PATH", "PREVENTIVO_LOG_LEVEL", "PREVENTIVO_ENV")

	path := writeDotEnv(t, `
# local overrides

PREVENTIVO_PORT=9191
export PREVENTIVO_DB_PATH="/tmp/quotes # not a comment.db"
PREVENTIVO_LOG_LEVEL=debug # trailing
PREVENTIVO_ENV='dev'
`)

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.Addr(); got != ":9191" {
		t.Fatalf("Addr()=%q, want %q", got, ":9191")
	}
	if cfg.DBPath != "/tmp/quotes # not a comment.db" {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel=%q, want %q", cfg.LogLevel, "debug")
	}
	if !cfg.IsDev() {
		t.Fatalf("Env=%q, want dev", cfg.Env)
	}
}

func TestLoad_DotEnvDoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("PREVENTIVO_PORT", "7070")

	cfg, err := load(writeDotEnv(t, "PREVENTIVO_PORT=9191\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.Addr(); got != ":7070" {
		t.Fatalf("Addr()=%q, want %q", got, ":7070")
	}
}

func TestLoad_MissingDotEnvIsNotAnError(t *testing.T) {
	unsetEnv(t, "PREVENTIVO_PORT")

	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.Addr(); got != ":8080" {
		t.Fatalf("Addr()=%q, want %q", got, ":8080")
	}
}
