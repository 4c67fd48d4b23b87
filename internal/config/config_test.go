package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  access_token_ttl: "30m"

srs:
  default_ease_factor: 2.5
  min_ease_factor: 1.3

log:
  level: "debug"
  format: "text"
`

func TestLoad_FromEnvOnly(t *testing.T) {
	validEnv(t)

	// Run from a directory without a config.yaml.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Errorf("auth.access_token_ttl = %v, want default 15m", cfg.Auth.AccessTokenTTL)
	}
	if cfg.SRS.DefaultEaseFactor != 2.5 || cfg.SRS.MinEaseFactor != 1.3 {
		t.Errorf("srs defaults wrong: %+v", cfg.SRS)
	}
	if !cfg.Database.MigrateOnStart {
		t.Error("database.migrate_on_start should default to true")
	}
}

func TestLoad_FromYAML(t *testing.T) {
	validEnv(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Errorf("auth.access_token_ttl = %v, want 30m", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	validEnv(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("server.port = %d, want env override 7070", cfg.Server.Port)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	validEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "short")
	t.Chdir(t.TempDir())

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("got %v, want jwt_secret error", err)
	}
}

func TestValidate_BadSRS(t *testing.T) {
	validEnv(t)
	t.Setenv("SRS_DEFAULT_EASE", "1.0")
	t.Chdir(t.TempDir())

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "default_ease_factor") {
		t.Errorf("got %v, want default_ease_factor error", err)
	}
}

func TestValidate_BadHashCost(t *testing.T) {
	validEnv(t)
	t.Setenv("AUTH_PASSWORD_HASH_COST", "99")
	t.Chdir(t.TempDir())

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "password_hash_cost") {
		t.Errorf("got %v, want password_hash_cost error", err)
	}
}
