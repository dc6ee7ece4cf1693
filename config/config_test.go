package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Name != "product-service" {
		t.Errorf("app name = %q", cfg.App.Name)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Database.Type != "memory" {
		t.Errorf("database type = %q, want memory default", cfg.Database.Type)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.Server.ShutdownTimeout)
	}
	if !cfg.Database.Retry.Enabled || cfg.Database.Retry.MaxAttempts != 3 {
		t.Errorf("retry defaults = %+v", cfg.Database.Retry)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Errorf("default env = %q", cfg.App.Env)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  env: production
server:
  port: "9090"
database:
  type: mysql
  host: db.internal
log:
  level: warn
  format: json
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Type != "mysql" || cfg.Database.Host != "db.internal" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if !cfg.IsProduction() {
		t.Errorf("env = %q, want production", cfg.App.Env)
	}
	// Unset keys keep their defaults.
	if cfg.Database.Port != "3306" {
		t.Errorf("database port default = %q", cfg.Database.Port)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("explicit missing file must fail")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PRODUCT_SERVER_PORT", "7070")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("port = %q, want env override 7070", cfg.Server.Port)
	}
}
