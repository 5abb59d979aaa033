package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFile, "")

	// Create a temp config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
api:
  base_url: http://board.internal:8080
  timeout: 15
ui:
  search_debounce_ms: 500
  show_help_bar: false
log:
  file: /tmp/board.log
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://board.internal:8080" {
		t.Errorf("API.BaseURL = %s, want http://board.internal:8080", cfg.API.BaseURL)
	}

	if cfg.Timeout() != 15*time.Second {
		t.Errorf("Timeout() = %v, want 15s", cfg.Timeout())
	}

	if cfg.SearchDebounce() != 500*time.Millisecond {
		t.Errorf("SearchDebounce() = %v, want 500ms", cfg.SearchDebounce())
	}

	if *cfg.UI.ShowHelpBar {
		t.Error("UI.ShowHelpBar = true, want false")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFile, "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Minimal config - should get defaults
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Errorf("API.BaseURL = %s, want default http://localhost:5000", cfg.API.BaseURL)
	}

	if cfg.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0 (no timeout)", cfg.Timeout())
	}

	if cfg.SearchDebounce() != 300*time.Millisecond {
		t.Errorf("SearchDebounce() = %v, want default 300ms", cfg.SearchDebounce())
	}

	if !*cfg.UI.ShowHelpBar {
		t.Error("UI.ShowHelpBar = false, want default true")
	}

	if cfg.Log.Level != "info" || cfg.Log.File == "" {
		t.Errorf("Log = %+v, want level info and a file", cfg.Log)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://from-env:9000")
	t.Setenv(EnvLogLevel, "warn")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("api:\n  base_url: http://from-file\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromDir() error = %v", err)
	}

	if cfg.API.BaseURL != "http://from-env:9000" {
		t.Errorf("API.BaseURL = %s, want env override", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s, want warn", cfg.Log.Level)
	}
}

func TestResolveExplicitMissingFile(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Resolve() with missing explicit file should fail")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("api: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() with invalid YAML should fail")
	}
}
