package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := DefaultConfig()
	if cfg.APIBaseURL != want.APIBaseURL || cfg.SocketURL != want.SocketURL {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Language != "no" {
		t.Fatalf("expected Norwegian default, got %q", cfg.Language)
	}
	if cfg.RequestTimeoutSec != 30 {
		t.Fatalf("expected 30s timeout default, got %d", cfg.RequestTimeoutSec)
	}
}

func TestLoadConfig_FileValuesAndBackfill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "api_base_url: http://localhost:4000/api\nlanguage: en\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:4000/api" {
		t.Fatalf("expected file value, got %q", cfg.APIBaseURL)
	}
	if cfg.Language != "en" {
		t.Fatalf("expected file language, got %q", cfg.Language)
	}
	if cfg.SocketURL == "" || cfg.RequestTimeoutSec <= 0 {
		t.Fatalf("missing fields must backfill, got %+v", cfg)
	}
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("api_base_url: http://file.example/api\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("OCHAT_API_URL", "http://env.example/api")
	t.Setenv("OCHAT_LANG", "en")
	t.Setenv("OCHAT_TIMEOUT_SEC", "5")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://env.example/api" {
		t.Fatalf("expected env override, got %q", cfg.APIBaseURL)
	}
	if cfg.Language != "en" || cfg.RequestTimeoutSec != 5 {
		t.Fatalf("expected env overrides applied, got %+v", cfg)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := DefaultConfig()
	cfg.Language = "en"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Language != "en" {
		t.Fatalf("expected round-tripped language, got %q", loaded.Language)
	}
}
