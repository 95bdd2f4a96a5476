package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
app:
  port: 9000
engine:
  freshness_horizon_days: 14
scrape:
  requests_per_second: 0.5
themes:
  - health
  - Health
  - "  "
  - climate
`

func TestLoadAndNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("validation errors: %v", vr.Errors)
	}

	if cfg.App.Port != 9000 {
		t.Errorf("port = %d", cfg.App.Port)
	}
	if cfg.Engine.PerSourceLimit != 10 || cfg.Engine.MinResultsPerSource != 10 {
		t.Errorf("engine defaults not applied: %+v", cfg.Engine)
	}
	if cfg.FreshnessHorizon() != 14*24*time.Hour {
		t.Errorf("horizon = %v", cfg.FreshnessHorizon())
	}
	if cfg.Scrape.RequestsPerSecond != 0.5 || cfg.Scrape.Burst != 2 {
		t.Errorf("scrape = %+v", cfg.Scrape)
	}
	if cfg.Scrape.UserAgent == "" {
		t.Error("user agent default not applied")
	}
	if len(cfg.Themes) != 2 {
		t.Errorf("themes not deduped: %v", cfg.Themes)
	}
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.yml")
	if err := os.WriteFile(defaultPath, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(userPath); err != nil {
		t.Fatalf("bootstrap copy missing: %v", err)
	}

	// Second call must keep the existing file, not re-copy.
	if err := os.WriteFile(userPath, []byte("app:\n  port: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatal(err)
	}
	if again != userPath {
		t.Fatalf("path changed: %q", again)
	}
	b, _ := os.ReadFile(userPath)
	if string(b) != "app:\n  port: 1\n" {
		t.Fatal("user edits were overwritten by bootstrap")
	}
}
