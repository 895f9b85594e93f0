package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\ndata:\n  path: data/sales_data.csv\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Forecast.DefaultHorizon != 30 || cfg.Forecast.MaxHorizon != 365 {
		t.Fatalf("unexpected horizon defaults: %d/%d", cfg.Forecast.DefaultHorizon, cfg.Forecast.MaxHorizon)
	}
	if cfg.Forecast.Confidence != 0.95 {
		t.Fatalf("expected default confidence 0.95, got %v", cfg.Forecast.Confidence)
	}
	if cfg.Refresh.Interval != 24*time.Hour {
		t.Fatalf("expected default refresh interval 24h, got %v", cfg.Refresh.Interval)
	}
}

func TestLoadMissingDataPath(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing data.path")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\ndata:\n  path: data/sales_data.csv\n")

	t.Setenv("SALES_DATA_PATH", "/tmp/other.csv")
	t.Setenv("PORT", "8080")
	t.Setenv("REFRESH_INTERVAL", "2h")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.Data.Path != "/tmp/other.csv" {
		t.Fatalf("expected data path override, got %q", cfg.Data.Path)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected port override, got %d", cfg.Server.Port)
	}
	if cfg.Refresh.Interval != 2*time.Hour {
		t.Fatalf("expected refresh interval override, got %v", cfg.Refresh.Interval)
	}
}

func TestValidateRejectsBadConfidence(t *testing.T) {
	path := writeConfig(t, "environment: test\ndata:\n  path: d.csv\nforecast:\n  confidence: 1.5\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for confidence outside (0, 1)")
	}
}
