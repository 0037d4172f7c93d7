package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "8080" {
		t.Fatalf("APIPort = %s, want 8080", cfg.APIPort)
	}
	if cfg.NATSSubject != "tax.documents.ingested" {
		t.Fatalf("NATSSubject = %s", cfg.NATSSubject)
	}
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("APIRateLimitRPS = %d, want 20", cfg.APIRateLimitRPS)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("API_RATE_LIMIT_RPS", "5")
	t.Setenv("BREAKER_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "9999" {
		t.Fatalf("APIPort = %s, want 9999", cfg.APIPort)
	}
	if cfg.APIRateLimitRPS != 5 {
		t.Fatalf("APIRateLimitRPS = %d, want 5", cfg.APIRateLimitRPS)
	}
	if cfg.BreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
}

func TestLoadFileOverlayEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_port: \"7070\"\nnats_subject: file.subject\napi_max_in_flight: 9\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_PORT", "6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "6060" {
		t.Fatalf("env should win over file, got %s", cfg.APIPort)
	}
	if cfg.NATSSubject != "file.subject" {
		t.Fatalf("NATSSubject = %s, want file.subject", cfg.NATSSubject)
	}
	if cfg.APIMaxInFlight != 9 {
		t.Fatalf("APIMaxInFlight = %d, want 9", cfg.APIMaxInFlight)
	}
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestMustEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("PROCESS_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProcessTimeoutSec != 120 {
		t.Fatalf("ProcessTimeoutSec = %d, want fallback 120", cfg.ProcessTimeoutSec)
	}
}
