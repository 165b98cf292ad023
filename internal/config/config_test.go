package config

import (
	"os"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	os.Unsetenv("SETTINGS_PATH")
	os.Unsetenv("MAX_ATTEMPTS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SettingsPath != "settings.yml" {
		t.Errorf("SettingsPath = %q, want %q", cfg.SettingsPath, "settings.yml")
	}
	if cfg.MaxAttempts != 20 {
		t.Errorf("MaxAttempts = %d, want 20", cfg.MaxAttempts)
	}
	if cfg.SendIntervalSec != 1 {
		t.Errorf("SendIntervalSec = %d, want 1", cfg.SendIntervalSec)
	}
}

func TestConfig_FromEnv(t *testing.T) {
	os.Setenv("SETTINGS_PATH", "/custom/settings.yml")
	os.Setenv("MAX_ATTEMPTS", "5")
	defer os.Unsetenv("SETTINGS_PATH")
	defer os.Unsetenv("MAX_ATTEMPTS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SettingsPath != "/custom/settings.yml" {
		t.Errorf("SettingsPath = %q, want %q", cfg.SettingsPath, "/custom/settings.yml")
	}
	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
}

func TestConfig_BadIntFallsBack(t *testing.T) {
	os.Setenv("MAX_ATTEMPTS", "not-a-number")
	defer os.Unsetenv("MAX_ATTEMPTS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MaxAttempts != 20 {
		t.Errorf("MaxAttempts = %d, want default 20", cfg.MaxAttempts)
	}
}
