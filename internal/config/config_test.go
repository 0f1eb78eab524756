// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
fallback_encoding = "shift-jis"
tick = "20ms"
settings_file = "/tmp/state.toml"
show_timestamps = true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.FallbackEncoding != "Shift-JIS" {
		t.Errorf("fallback: got %q", cfg.FallbackEncoding)
	}
	if cfg.Tick.Duration != 20*time.Millisecond {
		t.Errorf("tick: got %s", cfg.Tick)
	}
	if cfg.SettingsFile != "/tmp/state.toml" || !cfg.ShowTimestamps {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.FallbackEncoding != "Windows-1252" || cfg.Tick.Duration != 50*time.Millisecond {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SUBPLAY_FALLBACK_ENCODING", "Big5")
	t.Setenv("SUBPLAY_TICK", "10ms")
	t.Setenv("SUBPLAY_SETTINGS_FILE", "/elsewhere.toml")

	cfg, err := LoadConfig(writeConfig(t, `fallback_encoding = "EUC-KR"`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.FallbackEncoding != "Big5" || cfg.Tick.Duration != 10*time.Millisecond || cfg.SettingsFile != "/elsewhere.toml" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown encoding", `fallback_encoding = "KOI8-R"`},
		{"none as fallback", `fallback_encoding = "None (default)"`},
		{"zero tick", `tick = "0s"`},
		{"bad tick", `tick = "soon"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
