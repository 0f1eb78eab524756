// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	SetInt(f, ResumeKey("/movies/a.srt"), 42)
	f.Set(EncodingKey("/movies/a.srt"), "Shift-JIS")
	f.Set("gone", "x")
	f.Delete("gone")
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n, ok := GetInt(g, ResumeKey("/movies/a.srt")); !ok || n != 42 {
		t.Errorf("resume index: got %d, %v", n, ok)
	}
	if v, ok := g.Get(EncodingKey("/movies/a.srt")); !ok || v != "Shift-JIS" {
		t.Errorf("encoding: got %q, %v", v, ok)
	}
	if _, ok := g.Get("gone"); ok {
		t.Error("deleted key came back")
	}
}

func TestSaveSkipsCleanStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file for an unchanged store, stat err: %v", err)
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	if err := os.WriteFile(path, []byte("values = [not toml"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed settings file")
	}
}

func TestGetIntMalformed(t *testing.T) {
	m := NewMemory()
	m.Set("k", "nope")
	if _, ok := GetInt(m, "k"); ok {
		t.Error("expected malformed value to be ignored")
	}
	if _, ok := GetInt(m, "missing"); ok {
		t.Error("expected missing value to report false")
	}
	if err := m.Save(); err != nil {
		t.Errorf("memory Save failed: %v", err)
	}
}
