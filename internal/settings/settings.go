// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package settings persists small per-file values such as the resume
// position and the chosen encoding.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// ResumeKey is the key holding the last current index for a file.
func ResumeKey(fileID string) string {
	return "Resume_" + fileID
}

// EncodingKey is the key holding the chosen encoding for a file.
func EncodingKey(fileID string) string {
	return "TextEnc_" + fileID
}

// GetInt reads an integer value. Missing or malformed values report false.
func GetInt(s Store, key string) (int, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetInt stores an integer value.
func SetInt(s Store, key string, n int) {
	s.Set(key, strconv.Itoa(n))
}

// File is a Store kept in a TOML file. With an empty path it lives only in
// memory.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]string
	dirty  bool
}

type fileData struct {
	Values map[string]string `toml:"values"`
}

// NewMemory returns a Store that is never written to disk.
func NewMemory() *File {
	return &File{values: make(map[string]string)}
}

// Load reads the store at path. A missing file yields an empty store.
func Load(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}
	if path == "" {
		return f, nil
	}

	var data fileData
	if _, err := toml.DecodeFile(path, &data); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("no settings file yet")
			return f, nil
		}
		return nil, fmt.Errorf("failed to load settings file: %w", err)
	}
	for k, v := range data.Values {
		f.values[k] = v
	}
	log.Debug().Str("path", path).Int("keys", len(f.values)).Msg("loaded settings file")
	return f, nil
}

// Path returns the backing file, or "" for memory stores.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *File) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if old, ok := f.values[key]; ok && old == value {
		return
	}
	f.values[key] = value
	f.dirty = true
}

func (f *File) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; ok {
		delete(f.values, key)
		f.dirty = true
	}
}

// Save writes the store if it has changed since it was loaded.
func (f *File) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.path == "" || !f.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(fileData{Values: f.values}); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	f.dirty = false
	log.Debug().Str("path", f.path).Msg("saved settings file")
	return nil
}
