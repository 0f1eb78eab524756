// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"github.com/s0up4200/subplay/internal/player"
	"github.com/s0up4200/subplay/internal/textenc"
)

type Config struct {
	FallbackEncoding string   `toml:"fallback_encoding"`
	Tick             Duration `toml:"tick"`
	SettingsFile     string   `toml:"settings_file"`
	ShowTimestamps   bool     `toml:"show_timestamps"`
}

// Duration is a time.Duration read from strings like "50ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		FallbackEncoding: textenc.DefaultFallback,
		Tick:             Duration{player.DefaultTick},
		SettingsFile:     defaultSettingsFile(),
	}
}

func defaultSettingsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config/subplay/state.toml")
}

// configPaths returns a list of paths to check for config files
func configPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("could not get user home directory")
		home = ""
	}

	return []string{
		"config.toml",   // current directory
		".subplay.toml", // hidden in current directory
		filepath.Join(home, ".config/subplay/config.toml"), // XDG config home
		filepath.Join(home, ".subplay.toml"),               // hidden in home directory
	}
}

// LoadConfig loads configuration from config files and environment variables
func LoadConfig(configFile string) (*Config, error) {
	config := Default()

	if configFile != "" {
		if _, err := toml.DecodeFile(configFile, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		log.Debug().Str("path", configFile).Msg("loaded config file")
	} else {
		for _, path := range configPaths() {
			if _, err := os.Stat(path); err == nil {
				if _, err := toml.DecodeFile(path, config); err == nil {
					log.Debug().Str("path", path).Msg("loaded config file")
					break
				}
				log.Warn().Str("path", path).Msg("skipping unreadable config file")
			}
		}
	}

	// Environment variables override config file
	if enc := os.Getenv("SUBPLAY_FALLBACK_ENCODING"); enc != "" {
		config.FallbackEncoding = enc
	}
	if tick := os.Getenv("SUBPLAY_TICK"); tick != "" {
		if val, err := time.ParseDuration(tick); err == nil {
			config.Tick = Duration{val}
		} else {
			log.Warn().Str("value", tick).Msg("ignoring invalid SUBPLAY_TICK")
		}
	}
	if file := os.Getenv("SUBPLAY_SETTINGS_FILE"); file != "" {
		config.SettingsFile = file
	}
	if show := os.Getenv("SUBPLAY_SHOW_TIMESTAMPS"); show != "" {
		if val, err := strconv.ParseBool(show); err == nil {
			config.ShowTimestamps = val
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configured values.
func (c *Config) Validate() error {
	name, err := textenc.Normalize(c.FallbackEncoding)
	if err != nil {
		return fmt.Errorf("invalid fallback_encoding: %w", err)
	}
	if name == "" {
		return fmt.Errorf("invalid fallback_encoding: %q is not a code page", c.FallbackEncoding)
	}
	c.FallbackEncoding = name
	if c.Tick.Duration <= 0 {
		return fmt.Errorf("invalid tick: must be positive, got %s", c.Tick)
	}
	return nil
}
