// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/s0up4200/subplay/internal/config"
	"github.com/s0up4200/subplay/internal/settings"
)

var (
	// Flags
	configFile string
	encoding   string
	verbose    bool

	cfg *config.Config

	// Root command
	rootCmd = &cobra.Command{
		Use:   "subplay",
		Short: "subplay - Subtitle Player",
		Long: `subplay is a command-line player for subtitle files (.srt and .sub).
It shows each cue in real time, searches cue text and converts files to SRT.

Example:
  subplay play movie.srt
  subplay search movie.sub "hello there"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger()

			c, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVarP(&encoding, "encoding", "e", "", "text encoding of the subtitle file (e.g. 'Shift-JIS', 'None (default)')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func setupLogger() {
	noColor := !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadSettings opens the settings store named by the config.
func loadSettings() (*settings.File, error) {
	store, err := settings.Load(cfg.SettingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	return store, nil
}
