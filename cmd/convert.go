// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/s0up4200/subplay/internal/subtitle"
)

var outputFile string

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Write a subtitle file as UTF-8 SRT",
	Long: `Convert parses a .sub or .srt file in its encoding and writes it as a
UTF-8 SRT file with renumbered cues.

Example:
  subplay convert movie.sub -o movie.srt
  subplay convert old.srt -e Windows-1250 -o new.srt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadSettings()
		if err != nil {
			return err
		}
		s, err := openSession(args[0], store)
		if err != nil {
			return err
		}

		out := outputFile
		if out == "" {
			out = strings.TrimSuffix(s.Path(), filepath.Ext(s.Path())) + ".converted.srt"
		}
		if out == s.Path() {
			return fmt.Errorf("output file must differ from input file")
		}

		if err := subtitle.WriteSRTFile(out, s.Cues()); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info().Str("output", out).Int("cues", len(s.Cues())).Msg("converted subtitle file")
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output subtitle file")

	rootCmd.AddCommand(convertCmd)
}
