// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/subplay/internal/subtitle"
	"github.com/s0up4200/subplay/internal/timecode"
)

var cuesYAML bool

var cuesCmd = &cobra.Command{
	Use:   "cues <file>",
	Short: "List the parsed cues of a subtitle file",
	Long: `Cues parses a subtitle file and prints every cue with its timing.
With --yaml the cues are dumped with their styled runs.

Example:
  subplay cues movie.sub
  subplay cues movie.srt --yaml`,
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

		cues := s.Cues()
		if cuesYAML {
			return subtitle.EncodeYAML(cmd.OutOrStdout(), cues)
		}
		for _, c := range cues {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s --> %s\t%s\n",
				c.Index+1, timecode.FormatDisplay(c.Start), timecode.FormatDisplay(c.End), cueRow(c, false))
		}
		return nil
	},
}

func init() {
	cuesCmd.Flags().BoolVar(&cuesYAML, "yaml", false, "dump cues as YAML")

	rootCmd.AddCommand(cuesCmd)
}
