// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/subplay/internal/search"
)

var searchFirst bool

var searchCmd = &cobra.Command{
	Use:   "search <file> <query>",
	Short: "Find cues containing a word or phrase",
	Long: `Search lists the cues whose text matches the query, ignoring case.
A single word only matches whole words; a phrase matches anywhere.

Example:
  subplay search movie.srt cat
  subplay search movie.srt "cat sat" --first`,
	Args: cobra.ExactArgs(2),
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
		found := 0
		for i := search.Search(cues, args[1], 0); i != search.NotFound; i = search.Search(cues, args[1], i+1) {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, cueRow(cues[i], true))
			found++
			if searchFirst {
				break
			}
		}
		if found == 0 {
			return fmt.Errorf("no cue matches %q", args[1])
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchFirst, "first", false, "stop at the first match")

	rootCmd.AddCommand(searchCmd)
}
