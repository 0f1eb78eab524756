// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/subplay/internal/textenc"
)

var (
	// Version information
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of subplay",
	Long:  `All software has versions. This is subplay's.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("subplay v%s\n", Version)
		if verbose {
			fmt.Printf("Build Time: %s\n", BuildTime)
			fmt.Printf("Git Commit: %s\n", GitCommit)
			fmt.Printf("Encodings: %s\n", strings.Join(textenc.Labels, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
