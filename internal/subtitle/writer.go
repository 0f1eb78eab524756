// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/s0up4200/subplay/internal/markup"
	"github.com/s0up4200/subplay/internal/timecode"
)

// WriteSRT writes cues as SRT with 1-based sequence numbers. Styled runs are
// written back with their tags.
func WriteSRT(w io.Writer, cues Sequence) error {
	bw := bufio.NewWriter(w)
	for i, c := range cues {
		if _, err := fmt.Fprintf(bw, "%d\n", i+1); err != nil {
			return fmt.Errorf("failed to write index: %w", err)
		}

		if _, err := fmt.Fprintf(bw, "%s --> %s\n", timecode.FormatSRT(c.Start), timecode.FormatSRT(c.End)); err != nil {
			return fmt.Errorf("failed to write timestamps: %w", err)
		}

		text := c.Text
		if len(c.Runs) > 0 {
			text = markup.Render(c.Runs)
		}
		if _, err := fmt.Fprintf(bw, "%s\n\n", text); err != nil {
			return fmt.Errorf("failed to write text: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	return nil
}

// WriteSRTFile writes cues to filename as SRT.
func WriteSRTFile(filename string, cues Sequence) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteSRT(file, cues); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
