// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package subtitle

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/s0up4200/subplay/internal/markup"
	"github.com/s0up4200/subplay/internal/timecode"
)

type yamlCue struct {
	Index int          `yaml:"index"`
	Start string       `yaml:"start"`
	End   string       `yaml:"end"`
	Text  string       `yaml:"text"`
	Runs  []markup.Run `yaml:"runs,omitempty"`
}

// MarshalYAML renders timings as SRT timecodes. Runs are only listed when
// the cue has styling.
func (c Cue) MarshalYAML() (any, error) {
	out := yamlCue{
		Index: c.Index,
		Start: timecode.FormatSRT(c.Start),
		End:   timecode.FormatSRT(c.End),
		Text:  c.Text,
	}
	for _, r := range c.Runs {
		if !r.Plain() {
			out.Runs = c.Runs
			break
		}
	}
	return out, nil
}

// EncodeYAML dumps cues as a YAML list.
func EncodeYAML(w io.Writer, cues Sequence) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if cues == nil {
		cues = Sequence{}
	}
	if err := enc.Encode(cues); err != nil {
		return fmt.Errorf("failed to encode cues: %w", err)
	}
	return enc.Close()
}
