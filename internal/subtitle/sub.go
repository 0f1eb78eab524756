// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package subtitle

import (
	"strconv"
	"strings"

	"github.com/s0up4200/subplay/internal/markup"
	"github.com/s0up4200/subplay/internal/timecode"
)

// ParseSUB reads frame-indexed {start}{end}text|text lines. The first
// well-formed line declares the frame rate in its payload; if that is not a
// positive number nothing is parsed. Later malformed lines are skipped.
func (p *Parser) ParseSUB(text string) Sequence {
	var (
		cues Sequence
		fps  float64
	)
	r := newLineReader(text)

	for {
		line, ok := r.next()
		if !ok {
			break
		}

		start, end, payload, ok := splitSUBLine(line)
		if !ok {
			continue
		}

		if fps == 0 {
			rate, err := timecode.ParseFrameRate(payload)
			if err != nil {
				p.logger.Debug().Int("line", r.num).Err(err).Msg("sub parsing aborted")
				return cues
			}
			fps = rate
			continue
		}

		plain := strings.TrimRight(strings.Join(strings.Split(payload, "|"), "\n"), "\r\n")
		cues = append(cues, Cue{
			Index: len(cues),
			Start: timecode.FrameToDuration(start, fps),
			End:   timecode.FrameToDuration(end, fps),
			Text:  plain,
			Runs:  []markup.Run{{Text: plain}},
		})
	}

	p.logger.Debug().Int("cues", len(cues)).Float64("fps", fps).Msg("parsed sub")
	return cues
}

// splitSUBLine breaks {N1}{N2}rest into its parts.
func splitSUBLine(line string) (int, int, string, bool) {
	if !strings.HasPrefix(line, "{") {
		return 0, 0, "", false
	}
	first, rest, found := strings.Cut(line[1:], "}{")
	if !found {
		return 0, 0, "", false
	}
	second, payload, found := strings.Cut(rest, "}")
	if !found {
		return 0, 0, "", false
	}
	n1, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, "", false
	}
	n2, err := strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, "", false
	}
	return n1, n2, payload, true
}
