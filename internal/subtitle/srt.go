// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package subtitle

import (
	"strconv"
	"strings"

	"github.com/s0up4200/subplay/internal/markup"
	"github.com/s0up4200/subplay/internal/timecode"
)

const srtArrow = "-->"

// ParseSRT reads SRT records until the input ends or a record is malformed.
// Everything parsed before the bad record is returned.
func (p *Parser) ParseSRT(text string) Sequence {
	var cues Sequence
	r := newLineReader(text)

	for {
		line, ok := r.next()
		if !ok {
			break
		}

		// The sequence number is only validated; cue order is positional.
		if _, err := strconv.Atoi(strings.TrimSpace(line)); err != nil {
			p.stopped(r.num, "expected sequence number", len(cues))
			return cues
		}

		line, ok = r.next()
		if !ok {
			p.stopped(r.num, "missing timing line", len(cues))
			return cues
		}
		startStr, endStr, found := strings.Cut(line, srtArrow)
		if !found {
			p.stopped(r.num, "missing -->", len(cues))
			return cues
		}
		start, err := timecode.ParseSRT(strings.TrimSpace(startStr))
		if err != nil {
			p.stopped(r.num, err.Error(), len(cues))
			return cues
		}
		end, err := timecode.ParseSRT(strings.TrimSpace(endStr))
		if err != nil {
			p.stopped(r.num, err.Error(), len(cues))
			return cues
		}

		var body []string
		for {
			line, ok = r.next()
			if !ok || strings.TrimSpace(line) == "" {
				break
			}
			body = append(body, line)
		}

		plain, runs := markup.Parse(strings.TrimRight(strings.Join(body, "\n"), "\r\n"))
		cues = append(cues, Cue{
			Index: len(cues),
			Start: start,
			End:   end,
			Text:  plain,
			Runs:  runs,
		})
	}

	p.logger.Debug().Int("cues", len(cues)).Msg("parsed srt")
	return cues
}

func (p *Parser) stopped(line int, reason string, cues int) {
	p.logger.Debug().
		Int("line", line).
		Str("reason", reason).
		Int("cues", cues).
		Msg("srt parsing stopped")
}
