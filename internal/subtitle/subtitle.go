// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package subtitle holds the cue model and the .srt and .sub parsers.
package subtitle

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/subplay/internal/markup"
)

// Cue is a single timed subtitle entry. Index is its position in the owning
// Sequence.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
	Runs  []markup.Run
}

// Duration is how long the cue is shown. Malformed cues may report a
// negative value.
func (c Cue) Duration() time.Duration {
	return c.End - c.Start
}

// Sequence is the ordered result of parsing one subtitle file, in document
// and playback order.
type Sequence []Cue

// Format identifies a subtitle container format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatSUB Format = "sub"
)

// FormatFromPath picks the parser for a file name. Only .sub is special;
// everything else is read as SRT.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".sub") {
		return FormatSUB
	}
	return FormatSRT
}

// Parser handles parsing of subtitle text into cues.
type Parser struct {
	logger zerolog.Logger
}

// NewParser creates a new Parser that reports where parsing stopped.
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse dispatches to the parser for format.
func (p *Parser) Parse(format Format, text string) Sequence {
	if format == FormatSUB {
		return p.ParseSUB(text)
	}
	return p.ParseSRT(text)
}

// lineReader yields lines split on \r\n, \n or \r. A trailing line
// terminator does not produce a final empty line.
type lineReader struct {
	text string
	pos  int
	num  int
}

func newLineReader(text string) *lineReader {
	return &lineReader{text: text}
}

func (r *lineReader) next() (string, bool) {
	if r.pos >= len(r.text) {
		return "", false
	}
	rest := r.text[r.pos:]
	i := strings.IndexAny(rest, "\r\n")
	r.num++
	if i < 0 {
		r.pos = len(r.text)
		return rest, true
	}
	line := rest[:i]
	r.pos += i + 1
	if rest[i] == '\r' && i+1 < len(rest) && rest[i+1] == '\n' {
		r.pos++
	}
	return line, true
}
