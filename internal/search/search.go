// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package search finds cues by their text.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/s0up4200/subplay/internal/subtitle"
)

// NotFound is returned when no cue matches.
const NotFound = -1

// Search returns the index of the first cue at or after start whose text
// matches query, ignoring case. A single-word query must be bounded by
// whitespace or the ends of the text; a query containing whitespace matches
// as a plain substring. There is no wraparound.
func Search(cues subtitle.Sequence, query string, start int) int {
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		return NotFound
	}
	if start < 0 {
		start = 0
	}

	for i := start; i < len(cues); i++ {
		text := cues[i].Text
		if strings.TrimSpace(text) == "" {
			continue
		}
		if Match(strings.ToLower(text), q) {
			return i
		}
	}
	return NotFound
}

// Match reports whether lower-cased query matches lower-cased text.
func Match(text, query string) bool {
	word := strings.TrimSpace(query)
	if word == "" {
		return false
	}
	if strings.IndexFunc(word, unicode.IsSpace) >= 0 {
		return strings.Contains(text, query)
	}

	for pos := 0; pos+len(word) <= len(text); {
		i := strings.Index(text[pos:], word)
		if i < 0 {
			return false
		}
		i += pos
		end := i + len(word)

		if i > 0 {
			r, _ := utf8.DecodeLastRuneInString(text[:i])
			if !unicode.IsSpace(r) {
				pos = end
				continue
			}
		}
		if end < len(text) {
			r, _ := utf8.DecodeRuneInString(text[end:])
			if !unicode.IsSpace(r) {
				pos = end
				continue
			}
		}
		return true
	}
	return false
}
