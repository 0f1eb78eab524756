// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package markup turns SRT inline <b>/<i> tags into styled runs.
package markup

import (
	"strings"
)

const (
	openBold    = "<b>"
	closeBold   = "</b>"
	openItalic  = "<i>"
	closeItalic = "</i>"
)

// Run is a contiguous span of text sharing the same bold/italic flags.
type Run struct {
	Text   string `yaml:"text"`
	Bold   bool   `yaml:"bold,omitempty"`
	Italic bool   `yaml:"italic,omitempty"`
}

// Plain reports whether the run carries no styling.
func (r Run) Plain() bool {
	return !r.Bold && !r.Italic
}

// HasTags reports whether text opens a bold or italic span.
func HasTags(text string) bool {
	return strings.Contains(text, openItalic) || strings.Contains(text, openBold)
}

// Strip removes all four recognised tags from text. Closing tags are removed
// even when nothing opened them.
func Strip(text string) string {
	text = strings.ReplaceAll(text, closeItalic, "")
	text = strings.ReplaceAll(text, closeBold, "")
	text = strings.ReplaceAll(text, openItalic, "")
	return strings.ReplaceAll(text, openBold, "")
}

// Parse returns the plain text projection of a cue body and its runs. Bodies
// without opening tags come back as a single plain run.
func Parse(text string) (string, []Run) {
	plain := Strip(text)
	if !HasTags(text) {
		return plain, []Run{{Text: plain}}
	}
	return plain, Tokenize(strings.Split(text, "\n"))
}

// Tokenize scans lines left to right and emits a run for every text segment
// between tag boundaries. Bold and italic toggle independently and carry over
// from one line to the next; lines are separated by a newline run. An
// unrecognised '<' is kept as literal text.
func Tokenize(lines []string) []Run {
	var (
		runs         []Run
		bold, italic bool
	)
	emit := func(s string) {
		if s != "" {
			runs = append(runs, Run{Text: s, Bold: bold, Italic: italic})
		}
	}

	for n, line := range lines {
		if n > 0 {
			emit("\n")
		}

		start := 0
		for i := 0; i < len(line); {
			if line[i] != '<' {
				i++
				continue
			}
			rest := line[i:]
			var tag string
			switch {
			case strings.HasPrefix(rest, openItalic):
				tag = openItalic
			case strings.HasPrefix(rest, closeItalic):
				tag = closeItalic
			case strings.HasPrefix(rest, openBold):
				tag = openBold
			case strings.HasPrefix(rest, closeBold):
				tag = closeBold
			default:
				i++
				continue
			}

			emit(line[start:i])
			switch tag {
			case openItalic:
				italic = true
			case closeItalic:
				italic = false
			case openBold:
				bold = true
			case closeBold:
				bold = false
			}
			i += len(tag)
			start = i
		}
		emit(line[start:])
	}
	return runs
}

// Render writes runs back out with tags, closing any span that is still open
// at the end.
func Render(runs []Run) string {
	var (
		b            strings.Builder
		bold, italic bool
	)
	for _, r := range runs {
		if italic && !r.Italic {
			b.WriteString(closeItalic)
			italic = false
		}
		if bold && !r.Bold {
			b.WriteString(closeBold)
			bold = false
		}
		if r.Bold && !bold {
			b.WriteString(openBold)
			bold = true
		}
		if r.Italic && !italic {
			b.WriteString(openItalic)
			italic = true
		}
		b.WriteString(r.Text)
	}
	if italic {
		b.WriteString(closeItalic)
	}
	if bold {
		b.WriteString(closeBold)
	}
	return b.String()
}
