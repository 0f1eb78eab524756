// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPlain string
		wantRuns  []Run
	}{
		{
			name:      "plain",
			input:     "Hello world",
			wantPlain: "Hello world",
			wantRuns:  []Run{{Text: "Hello world"}},
		},
		{
			name:      "italic and bold",
			input:     "<i>Hello</i> <b>world</b>",
			wantPlain: "Hello world",
			wantRuns: []Run{
				{Text: "Hello", Italic: true},
				{Text: " "},
				{Text: "world", Bold: true},
			},
		},
		{
			name:      "nested",
			input:     "<b>a<i>b</b>c</i>d",
			wantPlain: "abcd",
			wantRuns: []Run{
				{Text: "a", Bold: true},
				{Text: "b", Bold: true, Italic: true},
				{Text: "c", Italic: true},
				{Text: "d"},
			},
		},
		{
			name:      "stray closing tag takes fast path",
			input:     "Hello</i> world</b>",
			wantPlain: "Hello world",
			wantRuns:  []Run{{Text: "Hello world"}},
		},
		{
			name:      "unknown tag stays literal",
			input:     "<i>1 < 2</i> <u>x</u>",
			wantPlain: "1 < 2 <u>x</u>",
			wantRuns: []Run{
				{Text: "1 < 2", Italic: true},
				{Text: " <u>x</u>"},
			},
		},
		{
			name:      "style spans lines",
			input:     "<i>one\ntwo</i>\nthree",
			wantPlain: "one\ntwo\nthree",
			wantRuns: []Run{
				{Text: "one", Italic: true},
				{Text: "\n", Italic: true},
				{Text: "two", Italic: true},
				{Text: "\n"},
				{Text: "three"},
			},
		},
		{
			name:      "trailing lone bracket",
			input:     "<b>x<",
			wantPlain: "x<",
			wantRuns:  []Run{{Text: "x<", Bold: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, runs := Parse(tt.input)
			if plain != tt.wantPlain {
				t.Errorf("plain: got %q, want %q", plain, tt.wantPlain)
			}
			if diff := cmp.Diff(tt.wantRuns, runs); diff != "" {
				t.Errorf("runs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTagsAreCaseSensitive(t *testing.T) {
	plain, runs := Parse("<I>shout</I>")
	if plain != "<I>shout</I>" {
		t.Errorf("plain: got %q", plain)
	}
	if len(runs) != 1 || !runs[0].Plain() {
		t.Errorf("expected one plain run, got %+v", runs)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		runs []Run
		want string
	}{
		{[]Run{{Text: "plain"}}, "plain"},
		{[]Run{{Text: "Hello", Italic: true}, {Text: " "}, {Text: "world", Bold: true}}, "<i>Hello</i> <b>world</b>"},
		{[]Run{{Text: "a", Bold: true}, {Text: "b", Bold: true, Italic: true}}, "<b>a<i>b</i></b>"},
	}
	for _, tt := range tests {
		if got := Render(tt.runs); got != tt.want {
			t.Errorf("Render(%+v) = %q, want %q", tt.runs, got, tt.want)
		}
	}
}
