// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package textenc

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestDecodeDefault(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		want    string
		wantErr bool
	}{
		{name: "ascii", raw: []byte("hello"), want: "hello"},
		{name: "utf8", raw: []byte("café"), want: "café"},
		{name: "utf8 bom", raw: []byte("\xEF\xBB\xBFhi"), want: "hi"},
		{name: "utf16le bom", raw: []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, want: "hi"},
		{name: "utf16be bom", raw: []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, want: "hi"},
		{name: "latin1 bytes", raw: []byte("caf\xE9"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeDefault(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrNotDefault) {
					t.Fatalf("expected ErrNotDefault, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeCodePages(t *testing.T) {
	tests := []struct {
		label string
		raw   []byte
		want  string
	}{
		{"Windows-1252", []byte("caf\xE9 \x80"), "café €"},
		{"windows-1250", []byte("\x8A\xE8"), "Šč"},
		{"Shift-JIS", []byte("\x82\xA0"), "あ"},
		{"EUC-KR", []byte("\xB0\xA1"), "가"},
		{"GB2312", []byte("\xC4\xE3"), "你"},
		{"Big5", []byte("\xA4\xA4"), "中"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := Decode(tt.raw, tt.label)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	for _, label := range []string{"", "  ", None, "none (DEFAULT)"} {
		if got, err := Normalize(label); err != nil || got != "" {
			t.Errorf("Normalize(%q) = %q, %v", label, got, err)
		}
	}
	if got, _ := Normalize("shift-jis"); got != "Shift-JIS" {
		t.Errorf("Normalize(shift-jis) = %q", got)
	}
	if _, err := Normalize("KOI8-R"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	for _, label := range Labels {
		if _, err := Normalize(label); err != nil {
			t.Errorf("listed label %q does not normalize: %v", label, err)
		}
	}
}

func TestResolverFallback(t *testing.T) {
	var notices []string
	r, err := NewResolver("", zerolog.Nop(), func(label string) {
		notices = append(notices, label)
	})
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	text, used, err := r.Resolve([]byte("utf8 ok"), "")
	if err != nil || text != "utf8 ok" || used != "" {
		t.Errorf("Resolve(utf8) = %q, %q, %v", text, used, err)
	}
	if len(notices) != 0 {
		t.Errorf("expected no notice for unicode input")
	}

	for i := 0; i < 2; i++ {
		text, used, err = r.Resolve([]byte("caf\xE9"), "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if text != "café" || used != DefaultFallback {
			t.Errorf("Resolve(latin1) = %q, %q", text, used)
		}
	}
	if len(notices) != 1 || notices[0] != DefaultFallback {
		t.Errorf("expected a single notice, got %v", notices)
	}
}

func TestResolverHonoursChosenLabel(t *testing.T) {
	r, err := NewResolver("Windows-1250", zerolog.Nop(), func(string) {
		t.Error("notice must not fire for a chosen label")
	})
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	// valid UTF-8, but a chosen code page is never second-guessed
	text, used, err := r.Resolve([]byte("\xC3\xA9"), "Windows-1252")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if text != "Ã©" || used != "Windows-1252" {
		t.Errorf("Resolve = %q, %q", text, used)
	}
}

func TestNewResolverRejectsUnknownFallback(t *testing.T) {
	if _, err := NewResolver("EBCDIC", zerolog.Nop(), nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
