// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package timecode

import (
	"errors"
	"testing"
	"time"
)

func TestParseSRT(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "00:00:01,000", want: time.Second},
		{input: "00:00:02,500", want: 2500 * time.Millisecond},
		{input: "01:02:03,004", want: time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond},
		{input: " 00:00:05,250 ", want: 5250 * time.Millisecond},
		{input: "123:00:00,000", want: 123 * time.Hour},
		{input: "00:00:01,5", want: 1500 * time.Millisecond},
		{input: "00:00:01", want: time.Second},
		{input: "", wantErr: true},
		{input: "00:00,000", wantErr: true},
		{input: "00:60:00,000", wantErr: true},
		{input: "00:00:60,000", wantErr: true},
		{input: "aa:00:00,000", wantErr: true},
		{input: "00:00:01,", wantErr: true},
		{input: "-1:00:00,000", wantErr: true},
		{input: "00:00:01,000 X1:40", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSRT(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSRT(%q) = %v, want error", tt.input, got)
				}
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("ParseSRT(%q) error %v does not wrap ErrInvalid", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSRT(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSRT(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSRTRoundTrip(t *testing.T) {
	for _, s := range []string{
		"00:00:00,000",
		"00:00:01,000",
		"00:59:59,999",
		"01:23:45,678",
		"99:00:00,001",
	} {
		d, err := ParseSRT(s)
		if err != nil {
			t.Fatalf("ParseSRT(%q): %v", s, err)
		}
		if got := FormatSRT(d); got != s {
			t.Errorf("FormatSRT(ParseSRT(%q)) = %q", s, got)
		}
	}
}

func TestFormat(t *testing.T) {
	d := 3*time.Hour + 4*time.Minute + 5*time.Second + 67*time.Millisecond
	if got := FormatSRT(d); got != "03:04:05,067" {
		t.Errorf("FormatSRT = %q", got)
	}
	if got := FormatDisplay(d); got != "03:04:05.067" {
		t.Errorf("FormatDisplay = %q", got)
	}
	if got := FormatSRT(-time.Second); got != "-00:00:01,000" {
		t.Errorf("FormatSRT(-1s) = %q", got)
	}
}

func TestParseDisplay(t *testing.T) {
	if got := ParseDisplay("00:01:02.300"); got != time.Minute+2300*time.Millisecond {
		t.Errorf("ParseDisplay = %v", got)
	}
	if got := ParseDisplay("garbage"); got != 0 {
		t.Errorf("ParseDisplay(garbage) = %v, want 0", got)
	}
}

func TestFrameToDuration(t *testing.T) {
	tests := []struct {
		frame int
		fps   float64
		want  time.Duration
	}{
		{0, 25, 0},
		{25, 25, time.Second},
		{1, 25, 40 * time.Millisecond},
		{24, 23.976, 1001 * time.Millisecond},
		{100, 0, 0},
		{100, -25, 0},
	}
	for _, tt := range tests {
		if got := FrameToDuration(tt.frame, tt.fps); got != tt.want {
			t.Errorf("FrameToDuration(%d, %v) = %v, want %v", tt.frame, tt.fps, got, tt.want)
		}
	}
}

func TestFrameToDurationMonotonic(t *testing.T) {
	for _, fps := range []float64{1, 23.976, 25, 29.97, 59.94, 1000} {
		prev := time.Duration(-1)
		for n := 0; n < 5000; n++ {
			d := FrameToDuration(n, fps)
			if d < prev {
				t.Fatalf("fps %v: frame %d gave %v after %v", fps, n, d, prev)
			}
			prev = d
		}
	}
}

func TestParseFrameRate(t *testing.T) {
	if fps, err := ParseFrameRate(" 23.976"); err != nil || fps != 23.976 {
		t.Errorf("ParseFrameRate = %v, %v", fps, err)
	}
	for _, s := range []string{"", "0", "-25", "abc", "NaN", "Inf"} {
		if _, err := ParseFrameRate(s); err == nil {
			t.Errorf("ParseFrameRate(%q) succeeded, want error", s)
		}
	}
}
