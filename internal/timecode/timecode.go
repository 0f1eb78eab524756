// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package timecode converts between time.Duration and the textual timecode
// notations used by subtitle files.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned when a string is not a well-formed timecode.
var ErrInvalid = errors.New("invalid timecode")

// ParseSRT parses an SRT timecode of the form HH:MM:SS,mmm.
func ParseSRT(s string) (time.Duration, error) {
	// SRT uses a comma before the milliseconds; the duration form uses a dot
	return parse(strings.Replace(s, ",", ".", 1))
}

// FormatSRT formats d as a zero padded HH:MM:SS,mmm timecode.
func FormatSRT(d time.Duration) string {
	return format(d, ',')
}

// FormatDisplay formats d as HH:MM:SS.mmm for on-screen clocks.
func FormatDisplay(d time.Duration) string {
	return format(d, '.')
}

// ParseDisplay parses an HH:MM:SS.mmm timecode typed by a user. Anything it
// cannot read yields zero.
func ParseDisplay(s string) time.Duration {
	d, err := parse(s)
	if err != nil {
		return 0
	}
	return d
}

// FrameToDuration converts a frame number to a duration at fps frames per
// second, rounded to the millisecond. A non-positive fps yields zero.
func FrameToDuration(frame int, fps float64) time.Duration {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0
	}
	ms := math.Round(float64(frame) * 1000 / fps)
	return time.Duration(ms) * time.Millisecond
}

// ParseFrameRate reads a positive frame rate.
func ParseFrameRate(s string) (float64, error) {
	fps, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("frame rate %q: %w", s, err)
	}
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0, fmt.Errorf("frame rate %q must be positive", s)
	}
	return fps, nil
}

// parse reads HH:MM:SS with an optional .fraction on the seconds.
func parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	secs, frac, hasFrac := strings.Cut(parts[2], ".")
	if hasFrac && (frac == "" || len(frac) > 9) {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	h, err := field(parts[0], -1)
	if err != nil {
		return 0, fmt.Errorf("%w: hours in %q", ErrInvalid, s)
	}
	m, err := field(parts[1], 59)
	if err != nil {
		return 0, fmt.Errorf("%w: minutes in %q", ErrInvalid, s)
	}
	sec, err := field(secs, 59)
	if err != nil {
		return 0, fmt.Errorf("%w: seconds in %q", ErrInvalid, s)
	}

	var ns int
	if hasFrac {
		n, err := field(frac, -1)
		if err != nil {
			return 0, fmt.Errorf("%w: fraction in %q", ErrInvalid, s)
		}
		ns = n * int(math.Pow10(9-len(frac)))
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ns), nil
}

// field parses an unsigned decimal field; max < 0 means unbounded.
func field(s string, max int) (int, error) {
	if s == "" {
		return 0, ErrInvalid
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalid
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if max >= 0 && n > max {
		return 0, ErrInvalid
	}
	return n, nil
}

func format(d time.Duration, sep byte) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%s%02d:%02d:%02d%c%03d", sign, h, m, s, sep, ms)
}
