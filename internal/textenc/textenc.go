// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package textenc decodes subtitle file bytes, falling back to a legacy code
// page when the file is not UTF-8.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// None is the label shown for default (Unicode) decoding. It is equivalent
// to an empty label.
const None = "None (default)"

// DefaultFallback is used when a file is not valid in the default encoding
// and no code page has been chosen.
const DefaultFallback = "Windows-1252"

var (
	// ErrUnsupported is returned for labels outside Labels.
	ErrUnsupported = errors.New("unsupported encoding")
	// ErrNotDefault is returned when raw bytes are not valid default text.
	ErrNotDefault = errors.New("not a unicode text file")
)

var codePages = map[string]encoding.Encoding{
	"Big5":         traditionalchinese.Big5,
	"EUC-KR":       korean.EUCKR,
	"GB2312":       simplifiedchinese.GBK,
	"Shift-JIS":    japanese.ShiftJIS,
	"Windows-1250": charmap.Windows1250,
	"Windows-1252": charmap.Windows1252,
}

// Labels lists the selectable encodings, default first.
var Labels = []string{
	None,
	"Big5",
	"EUC-KR",
	"GB2312",
	"Shift-JIS",
	"Windows-1250",
	"Windows-1252",
}

// Normalize maps None to the empty label and canonicalises the case of code
// page names.
func Normalize(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, None) {
		return "", nil
	}
	for name := range codePages {
		if strings.EqualFold(name, label) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, label)
}

// DecodeDefault decodes raw as Unicode text. UTF-16 is recognised by its byte
// order mark; otherwise the bytes must be valid UTF-8. A leading BOM is
// dropped.
func DecodeDefault(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, []byte{0xFF, 0xFE}) || bytes.HasPrefix(raw, []byte{0xFE, 0xFF}) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotDefault, err)
		}
		return string(out), nil
	}

	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	if !utf8.Valid(raw) {
		return "", ErrNotDefault
	}
	return string(raw), nil
}

// Decode decodes raw with the named code page. An empty or None label means
// DecodeDefault.
func Decode(raw []byte, label string) (string, error) {
	name, err := Normalize(label)
	if err != nil {
		return "", err
	}
	if name == "" {
		return DecodeDefault(raw)
	}

	out, err := codePages[name].NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode as %s: %w", name, err)
	}
	return string(out), nil
}

// Resolver decodes files, substituting a fallback code page when a file has
// no chosen encoding and is not valid default text.
type Resolver struct {
	fallback string
	logger   zerolog.Logger
	notify   func(label string)
	once     sync.Once
}

// NewResolver creates a Resolver. notify, if not nil, is called the first
// time the fallback is applied.
func NewResolver(fallback string, logger zerolog.Logger, notify func(label string)) (*Resolver, error) {
	name, err := Normalize(fallback)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultFallback
	}
	return &Resolver{fallback: name, logger: logger, notify: notify}, nil
}

// Fallback returns the code page used when default decoding fails.
func (r *Resolver) Fallback() string {
	return r.fallback
}

// Resolve decodes raw and returns the text with the label that was actually
// used. A chosen label is always honoured as is; default decoding is never
// retried for it.
func (r *Resolver) Resolve(raw []byte, label string) (string, string, error) {
	name, err := Normalize(label)
	if err != nil {
		return "", "", err
	}
	if name != "" {
		text, err := Decode(raw, name)
		return text, name, err
	}

	text, err := DecodeDefault(raw)
	if err == nil {
		return text, "", nil
	}

	r.logger.Warn().
		Str("fallback", r.fallback).
		Msg("file is not unicode text, decoding with fallback encoding")
	r.once.Do(func() {
		if r.notify != nil {
			r.notify(r.fallback)
		}
	})

	text, err = Decode(raw, r.fallback)
	return text, r.fallback, err
}
