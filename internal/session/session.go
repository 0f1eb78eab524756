// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package session ties one subtitle file to its decoder, cue list, player and
// persisted settings.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/subplay/internal/mirror"
	"github.com/s0up4200/subplay/internal/player"
	"github.com/s0up4200/subplay/internal/search"
	"github.com/s0up4200/subplay/internal/settings"
	"github.com/s0up4200/subplay/internal/subtitle"
	"github.com/s0up4200/subplay/internal/textenc"
)

// ErrBusy is returned when a parse is requested while another is running.
var ErrBusy = errors.New("session is already parsing")

// Session is an open subtitle file.
type Session struct {
	id       string
	path     string
	format   subtitle.Format
	raw      []byte
	encoding string

	store    settings.Store
	logger   zerolog.Logger
	resolver *textenc.Resolver
	parser   *subtitle.Parser
	cues     *mirror.List[subtitle.Cue]
	player   *player.Scheduler
	parsing  atomic.Bool
	resume   atomic.Int64
}

type options struct {
	logger   zerolog.Logger
	tick     time.Duration
	fallback string
	notice   func(label string)
	encoding *string
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger used by the session and its parts.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTick sets the player tick interval.
func WithTick(d time.Duration) Option {
	return func(o *options) { o.tick = d }
}

// WithFallback sets the code page used when a file is not unicode text.
func WithFallback(label string) Option {
	return func(o *options) { o.fallback = label }
}

// WithNotice sets a function called once when the fallback code page is
// applied.
func WithNotice(fn func(label string)) Option {
	return func(o *options) { o.notice = fn }
}

// WithEncoding overrides the stored encoding for this file. An empty label
// or textenc.None selects default decoding.
func WithEncoding(label string) Option {
	return func(o *options) { o.encoding = &label }
}

// Open reads path and parses it. The stored encoding and resume index for
// the file are applied from store.
func Open(path string, store settings.Store, opts ...Option) (*Session, error) {
	o := options{
		logger:   zerolog.Nop(),
		tick:     player.DefaultTick,
		fallback: textenc.DefaultFallback,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if store == nil {
		store = settings.NewMemory()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	resolver, err := textenc.NewResolver(o.fallback, o.logger, o.notice)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback encoding: %w", err)
	}

	label, _ := store.Get(settings.EncodingKey(abs))
	if o.encoding != nil {
		label = *o.encoding
	}
	encoding, err := textenc.Normalize(label)
	if err != nil {
		o.logger.Warn().Str("encoding", label).Msg("ignoring unknown stored encoding")
		encoding = ""
	}

	s := &Session{
		id:       abs,
		path:     abs,
		format:   subtitle.FormatFromPath(abs),
		raw:      raw,
		encoding: encoding,
		store:    store,
		logger:   o.logger.With().Str("file", filepath.Base(abs)).Logger(),
		resolver: resolver,
		parser:   subtitle.NewParser(o.logger),
		cues:     mirror.NewList[subtitle.Cue](nil),
		player:   player.New(nil, player.WithTick(o.tick), player.WithLogger(o.logger)),
	}
	s.resume.Store(player.NoCue)
	s.player.Subscribe(s.track)

	if err := s.parse(); err != nil {
		return nil, err
	}

	if n, ok := settings.GetInt(store, settings.ResumeKey(abs)); ok && n >= 0 && n < s.cues.Len() {
		s.logger.Debug().Int("index", n).Msg("restoring resume position")
		s.player.Seek(n)
	}
	return s, nil
}

// ID is the identity under which the file's settings are stored.
func (s *Session) ID() string { return s.id }

// Path is the absolute path of the file.
func (s *Session) Path() string { return s.path }

// Format is the subtitle format the file was parsed as.
func (s *Session) Format() subtitle.Format { return s.format }

// Encoding is the chosen code page label, or "" for default decoding.
func (s *Session) Encoding() string { return s.encoding }

// Player returns the session's playback scheduler.
func (s *Session) Player() *player.Scheduler { return s.player }

// List returns the observable cue list. It is reset on every parse.
func (s *Session) List() *mirror.List[subtitle.Cue] { return s.cues }

// Cues returns the parsed cues.
func (s *Session) Cues() subtitle.Sequence { return s.cues.Items() }

// SetEncoding selects a code page and re-parses the file. Playback is
// stopped. Setting the current encoding again does nothing.
func (s *Session) SetEncoding(label string) error {
	name, err := textenc.Normalize(label)
	if err != nil {
		return err
	}
	if name == s.encoding {
		return nil
	}

	s.logger.Info().Str("encoding", displayLabel(name)).Msg("changing encoding")
	prev := s.encoding
	s.encoding = name
	if err := s.parse(); err != nil {
		s.encoding = prev
		return err
	}
	return nil
}

// FindNext searches for query after the current cue and seeks to the match.
// It returns the index found or search.NotFound.
func (s *Session) FindNext(query string) int {
	start := s.player.State().CurrentIndex + 1
	i := search.Search(s.Cues(), query, start)
	if i != search.NotFound {
		s.player.Seek(i)
	}
	return i
}

// ResumeIndex is the cue to restore next time: the last current cue, kept
// across a stop and cleared by Home or a reparse.
func (s *Session) ResumeIndex() int {
	return int(s.resume.Load())
}

// Close stops playback and stores the resume index and encoding.
func (s *Session) Close() {
	s.player.StopAndWait()

	resume := s.ResumeIndex()
	settings.SetInt(s.store, settings.ResumeKey(s.id), resume)
	if s.encoding == "" {
		s.store.Delete(settings.EncodingKey(s.id))
	} else {
		s.store.Set(settings.EncodingKey(s.id), s.encoding)
	}
	s.logger.Debug().Int("resume", resume).Msg("session closed")
}

func (s *Session) track(c player.Change) {
	st := c.State
	switch {
	case st.CurrentIndex >= 0:
		s.resume.Store(int64(st.CurrentIndex))
	case !st.IsPlaying && st.CurrentTime == 0:
		s.resume.Store(player.NoCue)
	}
}

func (s *Session) parse() error {
	if !s.parsing.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.parsing.Store(false)

	text, used, err := s.resolver.Resolve(s.raw, s.encoding)
	if err != nil {
		return fmt.Errorf("failed to decode subtitle file: %w", err)
	}
	if used != s.encoding {
		s.encoding = used
	}

	start := time.Now()
	cues := s.parser.Parse(s.format, text)
	s.logger.Debug().
		Str("format", string(s.format)).
		Str("encoding", displayLabel(s.encoding)).
		Int("cues", len(cues)).
		Dur("took", time.Since(start)).
		Msg("parsed subtitle file")

	s.player.Load(cues)
	s.cues.Reset(cues)
	return nil
}

func displayLabel(name string) string {
	if name == "" {
		return textenc.None
	}
	return name
}
