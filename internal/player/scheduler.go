// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package player drives a self-clocked subtitle timeline: it advances the
// current cue against wall-clock time and supports seek, stop and resume.
package player

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/subplay/internal/subtitle"
)

// DefaultTick is the polling interval for progress updates and cancellation.
const DefaultTick = 50 * time.Millisecond

// Scheduler owns the playback state for one cue sequence. At most one play
// loop runs at a time.
//
// Listeners run on the goroutine that changed the state, which for ticks is
// the play loop. A listener may call Stop, State or Cues, but must not call
// Play, Seek, Home, Load or StopAndWait.
type Scheduler struct {
	tick   time.Duration
	logger zerolog.Logger
	bus    bus

	// ctrl serialises operations that start or wait for a loop
	ctrl sync.Mutex

	mu    sync.Mutex
	cues  subtitle.Sequence
	state State
	loop  *loop
}

type loop struct {
	parent context.Context
	cancel context.CancelFunc
	done   chan struct{}
	// handoff is set when another loop takes over; the exiting loop then
	// leaves the playing flag and current index alone.
	handoff atomic.Bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTick sets the polling interval.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithLogger sets the logger for playback transitions.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// New creates an idle Scheduler over cues.
func New(cues subtitle.Sequence, opts ...Option) *Scheduler {
	s := &Scheduler{
		tick:   DefaultTick,
		logger: zerolog.Nop(),
		cues:   cues,
		state:  State{CurrentIndex: NoCue},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tick returns the polling interval.
func (s *Scheduler) Tick() time.Duration {
	return s.tick
}

// State returns a snapshot of the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cues returns the sequence being played.
func (s *Scheduler) Cues() subtitle.Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cues
}

// Subscribe registers fn for every state change and returns a function that
// removes it.
func (s *Scheduler) Subscribe(fn Listener) func() {
	return s.bus.subscribe(fn)
}

// Load replaces the cue sequence, stopping playback and returning to idle.
func (s *Scheduler) Load(cues subtitle.Sequence) {
	s.ctrl.Lock()
	defer s.ctrl.Unlock()

	s.stopAndWait()
	s.mu.Lock()
	s.cues = cues
	s.mu.Unlock()
	s.update(func(st *State) {
		*st = State{CurrentIndex: NoCue}
	})
}

// Play starts playback at from. A loop that is already running is stopped
// first without the scheduler passing through idle. Play returns once the new
// loop is running; use Wait or Done to learn when it ends.
func (s *Scheduler) Play(ctx context.Context, from time.Duration) {
	s.ctrl.Lock()
	defer s.ctrl.Unlock()

	s.handoff()
	s.start(ctx, from, NoCue)
}

// PlayFromStart plays from time zero.
func (s *Scheduler) PlayFromStart(ctx context.Context) {
	s.Play(ctx, 0)
}

// Resume plays from the current time.
func (s *Scheduler) Resume(ctx context.Context) {
	s.Play(ctx, s.State().CurrentTime)
}

// Stop asks the running loop to end and returns immediately. The loop
// observes the request within one tick. Stop is a no-op when nothing is
// playing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	l := s.loop
	s.mu.Unlock()

	if l != nil {
		s.logger.Debug().Msg("stop requested")
		l.cancel()
	}
}

// StopAndWait stops playback and blocks until the loop has exited.
func (s *Scheduler) StopAndWait() {
	s.ctrl.Lock()
	defer s.ctrl.Unlock()
	s.stopAndWait()
}

// Done returns a channel that is closed when the current loop exits. It is
// already closed when nothing is playing.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loop == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return s.loop.done
}

// Wait blocks until the current loop exits.
func (s *Scheduler) Wait() {
	<-s.Done()
}

// Seek moves to the cue at index. While playing, the loop restarts at that
// cue's start time; otherwise only the current index and time move and the
// cue is not activated. A negative index is Home. Out of range indexes are
// ignored.
func (s *Scheduler) Seek(index int) {
	s.ctrl.Lock()
	defer s.ctrl.Unlock()

	if index < 0 {
		s.home()
		return
	}

	s.mu.Lock()
	if index >= len(s.cues) {
		s.mu.Unlock()
		return
	}
	start := s.cues[index].Start
	l := s.loop
	s.mu.Unlock()

	s.logger.Debug().Int("index", index).Dur("start", start).Bool("playing", l != nil).Msg("seek")

	if l != nil {
		s.handoff()
		s.start(l.parent, start, index)
		return
	}
	s.update(func(st *State) {
		st.CurrentIndex = index
		st.CurrentTime = start
		st.IsCueActive = false
	})
}

// Home stops playback and rewinds to time zero with no current cue.
func (s *Scheduler) Home() {
	s.ctrl.Lock()
	defer s.ctrl.Unlock()
	s.home()
}

func (s *Scheduler) home() {
	s.stopAndWait()
	s.update(func(st *State) {
		st.CurrentIndex = NoCue
		st.CurrentTime = 0
		st.IsCueActive = false
	})
}

func (s *Scheduler) stopAndWait() {
	s.mu.Lock()
	l := s.loop
	s.mu.Unlock()

	if l != nil {
		l.cancel()
		<-l.done
	}
}

// handoff stops the running loop, if any, leaving the playing state for the
// loop that replaces it.
func (s *Scheduler) handoff() {
	s.mu.Lock()
	l := s.loop
	s.mu.Unlock()

	if l != nil {
		l.handoff.Store(true)
		l.cancel()
		<-l.done
	}
}

// start launches a loop at from. index is shown as current until the loop
// reaches its first cue.
func (s *Scheduler) start(ctx context.Context, from time.Duration, index int) {
	if ctx == nil {
		ctx = context.Background()
	}
	lctx, cancel := context.WithCancel(ctx)
	l := &loop{
		parent: ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.loop = l
	cues := s.cues
	s.mu.Unlock()

	s.update(func(st *State) {
		st.IsPlaying = true
		st.IsCueActive = false
		st.CurrentIndex = index
		st.CurrentTime = from
	})
	s.logger.Debug().Dur("from", from).Int("cues", len(cues)).Msg("playback started")

	go s.run(lctx, l, cues, from, time.Now())
}

func (s *Scheduler) run(ctx context.Context, l *loop, cues subtitle.Sequence, from time.Duration, begin time.Time) {
	defer s.finish(l)

	i := 0
	for i < len(cues) && cues[i].End < from {
		i++
	}

	for ; i < len(cues); i++ {
		c := cues[i]

		if !s.waitUntil(ctx, begin, from, c.Start-from) {
			return
		}
		s.update(func(st *State) {
			st.CurrentIndex = c.Index
			st.IsCueActive = true
		})

		if !s.waitUntil(ctx, begin, from, c.End-from) {
			return
		}
		s.update(func(st *State) {
			st.IsCueActive = false
		})
	}
}

// waitUntil ticks the current time until target has elapsed since begin. It
// returns false if ctx is cancelled first. A target that has already passed
// returns at once.
func (s *Scheduler) waitUntil(ctx context.Context, begin time.Time, from, target time.Duration) bool {
	for {
		if ctx.Err() != nil {
			return false
		}

		elapsed := time.Since(begin)
		s.update(func(st *State) {
			st.CurrentTime = from + elapsed
		})
		if elapsed >= target {
			return true
		}

		wait := target - elapsed
		if wait > s.tick {
			wait = s.tick
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

func (s *Scheduler) finish(l *loop) {
	l.cancel()
	handoff := l.handoff.Load()

	s.mu.Lock()
	if s.loop == l {
		s.loop = nil
	}
	s.mu.Unlock()

	s.update(func(st *State) {
		st.IsCueActive = false
		if !handoff {
			st.CurrentIndex = NoCue
			st.IsPlaying = false
		}
	})
	if !handoff {
		s.logger.Debug().Msg("playback stopped")
	}
	close(l.done)
}

// update applies fn to the state under the lock and publishes what changed.
func (s *Scheduler) update(fn func(*State)) {
	s.mu.Lock()
	old := s.state
	fn(&s.state)
	cur := s.state
	s.mu.Unlock()

	s.bus.publish(diff(old, cur))
}

func diff(old, cur State) []Change {
	var changes []Change
	add := func(p Property) {
		changes = append(changes, Change{Property: p, State: cur, PrevIndex: old.CurrentIndex})
	}
	if old.CurrentIndex != cur.CurrentIndex {
		add(CurrentIndex)
	}
	if old.IsCueActive != cur.IsCueActive {
		add(CueActive)
	}
	if old.CurrentTime != cur.CurrentTime {
		add(CurrentTime)
	}
	if old.IsPlaying != cur.IsPlaying {
		add(Playing)
	}
	return changes
}
