// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package player

import (
	"sync"
	"time"
)

// NoCue is the CurrentIndex when no cue is current.
const NoCue = -1

// State is a snapshot of the playback position.
type State struct {
	CurrentIndex int
	CurrentTime  time.Duration
	IsPlaying    bool
	IsCueActive  bool
}

// Property names the State field a Change is about.
type Property int

const (
	CurrentIndex Property = iota
	CurrentTime
	Playing
	CueActive
)

func (p Property) String() string {
	switch p {
	case CurrentIndex:
		return "current_index"
	case CurrentTime:
		return "current_time"
	case Playing:
		return "playing"
	case CueActive:
		return "cue_active"
	default:
		return "unknown"
	}
}

// Change describes one state mutation. State is the snapshot after the
// mutation; PrevIndex is the index before it, which lets a list view clear
// the old highlight.
type Change struct {
	Property  Property
	State     State
	PrevIndex int
}

// Listener receives changes synchronously on the goroutine that made them.
type Listener func(Change)

// bus fans changes out to subscribed listeners in subscription order.
type bus struct {
	mu        sync.Mutex
	nextID    int
	listeners []subscriber
}

type subscriber struct {
	id int
	fn Listener
}

func (b *bus) subscribe(fn Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners = append(b.listeners, subscriber{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.listeners {
			if s.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) publish(changes []Change) {
	if len(changes) == 0 {
		return
	}
	b.mu.Lock()
	subs := b.listeners
	b.mu.Unlock()

	for _, c := range changes {
		for _, s := range subs {
			s.fn(c)
		}
	}
}
