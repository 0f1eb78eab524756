// Copyright (c) 2025, soup and the subplay contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package mirror keeps a derived ordered collection in step with a source
// collection.
package mirror

import "sync"

// Op is the kind of edit made to a List.
type Op int

const (
	Insert Op = iota
	Remove
	Reset
)

// Edit describes one change to a List. Index and Item are set for Insert and
// Remove; Items holds the new contents for Reset.
type Edit[T any] struct {
	Op    Op
	Index int
	Item  T
	Items []T
}

// List is an ordered collection that reports its edits.
type List[T any] struct {
	mu        sync.Mutex
	items     []T
	observers []func(Edit[T])
}

// NewList creates a List holding items.
func NewList[T any](items []T) *List[T] {
	return &List[T]{items: append([]T(nil), items...)}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// At returns the item at i.
func (l *List[T]) At(i int) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items[i]
}

// Items returns a copy of the contents.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

// Observe registers fn for every edit.
func (l *List[T]) Observe(fn func(Edit[T])) {
	l.mu.Lock()
	l.observers = append(l.observers, fn)
	l.mu.Unlock()
}

// Insert puts item at index i, shifting later items up. i == Len appends.
func (l *List[T]) Insert(i int, item T) {
	l.mu.Lock()
	l.items = append(l.items, item)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = item
	obs := l.observers
	l.mu.Unlock()

	notify(obs, Edit[T]{Op: Insert, Index: i, Item: item})
}

// Append adds item at the end.
func (l *List[T]) Append(item T) {
	l.Insert(l.Len(), item)
}

// Remove deletes the item at i.
func (l *List[T]) Remove(i int) {
	l.mu.Lock()
	item := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	obs := l.observers
	l.mu.Unlock()

	notify(obs, Edit[T]{Op: Remove, Index: i, Item: item})
}

// Reset replaces the whole contents.
func (l *List[T]) Reset(items []T) {
	l.mu.Lock()
	l.items = append([]T(nil), items...)
	obs := l.observers
	l.mu.Unlock()

	notify(obs, Edit[T]{Op: Reset, Items: append([]T(nil), items...)})
}

func notify[T any](observers []func(Edit[T]), e Edit[T]) {
	for _, fn := range observers {
		fn(e)
	}
}

// Mirror holds fn applied to every item of a source List, at matching
// positions.
type Mirror[S, D any] struct {
	mu    sync.Mutex
	fn    func(S) D
	items []D
}

// Sync builds a Mirror of src through fn and keeps it updated.
func Sync[S, D any](src *List[S], fn func(S) D) *Mirror[S, D] {
	m := &Mirror[S, D]{fn: fn}
	src.Observe(m.apply)
	m.reset(src.Items())
	return m
}

// Items returns a copy of the derived items.
func (m *Mirror[S, D]) Items() []D {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]D(nil), m.items...)
}

// Len returns the number of derived items.
func (m *Mirror[S, D]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// At returns the derived item at i.
func (m *Mirror[S, D]) At(i int) D {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[i]
}

// Update replaces the derived item at i with fn(src). Use it when something
// outside the source affects the derived value.
func (m *Mirror[S, D]) Update(i int, src S) {
	d := m.fn(src)
	m.mu.Lock()
	m.items[i] = d
	m.mu.Unlock()
}

func (m *Mirror[S, D]) apply(e Edit[S]) {
	switch e.Op {
	case Insert:
		d := m.fn(e.Item)
		m.mu.Lock()
		m.items = append(m.items, d)
		copy(m.items[e.Index+1:], m.items[e.Index:])
		m.items[e.Index] = d
		m.mu.Unlock()
	case Remove:
		m.mu.Lock()
		m.items = append(m.items[:e.Index], m.items[e.Index+1:]...)
		m.mu.Unlock()
	case Reset:
		m.reset(e.Items)
	}
}

func (m *Mirror[S, D]) reset(items []S) {
	out := make([]D, len(items))
	for i, s := range items {
		out[i] = m.fn(s)
	}
	m.mu.Lock()
	m.items = out
	m.mu.Unlock()
}
