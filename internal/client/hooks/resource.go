// Package hooks keeps the client-side copy of each table. A Resource reads
// its table on mount and re-reads it after every write; it never patches
// local state from a write's response.
package hooks

import (
	"context"
	"sync"
)

// State is what a view renders: loading, an error message, or data.
type State[T any] struct {
	Data    []T
	Loading bool
	Err     string
}

// Fetcher reads the whole collection.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Resource is a three-state view of one remote collection.
type Resource[T any] struct {
	name  string
	fetch Fetcher[T]

	mu        sync.RWMutex
	state     State[T]
	listeners []func(State[T])
}

// NewResource creates a resource named name, e.g. "menu". The name feeds
// the "Failed to fetch <name>" fallback message.
func NewResource[T any](name string, fetch func(ctx context.Context) ([]T, error)) *Resource[T] {
	return &Resource[T]{
		name:  name,
		fetch: fetch,
		state: State[T]{Loading: true},
	}
}

// State returns a snapshot of the current state.
func (r *Resource[T]) State() State[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// OnChange registers fn to be called with every new state.
func (r *Resource[T]) OnChange(fn func(State[T])) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Mount performs the initial read.
func (r *Resource[T]) Mount(ctx context.Context) State[T] {
	return r.Refetch(ctx)
}

// Refetch re-reads the collection. A success replaces Data and clears Err;
// a failure keeps the previous Data and records the message.
func (r *Resource[T]) Refetch(ctx context.Context) State[T] {
	r.update(func(s *State[T]) { s.Loading = true })

	data, err := r.fetch(ctx)

	return r.update(func(s *State[T]) {
		s.Loading = false
		if err != nil {
			s.Err = Message(err, "Failed to fetch "+r.name)
			return
		}
		if data == nil {
			data = []T{}
		}
		s.Data = data
		s.Err = ""
	})
}

// Mutate performs one write and, when it succeeds, re-reads the collection.
// A failed write records its message (fallback is used for errors without
// one) and is returned unchanged.
func (r *Resource[T]) Mutate(ctx context.Context, fallback string, write func(ctx context.Context) error) error {
	if err := write(ctx); err != nil {
		r.update(func(s *State[T]) { s.Err = Message(err, fallback) })
		return err
	}

	r.Refetch(ctx)
	return nil
}

func (r *Resource[T]) update(fn func(s *State[T])) State[T] {
	r.mu.Lock()
	fn(&r.state)
	snapshot := r.state
	listeners := append([]func(State[T]){}, r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
	return snapshot
}

// Message collapses err to the single line a section shows.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
