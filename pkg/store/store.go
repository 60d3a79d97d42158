// Package store holds an ordered, in-memory collection of records seeded once
// at construction. Readers get deep copies; a mutation publishes a new slice.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minely/moderator/pkg/records"
)

// ErrDuplicateID is returned when two seed records share an id.
var ErrDuplicateID = errors.New("duplicate record id")

// Store is a thread-safe ordered collection of records of one kind.
type Store[T records.Record] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int
}

// cloner is implemented by records holding slices.
type cloner[T any] interface {
	Clone() T
}

func clone[T any](v T) T {
	if c, ok := any(v).(cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// New creates a store seeded with items, in order.
func New[T records.Record](items []T) (*Store[T], error) {
	index := make(map[string]int, len(items))
	for i, it := range items {
		id := it.RecordID()
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		index[id] = i
	}
	snapshot := make([]T, len(items))
	for i, it := range items {
		snapshot[i] = clone(it)
	}
	return &Store[T]{items: snapshot, index: index}, nil
}

// All returns a copy of the current records in seed order. Callers may
// modify the result, nested slices included.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	for i, it := range s.items {
		out[i] = clone(it)
	}
	return out
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return clone(s.items[i]), true
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace applies fn to the record with the given id and stores the result.
// It returns the record before and after the call and whether the id exists.
// If fn returns an error the store is left unchanged. The replacement must
// keep the record's id.
func (s *Store[T]) Replace(id string, fn func(T) (T, bool, error)) (before, after T, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return before, after, false, nil
	}
	before = clone(s.items[i])
	next, changed, err := fn(clone(before))
	if err != nil {
		return before, before, true, err
	}
	if !changed {
		return before, before, true, nil
	}
	if next.RecordID() != id {
		return before, before, true, fmt.Errorf("replace %q: record id changed to %q", id, next.RecordID())
	}

	items := make([]T, len(s.items))
	copy(items, s.items)
	items[i] = clone(next)
	s.items = items
	return before, next, true, nil
}
