package dashboard

import (
	"fmt"
	"strings"
	"sync"

	"github.com/minely/moderator/pkg/records"
	"github.com/minely/moderator/pkg/store"
)

// FilterAll is the filter key that matches every record.
const FilterAll = "all"

// EmptyState is shown when the visible subset is empty.
type EmptyState struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// SectionMeta holds the static texts of a section.
type SectionMeta struct {
	Name        string
	Title       string
	FilterLabel string
	// FilterKeys are the offered filter values, without FilterAll.
	FilterKeys []string
	EmptyTitle string
	// EmptyAll is the message shown when nothing exists at all.
	EmptyAll string
	// CreateLabel is empty for sections without a create dialog.
	CreateLabel   string
	CreateMessage string
}

// State is a snapshot of a section's UI state.
type State struct {
	Filter     string `json:"filter"`
	Selected   string `json:"selected,omitempty"`
	CreateOpen bool   `json:"createOpen"`
}

// Section is the per-tab state container: the record store, the active
// filter, the selected record and the create dialog flag.
type Section[T records.Record] struct {
	meta  SectionMeta
	store *store.Store[T]
	field func(T) string

	mu         sync.RWMutex
	filter     string
	selected   string
	createOpen bool
}

// NewSection creates a section over st. field extracts the value the filter
// compares against.
func NewSection[T records.Record](meta SectionMeta, st *store.Store[T], field func(T) string) *Section[T] {
	return &Section[T]{
		meta:   meta,
		store:  st,
		field:  field,
		filter: FilterAll,
	}
}

// Meta returns the section's static texts.
func (s *Section[T]) Meta() SectionMeta { return s.meta }

// Name returns the section id.
func (s *Section[T]) Name() string { return s.meta.Name }

// Store returns the backing record store.
func (s *Section[T]) Store() *store.Store[T] { return s.store }

// SetFilter records the active filter key. An empty key means FilterAll.
// Keys outside FilterKeys are accepted and match nothing.
func (s *Section[T]) SetFilter(key string) {
	if key == "" {
		key = FilterAll
	}
	s.mu.Lock()
	s.filter = key
	s.mu.Unlock()
}

// Filter returns the active filter key.
func (s *Section[T]) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// FilterOptions returns FilterAll followed by the offered keys.
func (s *Section[T]) FilterOptions() []string {
	return append([]string{FilterAll}, s.meta.FilterKeys...)
}

// All returns every record in seed order.
func (s *Section[T]) All() []T {
	return s.store.All()
}

// Get returns one record by id.
func (s *Section[T]) Get(id string) (T, bool) {
	return s.store.Get(id)
}

// Visible returns the records matching the active filter.
func (s *Section[T]) Visible() []T {
	return s.FilterBy(s.Filter())
}

// FilterBy returns the records matching key without touching UI state.
func (s *Section[T]) FilterBy(key string) []T {
	all := s.store.All()
	if key == "" || key == FilterAll {
		return all
	}
	out := make([]T, 0, len(all))
	for _, r := range all {
		if s.field(r) == key {
			out = append(out, r)
		}
	}
	return out
}

// EmptyState returns the empty-state texts for the given filter key.
func (s *Section[T]) EmptyState(key string) EmptyState {
	if key == "" || key == FilterAll {
		return EmptyState{Title: s.meta.EmptyTitle, Message: s.meta.EmptyAll}
	}
	return EmptyState{
		Title:   s.meta.EmptyTitle,
		Message: fmt.Sprintf("No %s %s available.", strings.ReplaceAll(key, "_", " "), s.meta.Name),
	}
}

// Select marks id as the detailed record. Unknown ids are ignored.
func (s *Section[T]) Select(id string) bool {
	if _, ok := s.store.Get(id); !ok {
		return false
	}
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
	return true
}

// Deselect clears the detailed record.
func (s *Section[T]) Deselect() {
	s.mu.Lock()
	s.selected = ""
	s.mu.Unlock()
}

// Selected resolves the selected id against the current snapshot.
func (s *Section[T]) Selected() (T, bool) {
	s.mu.RLock()
	id := s.selected
	s.mu.RUnlock()
	if id == "" {
		var zero T
		return zero, false
	}
	return s.store.Get(id)
}

// HasCreate reports whether the section offers a create dialog.
func (s *Section[T]) HasCreate() bool {
	return s.meta.CreateLabel != ""
}

// OpenCreate shows the create dialog, if the section has one.
func (s *Section[T]) OpenCreate() {
	if !s.HasCreate() {
		return
	}
	s.mu.Lock()
	s.createOpen = true
	s.mu.Unlock()
}

// CloseCreate hides the create dialog. Dialog input is discarded.
func (s *Section[T]) CloseCreate() {
	s.mu.Lock()
	s.createOpen = false
	s.mu.Unlock()
}

// CreateOpen reports whether the create dialog is shown.
func (s *Section[T]) CreateOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createOpen
}

// State returns a snapshot of the UI state.
func (s *Section[T]) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Filter: s.filter, Selected: s.selected, CreateOpen: s.createOpen}
}
