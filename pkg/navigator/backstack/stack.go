package backstack

import (
	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/google/uuid"
)

// Entry represents a single entry in the back stack.
// It stores the route that was navigated to and the entry's result slot.
type Entry[T navigator.Route] struct {
	ID    string
	Route T
	State *SavedState
}

// Stack manages navigation history. The last entry is the top.
// Stack is not safe for concurrent use; Controller guards it.
type Stack[T navigator.Route] struct {
	entries []*Entry[T]
}

// NewStack creates a new empty back stack.
func NewStack[T navigator.Route]() *Stack[T] {
	return &Stack[T]{
		entries: make([]*Entry[T], 0),
	}
}

// Push adds a new entry for route and returns it.
func (s *Stack[T]) Push(route T) *Entry[T] {
	entry := &Entry[T]{
		ID:    uuid.NewString(),
		Route: route,
		State: NewSavedState(),
	}
	s.entries = append(s.entries, entry)
	return entry
}

// Pop removes and returns the top entry.
// Returns nil if the stack is empty.
func (s *Stack[T]) Pop() *Entry[T] {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]
	return entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack[T]) Peek() *Entry[T] {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// Previous returns the entry immediately below the top.
// Returns nil if the stack has fewer than two entries.
func (s *Stack[T]) Previous() *Entry[T] {
	if len(s.entries) < 2 {
		return nil
	}
	return s.entries[len(s.entries)-2]
}

// IndexOf returns the index of the topmost entry whose route has the same path
// as route, or -1.
func (s *Stack[T]) IndexOf(route T) int {
	path := route.Path()
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Route.Path() == path {
			return i
		}
	}
	return -1
}

// TruncateAt removes the entry at index i and everything above it.
func (s *Stack[T]) TruncateAt(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(s.entries) {
		return
	}
	for j := i; j < len(s.entries); j++ {
		s.entries[j] = nil
	}
	s.entries = s.entries[:i]
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack[T]) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack[T]) Clear() {
	s.TruncateAt(0)
}

// Routes returns the routes bottom to top.
func (s *Stack[T]) Routes() []T {
	routes := make([]T, len(s.entries))
	for i, e := range s.entries {
		routes[i] = e.Route
	}
	return routes
}
