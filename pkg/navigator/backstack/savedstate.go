package backstack

import (
	"sort"
	"sync"
)

// SavedState is a back-stack entry's keyed result slot. Later screens write
// into it through navigator.NavigateBackWithResult; the entry's own screen
// reads from it when it is shown again. Safe for concurrent use.
type SavedState struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewSavedState creates an empty SavedState.
func NewSavedState() *SavedState {
	return &SavedState{values: make(map[string]any)}
}

// SetResult stores value under key, replacing any previous value.
// It satisfies navigator.ResultSlot.
func (s *SavedState) SetResult(key string, value any) {
	s.Set(key, value)
}

// Set stores value under key, replacing any previous value.
func (s *SavedState) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *SavedState) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Remove deletes key and returns the value it held.
func (s *SavedState) Remove(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	delete(s.values, key)
	return v, ok
}

// Contains reports whether key holds a value.
func (s *SavedState) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Keys returns the stored keys in sorted order.
func (s *SavedState) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
