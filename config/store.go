package config

import "sync/atomic"

// Store holds the active configuration. Replacing it is a single atomic
// pointer swap, so readers see either the old or the new Resolved, never a
// mix of both.
type Store struct {
	current atomic.Pointer[Resolved]
}

// NewStore creates a store serving initial. A nil initial serves an empty configuration.
func NewStore(initial *Resolved) *Store {
	s := &Store{}
	s.Swap(initial)
	return s
}

// Load returns the active configuration.
func (s *Store) Load() *Resolved {
	return s.current.Load()
}

// Swap installs next and returns the configuration it replaced.
func (s *Store) Swap(next *Resolved) *Resolved {
	if next == nil {
		next = ResolveLayers()
	}
	return s.current.Swap(next)
}
