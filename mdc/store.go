package mdc

import "sync"

// Store is a mutable diagnostic map for state that outlives a single
// context, such as a long-running worker. It is safe for concurrent use.
// Readers take a Snapshot; mutations never reach an existing snapshot.
type Store struct {
	mu sync.RWMutex
	m  map[string]any
}

func NewStore() *Store {
	return &Store{m: make(map[string]any)}
}

func (s *Store) Put(key string, val any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string]any)
	}
	s.m[key] = val
}

func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[string]any)
}

// Snapshot copies the current entries.
func (s *Store) Snapshot() Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.m) == 0 {
		return Map{}
	}
	cp := make(map[string]any, len(s.m))
	for k, v := range s.m {
		cp[k] = v
	}
	return Map{m: cp}
}
