package store

import "sync"

// Store is the single mutable owner of State, guarded by a mutex since
// bubbletea's Update loop and thunks spawned onto goroutines both need
// access. This mirrors the original's Arc<Api: StoreApi> select/dispatch
// surface, translated from shared-ownership-plus-async-runtime to a
// plain mutex.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore returns a Store initialized with New(projectRoot).
func NewStore(projectRoot string) *Store {
	return &Store{state: New(projectRoot)}
}

// Select returns a copy of the current state.
func (s *Store) Select() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies action through Reduce and returns the resulting
// state.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, action)
	return s.state
}
