package dashboard

import "sync"

// Store serializes actions against a single State
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore creates a store holding initial
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// State returns the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and returns the new state
func (s *Store) Dispatch(a Action) State {
	_, after := s.Transition(a)
	return after
}

// Transition applies a and returns the states before and after it
func (s *Store) Transition(a Action) (before, after State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before = s.state
	s.state = Reduce(s.state, a)
	return before, s.state
}

// DispatchIf applies a only when cond holds for the current state
func (s *Store) DispatchIf(cond func(State) bool, a Action) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !cond(s.state) {
		return s.state, false
	}
	s.state = Reduce(s.state, a)
	return s.state, true
}
