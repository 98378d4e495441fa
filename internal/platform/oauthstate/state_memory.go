package oauthstate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"kanban_backend/internal/feature/auth/usecase"
)

// StateMemory is the in-process fallback used when Redis is unavailable.
// It only works for a single server instance.
type StateMemory struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	states map[string]time.Time
}

var _ usecase.StateStore = (*StateMemory)(nil)

// NewStateMemory creates an empty in-memory store.
func NewStateMemory(ttl time.Duration) *StateMemory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &StateMemory{
		ttl:    ttl,
		now:    time.Now,
		states: make(map[string]time.Time),
	}
}

// Issue creates and remembers a new state.
func (s *StateMemory) Issue(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// Drop expired entries so abandoned logins do not accumulate.
	for k, exp := range s.states {
		if now.After(exp) {
			delete(s.states, k)
		}
	}

	state := uuid.NewString()
	s.states[state] = now.Add(s.ttl)
	return state, nil
}

// Consume removes state, failing if it is unknown or expired.
func (s *StateMemory) Consume(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.states[state]
	if !ok {
		return usecase.ErrInvalidState
	}
	delete(s.states, state)
	if s.now().After(exp) {
		return usecase.ErrInvalidState
	}
	return nil
}
