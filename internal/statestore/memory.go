package statestore

import (
	"context"
	"sync"
)

// InMemoryStore implements Store for tests and single-node development.
// Production deployments use RedisStore so the markers are shared with the
// kiosk frontend.
type InMemoryStore struct {
	mu        sync.RWMutex
	resetDate string
	session   *DutySession
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) ResetDate(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resetDate, nil
}

func (s *InMemoryStore) SetResetDate(_ context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetDate = date
	return nil
}

func (s *InMemoryStore) DutySession(_ context.Context) (*DutySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, nil
	}
	session := *s.session
	return &session, nil
}

func (s *InMemoryStore) PutDutySession(_ context.Context, session DutySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

func (s *InMemoryStore) ClearDutySession(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	present := s.session != nil
	s.session = nil
	return present, nil
}
