package memory

import (
	"sync"

	"coastal-quiz-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	attempts map[string]*app.Attempt
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		attempts: make(map[string]*app.Attempt),
	}
}

func (s *SessionStore) Put(id string, attempt *app.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[id] = attempt
}

func (s *SessionStore) Get(id string) (*app.Attempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[id]
	return attempt, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, id)
}
