package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"coastal-quiz-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Attempts stay in a local in-memory map; the session state machine is
//     in-process and never serialized.
//   - Redis marks attempt liveness with a TTL key, so an operator can see
//     active attempts across instances and stale ones age out.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	attempts map[string]*app.Attempt
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		attempts: make(map[string]*app.Attempt),
	}
}

func (s *SessionStore) Put(id string, attempt *app.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[id] = attempt
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(id), "1", s.ttl).Err()
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
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *SessionStore) key(id string) string {
	return "quiz:attempt:" + id
}
