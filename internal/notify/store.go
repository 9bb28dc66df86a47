// Package notify owns the process-wide notification list. The store is the
// sole mutator of its records; consumers only read snapshots.
package notify

import (
	"strconv"
	"sync"
	"time"

	"coastal-quiz-service/internal/domain"
)

// Draft is a notification before the store assigns identity, timestamp and
// read state.
type Draft struct {
	Title    string                  `json:"title"`
	Message  string                  `json:"message"`
	Type     domain.NotificationType `json:"type"`
	Priority domain.Priority         `json:"priority"`
}

// Store keeps notifications newest-first. New entries are always prepended
// so the latest notification is at position 0.
type Store struct {
	mu            sync.RWMutex
	notifications []domain.Notification
	now           func() time.Time
	lastID        int64
}

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock allows deterministic IDs and timestamps in tests.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// Add assigns a fresh identity and timestamp, marks the notification unread
// and prepends it. It returns the stored record.
func (s *Store) Add(draft Draft) domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := domain.Notification{
		ID:        s.nextIDLocked(now),
		Title:     draft.Title,
		Message:   draft.Message,
		Type:      draft.Type,
		Timestamp: now,
		Read:      false,
		Priority:  draft.Priority,
	}
	s.notifications = append([]domain.Notification{n}, s.notifications...)
	return n
}

// Seed inserts a pre-built notification as-is, keeping newest-first order.
// Used to populate the store at application start.
func (s *Store) Seed(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

// All returns a snapshot of the notifications, newest first.
func (s *Store) All() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// UnreadCount recounts unread entries on every call so it can never go
// stale relative to the sequence.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification read. Unknown IDs are a no-op.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return
		}
	}
}

// MarkAllRead marks every notification read.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
}

// Remove deletes one notification. Unknown IDs are a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// Clear deletes all notifications.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}

// nextIDLocked derives IDs from the clock in milliseconds, bumping past the
// previous ID when two adds land in the same millisecond.
func (s *Store) nextIDLocked(now time.Time) string {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
