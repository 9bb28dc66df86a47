// Package auth holds the signed-in user context for the lifetime of the
// process. It is constructed once at startup and handed to consumers
// explicitly; nothing reaches it through globals.
package auth

import (
	"context"
	"sync"

	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/gateway"
)

// Backend is the slice of the gateway client the session manager needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (gateway.LoginResult, error)
	Logout(ctx context.Context, token string) error
	VerifyToken(ctx context.Context, token string) (domain.UserProfile, error)
}

// TokenStore persists exactly the access/refresh token pair between runs.
type TokenStore interface {
	Save(access, refresh string) error
	Load() (access, refresh string, err error)
	Clear() error
}

// Manager tracks the current user and token pair.
type Manager struct {
	backend Backend
	tokens  TokenStore

	mu      sync.RWMutex
	user    *domain.UserProfile
	access  string
	refresh string
}

func NewManager(backend Backend, tokens TokenStore) *Manager {
	return &Manager{backend: backend, tokens: tokens}
}

// Restore picks up a previously persisted token pair and verifies it with
// the backend. An invalid or missing token clears the persisted pair and
// leaves the manager signed out; that is not an error.
func (m *Manager) Restore(ctx context.Context) error {
	access, refresh, err := m.tokens.Load()
	if err != nil || access == "" {
		return nil
	}

	profile, err := m.backend.VerifyToken(ctx, access)
	if err != nil {
		_ = m.tokens.Clear()
		return nil
	}

	m.mu.Lock()
	m.user = &profile
	m.access = access
	m.refresh = refresh
	m.mu.Unlock()
	return nil
}

// SignIn authenticates against the backend and persists the token pair.
func (m *Manager) SignIn(ctx context.Context, email, password string) (domain.UserProfile, error) {
	result, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return domain.UserProfile{}, err
	}

	if err := m.tokens.Save(result.AccessToken, result.RefreshToken); err != nil {
		return domain.UserProfile{}, err
	}

	m.mu.Lock()
	m.user = &result.User
	m.access = result.AccessToken
	m.refresh = result.RefreshToken
	m.mu.Unlock()
	return result.User, nil
}

// SignOut notifies the backend best-effort and always clears local state:
// a failed logout call must not leave the user signed in locally.
func (m *Manager) SignOut(ctx context.Context) {
	m.mu.Lock()
	access := m.access
	m.user = nil
	m.access = ""
	m.refresh = ""
	m.mu.Unlock()

	if access != "" {
		_ = m.backend.Logout(ctx, access)
	}
	_ = m.tokens.Clear()
}

// User returns the signed-in profile, if any.
func (m *Manager) User() (domain.UserProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return domain.UserProfile{}, false
	}
	return *m.user, true
}

// AccessToken returns the bearer token for authenticated backend calls.
func (m *Manager) AccessToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.access == "" {
		return "", domain.ErrNotAuthenticated
	}
	return m.access, nil
}
