package auth

import (
	"context"
	"errors"
	"testing"

	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/gateway"
)

type fakeBackend struct {
	loginErr   error
	verifyErr  error
	logoutSeen string
}

func (f *fakeBackend) Login(_ context.Context, email, _ string) (gateway.LoginResult, error) {
	if f.loginErr != nil {
		return gateway.LoginResult{}, f.loginErr
	}
	return gateway.LoginResult{
		User:         domain.UserProfile{ID: "u1", Email: email, Role: "user"},
		AccessToken:  "tok-access",
		RefreshToken: "tok-refresh",
	}, nil
}

func (f *fakeBackend) Logout(_ context.Context, token string) error {
	f.logoutSeen = token
	return nil
}

func (f *fakeBackend) VerifyToken(_ context.Context, token string) (domain.UserProfile, error) {
	if f.verifyErr != nil {
		return domain.UserProfile{}, f.verifyErr
	}
	return domain.UserProfile{ID: "u1", Email: "alice@example.com", Role: "user"}, nil
}

func TestSignInPersistsTokens(t *testing.T) {
	store := NewMemoryTokenStore()
	mgr := NewManager(&fakeBackend{}, store)

	user, err := mgr.SignIn(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	access, refresh, err := store.Load()
	if err != nil || access != "tok-access" || refresh != "tok-refresh" {
		t.Fatalf("expected persisted tokens, got %q %q err=%v", access, refresh, err)
	}
	if token, err := mgr.AccessToken(); err != nil || token != "tok-access" {
		t.Fatalf("expected access token, got %q err=%v", token, err)
	}
}

func TestSignInFailureLeavesSignedOut(t *testing.T) {
	store := NewMemoryTokenStore()
	mgr := NewManager(&fakeBackend{loginErr: errors.New("invalid credentials")}, store)

	if _, err := mgr.SignIn(context.Background(), "alice@example.com", "wrong"); err == nil {
		t.Fatalf("expected login error")
	}
	if _, ok := mgr.User(); ok {
		t.Fatalf("expected no user after failed login")
	}
	if _, err := mgr.AccessToken(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected not-authenticated, got %v", err)
	}
}

func TestRestoreWithValidToken(t *testing.T) {
	store := NewMemoryTokenStore()
	_ = store.Save("tok-access", "tok-refresh")
	mgr := NewManager(&fakeBackend{}, store)

	if err := mgr.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	user, ok := mgr.User()
	if !ok || user.ID != "u1" {
		t.Fatalf("expected restored user, got %+v ok=%v", user, ok)
	}
}

func TestRestoreClearsInvalidToken(t *testing.T) {
	store := NewMemoryTokenStore()
	_ = store.Save("tok-stale", "tok-refresh")
	mgr := NewManager(&fakeBackend{verifyErr: errors.New("token expired")}, store)

	if err := mgr.Restore(context.Background()); err != nil {
		t.Fatalf("restore must not error on invalid token: %v", err)
	}
	if _, ok := mgr.User(); ok {
		t.Fatalf("expected signed out after invalid token")
	}
	if access, _, _ := store.Load(); access != "" {
		t.Fatalf("expected stored tokens cleared, got %q", access)
	}
}

func TestSignOutClearsStateEvenWithoutBackend(t *testing.T) {
	backend := &fakeBackend{}
	store := NewMemoryTokenStore()
	mgr := NewManager(backend, store)

	if _, err := mgr.SignIn(context.Background(), "alice@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	mgr.SignOut(context.Background())

	if backend.logoutSeen != "tok-access" {
		t.Fatalf("expected backend logout with access token, got %q", backend.logoutSeen)
	}
	if _, ok := mgr.User(); ok {
		t.Fatalf("expected signed out")
	}
	if access, _, _ := store.Load(); access != "" {
		t.Fatalf("expected tokens cleared, got %q", access)
	}
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/tokens.json"
	store := NewFileTokenStore(path)

	// missing file reads as empty, not an error
	if access, refresh, err := store.Load(); err != nil || access != "" || refresh != "" {
		t.Fatalf("expected empty load, got %q %q err=%v", access, refresh, err)
	}

	if err := store.Save("a", "r"); err != nil {
		t.Fatalf("save: %v", err)
	}
	access, refresh, err := store.Load()
	if err != nil || access != "a" || refresh != "r" {
		t.Fatalf("expected round trip, got %q %q err=%v", access, refresh, err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if access, _, _ := store.Load(); access != "" {
		t.Fatalf("expected cleared store, got %q", access)
	}
	// clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
