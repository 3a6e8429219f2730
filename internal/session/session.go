// Package session owns the authentication state of the running client.
//
// A Store is the only writer of the token and the current user. Bootstrap
// restores a persisted token, Login records a successful sign-in and Logout
// forgets everything. Views read through the accessor methods.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/model"
)

// Status is the lifecycle state of the session.
type Status int

const (
	// Loading means Bootstrap has not completed yet.
	Loading Status = iota
	// Authenticated means a verified user is present.
	Authenticated
	// Anonymous means no user is signed in.
	Anonymous
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// TokenStore persists the token between runs.
type TokenStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// Verifier resolves the user a token belongs to. The token is attached by
// the verifier's transport, which reads it back from the Store.
type Verifier interface {
	Me(ctx context.Context) (*model.User, error)
}

// Store holds the token and the current user.
type Store struct {
	tokens    TokenStore
	logger    *slog.Logger
	user      *model.User
	token     string
	status    Status
	bootstrap sync.Once
	mu        sync.RWMutex
}

// NewStore creates a store in the Loading state.
func NewStore(tokens TokenStore) *Store {
	return &Store{
		tokens: tokens,
		logger: slog.Default(),
		status: Loading,
	}
}

// Bootstrap restores the session once. Without a persisted token it finishes
// without any network call. With one, it asks v who the token belongs to;
// any failure clears the persisted token and leaves the session anonymous
// without reporting an error. Later calls return the first outcome.
func (s *Store) Bootstrap(ctx context.Context, v Verifier) Status {
	s.bootstrap.Do(func() {
		s.restore(ctx, v)
	})
	return s.Status()
}

func (s *Store) restore(ctx context.Context, v Verifier) {
	token, err := s.tokens.LoadToken()
	if err != nil {
		s.logger.Warn("Failed to read stored token", "error", err)
	}
	if token == "" {
		s.setAnonymous("")
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := v.Me(ctx)
	if err != nil || user == nil {
		if api.IsUnauthorized(err) {
			s.logger.Debug("Stored token rejected, signing out", "error", err)
		} else {
			s.logger.Warn("Could not verify stored token, signing out", "error", err)
		}
		s.setAnonymous(token)
		return
	}

	s.mu.Lock()
	s.user = user
	s.status = Authenticated
	s.mu.Unlock()
	s.logger.Debug("Session restored", "username", user.Username, "role", user.Role)
}

// setAnonymous drops the in-memory session and, when stale is non-empty, the persisted token.
func (s *Store) setAnonymous(stale string) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = Anonymous
	s.mu.Unlock()

	if stale != "" {
		if err := s.tokens.ClearToken(); err != nil {
			s.logger.Warn("Failed to clear stored token", "error", err)
		}
	}
}

// Login records a successful sign-in. It performs no network call.
// The in-memory session is updated even when persisting the token fails;
// the error is returned so callers can warn that the next run starts signed out.
func (s *Store) Login(user model.User, token string) error {
	// Waits for a running bootstrap; a later one becomes a no-op.
	s.bootstrap.Do(func() {})

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.status = Authenticated
	s.mu.Unlock()

	if err := s.tokens.SaveToken(token); err != nil {
		s.logger.Warn("Failed to persist token", "error", err)
		return err
	}
	return nil
}

// Logout forgets the user and the token. It always succeeds.
func (s *Store) Logout() {
	s.bootstrap.Do(func() {})

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = Anonymous
	s.mu.Unlock()

	if err := s.tokens.ClearToken(); err != nil {
		s.logger.Warn("Failed to clear stored token", "error", err)
	}
}

// Token returns the current token, or "". It satisfies api.TokenProvider.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Role returns the current user's role, or "".
func (s *Store) Role() model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// Status returns the lifecycle state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
