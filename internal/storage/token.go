package storage

import (
	"context"
	"time"
)

// TokenKey is the single well-known key holding the session token.
const TokenKey = "token"

const tokenOpTimeout = 5 * time.Second

// TokenStore persists the session token in local storage.
type TokenStore struct {
	storage *SQLiteStorage
}

// NewTokenStore wraps s.
func NewTokenStore(s *SQLiteStorage) *TokenStore {
	return &TokenStore{storage: s}
}

// LoadToken returns the stored token, or "" when none is stored.
func (t *TokenStore) LoadToken() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), tokenOpTimeout)
	defer cancel()

	token, ok, err := t.storage.GetItem(ctx, TokenKey)
	if err != nil || !ok {
		return "", err
	}
	return token, nil
}

// SaveToken stores token.
func (t *TokenStore) SaveToken(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), tokenOpTimeout)
	defer cancel()

	return t.storage.SetItem(ctx, TokenKey, token)
}

// ClearToken removes the stored token.
func (t *TokenStore) ClearToken() error {
	ctx, cancel := context.WithTimeout(context.Background(), tokenOpTimeout)
	defer cancel()

	return t.storage.RemoveItem(ctx, TokenKey)
}
