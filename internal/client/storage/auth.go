package storage

import (
	"context"
)

// AuthStorage is the client-side durable store for the session token.
// The token is persisted under a fixed key so every later request can
// replay it as a bearer header.
type AuthStorage interface {
	// SaveAuth stores authentication data, replacing any previous value
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	// Returns ErrAuthNotFound if there was nothing to delete
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if a token exists and has not expired
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData is what the client remembers about its session.
type AuthData struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	UserID    string `json:"user_id,omitempty"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds, 0 if unknown
}
