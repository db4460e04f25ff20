package storage

import (
	"context"

	"github.com/iudanet/futbol/internal/models"
)

// MatchStorage defines interface for match persistence.
// Every call is scoped by owner: a match owned by another user is
// indistinguishable from a missing one.
type MatchStorage interface {
	// CreateMatch stores a new match for match.UserID
	CreateMatch(ctx context.Context, match *models.Match) error

	// GetMatch returns ErrMatchNotFound if the match is missing or not owned by userID
	GetMatch(ctx context.Context, userID, matchID string) (*models.Match, error)

	// ListMatches returns the user's matches ordered by date, newest first.
	// Returns empty slice if none found
	ListMatches(ctx context.Context, userID string) ([]*models.Match, error)

	// UpdateMatch replaces the editable fields of an owned match
	UpdateMatch(ctx context.Context, match *models.Match) error

	// DeleteMatch returns ErrMatchNotFound if nothing owned by userID was deleted
	DeleteMatch(ctx context.Context, userID, matchID string) error
}

// Pinger is implemented by backends able to report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
