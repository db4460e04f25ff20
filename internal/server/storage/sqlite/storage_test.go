package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/futbol/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// in-memory база на одно соединение
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage) string {
	userID := uuid.New().String()
	user := &models.User{
		ID:           userID,
		Email:        "player_" + userID[:8] + "@test.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))
	return userID
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestNew_FileDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "futbol.db")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))
	createTestUser(t, ctx, s)
	require.NoError(t, s.Close())

	// migrations are idempotent on reopen
	s, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer s.Close()

	var users int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users))
	assert.Equal(t, 1, users)
}
