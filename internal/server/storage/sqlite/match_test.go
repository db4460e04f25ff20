package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/server/storage"
)

func intRef(v int) *int { return &v }

func strRef(v string) *string { return &v }

func newTestMatch(userID string, date time.Time) *models.Match {
	now := time.Now()
	return &models.Match{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Opponent:  strRef("Los Pibes"),
		Format:    intRef(5),
		Goals:     intRef(2),
		Assists:   intRef(1),
		Result:    intRef(models.ResultWin),
		IsMVP:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMatchStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	match := newTestMatch(userID, time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC))

	require.NoError(t, s.CreateMatch(ctx, match))

	got, err := s.GetMatch(ctx, userID, match.ID)
	require.NoError(t, err)
	assert.Equal(t, match.ID, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.True(t, match.Date.Equal(got.Date))
	assert.Equal(t, "Los Pibes", *got.Opponent)
	assert.Equal(t, 5, *got.Format)
	assert.Equal(t, 2, *got.Goals)
	assert.Equal(t, 1, *got.Assists)
	assert.Equal(t, models.ResultWin, *got.Result)
	assert.True(t, got.IsMVP)
	assert.Nil(t, got.Notes)
}

func TestMatchStorage_NullableFields(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	now := time.Now()
	match := &models.Match{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      now,
		Result:    intRef(models.ResultLoss),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateMatch(ctx, match))

	got, err := s.GetMatch(ctx, userID, match.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Opponent)
	assert.Nil(t, got.Format)
	assert.Nil(t, got.Goals)
	assert.Nil(t, got.Assists)
	assert.Equal(t, models.ResultLoss, *got.Result)
	assert.False(t, got.IsMVP)
}

func TestMatchStorage_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	owner := createTestUser(t, ctx, s)
	other := createTestUser(t, ctx, s)

	match := newTestMatch(owner, time.Now())
	require.NoError(t, s.CreateMatch(ctx, match))

	_, err := s.GetMatch(ctx, other, match.ID)
	assert.ErrorIs(t, err, storage.ErrMatchNotFound)

	hijack := *match
	hijack.UserID = other
	hijack.Goals = intRef(10)
	assert.ErrorIs(t, s.UpdateMatch(ctx, &hijack), storage.ErrMatchNotFound)

	assert.ErrorIs(t, s.DeleteMatch(ctx, other, match.ID), storage.ErrMatchNotFound)

	list, err := s.ListMatches(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.GetMatch(ctx, owner, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, *got.Goals)
}

func TestMatchStorage_ListOrderedByDateDesc(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	base := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)

	oldest := newTestMatch(userID, base)
	newest := newTestMatch(userID, base.Add(48*time.Hour))
	middle := newTestMatch(userID, base.Add(24*time.Hour))

	for _, m := range []*models.Match{oldest, newest, middle} {
		require.NoError(t, s.CreateMatch(ctx, m))
	}

	list, err := s.ListMatches(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, newest.ID, list[0].ID)
	assert.Equal(t, middle.ID, list[1].ID)
	assert.Equal(t, oldest.ID, list[2].ID)
}

func TestMatchStorage_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	match := newTestMatch(userID, time.Now())
	require.NoError(t, s.CreateMatch(ctx, match))

	match.Opponent = nil
	match.Notes = strRef("golazo de chilena")
	match.Result = intRef(models.ResultDraw)
	match.IsMVP = false
	match.UpdatedAt = time.Now().Add(time.Minute)
	require.NoError(t, s.UpdateMatch(ctx, match))

	got, err := s.GetMatch(ctx, userID, match.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Opponent)
	assert.Equal(t, "golazo de chilena", *got.Notes)
	assert.Equal(t, models.ResultDraw, *got.Result)
	assert.False(t, got.IsMVP)

	require.NoError(t, s.DeleteMatch(ctx, userID, match.ID))
	_, err = s.GetMatch(ctx, userID, match.ID)
	assert.ErrorIs(t, err, storage.ErrMatchNotFound)
	assert.ErrorIs(t, s.DeleteMatch(ctx, userID, match.ID), storage.ErrMatchNotFound)
}
