package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/server/storage"
)

func newStorageWithMock(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.MonitorPingsOption(true),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewWithDB(db), mock
}

var userColumns = []string{"id", "email", "password_hash", "created_at", "last_login"}

func TestPing(t *testing.T) {
	s, mock := newStorageWithMock(t)

	mock.ExpectPing()
	assert.NoError(t, s.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("conn refused"))
	assert.Error(t, s.Ping(context.Background()))
}

func TestCreateUser(t *testing.T) {
	s, mock := newStorageWithMock(t)
	now := time.Now()
	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*password_hash,\s*created_at,\s*last_login\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`

	mock.ExpectExec(q).
		WithArgs("u-1", "alice@test.com", "hash", now, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.CreateUser(context.Background(), &models.User{
		ID: "u-1", Email: "alice@test.com", PasswordHash: "hash", CreatedAt: now,
	})
	require.NoError(t, err)
}

func TestCreateUser_Duplicate(t *testing.T) {
	s, mock := newStorageWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := s.CreateUser(context.Background(), &models.User{ID: "u-2", Email: "alice@test.com"})
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestCreateUser_DBError(t *testing.T) {
	s, mock := newStorageWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	err := s.CreateUser(context.Background(), &models.User{ID: "u-3", Email: "x@test.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrUserAlreadyExists)
	assert.Contains(t, err.Error(), "db down")
}

func TestGetUserByEmail(t *testing.T) {
	s, mock := newStorageWithMock(t)
	created := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	q := `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*created_at,\s*last_login\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("alice@test.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-1", "alice@test.com", "hash", created, nil))

	got, err := s.GetUserByEmail(context.Background(), "alice@test.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, created, got.CreatedAt)
	assert.Nil(t, got.LastLogin)
}

func TestGetUserByID_NotFound(t *testing.T) {
	s, mock := newStorageWithMock(t)

	mock.ExpectQuery(`WHERE\s+id\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetUserByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUpdateLastLogin(t *testing.T) {
	s, mock := newStorageWithMock(t)
	at := time.Now()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+last_login`).
		WithArgs(at, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.UpdateLastLogin(context.Background(), "u-1", at))

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+last_login`).
		WithArgs(at, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.UpdateLastLogin(context.Background(), "ghost", at), storage.ErrUserNotFound)
}
