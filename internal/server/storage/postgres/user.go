package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/server/storage"
)

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (id, email, password_hash, created_at, last_login)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.LastLogin)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, created_at, last_login FROM users
		 WHERE email = $1
		 `
	return s.getUser(ctx, query, email)
}

func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, created_at, last_login FROM users
		 WHERE id = $1
		 `
	return s.getUser(ctx, query, userID)
}

func (s *Storage) getUser(ctx context.Context, query, arg string) (*models.User, error) {
	user := &models.User{}
	var lastLogin sql.NullTime

	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}

func (s *Storage) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	query :=
		`UPDATE users SET last_login = $1
		 WHERE id = $2
		 `

	res, err := s.db.ExecContext(ctx, query, lastLogin, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res, storage.ErrUserNotFound)
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
