package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/server/storage"
)

const matchColumns = `id, user_id, date, opponent, format, goals, assists, result, is_mvp, notes, created_at, updated_at`

// CreateMatch stores a new match for match.UserID
func (s *Storage) CreateMatch(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (` + matchColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		match.ID,
		match.UserID,
		match.Date.UTC(),
		nullString(match.Opponent),
		nullInt(match.Format),
		nullInt(match.Goals),
		nullInt(match.Assists),
		nullInt(match.Result),
		match.IsMVP,
		nullString(match.Notes),
		match.CreatedAt.UTC(),
		match.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	return nil
}

// GetMatch retrieves a match owned by userID
func (s *Storage) GetMatch(ctx context.Context, userID, matchID string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = ? AND user_id = ?`

	match, err := scanMatch(s.db.QueryRowContext(ctx, query, matchID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// ListMatches returns the user's matches, newest first
func (s *Storage) ListMatches(ctx context.Context, userID string) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE user_id = ?
		ORDER BY date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return matches, nil
}

// UpdateMatch replaces the editable fields of an owned match
func (s *Storage) UpdateMatch(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET date = ?, opponent = ?, format = ?, goals = ?, assists = ?,
		    result = ?, is_mvp = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		match.Date.UTC(),
		nullString(match.Opponent),
		nullInt(match.Format),
		nullInt(match.Goals),
		nullInt(match.Assists),
		nullInt(match.Result),
		match.IsMVP,
		nullString(match.Notes),
		match.UpdatedAt.UTC(),
		match.ID,
		match.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrMatchNotFound
	}

	return nil
}

// DeleteMatch removes a match owned by userID
func (s *Storage) DeleteMatch(ctx context.Context, userID, matchID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM matches WHERE id = ? AND user_id = ?`,
		matchID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrMatchNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	match := &models.Match{}
	var (
		opponent, notes                sql.NullString
		format, goals, assists, result sql.NullInt64
	)

	err := row.Scan(
		&match.ID,
		&match.UserID,
		&match.Date,
		&opponent,
		&format,
		&goals,
		&assists,
		&result,
		&match.IsMVP,
		&notes,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	match.Opponent = stringPtr(opponent)
	match.Notes = stringPtr(notes)
	match.Format = intPtr(format)
	match.Goals = intPtr(goals)
	match.Assists = intPtr(assists)
	match.Result = intPtr(result)

	return match, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
