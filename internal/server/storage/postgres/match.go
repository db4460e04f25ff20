package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/server/storage"
)

const matchColumns = `id, user_id, date, opponent, format, goals, assists, result, is_mvp, notes, created_at, updated_at`

func (s *Storage) CreateMatch(ctx context.Context, match *models.Match) error {
	query :=
		`INSERT INTO matches (` + matchColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 `

	_, err := s.db.ExecContext(ctx, query,
		match.ID, match.UserID, match.Date,
		match.Opponent, match.Format, match.Goals, match.Assists, match.Result,
		match.IsMVP, match.Notes, match.CreatedAt, match.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (s *Storage) GetMatch(ctx context.Context, userID, matchID string) (*models.Match, error) {
	query :=
		`SELECT ` + matchColumns + ` FROM matches
		 WHERE id = $1 AND user_id = $2
		 `

	match, err := scanMatch(s.db.QueryRowContext(ctx, query, matchID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMatchNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return match, nil
}

func (s *Storage) ListMatches(ctx context.Context, userID string) ([]*models.Match, error) {
	query :=
		`SELECT ` + matchColumns + ` FROM matches
		 WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC
		 `

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return matches, nil
}

func (s *Storage) UpdateMatch(ctx context.Context, match *models.Match) error {
	query :=
		`UPDATE matches
		 SET date = $1, opponent = $2, format = $3, goals = $4, assists = $5,
		     result = $6, is_mvp = $7, notes = $8, updated_at = $9
		 WHERE id = $10 AND user_id = $11
		 `

	res, err := s.db.ExecContext(ctx, query,
		match.Date, match.Opponent, match.Format, match.Goals, match.Assists,
		match.Result, match.IsMVP, match.Notes, match.UpdatedAt,
		match.ID, match.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res, storage.ErrMatchNotFound)
}

func (s *Storage) DeleteMatch(ctx context.Context, userID, matchID string) error {
	query :=
		`DELETE FROM matches
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := s.db.ExecContext(ctx, query, matchID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res, storage.ErrMatchNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	m := &models.Match{}
	var (
		opponent, notes                sql.NullString
		format, goals, assists, result sql.NullInt64
	)

	err := row.Scan(&m.ID, &m.UserID, &m.Date, &opponent, &format, &goals, &assists,
		&result, &m.IsMVP, &notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if opponent.Valid {
		m.Opponent = &opponent.String
	}
	if notes.Valid {
		m.Notes = &notes.String
	}
	m.Format = intOrNil(format)
	m.Goals = intOrNil(goals)
	m.Assists = intOrNil(assists)
	m.Result = intOrNil(result)

	return m, nil
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
