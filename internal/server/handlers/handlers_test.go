package handlers

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/server/storage"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockMatchStorage is an in-memory MatchStorage for testing
type mockMatchStorage struct {
	matches map[string]*models.Match
	err     error
	mu      sync.Mutex
}

func newMockMatchStorage() *mockMatchStorage {
	return &mockMatchStorage{matches: make(map[string]*models.Match)}
}

func (m *mockMatchStorage) CreateMatch(_ context.Context, match *models.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cp := *match
	m.matches[match.ID] = &cp
	return nil
}

func (m *mockMatchStorage) GetMatch(_ context.Context, userID, matchID string) (*models.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	match, ok := m.matches[matchID]
	if !ok || match.UserID != userID {
		return nil, storage.ErrMatchNotFound
	}
	cp := *match
	return &cp, nil
}

func (m *mockMatchStorage) ListMatches(_ context.Context, userID string) ([]*models.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*models.Match, 0)
	for _, match := range m.matches {
		if match.UserID == userID {
			cp := *match
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (m *mockMatchStorage) UpdateMatch(_ context.Context, match *models.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	existing, ok := m.matches[match.ID]
	if !ok || existing.UserID != match.UserID {
		return storage.ErrMatchNotFound
	}
	cp := *match
	m.matches[match.ID] = &cp
	return nil
}

func (m *mockMatchStorage) DeleteMatch(_ context.Context, userID, matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	match, ok := m.matches[matchID]
	if !ok || match.UserID != userID {
		return storage.ErrMatchNotFound
	}
	delete(m.matches, matchID)
	return nil
}

// mockCredentials is a CredentialStore with canned answers
type mockCredentials struct {
	registerErr error
	authErr     error
	user        *models.User
}

func (m *mockCredentials) Register(_ context.Context, email, _ string) (*models.User, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return &models.User{ID: "u-new", Email: email}, nil
}

func (m *mockCredentials) Authenticate(_ context.Context, _, _ string) (*models.User, error) {
	if m.authErr != nil {
		return nil, m.authErr
	}
	return m.user, nil
}

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(context.Context) error { return m.err }
