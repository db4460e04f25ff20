package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/validation"
	"github.com/iudanet/futbol/pkg/api"
)

func authedRequest(t *testing.T, method, target, userID string, body any, id string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := WithIdentity(req.Context(), models.Identity{ID: userID, Email: userID + "@test.com"})
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func intPtr(v int) *int { return &v }

func TestMatchHandler_CreateValidation(t *testing.T) {
	h := NewMatchHandler(setupTestLogger(), newMockMatchStorage())
	longNotes := make([]byte, 2001)
	for i := range longNotes {
		longNotes[i] = 'a'
	}
	notes := string(longNotes)

	tests := []struct {
		name     string
		body     api.MatchRequest
		wantCode string
	}{
		{name: "missing date", body: api.MatchRequest{}, wantCode: validation.CodeRequired},
		{name: "negative goals", body: api.MatchRequest{Date: time.Now(), Goals: intPtr(-1)}, wantCode: validation.CodeOutOfRange},
		{name: "format zero", body: api.MatchRequest{Date: time.Now(), Format: intPtr(0)}, wantCode: validation.CodeOutOfRange},
		{name: "format twelve", body: api.MatchRequest{Date: time.Now(), Format: intPtr(12)}, wantCode: validation.CodeOutOfRange},
		{name: "bad result", body: api.MatchRequest{Date: time.Now(), Result: intPtr(3)}, wantCode: validation.CodeInvalidValue},
		{name: "notes too long", body: api.MatchRequest{Date: time.Now(), Notes: &notes}, wantCode: validation.CodeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Create(w, authedRequest(t, http.MethodPost, "/matches", "u-1", tt.body, ""))

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			require.NotEmpty(t, resp.Errors)
			assert.Equal(t, tt.wantCode, resp.Errors[0].Code)
		})
	}
}

func TestMatchHandler_CreateAndList(t *testing.T) {
	store := newMockMatchStorage()
	h := NewMatchHandler(setupTestLogger(), store)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	older := api.MatchRequest{Date: fixed.Add(-48 * time.Hour), Goals: intPtr(0), Result: intPtr(models.ResultLoss)}
	newer := api.MatchRequest{Date: fixed.Add(-24 * time.Hour), Goals: intPtr(3), Assists: intPtr(1), Result: intPtr(models.ResultWin), IsMVP: true}

	for _, body := range []api.MatchRequest{older, newer} {
		w := httptest.NewRecorder()
		h.Create(w, authedRequest(t, http.MethodPost, "/matches", "u-1", body, ""))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	h.List(w, authedRequest(t, http.MethodGet, "/matches", "u-1", nil, ""))
	require.Equal(t, http.StatusOK, w.Code)

	var list []api.MatchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, 3, *list[0].Goals)
	assert.Equal(t, 0, *list[1].Goals, "zero goals is a value, not null")

	for _, m := range store.matches {
		assert.Equal(t, fixed, m.CreatedAt)
		assert.Equal(t, "u-1", m.UserID)
	}

	w = httptest.NewRecorder()
	h.Summary(w, authedRequest(t, http.MethodGet, "/matches/summary", "u-1", nil, ""))
	require.Equal(t, http.StatusOK, w.Code)
	var summary api.SummaryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, api.SummaryResponse{Matches: 2, Goals: 3, Assists: 1, Wins: 1, Losses: 1, MVPs: 1}, summary)
}

func TestMatchHandler_NotFound(t *testing.T) {
	store := newMockMatchStorage()
	h := NewMatchHandler(setupTestLogger(), store)
	id := uuid.NewString()
	store.matches[id] = &models.Match{ID: id, UserID: "owner", Date: time.Now()}

	tests := []struct {
		call func(w http.ResponseWriter, r *http.Request)
		body any
		name string
		id   string
	}{
		{name: "get foreign", call: h.Get, id: id},
		{name: "get bad uuid", call: h.Get, id: "42"},
		{name: "update foreign", call: h.Update, id: id, body: api.MatchRequest{Date: time.Now()}},
		{name: "delete foreign", call: h.Delete, id: id},
		{name: "delete missing", call: h.Delete, id: uuid.NewString()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.call(w, authedRequest(t, http.MethodGet, "/matches/"+tt.id, "intruder", tt.body, tt.id))
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}

	assert.Contains(t, store.matches, id)
}

func TestMatchHandler_StorageError(t *testing.T) {
	store := newMockMatchStorage()
	store.err = errors.New("db down")
	h := NewMatchHandler(setupTestLogger(), store)

	w := httptest.NewRecorder()
	h.List(w, authedRequest(t, http.MethodGet, "/matches", "u-1", nil, ""))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestMatchHandler_Unauthenticated(t *testing.T) {
	h := NewMatchHandler(setupTestLogger(), newMockMatchStorage())

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/matches", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
