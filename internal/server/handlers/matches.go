package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/server/storage"
	"github.com/iudanet/futbol/internal/validation"
	"github.com/iudanet/futbol/pkg/api"
)

// MatchHandler обрабатывает CRUD матчей текущего пользователя
type MatchHandler struct {
	responder
	matches storage.MatchStorage
	now     func() time.Time
}

// NewMatchHandler создает новый handler для матчей
func NewMatchHandler(logger *slog.Logger, matches storage.MatchStorage) *MatchHandler {
	return &MatchHandler{
		responder: responder{logger: logger},
		matches:   matches,
		now:       time.Now,
	}
}

// List обрабатывает GET /matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	matches, err := h.matches.ListMatches(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list matches", slog.String("user_id", userID), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.MatchResponse, 0, len(matches))
	for _, m := range matches {
		resp = append(resp, toMatchResponse(m))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Summary обрабатывает GET /matches/summary
func (h *MatchHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	matches, err := h.matches.ListMatches(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list matches", slog.String("user_id", userID), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var summary models.MatchSummary
	for _, m := range matches {
		summary.Add(m)
	}

	h.sendJSON(w, api.SummaryResponse(summary), http.StatusOK)
}

// Get обрабатывает GET /matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	matchID, ok := h.matchID(w, r)
	if !ok {
		return
	}

	match, err := h.matches.GetMatch(ctx, userID, matchID)
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.sendJSON(w, toMatchResponse(match), http.StatusOK)
}

// Create обрабатывает POST /matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeMatch(w, r)
	if !ok {
		return
	}

	now := h.now().UTC()
	match := &models.Match{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyMatchRequest(match, req)

	if err := h.matches.CreateMatch(ctx, match); err != nil {
		h.logger.ErrorContext(ctx, "failed to create match", slog.String("user_id", userID), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "match created", slog.String("user_id", userID), slog.String("match_id", match.ID))

	h.sendJSON(w, toMatchResponse(match), http.StatusOK)
}

// Update обрабатывает PUT /matches/{id}
// Все редактируемые поля заменяются целиком
func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	matchID, ok := h.matchID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeMatch(w, r)
	if !ok {
		return
	}

	match, err := h.matches.GetMatch(ctx, userID, matchID)
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	applyMatchRequest(match, req)
	match.UpdatedAt = h.now().UTC()

	if err := h.matches.UpdateMatch(ctx, match); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.sendJSON(w, toMatchResponse(match), http.StatusOK)
}

// Delete обрабатывает DELETE /matches/{id}
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	matchID, ok := h.matchID(w, r)
	if !ok {
		return
	}

	if err := h.matches.DeleteMatch(ctx, userID, matchID); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "match deleted", slog.String("user_id", userID), slog.String("match_id", matchID))

	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
	}
	return userID, ok
}

// matchID отдает 404 на невалидный uuid, как и на чужой матч
func (h *MatchHandler) matchID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.sendError(w, "match not found", http.StatusNotFound)
		return "", false
	}
	return id.String(), true
}

func (h *MatchHandler) decodeMatch(w http.ResponseWriter, r *http.Request) (*api.MatchRequest, bool) {
	var req api.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode match request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}

	req.Opponent = blankToNil(req.Opponent)
	req.Notes = blankToNil(req.Notes)

	if errs := validation.Struct(req); len(errs) > 0 {
		h.sendValidation(w, errs)
		return nil, false
	}

	return &req, true
}

func (h *MatchHandler) storageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrMatchNotFound) {
		h.sendError(w, "match not found", http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), "match storage error", slog.Any("error", err))
	h.sendError(w, "internal server error", http.StatusInternalServerError)
}

func applyMatchRequest(m *models.Match, req *api.MatchRequest) {
	m.Date = req.Date.UTC()
	m.Opponent = req.Opponent
	m.Format = req.Format
	m.Goals = req.Goals
	m.Assists = req.Assists
	m.Result = req.Result
	m.Notes = req.Notes
	m.IsMVP = req.IsMVP
}

func toMatchResponse(m *models.Match) api.MatchResponse {
	return api.MatchResponse{
		ID:       m.ID,
		Date:     m.Date,
		Opponent: m.Opponent,
		Format:   m.Format,
		Goals:    m.Goals,
		Assists:  m.Assists,
		Result:   m.Result,
		Notes:    m.Notes,
		IsMVP:    m.IsMVP,
	}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
