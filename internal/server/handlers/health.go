package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/futbol/internal/server/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	responder
	db storage.Pinger
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, db storage.Pinger) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger},
		db:        db,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Ping обрабатывает GET /ping
func (h *HealthHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	h.sendJSON(w, "ok", http.StatusOK)
}

// Health обрабатывает GET /health
// Проверяет доступность базы данных
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Version: Version}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.ErrorContext(r.Context(), "database ping failed", slog.Any("error", err))
			resp.Status = "unavailable"
			h.sendJSON(w, resp, http.StatusServiceUnavailable)
			return
		}
	}

	h.sendJSON(w, resp, http.StatusOK)
}
