package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/futbol/internal/validation"
	"github.com/iudanet/futbol/pkg/api"
)

// responder содержит общие хелперы для JSON ответов
type responder struct {
	logger *slog.Logger
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}

// sendMessage отправляет {"message": ...}
func (h responder) sendMessage(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.MessageResponse{Message: message}, statusCode)
}

// sendValidation отправляет 400 со списком ошибок валидации
func (h responder) sendValidation(w http.ResponseWriter, errs validation.Errors) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: "validation failed",
		Errors:  make([]api.ValidationError, 0, len(errs)),
	}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, api.ValidationError{Code: e.Code, Description: e.Description})
	}
	h.sendJSON(w, resp, http.StatusBadRequest)
}
