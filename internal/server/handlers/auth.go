package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/server/credentials"
	"github.com/iudanet/futbol/internal/server/session"
	"github.com/iudanet/futbol/internal/server/token"
	"github.com/iudanet/futbol/internal/validation"
	"github.com/iudanet/futbol/pkg/api"
)

// CredentialStore регистрирует пользователей и проверяет пароли
type CredentialStore interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// LoginObserver получает результат каждой попытки входа (метрики)
type LoginObserver func(success bool)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	responder
	credentials CredentialStore
	tokens      *token.Service
	transport   *session.Transport
	now         func() time.Time
	observe     LoginObserver
	tokenConfig token.Config
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(
	logger *slog.Logger,
	creds CredentialStore,
	tokens *token.Service,
	tokenConfig token.Config,
	transport *session.Transport,
) *AuthHandler {
	return &AuthHandler{
		responder:   responder{logger: logger},
		credentials: creds,
		tokens:      tokens,
		tokenConfig: tokenConfig,
		transport:   transport,
		now:         time.Now,
		observe:     func(bool) {},
	}
}

// WithLoginObserver подключает наблюдателя за попытками входа
func (h *AuthHandler) WithLoginObserver(observe LoginObserver) *AuthHandler {
	if observe != nil {
		h.observe = observe
	}
	return h
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if errs := validation.Struct(req); len(errs) > 0 {
		h.sendValidation(w, errs)
		return
	}

	if _, err := h.credentials.Register(ctx, req.Email, req.Password); err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) {
			h.logger.InfoContext(ctx, "registration rejected", slog.Int("errors", len(errs)))
			h.sendValidation(w, errs)
			return
		}
		h.logger.ErrorContext(ctx, "failed to register user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Login обрабатывает POST /auth/login
// Токен отдается и в cookie, и в теле ответа
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		h.sendMessage(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.credentials.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, credentials.ErrInvalidCredentials) {
			h.observe(false)
			h.sendMessage(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to authenticate", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	issued, err := h.tokens.Issue(user.Identity(), h.tokenConfig, h.now())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.transport.SetToken(w, r, issued.Token)
	h.observe(true)

	h.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	h.sendJSON(w, api.LoginResponse{
		Message:   "Login successful",
		Token:     issued.Token,
		ExpiresIn: int64(issued.ExpiresIn.Seconds()),
	}, http.StatusOK)
}

// Me обрабатывает GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r.Context())
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	h.sendJSON(w, api.MeResponse{ID: identity.ID, Email: identity.Email}, http.StatusOK)
}

// Logout обрабатывает POST /auth/logout
// Cookie удаляется с теми же атрибутами, с которыми была выставлена
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.transport.Clear(w, r)
	h.sendMessage(w, "Logged out", http.StatusOK)
}
