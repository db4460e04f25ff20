package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/futbol/internal/server/handlers"
	"github.com/iudanet/futbol/internal/server/session"
	"github.com/iudanet/futbol/internal/server/token"
)

// AuthMiddleware создает middleware для проверки сессионного токена.
// Токен берется из заголовка Authorization: Bearer, иначе из cookie auth_token.
// Если заголовок есть, cookie не проверяется вовсе.
func AuthMiddleware(logger *slog.Logger, tokens *token.Service, cfg token.Config) func(http.Handler) http.Handler {
	return authMiddleware(logger, tokens, cfg, time.Now)
}

func authMiddleware(logger *slog.Logger, tokens *token.Service, cfg token.Config, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, source := session.ExtractToken(r)
			if source == session.SourceNone {
				logger.DebugContext(r.Context(), "Missing session token")
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			identity, err := tokens.Validate(raw, cfg, now())
			if err != nil {
				logger.WarnContext(r.Context(), "Invalid session token",
					slog.String("source", string(source)),
					slog.Any("error", err))
				writeError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			logger.DebugContext(r.Context(), "User authenticated",
				slog.String("user_id", identity.ID),
				slog.String("source", string(source)))

			next.ServeHTTP(w, r.WithContext(handlers.WithIdentity(r.Context(), identity)))
		})
	}
}
