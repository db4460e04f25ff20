package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewIPRateLimiter returns middleware that limits by client IP (in-memory store).
// rateFormatted: "10-M", "100-H", "5-S". Empty disables limiting.
func NewIPRateLimiter(logger *slog.Logger, rateFormatted string) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}

	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(memory.NewStore(), rate)

	mw := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.WarnContext(r.Context(), "Rate limit exceeded",
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))
			writeError(w, "rate limit exceeded", http.StatusTooManyRequests)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "Rate limiter failure", slog.Any("error", err))
			writeError(w, "internal server error", http.StatusInternalServerError)
		}),
	)

	return mw.Handler, nil
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
