// Package token issues and validates signed session tokens (HS256 JWT).
package token

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iudanet/futbol/internal/models"
)

const (
	DefaultIssuer         = "Futbol.Api"
	DefaultAudience       = "Futbol.Web"
	DefaultExpiresMinutes = 4320

	// ClockSkew is tolerated on expiry checks.
	ClockSkew = 2 * time.Minute

	// maxExpiresMinutes is the largest expiry that fits in a time.Duration.
	maxExpiresMinutes = math.MaxInt64 / int64(time.Minute)
)

var (
	ErrInvalidState         = errors.New("identity must have id and email")
	ErrConfigurationMissing = errors.New("jwt signing key is not configured")
	ErrSignatureInvalid     = errors.New("token signature is invalid")
	ErrExpired              = errors.New("token has expired")
	ErrIssuerMismatch       = errors.New("token issuer mismatch")
	ErrAudienceMismatch     = errors.New("token audience mismatch")
	ErrClaimsInvalid        = errors.New("token claims are invalid")
)

// Config is the signing configuration. It is passed on every call so that
// several configurations can coexist in one process.
type Config struct {
	Key      string
	Issuer   string
	Audience string
	// ExpiresMinutes is kept as text, the way it arrives from env or file.
	// Absent or unparsable values fall back to DefaultExpiresMinutes.
	ExpiresMinutes string
}

// Claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Issued is the result of a successful Issue call.
type Issued struct {
	ExpiresAt time.Time
	Token     string
	ExpiresIn time.Duration
}

type Service struct {
	logger *slog.Logger
	// resolved expiry per raw ExpiresMinutes value
	expiry sync.Map
}

func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// Issue signs a token for identity valid from now for the configured expiry.
func (s *Service) Issue(identity models.Identity, cfg Config, now time.Time) (Issued, error) {
	if strings.TrimSpace(identity.ID) == "" || strings.TrimSpace(identity.Email) == "" {
		return Issued{}, ErrInvalidState
	}
	if cfg.Key == "" {
		return Issued{}, ErrConfigurationMissing
	}

	ttl := s.Expiry(cfg)
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    issuer(cfg),
			Audience:  jwt.ClaimStrings{audience(cfg)},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Email: identity.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Key))
	if err != nil {
		return Issued{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Issued{Token: signed, ExpiresAt: expiresAt, ExpiresIn: ttl}, nil
}

// Validate verifies signature, issuer, audience and expiry (with ClockSkew)
// and returns the identity the token was issued for.
func (s *Service) Validate(raw string, cfg Config, now time.Time) (models.Identity, error) {
	if cfg.Key == "" {
		return models.Identity{}, ErrConfigurationMissing
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return []byte(cfg.Key), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer(cfg)),
		jwt.WithAudience(audience(cfg)),
		jwt.WithLeeway(ClockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return models.Identity{}, mapError(err)
	}

	if claims.Subject == "" || claims.Email == "" {
		return models.Identity{}, ErrClaimsInvalid
	}

	return models.Identity{ID: claims.Subject, Email: claims.Email}, nil
}

// Expiry returns the token lifetime for cfg. An unusable value is logged
// once and replaced by DefaultExpiresMinutes.
func (s *Service) Expiry(cfg Config) time.Duration {
	raw := strings.TrimSpace(cfg.ExpiresMinutes)
	if ttl, ok := s.expiry.Load(raw); ok {
		return ttl.(time.Duration)
	}

	ttl := s.parseExpiry(raw)
	s.expiry.Store(raw, ttl)
	return ttl
}

func (s *Service) parseExpiry(raw string) time.Duration {
	if raw == "" {
		return DefaultExpiresMinutes * time.Minute
	}

	minutes, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || minutes <= 0 || minutes > maxExpiresMinutes {
		s.logger.Warn("Invalid token expiry, using default",
			slog.String("value", raw),
			slog.Int("default_minutes", DefaultExpiresMinutes))
		return DefaultExpiresMinutes * time.Minute
	}

	return time.Duration(minutes) * time.Minute
}

func mapError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudienceMismatch
	default:
		return fmt.Errorf("%w: %w", ErrClaimsInvalid, err)
	}
}

func issuer(cfg Config) string {
	if v := strings.TrimSpace(cfg.Issuer); v != "" {
		return v
	}
	return DefaultIssuer
}

func audience(cfg Config) string {
	if v := strings.TrimSpace(cfg.Audience); v != "" {
		return v
	}
	return DefaultAudience
}
