package handlers

import (
	"context"

	"github.com/iudanet/futbol/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

const (
	// UserIDKey ключ для хранения user_id в контексте
	UserIDKey contextKey = "user_id"
	// EmailKey ключ для хранения email в контексте
	EmailKey contextKey = "email"
)

// WithIdentity кладет идентичность из токена в контекст запроса
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, identity.ID)
	return context.WithValue(ctx, EmailKey, identity.Email)
}

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// GetIdentity извлекает идентичность пользователя из контекста запроса
func GetIdentity(ctx context.Context) (models.Identity, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return models.Identity{}, false
	}
	email, _ := ctx.Value(EmailKey).(string)
	return models.Identity{ID: userID, Email: email}, true
}
