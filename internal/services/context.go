package services

import (
	"context"
	"errors"
	"net/http"

	market_errors "live-market/pkg/errors"

	"github.com/google/uuid"
)

type ctxKey string

var userIDKey ctxKey = "user_id"
var sessionIDKey ctxKey = "session_id"

func WithUserSessionContext(ctx context.Context, userID uint64, sessionID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func UserIDFromContext(ctx context.Context) (uint64, bool) {
	userID, ok := ctx.Value(userIDKey).(uint64)
	return userID, ok && userID != 0
}

func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(uuid.UUID)
	return sessionID, ok
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, market_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, market_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, market_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, market_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, market_errors.ErrAlreadyExists), errors.Is(err, market_errors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, market_errors.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, market_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
