package middleware

import (
	"context"
	"net/http"
	"strings"

	"live-market/internal/services"
	"live-market/internal/transport/httpdto"
	"live-market/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthRequired rejects requests without a valid bearer token and a live session.
func AuthRequired(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, ok := authenticate(c, service)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", httpdto.CodeUnauthorized))
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AuthOptional attaches the caller's identity when a valid token is sent and
// otherwise continues anonymously.
func AuthOptional(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctx, ok := authenticate(c, service); ok {
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, service *services.AuthService) (context.Context, bool) {
	claims, err := service.ParseAccessToken(extractBearer(c))
	if err != nil {
		return nil, false
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, false
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, false
	}
	if _, err := service.ValidateSession(c.Request.Context(), sessionID, userID); err != nil {
		return nil, false
	}

	ctx := services.WithUserSessionContext(c.Request.Context(), userID, sessionID)
	ctx = context.WithValue(ctx, logger.UserIdKey, userID)
	return ctx, true
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
