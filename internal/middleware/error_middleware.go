package middleware

import (
	"net/http"

	"live-market/internal/transport/httpdto"
	"live-market/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs errors that handlers attached with c.Error. The handlers have
// already written the response.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || l == nil {
			return
		}
		log := l.WithContext(c.Request.Context())
		for _, e := range c.Errors {
			log.Errorw("request error",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", c.Writer.Status(),
				"error", e.Err.Error(),
			)
		}
	}
}

// Recovery turns a panic into a 500 envelope and logs it with the request id.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if l != nil {
			l.WithContext(c.Request.Context()).Errorw("panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		}
		abortInternal(c)
	})
}

func abortInternal(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", httpdto.CodeInternal))
}
