// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"live-market/internal/services"
	"live-market/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerFieldNamesOnce sync.Once

// RegisterFieldNames makes binding errors report fields by their json or form names.
func RegisterFieldNames() {
	registerFieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.Split(f.Tag.Get(tag), ",")[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// writeError maps err to a status and envelope. Server-side failures are hidden
// from the client and attached to the context for ErrorHandler to log.
func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		_ = c.Error(err)
		msg = "internal error"
	}
	c.JSON(status, httpdto.NewErrorResponse(msg, errorCode(status)))
}

func writeBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(msg, httpdto.CodeInvalidRequest))
}

// writeBindError reports which field failed to bind, or "invalid request" when the body is unreadable.
func writeBindError(c *gin.Context, err error) {
	writeBadRequest(c, bindErrorMessage(err))
}

func bindErrorMessage(err error) string {
	if errors.Is(err, httpdto.ErrInvalidPrice) {
		return httpdto.ErrInvalidPrice.Error()
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return fe.Field() + " is required"
		}
		return fe.Field() + " is invalid"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " is invalid"
	}
	return "invalid request"
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return httpdto.CodeInvalidRequest
	case http.StatusUnauthorized:
		return httpdto.CodeUnauthorized
	case http.StatusForbidden:
		return httpdto.CodeForbidden
	case http.StatusNotFound:
		return httpdto.CodeNotFound
	case http.StatusConflict:
		return httpdto.CodeConflict
	case http.StatusRequestEntityTooLarge:
		return httpdto.CodeTooLarge
	case http.StatusServiceUnavailable:
		return httpdto.CodeServiceUnavailable
	default:
		return httpdto.CodeInternal
	}
}

// currentUser returns the id placed on the context by the auth middleware.
func currentUser(c *gin.Context) (uint64, bool) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", httpdto.CodeUnauthorized))
	}
	return userID, ok
}

func parseID(value string) (uint64, bool) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
