package httpdto

// Every response carries "ok". Successful payloads sit next to it at the top level.

type OKResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

func NewErrorResponse(err string, code string) ErrorResponse {
	return ErrorResponse{
		OK:    false,
		Error: err,
		Code:  code,
	}
}

const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeTooLarge           = "PAYLOAD_TOO_LARGE"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

type UserProfile struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// PageQuery holds the page of GET /products and GET /streams. Pages start at 1.
type PageQuery struct {
	Page int `form:"page"`
}
