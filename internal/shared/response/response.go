package response

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/validator"
)

// TimestampLayout is ISO 8601 with millisecond precision, always UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var now = time.Now

type SuccessBody struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Timestamp string           `json:"timestamp"`
	Path      string           `json:"path"`
	Data      interface{}      `json:"data"`
	Meta      *pagination.Meta `json:"meta,omitempty"`
}

type ErrorBody struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
	Path      string      `json:"path"`
	Error     ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code       string      `json:"code"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
	// Fields maps each failing field, bare and "payload."-prefixed, to its messages.
	Fields map[string][]string `json:"fields,omitempty"`
}

func timestamp() string {
	return now().UTC().Format(TimestampLayout)
}

// NewSuccess builds a success envelope.
func NewSuccess(path, message string, data interface{}, meta *pagination.Meta) SuccessBody {
	return SuccessBody{
		Success:   true,
		Message:   message,
		Timestamp: timestamp(),
		Path:      path,
		Data:      data,
		Meta:      meta,
	}
}

// NewError builds an error envelope.
func NewError(path string, statusCode int, code, message string, details interface{}) ErrorBody {
	if code == "" {
		code = CodeForStatus(statusCode)
	}
	return ErrorBody{
		Success:   false,
		Message:   message,
		Timestamp: timestamp(),
		Path:      path,
		Error: ErrorDetail{
			Code:       code,
			StatusCode: statusCode,
			Details:    details,
		},
	}
}

// CodeForStatus is the default error code for an HTTP status.
func CodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	}

	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
}

func requestPath(c *gin.Context) string {
	if c.Request == nil || c.Request.URL == nil {
		return ""
	}
	return c.Request.URL.Path
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, NewSuccess(requestPath(c), message, data, nil))
}

func SuccessWithMeta(c *gin.Context, statusCode int, message string, data interface{}, meta pagination.Meta) {
	c.JSON(statusCode, NewSuccess(requestPath(c), message, data, &meta))
}

// Error responses
func Error(c *gin.Context, statusCode int, message string, details interface{}) {
	ErrorWithCode(c, statusCode, "", message, details)
}

func ErrorWithCode(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, NewError(requestPath(c), statusCode, code, message, details))
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message, nil)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message, nil)
}

// ValidationError answers 400 VALIDATION_ERROR with the flattened field list.
func ValidationError(c *gin.Context, err *validator.Error) {
	body := NewError(requestPath(c), http.StatusBadRequest, "VALIDATION_ERROR", err.Message, err.Details())
	body.Error.Fields = err.Lookup()
	c.JSON(http.StatusBadRequest, body)
}
