package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitchprep/server/internal/logger"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For stores/services/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes
const (
	CodeUnauthorized         = "unauthorized"
	CodeAuthenticationFailed = "authentication_failed"
	CodeSessionInvalidated   = "session_invalidated"
	CodeQuotaExceeded        = "quota_exceeded"
	CodeForbidden            = "forbidden"
	CodeNotFound             = "not_found"
	CodeValidationError      = "validation_error"
	CodeServerError          = "server_error"
	CodeBadRequest           = "bad_request"
	CodeConflict             = "conflict"
	CodeTooManyRequests      = "too_many_requests"
)

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 401 for bad credentials at login, distinct from a stale session
func AuthenticationFailed(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeAuthenticationFailed,
		Message: "incorrect handle or password",
	})
}

// returns a 401 for a session superseded by a login elsewhere, so clients can
// show "signed in elsewhere" messaging and force a clean re-login
func SessionInvalidated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeSessionInvalidated,
		Message: "your account was signed in on another device",
	})
}

// returns a 429 for an exhausted feature quota, carrying the feature and tier
// so the client can offer an upgrade path
func QuotaExceeded(c *gin.Context, feature, tier string) {
	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeQuotaExceeded,
		Message: "monthly limit reached for " + feature,
		Feature: feature,
		Tier:    tier,
	})
}

// returns a 403 forbidden error
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "permission denied"
	}

	c.JSON(http.StatusForbidden, ErrorResponse{
		Error:   CodeForbidden,
		Message: message,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	details := ""

	if err != nil {
		details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: "request validation failed",
		Details: details,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"account_id", c.GetString("account_id"),
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 409 conflict error
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "resource conflict"
	}

	c.JSON(http.StatusConflict, ErrorResponse{
		Error:   CodeConflict,
		Message: message,
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}
