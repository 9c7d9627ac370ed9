package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain codes pass through unchanged.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes that express a state-machine violation map to 422; anything
// about the caller's input maps to 400.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeInternal:    http.StatusInternalServerError,

	"NOT_FOUND":      http.StatusNotFound,
	"ITEM_NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,

	"FORBIDDEN":        http.StatusForbidden,
	"ACCOUNT_DISABLED": http.StatusForbidden,
	"ACCOUNT_LOCKED":   http.StatusForbidden,

	"INVALID_INPUT": http.StatusBadRequest,
	"INVALID_SCOPE": http.StatusBadRequest,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,

	"QUEUE_UNAVAILABLE":   http.StatusServiceUnavailable,
	"STORAGE_UNAVAILABLE": http.StatusServiceUnavailable,
	"RENDER_FAILED":       http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unmapped INVALID_* codes are treated as input validation failures;
// every other unmapped code is a business rule violation.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
