package apperr

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

// Render implements render.Renderer
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}

// WithDetails returns a copy of e carrying details.
func (e *APIError) WithDetails(details any) *APIError {
	c := *e
	c.Details = details
	return &c
}

var (
	ErrInvalidRequest = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidation     = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrNotFound       = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrTooLarge       = New(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Upload exceeds size limit")
	ErrNoDateRange    = New(http.StatusUnprocessableEntity, "NO_DATE_RANGE", "Dataset has no dated records")
	ErrNoPostData     = New(http.StatusUnprocessableEntity, "NO_POST_DATA", "Upload at least one X/Twitter, Instagram or Facebook posts export to generate a report")
	ErrRateLimited    = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrUpstream       = New(http.StatusBadGateway, "UPSTREAM_FAILED", "Upstream request failed")
	ErrNotConfigured  = New(http.StatusServiceUnavailable, "NOT_CONFIGURED", "Feature not configured")
	ErrInternal       = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// NotFound is ErrNotFound naming the missing resource.
func NotFound(resource string) *APIError {
	e := ErrNotFound.WithDetails(resource)
	e.Message = fmt.Sprintf("%s not found", resource)
	return e
}

// Write renders e as the JSON response.
func Write(w http.ResponseWriter, r *http.Request, e *APIError) {
	_ = render.Render(w, r, e)
}
