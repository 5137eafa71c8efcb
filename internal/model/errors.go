package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Client-facing error messages
const (
	MsgMissingFields      = "Please enter all values"
	MsgInvalidEmail       = "Please enter valid email address"
	MsgPasswordTooShort   = "Your password must be at least 8 characters long"
	MsgPasswordTooLong    = "Your password must be at most 72 bytes long"
	MsgDuplicateEmail     = "Duplicate email"
	MsgMissingCredentials = "Please enter email & Password"
	MsgInvalidCredentials = "Invalid Email or Password"
	MsgMissingAuthHeader  = "Missing Authorization header with Bearer token"
	MsgAuthFailed         = "Authentication Failed"
	MsgAuthInternal       = "User authentication failed"
	MsgJobNotFound        = "Job not found"
	MsgInvalidID          = "Please enter correct id"
	MsgNotAllowedUpdate   = "You are not allowed to update this job"
	MsgNotAllowedDelete   = "You are not allowed to delete this job"
	MsgMissingFile        = "Please upload a file"
	MsgFileTooLarge       = "Please upload a smaller file"
	MsgUploadFailed       = "File upload failed"
	MsgInvalidQuery       = "Please enter correct query values"
	MsgInvalidBody        = "Invalid request body"
	MsgRouteNotFound      = "Route not found"
	MsgInternal           = "Internal Server Error"
	MsgTooManyRequests    = "Too many requests, please try again later"
	MsgUnavailable        = "Service unavailable"
)

// APIError is the single error shape returned by the API: {"error": "..."}
type APIError struct {
	Status     int    `json:"-"`
	Message    string `json:"error"`
	RetryAfter int    `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error as a JSON response
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if e.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(e.RetryAfter))
	}
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewBadRequestError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Message: message}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

func NewPayloadTooLargeError(limit int64) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Please upload file less than %d bytes", limit),
	}
}

// NewInternalError hides the cause; callers log it separately.
func NewInternalError(message string) *APIError {
	if message == "" {
		message = MsgInternal
	}
	return &APIError{Status: http.StatusInternalServerError, Message: message}
}

func NewRateLimitError(retryAfter int) *APIError {
	return &APIError{
		Status:     http.StatusTooManyRequests,
		Message:    MsgTooManyRequests,
		RetryAfter: retryAfter,
	}
}

func NewServiceUnavailableError() *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Message: MsgUnavailable}
}
