package service

import (
	"errors"
	"fmt"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// ===== Token Errors =====
var (
	// ErrInvalidToken covers malformed, forged, expired and not-yet-valid tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenUnverifiable means the token could not be checked at all.
	ErrTokenUnverifiable = errors.New("token verification unavailable")
)

// ===== Job Errors =====
var (
	ErrJobValidation   = errors.New("job failed validation")
	ErrJobNotFound     = errors.New("job not found")
	ErrInvalidJobID    = errors.New("invalid job id")
	ErrNotJobOwner     = errors.New("not the job owner")
	ErrUpdateForbidden = fmt.Errorf("%w: update", ErrNotJobOwner)
	ErrDeleteForbidden = fmt.Errorf("%w: delete", ErrNotJobOwner)
)

// ===== Upload Errors =====
var (
	ErrMissingFile     = errors.New("file is required")
	ErrFileTooLarge    = errors.New("file exceeds upload limit")
	ErrUploadFailed    = errors.New("file upload failed")
	ErrStorageDisabled = errors.New("object storage is not configured")
)
