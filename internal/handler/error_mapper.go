package handler

import (
	"errors"

	"github.com/Amorphous121/jobboard/internal/model"
	"github.com/Amorphous121/jobboard/internal/service"
)

// MapServiceError converts a service error to an API error response.
// Anything not listed is a 500 with a generic message.
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	switch {
	// ===== Registration / Login → 400, 401 =====
	case errors.Is(err, service.ErrMissingFields):
		return model.NewBadRequestError(model.MsgMissingFields)
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewBadRequestError(model.MsgInvalidEmail)
	case errors.Is(err, service.ErrPasswordTooShort):
		return model.NewBadRequestError(model.MsgPasswordTooShort)
	case errors.Is(err, service.ErrPasswordTooLong):
		return model.NewBadRequestError(model.MsgPasswordTooLong)
	case errors.Is(err, service.ErrDuplicateEmail):
		return model.NewBadRequestError(model.MsgDuplicateEmail)
	case errors.Is(err, service.ErrMissingCredentials):
		return model.NewBadRequestError(model.MsgMissingCredentials)
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(model.MsgInvalidCredentials)

	// ===== Token → 401, 500 =====
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUserNotFound):
		return model.NewUnauthorizedError(model.MsgAuthFailed)
	case errors.Is(err, service.ErrTokenUnverifiable):
		return model.NewInternalError(model.MsgAuthInternal)

	// ===== Jobs → 400, 401, 404 =====
	case errors.Is(err, service.ErrJobValidation):
		return model.NewBadRequestError(model.MsgMissingFields)
	case errors.Is(err, service.ErrInvalidJobID):
		return model.NewBadRequestError(model.MsgInvalidID)
	case errors.Is(err, service.ErrJobNotFound):
		return model.NewNotFoundError(model.MsgJobNotFound)
	case errors.Is(err, service.ErrDeleteForbidden):
		return model.NewUnauthorizedError(model.MsgNotAllowedDelete)
	case errors.Is(err, service.ErrNotJobOwner):
		return model.NewUnauthorizedError(model.MsgNotAllowedUpdate)

	// ===== Uploads → 400, 500 =====
	case errors.Is(err, service.ErrMissingFile):
		return model.NewBadRequestError(model.MsgMissingFile)
	case errors.Is(err, service.ErrFileTooLarge):
		// JobHandler reports the configured limit instead
		return model.NewBadRequestError(model.MsgFileTooLarge)
	case errors.Is(err, service.ErrUploadFailed):
		return model.NewInternalError(model.MsgUploadFailed)
	}

	return model.NewInternalError("")
}
