package api

import (
	"errors"
	"net/http"

	"fleet-api/internal/domain"
	"fleet-api/internal/service/auth"
	"fleet-api/internal/service/historic"
	"fleet-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// The public contract reports every domain failure as 400, including
// missing records, rather than the 404/409 a fresh design might pick.
func MapErrorToStatusCode(err error) int {
	switch {
	// Token problems are rejected before handlers run; these cover handlers
	// that re-verify identity themselves.
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, historic.ErrAlreadyCheckedIn):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
// Internal detail never leaks through here.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Email or password is incorrect"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrHistoricNotFound):
		return "Historic not found"

	case errors.Is(err, store.ErrEmailExists):
		return "A user with this email already exists"

	case errors.Is(err, store.ErrPlateInUse):
		return "A record with this license plate is already in use"

	case errors.Is(err, historic.ErrAlreadyCheckedIn):
		return "Vehicle already checked in"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return vErr.Error()
		}
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error and writes the response in one step.
// An empty message falls back to the safe message for the error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	if status >= http.StatusInternalServerError {
		// Log the raw error; the client only sees the sanitized message.
		RespondWithErrorAndLog(w, r, status, message, err)
		return
	}
	RespondWithError(w, r, status, message)
}
