package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"fleet-api/internal/domain"
	"fleet-api/internal/service/auth"
	"fleet-api/internal/service/historic"
	"fleet-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "missing token", err: auth.ErrMissingToken, want: http.StatusUnauthorized},
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, want: http.StatusBadRequest},
		{name: "user not found", err: store.ErrUserNotFound, want: http.StatusBadRequest},
		{name: "historic not found", err: store.ErrHistoricNotFound, want: http.StatusBadRequest},
		{name: "email exists", err: store.ErrEmailExists, want: http.StatusBadRequest},
		{name: "plate in use", err: store.ErrPlateInUse, want: http.StatusBadRequest},
		{name: "invalid entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "validation failure", err: domain.ErrValidation, want: http.StatusBadRequest},
		{name: "invalid id", err: domain.ErrInvalidID, want: http.StatusBadRequest},
		{name: "already checked in", err: historic.ErrAlreadyCheckedIn, want: http.StatusBadRequest},
		{name: "wrapped sentinel", err: fmt.Errorf("creating: %w", store.ErrPlateInUse), want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
		{name: "nil error", err: nil, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, want: "Email or password is incorrect"},
		{name: "user not found", err: store.ErrUserNotFound, want: "User not found"},
		{name: "historic not found", err: store.ErrHistoricNotFound, want: "Historic not found"},
		{name: "email exists", err: store.ErrEmailExists, want: "A user with this email already exists"},
		{name: "plate in use", err: store.ErrPlateInUse, want: "A record with this license plate is already in use"},
		{name: "already checked in", err: historic.ErrAlreadyCheckedIn, want: "Vehicle already checked in"},
		{name: "expired token", err: auth.ErrExpiredToken, want: "Invalid token"},
		{
			name: "validation error carries field detail",
			err:  domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID),
			want: "id has invalid format",
		},
		{name: "unknown error stays generic", err: errors.New("pq: column secrets does not exist"), want: "An unexpected error occurred"},
		{name: "nil error", err: nil, want: "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

// Raw internal detail must never appear in a safe message.
func TestGetSafeErrorMessage_NeverEchoesInternalDetail(t *testing.T) {
	t.Parallel()

	internal := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	msg := GetSafeErrorMessage(fmt.Errorf("query failed: %w", internal))

	assert.NotContains(t, msg, "10.0.0.5")
	assert.NotContains(t, msg, "connection refused")
}
