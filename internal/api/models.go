package api

import (
	"time"

	"fleet-api/internal/domain"
)

// Request/response structures. Wire names stay camelCase to preserve the
// public contract of the API.

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// TokenResponse defines the successful response for the login endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}

// MeResponse defines the response for the current-user endpoint.
type MeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

// CreateUserRequest defines the payload for the signup endpoint.
type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// UpdateUserRequest defines the payload for the user update endpoint.
// Password and photo are not editable through this path.
type UpdateUserRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdatePhotoRequest defines the payload for the photo update endpoint.
type UpdatePhotoRequest struct {
	Photo string `json:"photo" validate:"required"`
}

// UserSummaryResponse is the list-view projection of a user.
// The password hash is never part of any response shape.
type UserSummaryResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserResponse is the detail-view projection of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CoordinatePayload is one GPS sample in a historic request or response.
type CoordinatePayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

// CreateHistoricRequest defines the payload for checking out a vehicle.
type CreateHistoricRequest struct {
	LicensePlate string              `json:"licensePlate" validate:"required"`
	Description  string              `json:"description"  validate:"required"`
	Coords       []CoordinatePayload `json:"coords"`
}

// UpdateHistoricRequest defines the payload for the historic update endpoint.
type UpdateHistoricRequest struct {
	LicensePlate string              `json:"licensePlate" validate:"required"`
	Description  string              `json:"description"  validate:"required"`
	Coords       []CoordinatePayload `json:"coords"`
}

// CheckInRequest defines the payload for the check-out endpoint, which
// closes a usage session by marking the vehicle arrived.
type CheckInRequest struct {
	ID     string              `json:"id" validate:"required,uuid"`
	Coords []CoordinatePayload `json:"coords"`
}

// HistoricResponse is the projection of a historic with its coordinate trail.
type HistoricResponse struct {
	ID           string              `json:"id"`
	LicensePlate string              `json:"licensePlate"`
	Description  string              `json:"description"`
	Status       string              `json:"status"`
	UserID       string              `json:"userId"`
	Coords       []CoordinatePayload `json:"coords"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func toCoordinates(payloads []CoordinatePayload) []domain.Coordinate {
	coords := make([]domain.Coordinate, 0, len(payloads))
	for _, p := range payloads {
		coords = append(coords, domain.NewCoordinate(p.Latitude, p.Longitude, p.Timestamp))
	}
	return coords
}

func historicToResponse(h *domain.Historic) HistoricResponse {
	coords := make([]CoordinatePayload, 0, len(h.Coords))
	for _, c := range h.Coords {
		coords = append(coords, CoordinatePayload{
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
			Timestamp: c.Timestamp,
		})
	}
	return HistoricResponse{
		ID:           h.ID.String(),
		LicensePlate: h.LicensePlate,
		Description:  h.Description,
		Status:       string(h.Status),
		UserID:       h.UserID.String(),
		Coords:       coords,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Photo:     u.Photo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
