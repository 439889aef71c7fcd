package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HistoricStatus is the lifecycle state of a vehicle-usage record.
type HistoricStatus string

// Valid historic statuses. A historic is created departed when a vehicle is
// checked out and becomes arrived exactly once when it is checked back in.
const (
	HistoricStatusDeparted HistoricStatus = "departed"
	HistoricStatusArrived  HistoricStatus = "arrived"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s HistoricStatus) IsValid() bool {
	return s == HistoricStatusDeparted || s == HistoricStatusArrived
}

// Historic validation errors.
var (
	ErrEmptyHistoricID    = errors.New("historic ID cannot be empty")
	ErrEmptyLicensePlate  = errors.New("license plate cannot be empty")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrInvalidStatus      = errors.New("invalid historic status")
	ErrEmptyHistoricOwner = errors.New("historic owner cannot be empty")
)

// Coordinate is a single GPS sample belonging to one historic.
// The timestamp is a client-supplied epoch value, stored as-is.
type Coordinate struct {
	ID        uuid.UUID `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp int64     `json:"timestamp"`
}

// NewCoordinate creates a Coordinate with a fresh ID.
func NewCoordinate(latitude, longitude float64, timestamp int64) Coordinate {
	return Coordinate{
		ID:        uuid.New(),
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: timestamp,
	}
}

// Historic is a vehicle-usage session record spanning check-out to check-in,
// together with its ordered GPS coordinate trail. Coords are append-only:
// samples are added at creation and at check-in, never edited or removed.
type Historic struct {
	ID           uuid.UUID      `json:"id"`
	LicensePlate string         `json:"license_plate"`
	Description  string         `json:"description"`
	Status       HistoricStatus `json:"status"`
	UserID       uuid.UUID      `json:"user_id"`
	Coords       []Coordinate   `json:"coords"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewHistoric creates a Historic in status departed owned by the given user,
// with its initial (possibly empty) coordinate trail.
func NewHistoric(userID uuid.UUID, licensePlate, description string, coords []Coordinate) (*Historic, error) {
	now := time.Now().UTC()
	historic := &Historic{
		ID:           uuid.New(),
		LicensePlate: licensePlate,
		Description:  description,
		Status:       HistoricStatusDeparted,
		UserID:       userID,
		Coords:       coords,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := historic.Validate(); err != nil {
		return nil, err
	}

	return historic, nil
}

// Validate checks if the Historic has valid data.
func (h *Historic) Validate() error {
	if h.ID == uuid.Nil {
		return ErrEmptyHistoricID
	}
	if strings.TrimSpace(h.LicensePlate) == "" {
		return ErrEmptyLicensePlate
	}
	if strings.TrimSpace(h.Description) == "" {
		return ErrEmptyDescription
	}
	if !h.Status.IsValid() {
		return ErrInvalidStatus
	}
	if h.UserID == uuid.Nil {
		return ErrEmptyHistoricOwner
	}
	return nil
}
