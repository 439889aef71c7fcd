package store

import (
	"context"

	"github.com/google/uuid"

	"fleet-api/internal/domain"
)

// HistoricFilter narrows List results. Skip/Take paginate; Status, when
// non-nil, restricts to a single lifecycle state.
type HistoricFilter struct {
	UserID uuid.UUID
	Status *domain.HistoricStatus
	Skip   int
	Take   int
}

// HistoricStore defines the interface for vehicle-usage record persistence.
type HistoricStore interface {
	// Create saves a new historic together with its initial coordinate trail
	// in one transaction. Returns ErrPlateInUse if a departed historic with
	// the same license plate already exists.
	Create(ctx context.Context, historic *domain.Historic) error

	// List returns the historics matching the filter, coordinate trails
	// included, in insertion order.
	List(ctx context.Context, filter HistoricFilter) ([]domain.Historic, error)

	// GetByID retrieves a historic with its coordinate trail.
	// Returns ErrHistoricNotFound if the id is absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Historic, error)

	// Update overwrites the license plate, description and status of an
	// existing historic and appends the given coordinates to its trail.
	// Prior coordinates are never replaced.
	// Returns ErrHistoricNotFound if the id is absent.
	Update(ctx context.Context, historic *domain.Historic, newCoords []domain.Coordinate) error

	// Delete removes the historic; its coordinates cascade at the schema
	// level. Returns ErrHistoricNotFound if the id is absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetActiveForUser returns the departed historic owned by the user.
	// Returns ErrHistoricNotFound when the user has no vehicle in use; the
	// service layer translates that into a null response, not an error.
	GetActiveForUser(ctx context.Context, userID uuid.UUID) (*domain.Historic, error)
}
