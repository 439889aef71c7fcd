package mocks

import (
	"context"

	"github.com/google/uuid"

	"fleet-api/internal/domain"
	"fleet-api/internal/store"
)

// MockHistoricStore implements store.HistoricStore for testing
type MockHistoricStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, historic *domain.Historic) error
	ListFn             func(ctx context.Context, filter store.HistoricFilter) ([]domain.Historic, error)
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Historic, error)
	UpdateFn           func(ctx context.Context, historic *domain.Historic, newCoords []domain.Coordinate) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error
	GetActiveForUserFn func(ctx context.Context, userID uuid.UUID) (*domain.Historic, error)

	// Data for the default in-memory implementation
	Historics map[uuid.UUID]*domain.Historic
}

// NewMockHistoricStore creates a new mock store with initialized defaults
func NewMockHistoricStore() *MockHistoricStore {
	return &MockHistoricStore{
		Historics: make(map[uuid.UUID]*domain.Historic),
	}
}

// Create implements the store.HistoricStore interface
func (m *MockHistoricStore) Create(ctx context.Context, historic *domain.Historic) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, historic)
	}

	for _, h := range m.Historics {
		if h.LicensePlate == historic.LicensePlate && h.Status == domain.HistoricStatusDeparted {
			return store.ErrPlateInUse
		}
	}

	m.Historics[historic.ID] = historic
	return nil
}

// List implements the store.HistoricStore interface
func (m *MockHistoricStore) List(
	ctx context.Context,
	filter store.HistoricFilter,
) ([]domain.Historic, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	historics := make([]domain.Historic, 0, len(m.Historics))
	for _, h := range m.Historics {
		if h.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && h.Status != *filter.Status {
			continue
		}
		historics = append(historics, *h)
	}
	return historics, nil
}

// GetByID implements the store.HistoricStore interface
func (m *MockHistoricStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Historic, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if h, exists := m.Historics[id]; exists {
		return h, nil
	}
	return nil, store.ErrHistoricNotFound
}

// Update implements the store.HistoricStore interface
func (m *MockHistoricStore) Update(
	ctx context.Context,
	historic *domain.Historic,
	newCoords []domain.Coordinate,
) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, historic, newCoords)
	}

	existing, exists := m.Historics[historic.ID]
	if !exists {
		return store.ErrHistoricNotFound
	}
	existing.LicensePlate = historic.LicensePlate
	existing.Description = historic.Description
	existing.Status = historic.Status
	existing.Coords = append(existing.Coords, newCoords...)
	return nil
}

// Delete implements the store.HistoricStore interface
func (m *MockHistoricStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Historics[id]; !exists {
		return store.ErrHistoricNotFound
	}
	delete(m.Historics, id)
	return nil
}

// GetActiveForUser implements the store.HistoricStore interface
func (m *MockHistoricStore) GetActiveForUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Historic, error) {
	if m.GetActiveForUserFn != nil {
		return m.GetActiveForUserFn(ctx, userID)
	}

	for _, h := range m.Historics {
		if h.UserID == userID && h.Status == domain.HistoricStatusDeparted {
			return h, nil
		}
	}
	return nil, store.ErrHistoricNotFound
}
