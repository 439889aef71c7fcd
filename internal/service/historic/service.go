// Package historic implements the vehicle check-out/check-in workflow on top
// of the historic store: the one-active-checkout-per-plate rule and the
// single departed -> arrived transition.
package historic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"fleet-api/internal/domain"
	"fleet-api/internal/store"
)

// Pagination bounds for List.
const (
	defaultTake = 10
	maxTake     = 100
)

// Service errors.
var (
	// ErrAlreadyCheckedIn is returned when a check-in targets a historic that
	// has already arrived. A historic transitions to arrived exactly once.
	ErrAlreadyCheckedIn = errors.New("vehicle already checked in")
)

// Service wraps the business rules of the historic workflow.
type Service struct {
	historicStore store.HistoricStore
	logger        *slog.Logger
}

// NewService constructs a historic Service.
func NewService(historicStore store.HistoricStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		historicStore: historicStore,
		logger:        logger.With(slog.String("component", "historic_service")),
	}
}

// Create checks out a vehicle: a new historic in status departed owned by
// userID, with its initial coordinate trail. Returns store.ErrPlateInUse when
// a departed historic already exists for the plate.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	licensePlate, description string,
	coords []domain.Coordinate,
) (*domain.Historic, error) {
	historic, err := domain.NewHistoric(userID, licensePlate, description, coords)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.historicStore.Create(ctx, historic); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle checked out",
		slog.String("historic_id", historic.ID.String()),
		slog.String("license_plate", historic.LicensePlate),
		slog.String("user_id", userID.String()))
	return historic, nil
}

// List returns the caller's historics, optionally filtered by status.
// Skip/take are normalized: negative skip becomes 0, a missing or
// non-positive take falls back to the default, and take is capped.
func (s *Service) List(ctx context.Context, filter store.HistoricFilter) ([]domain.Historic, error) {
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Take <= 0 {
		filter.Take = defaultTake
	}
	if filter.Take > maxTake {
		filter.Take = maxTake
	}
	return s.historicStore.List(ctx, filter)
}

// Get retrieves one historic with its coordinate trail.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Historic, error) {
	return s.historicStore.GetByID(ctx, id)
}

// Update overwrites the license plate and description of an existing historic,
// marks it arrived, and appends the given coordinates to its trail.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	licensePlate, description string,
	coords []domain.Coordinate,
) error {
	historic, err := s.historicStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	historic.LicensePlate = licensePlate
	historic.Description = description
	if historic.Status == domain.HistoricStatusDeparted {
		if err := s.transition(ctx, historic); err != nil {
			return err
		}
	}

	if err := historic.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	return s.historicStore.Update(ctx, historic, coords)
}

// CheckIn transitions a departed historic to arrived and appends the final
// coordinate samples. Plate, description and owner are untouched. Returns
// ErrAlreadyCheckedIn when the historic has already arrived.
func (s *Service) CheckIn(ctx context.Context, id uuid.UUID, coords []domain.Coordinate) error {
	historic, err := s.historicStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.transition(ctx, historic); err != nil {
		return err
	}

	if err := s.historicStore.Update(ctx, historic, coords); err != nil {
		return err
	}

	s.logger.Info("vehicle checked in",
		slog.String("historic_id", historic.ID.String()),
		slog.String("license_plate", historic.LicensePlate))
	return nil
}

// Delete removes a historic; coordinates cascade at the store level.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.historicStore.Delete(ctx, id)
}

// GetActiveForUser returns the user's departed historic, or nil (no error)
// when the user has no vehicle in use.
func (s *Service) GetActiveForUser(ctx context.Context, userID uuid.UUID) (*domain.Historic, error) {
	historic, err := s.historicStore.GetActiveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrHistoricNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return historic, nil
}

// transition runs the lifecycle state machine for the check-in event and
// writes the resulting status back onto the historic.
func (s *Service) transition(ctx context.Context, historic *domain.Historic) error {
	machine := newLifecycle(historic.Status)
	if err := machine.Event(ctx, eventCheckIn); err != nil {
		s.logger.Debug("rejected lifecycle transition",
			slog.String("historic_id", historic.ID.String()),
			slog.String("status", string(historic.Status)),
			slog.String("error", err.Error()))
		return ErrAlreadyCheckedIn
	}
	historic.Status = domain.HistoricStatus(machine.Current())
	return nil
}
