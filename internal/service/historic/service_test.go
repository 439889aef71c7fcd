package historic

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-api/internal/domain"
	"fleet-api/internal/mocks"
	"fleet-api/internal/store"
)

func newTestService(historicStore store.HistoricStore) *Service {
	return NewService(historicStore, nil)
}

func checkedOutHistoric(t *testing.T, userID uuid.UUID) *domain.Historic {
	t.Helper()
	historic, err := domain.NewHistoric(userID, "ABC-1234", "Delivery run", []domain.Coordinate{
		domain.NewCoordinate(-23.5505, -46.6333, 1714000000),
	})
	require.NoError(t, err)
	return historic
}

func TestCreate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("checks out a vehicle in status departed", func(t *testing.T) {
		t.Parallel()

		historicStore := mocks.NewMockHistoricStore()
		service := newTestService(historicStore)

		coords := []domain.Coordinate{domain.NewCoordinate(1.0, 2.0, 100)}
		historic, err := service.Create(context.Background(), userID, "ABC-1234", "Delivery run", coords)

		require.NoError(t, err)
		assert.Equal(t, domain.HistoricStatusDeparted, historic.Status)
		assert.Equal(t, userID, historic.UserID)
		assert.Len(t, historicStore.Historics, 1)
	})

	t.Run("rejects invalid input before hitting the store", func(t *testing.T) {
		t.Parallel()

		historicStore := mocks.NewMockHistoricStore()
		service := newTestService(historicStore)

		_, err := service.Create(context.Background(), userID, "", "Delivery run", nil)

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Empty(t, historicStore.Historics)
	})

	t.Run("propagates plate-in-use from the store", func(t *testing.T) {
		t.Parallel()

		historicStore := mocks.NewMockHistoricStore()
		service := newTestService(historicStore)

		existing := checkedOutHistoric(t, uuid.New())
		historicStore.Historics[existing.ID] = existing

		_, err := service.Create(context.Background(), userID, existing.LicensePlate, "Second run", nil)
		assert.ErrorIs(t, err, store.ErrPlateInUse)
	})
}

func TestList_NormalizesPagination(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name     string
		skip     int
		take     int
		wantSkip int
		wantTake int
	}{
		{name: "defaults applied", skip: 0, take: 0, wantSkip: 0, wantTake: 10},
		{name: "negative skip clamped", skip: -5, take: 20, wantSkip: 0, wantTake: 20},
		{name: "negative take falls back", skip: 3, take: -1, wantSkip: 3, wantTake: 10},
		{name: "oversized take capped", skip: 0, take: 5000, wantSkip: 0, wantTake: 100},
		{name: "in-range values untouched", skip: 7, take: 42, wantSkip: 7, wantTake: 42},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotFilter store.HistoricFilter
			historicStore := mocks.NewMockHistoricStore()
			historicStore.ListFn = func(ctx context.Context, filter store.HistoricFilter) ([]domain.Historic, error) {
				gotFilter = filter
				return nil, nil
			}
			service := newTestService(historicStore)

			_, err := service.List(context.Background(), store.HistoricFilter{
				UserID: userID,
				Skip:   tt.skip,
				Take:   tt.take,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantSkip, gotFilter.Skip)
			assert.Equal(t, tt.wantTake, gotFilter.Take)
			assert.Equal(t, userID, gotFilter.UserID)
		})
	}
}

func TestCheckIn(t *testing.T) {
	t.Parallel()

	t.Run("transitions departed to arrived and appends coords", func(t *testing.T) {
		t.Parallel()

		historicStore := mocks.NewMockHistoricStore()
		service := newTestService(historicStore)

		historic := checkedOutHistoric(t, uuid.New())
		historicStore.Historics[historic.ID] = historic

		final := []domain.Coordinate{domain.NewCoordinate(3.0, 4.0, 200)}
		err := service.CheckIn(context.Background(), historic.ID, final)

		require.NoError(t, err)
		assert.Equal(t, domain.HistoricStatusArrived, historic.Status)
		assert.Len(t, historic.Coords, 2)
	})

	t.Run("rejects a second check-in", func(t *testing.T) {
		t.Parallel()

		historicStore := mocks.NewMockHistoricStore()
		service := newTestService(historicStore)

		historic := checkedOutHistoric(t, uuid.New())
		historic.Status = domain.HistoricStatusArrived
		historicStore.Historics[historic.ID] = historic

		err := service.CheckIn(context.Background(), historic.ID, nil)
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	})

	t.Run("unknown historic", func(t *testing.T) {
		t.Parallel()

		service := newTestService(mocks.NewMockHistoricStore())

		err := service.CheckIn(context.Background(), uuid.New(), nil)
		assert.ErrorIs(t, err, store.ErrHistoricNotFound)
	})

	t.Run("leaves status departed when the write fails", func(t *testing.T) {
		t.Parallel()

		writeErr := errors.New("connection reset")
		historic := checkedOutHistoric(t, uuid.New())

		historicStore := mocks.NewMockHistoricStore()
		historicStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Historic, error) {
			clone := *historic
			return &clone, nil
		}
		historicStore.UpdateFn = func(ctx context.Context, h *domain.Historic, coords []domain.Coordinate) error {
			return writeErr
		}
		service := newTestService(historicStore)

		err := service.CheckIn(context.Background(), historic.ID, nil)
		assert.ErrorIs(t, err, writeErr)
		assert.Equal(t, domain.HistoricStatusDeparted, historic.Status)
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("overwrites plate and description and marks arrived", func(t *testing.T) {
		t.Parallel()

		historicStore := mocks.NewMockHistoricStore()
		service := newTestService(historicStore)

		historic := checkedOutHistoric(t, uuid.New())
		historicStore.Historics[historic.ID] = historic

		coords := []domain.Coordinate{domain.NewCoordinate(5.0, 6.0, 300)}
		err := service.Update(context.Background(), historic.ID, "XYZ-9876", "Corrected route", coords)

		require.NoError(t, err)
		assert.Equal(t, "XYZ-9876", historic.LicensePlate)
		assert.Equal(t, "Corrected route", historic.Description)
		assert.Equal(t, domain.HistoricStatusArrived, historic.Status)
		assert.Len(t, historic.Coords, 2)
	})

	t.Run("arrived historic keeps its status", func(t *testing.T) {
		t.Parallel()

		historicStore := mocks.NewMockHistoricStore()
		service := newTestService(historicStore)

		historic := checkedOutHistoric(t, uuid.New())
		historic.Status = domain.HistoricStatusArrived
		historicStore.Historics[historic.ID] = historic

		err := service.Update(context.Background(), historic.ID, "XYZ-9876", "Corrected route", nil)

		require.NoError(t, err)
		assert.Equal(t, domain.HistoricStatusArrived, historic.Status)
	})

	t.Run("rejects an empty plate", func(t *testing.T) {
		t.Parallel()

		historicStore := mocks.NewMockHistoricStore()
		service := newTestService(historicStore)

		historic := checkedOutHistoric(t, uuid.New())
		historicStore.Historics[historic.ID] = historic

		err := service.Update(context.Background(), historic.ID, "", "Corrected route", nil)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("unknown historic", func(t *testing.T) {
		t.Parallel()

		service := newTestService(mocks.NewMockHistoricStore())

		err := service.Update(context.Background(), uuid.New(), "XYZ-9876", "Corrected route", nil)
		assert.ErrorIs(t, err, store.ErrHistoricNotFound)
	})
}

func TestGetActiveForUser(t *testing.T) {
	t.Parallel()

	t.Run("returns the departed historic", func(t *testing.T) {
		t.Parallel()

		historicStore := mocks.NewMockHistoricStore()
		service := newTestService(historicStore)

		userID := uuid.New()
		historic := checkedOutHistoric(t, userID)
		historicStore.Historics[historic.ID] = historic

		got, err := service.GetActiveForUser(context.Background(), userID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, historic.ID, got.ID)
	})

	t.Run("no vehicle in use yields nil without error", func(t *testing.T) {
		t.Parallel()

		service := newTestService(mocks.NewMockHistoricStore())

		got, err := service.GetActiveForUser(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("store failures still surface", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("connection reset")
		historicStore := mocks.NewMockHistoricStore()
		historicStore.GetActiveForUserFn = func(ctx context.Context, userID uuid.UUID) (*domain.Historic, error) {
			return nil, storeErr
		}
		service := newTestService(historicStore)

		_, err := service.GetActiveForUser(context.Background(), uuid.New())
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	historicStore := mocks.NewMockHistoricStore()
	service := newTestService(historicStore)

	historic := checkedOutHistoric(t, uuid.New())
	historicStore.Historics[historic.ID] = historic

	require.NoError(t, service.Delete(context.Background(), historic.ID))
	assert.Empty(t, historicStore.Historics)

	err := service.Delete(context.Background(), historic.ID)
	assert.ErrorIs(t, err, store.ErrHistoricNotFound)
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("departed allows check-in", func(t *testing.T) {
		t.Parallel()

		machine := newLifecycle(domain.HistoricStatusDeparted)
		require.NoError(t, machine.Event(context.Background(), eventCheckIn))
		assert.Equal(t, string(domain.HistoricStatusArrived), machine.Current())
	})

	t.Run("arrived is terminal", func(t *testing.T) {
		t.Parallel()

		machine := newLifecycle(domain.HistoricStatusArrived)
		assert.Error(t, machine.Event(context.Background(), eventCheckIn))
	})
}
