package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"fleet-api/internal/domain"
	"fleet-api/internal/platform/logger"
	"fleet-api/internal/store"
)

// PostgresHistoricStore implements the store.HistoricStore interface
// using a PostgreSQL database as the storage backend.
type PostgresHistoricStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresHistoricStore creates a new PostgreSQL implementation of the
// HistoricStore interface. The database connection is initialized and managed
// by the caller. If logger is nil, the default logger is used.
func NewPostgresHistoricStore(db *sql.DB, logger *slog.Logger) *PostgresHistoricStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHistoricStore{
		db:     db,
		logger: logger.With(slog.String("component", "historic_store")),
	}
}

var _ store.HistoricStore = (*PostgresHistoricStore)(nil)

// Create implements store.HistoricStore.Create.
// The historic row and its initial coordinate trail are written in one
// transaction. A pre-check yields the friendly plate-in-use error; the
// partial unique index on departed plates catches the concurrent case the
// pre-check cannot see.
func (s *PostgresHistoricStore) Create(ctx context.Context, historic *domain.Historic) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := historic.Validate(); err != nil {
		log.Warn("historic validation failed during create",
			slog.String("error", err.Error()),
			slog.String("historic_id", historic.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var inUse bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM historics WHERE license_plate = $1 AND status = $2
			)`,
			historic.LicensePlate, domain.HistoricStatusDeparted,
		).Scan(&inUse)
		if err != nil {
			return err
		}
		if inUse {
			return store.ErrPlateInUse
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO historics (id, license_plate, description, status, user_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			historic.ID,
			historic.LicensePlate,
			historic.Description,
			historic.Status,
			historic.UserID,
			historic.CreatedAt,
			historic.UpdatedAt,
		)
		if err != nil {
			return err
		}

		return insertCoords(ctx, tx, historic.ID, 0, historic.Coords)
	})
	if err != nil {
		if errors.Is(err, store.ErrPlateInUse) || isUniqueViolation(err) {
			log.Warn("license plate already in use",
				slog.String("license_plate", historic.LicensePlate))
			return store.ErrPlateInUse
		}
		log.Error("failed to create historic",
			slog.String("error", err.Error()),
			slog.String("historic_id", historic.ID.String()))
		return err
	}

	log.Info("historic created",
		slog.String("historic_id", historic.ID.String()),
		slog.String("user_id", historic.UserID.String()))
	return nil
}

// List implements store.HistoricStore.List.
func (s *PostgresHistoricStore) List(ctx context.Context, filter store.HistoricFilter) ([]domain.Historic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, license_plate, description, status, user_id, created_at, updated_at
		FROM historics
		WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at
		OFFSET $3 LIMIT $4
	`
	var status *string
	if filter.Status != nil {
		v := string(*filter.Status)
		status = &v
	}

	rows, err := s.db.QueryContext(ctx, query, filter.UserID, status, filter.Skip, filter.Take)
	if err != nil {
		log.Error("failed to list historics", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	historics := []domain.Historic{}
	for rows.Next() {
		var h domain.Historic
		if err := rows.Scan(
			&h.ID,
			&h.LicensePlate,
			&h.Description,
			&h.Status,
			&h.UserID,
			&h.CreatedAt,
			&h.UpdatedAt,
		); err != nil {
			return nil, err
		}
		historics = append(historics, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range historics {
		coords, err := loadCoords(ctx, s.db, historics[i].ID)
		if err != nil {
			return nil, err
		}
		historics[i].Coords = coords
	}

	return historics, nil
}

// GetByID implements store.HistoricStore.GetByID.
func (s *PostgresHistoricStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Historic, error) {
	query := `
		SELECT id, license_plate, description, status, user_id, created_at, updated_at
		FROM historics
		WHERE id = $1
	`
	return s.scanHistoric(ctx, query, id)
}

// GetActiveForUser implements store.HistoricStore.GetActiveForUser.
func (s *PostgresHistoricStore) GetActiveForUser(ctx context.Context, userID uuid.UUID) (*domain.Historic, error) {
	query := `
		SELECT id, license_plate, description, status, user_id, created_at, updated_at
		FROM historics
		WHERE user_id = $1 AND status = 'departed'
		LIMIT 1
	`
	return s.scanHistoric(ctx, query, userID)
}

// Update implements store.HistoricStore.Update.
// Existing coordinates stay untouched; newCoords are appended after them.
func (s *PostgresHistoricStore) Update(
	ctx context.Context,
	historic *domain.Historic,
	newCoords []domain.Coordinate,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE historics
			 SET license_plate = $2, description = $3, status = $4, updated_at = NOW()
			 WHERE id = $1`,
			historic.ID,
			historic.LicensePlate,
			historic.Description,
			historic.Status,
		)
		if err != nil {
			return err
		}
		if err := checkAffected(result, store.ErrHistoricNotFound); err != nil {
			return err
		}

		var next int
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM coordinates WHERE historic_id = $1`,
			historic.ID,
		).Scan(&next)
		if err != nil {
			return err
		}

		return insertCoords(ctx, tx, historic.ID, next, newCoords)
	})
	if err != nil {
		if errors.Is(err, store.ErrHistoricNotFound) {
			return err
		}
		log.Error("failed to update historic",
			slog.String("error", err.Error()),
			slog.String("historic_id", historic.ID.String()))
		return err
	}

	return nil
}

// Delete implements store.HistoricStore.Delete.
// Coordinates cascade through the foreign key.
func (s *PostgresHistoricStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM historics WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete historic",
			slog.String("error", err.Error()),
			slog.String("historic_id", id.String()))
		return err
	}

	if err := checkAffected(result, store.ErrHistoricNotFound); err != nil {
		return err
	}

	log.Info("historic deleted", slog.String("historic_id", id.String()))
	return nil
}

func (s *PostgresHistoricStore) scanHistoric(ctx context.Context, query string, arg any) (*domain.Historic, error) {
	var h domain.Historic
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&h.ID,
		&h.LicensePlate,
		&h.Description,
		&h.Status,
		&h.UserID,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrHistoricNotFound
		}
		return nil, err
	}

	coords, err := loadCoords(ctx, s.db, h.ID)
	if err != nil {
		return nil, err
	}
	h.Coords = coords

	return &h, nil
}

// loadCoords returns a historic's coordinate trail in insertion order.
func loadCoords(ctx context.Context, db store.DBTX, historicID uuid.UUID) ([]domain.Coordinate, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, latitude, longitude, timestamp
		 FROM coordinates
		 WHERE historic_id = $1
		 ORDER BY position`,
		historicID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	coords := []domain.Coordinate{}
	for rows.Next() {
		var c domain.Coordinate
		if err := rows.Scan(&c.ID, &c.Latitude, &c.Longitude, &c.Timestamp); err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, rows.Err()
}

// insertCoords appends coordinates starting at the given position. It takes
// a store.DBTX so it runs inside the create/update transactions as well as
// against the bare pool.
func insertCoords(ctx context.Context, db store.DBTX, historicID uuid.UUID, startPos int, coords []domain.Coordinate) error {
	for i, c := range coords {
		id := c.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := db.ExecContext(ctx,
			`INSERT INTO coordinates (id, latitude, longitude, timestamp, historic_id, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, c.Latitude, c.Longitude, c.Timestamp, historicID, startPos+i,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return store.ErrHistoricNotFound
			}
			return err
		}
	}
	return nil
}
