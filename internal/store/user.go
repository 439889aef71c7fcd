package store

import (
	"context"

	"github.com/google/uuid"

	"fleet-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// List returns all users ordered by creation time.
	// Password hashes are omitted from the returned records.
	List(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address, including the
	// password hash for credential verification.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile overwrites the user's name and email; password and photo
	// are untouched. Returns ErrUserNotFound if the id is absent and
	// ErrEmailExists if the new email belongs to another user.
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) error

	// UpdatePhoto attaches a photo reference to the user's record.
	// Returns ErrUserNotFound if the id is absent.
	UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error

	// Delete removes the user record. Historics owned by the user are left in
	// place; orphaning them is the documented policy.
	// Returns ErrUserNotFound if the id is absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
