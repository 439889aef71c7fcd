package mocks

import (
	"context"

	"github.com/google/uuid"

	"fleet-api/internal/domain"
	"fleet-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	ListFn          func(ctx context.Context) ([]domain.User, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	UpdateProfileFn func(ctx context.Context, id uuid.UUID, name, email string) error
	UpdatePhotoFn   func(ctx context.Context, id uuid.UUID, photo string) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error

	// Data for the default in-memory implementation, keyed by email
	Users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	m.Users[user.Email] = user
	return nil
}

// List implements the store.UserStore interface
func (m *MockUserStore) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	users := make([]domain.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, *u)
	}
	return users, nil
}

// GetByID implements the store.UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the store.UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	if u, exists := m.Users[email]; exists {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

// UpdateProfile implements the store.UserStore interface
func (m *MockUserStore) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) error {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, id, name, email)
	}

	for oldEmail, u := range m.Users {
		if u.ID == id {
			u.Name = name
			u.Email = email
			delete(m.Users, oldEmail)
			m.Users[email] = u
			return nil
		}
	}
	return store.ErrUserNotFound
}

// UpdatePhoto implements the store.UserStore interface
func (m *MockUserStore) UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error {
	if m.UpdatePhotoFn != nil {
		return m.UpdatePhotoFn(ctx, id, photo)
	}

	for _, u := range m.Users {
		if u.ID == id {
			u.Photo = photo
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Delete implements the store.UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for email, u := range m.Users {
		if u.ID == id {
			delete(m.Users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}
