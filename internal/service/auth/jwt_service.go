package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleet-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed bearer token embedding the user's
	// identity. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken checks the provided token's signature and expiry and
	// extracts the claims. Returns ErrExpiredToken or ErrInvalidToken on
	// failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded payload of a verified bearer token: the identity of
// the authenticated user plus the registered claims we care about.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"id"`

	// Name and Email mirror the user record at issuance time; /auth/me
	// re-fetches the record so stale values are never served back.
	Name  string `json:"name"`
	Email string `json:"email"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
