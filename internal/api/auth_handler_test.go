package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-api/internal/api/shared"
	"fleet-api/internal/domain"
	"fleet-api/internal/mocks"
	"fleet-api/internal/service/auth"
	"fleet-api/internal/store"
)

func storedUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Alice Driver", email, "password123")
	require.NoError(t, err)
	user.HashedPassword = "hashed:password123"
	user.Password = ""
	return user
}

func postJSON(t *testing.T, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withIdentity(r *http.Request, claims *auth.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), shared.IdentityContextKey, claims)
	return r.WithContext(ctx)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	user := storedUser(t, "alice@example.com")

	tests := []struct {
		name          string
		payload       map[string]any
		verifierOK    bool
		wantStatus    int
		wantToken     bool
		wantSameError bool
	}{
		{
			name: "valid credentials",
			payload: map[string]any{
				"email":    "alice@example.com",
				"password": "password123",
			},
			verifierOK: true,
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name: "unknown email",
			payload: map[string]any{
				"email":    "nobody@example.com",
				"password": "password123",
			},
			verifierOK:    true,
			wantStatus:    http.StatusBadRequest,
			wantSameError: true,
		},
		{
			name: "wrong password",
			payload: map[string]any{
				"email":    "alice@example.com",
				"password": "wrong-password",
			},
			verifierOK:    false,
			wantStatus:    http.StatusBadRequest,
			wantSameError: true,
		},
		{
			name: "malformed email",
			payload: map[string]any{
				"email":    "not-an-email",
				"password": "password123",
			},
			verifierOK: true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			payload: map[string]any{
				"email": "alice@example.com",
			},
			verifierOK: true,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userStore := mocks.NewMockUserStore()
			userStore.Users[user.Email] = user
			jwtService := &mocks.MockJWTService{Token: "signed-token"}
			verifier := &mocks.MockPasswordVerifier{ShouldSucceed: tt.verifierOK}

			handler := NewAuthHandler(userStore, jwtService, verifier)

			rec := httptest.NewRecorder()
			handler.Login(rec, postJSON(t, "/api/v1/auth/login", tt.payload))

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantToken {
				var resp TokenResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "signed-token", resp.Token)
			}

			if tt.wantSameError {
				var resp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "Email or password is incorrect", resp.Error)
			}
		})
	}
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	t.Parallel()

	// The body for an unknown email must match the body for a bad password,
	// so the endpoint cannot be used to probe registered emails.
	user := storedUser(t, "alice@example.com")

	run := func(t *testing.T, email string, verifierOK bool) (int, string) {
		userStore := mocks.NewMockUserStore()
		userStore.Users[user.Email] = user
		handler := NewAuthHandler(
			userStore,
			&mocks.MockJWTService{Token: "signed-token"},
			&mocks.MockPasswordVerifier{ShouldSucceed: verifierOK},
		)

		rec := httptest.NewRecorder()
		handler.Login(rec, postJSON(t, "/api/v1/auth/login", map[string]any{
			"email":    email,
			"password": "guess",
		}))

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return rec.Code, resp.Error
	}

	unknownStatus, unknownBody := run(t, "nobody@example.com", true)
	wrongStatus, wrongBody := run(t, "alice@example.com", false)

	assert.Equal(t, unknownStatus, wrongStatus)
	assert.Equal(t, unknownBody, wrongBody)
}

func TestLogin_StoreFailure(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	userStore.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, errors.New("connection reset")
	}
	handler := NewAuthHandler(
		userStore,
		&mocks.MockJWTService{Token: "signed-token"},
		&mocks.MockPasswordVerifier{ShouldSucceed: true},
	)

	rec := httptest.NewRecorder()
	handler.Login(rec, postJSON(t, "/api/v1/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "password123",
	}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestMe(t *testing.T) {
	t.Parallel()

	t.Run("returns the re-fetched user", func(t *testing.T) {
		t.Parallel()

		user := storedUser(t, "alice@example.com")
		user.Photo = "https://cdn.example.com/alice.png"
		userStore := mocks.NewMockUserStore()
		userStore.Users[user.Email] = user

		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req = withIdentity(req, &auth.Claims{UserID: user.ID, Name: user.Name, Email: user.Email})

		rec := httptest.NewRecorder()
		handler.Me(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp MeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, user.Name, resp.Name)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, user.Photo, resp.Photo)
	})

	t.Run("token outliving its user", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(mocks.NewMockUserStore(), &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req = withIdentity(req, &auth.Claims{UserID: uuid.New()})

		rec := httptest.NewRecorder()
		handler.Me(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "User not found", resp.Error)
	})

	t.Run("missing identity", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(mocks.NewMockUserStore(), &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		rec := httptest.NewRecorder()
		handler.Me(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

// Guard against regressions in the error mapping the login flow relies on.
func TestLoginErrorsNeverLeakStoreSentinels(t *testing.T) {
	t.Parallel()

	msg := GetSafeErrorMessage(auth.ErrInvalidCredentials)
	assert.Equal(t, "Email or password is incorrect", msg)
	assert.NotContains(t, msg, store.ErrUserNotFound.Error())
}
