package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	subject string
	err     error
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	if token != "good" {
		return nil, errors.New("bad signature")
	}
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: f.subject},
		CustomClaims:     &CustomClaims{Email: "a@example.com", Name: "A"},
	}, nil
}

type fakeUsers struct {
	ids map[string]uuid.UUID
	err error
}

func (f *fakeUsers) GetUserIDByAuth0ID(ctx context.Context, auth0ID string) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	if id, ok := f.ids[auth0ID]; ok {
		return id, nil
	}
	return uuid.Nil, websocket.ErrUserNotFound
}

func runAuth(t *testing.T, m *AuthMiddleware, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workspaces", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, m.Authenticate()(next)(e.NewContext(req, rec)))
	return rec
}

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestAuthenticate_RejectsBadHeaders(t *testing.T) {
	m := NewAuthMiddlewareWithValidator(&fakeValidator{subject: "auth0|1"}, nil)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"no bearer prefix", "invalid-token"},
		{"wrong prefix", "Basic token123"},
		{"invalid token", "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runAuth(t, m, tt.header, ok)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body problemDetails
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, errorTypeUnauthorized, body.Type)
			assert.Equal(t, "/api/v1/workspaces", body.Instance)
		})
	}
}

func TestAuthenticate_StoresClaimsAndUser(t *testing.T) {
	userID := uuid.New()
	m := NewAuthMiddlewareWithValidator(&fakeValidator{subject: "auth0|1"}, &fakeUsers{ids: map[string]uuid.UUID{"auth0|1": userID}})

	rec := runAuth(t, m, "Bearer good", func(c echo.Context) error {
		assert.Equal(t, "auth0|1", GetAuth0ID(c))
		assert.Equal(t, userID, GetUserID(c))
		require.NotNil(t, GetClaims(c))
		custom := GetCustomClaims(c)
		require.NotNil(t, custom)
		assert.Equal(t, "a@example.com", custom.Email)
		return ok(c)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_UnregisteredSubjectPassesWithoutUser(t *testing.T) {
	m := NewAuthMiddlewareWithValidator(&fakeValidator{subject: "auth0|new"}, &fakeUsers{})

	rec := runAuth(t, m, "Bearer good", func(c echo.Context) error {
		assert.Equal(t, uuid.Nil, GetUserID(c))
		return RequireUser()(ok)(c)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_LookupFailure(t *testing.T) {
	m := NewAuthMiddlewareWithValidator(&fakeValidator{subject: "auth0|1"}, &fakeUsers{err: errors.New("db down")})

	rec := runAuth(t, m, "Bearer good", ok)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContextGetters_Empty(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Empty(t, GetAuth0ID(c))
	assert.Equal(t, uuid.Nil, GetUserID(c))
	assert.Nil(t, GetClaims(c))
	assert.Nil(t, GetCustomClaims(c))
	assert.Nil(t, GetWorkspace(c))
	assert.Equal(t, uuid.Nil, GetWorkspaceID(c))
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := CustomClaims{Email: "test@example.com"}
	assert.NoError(t, claims.Validate(context.Background()))
}
