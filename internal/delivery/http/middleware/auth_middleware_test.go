package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/service"
	mockSvc "contacts/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	c, rec := newAuthTestContext("")

	nextCalled := false
	err := m.Authenticate(func(c echo.Context) error {
		nextCalled = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	c, rec := newAuthTestContext("Basic dXNlcjpwYXNz")

	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	tokenSvc.EXPECT().Validate("bad.token").Return(nil, errors.New("invalid token"))

	c, rec := newAuthTestContext("Bearer bad.token")

	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	}
	tokenSvc.EXPECT().Validate("good.token").Return(claims, nil)

	c, _ := newAuthTestContext("Bearer good.token")

	nextCalled := false
	err := m.Authenticate(func(c echo.Context) error {
		nextCalled = true

		// The subject is available on both the echo and the request context.
		assert.Equal(t, "alice", c.Get(string(deliverycontext.KeyUsername)))
		assert.Equal(t, "alice", deliverycontext.GetUsername(c.Request().Context()))

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, nextCalled)
}
