package middleware

import (
	"strings"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/delivery/http/response"
	"contacts/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		username := claims.Username()
		if username == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Subject missing from token")
		}

		// Set the subject on both contexts so handlers and services can use it.
		c.Set(string(deliverycontext.KeyUsername), username)
		ctx := deliverycontext.WithUsername(c.Request().Context(), username)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
