// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"contacts/config"
	"contacts/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// tokenTTL is the lifetime of an issued bearer token.
const tokenTTL = time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	key      []byte        // Symmetric signing key shared by issuance and validation.
	issuer   string        // Stamped into and required from every token.
	audience string        // Stamped into and required from every token.
	ttl      time.Duration // Time-to-live for issued tokens.
}

// NewJWTService is the constructor for jwtService. The signing key, issuer and
// audience are process-wide configuration; any of them missing is a startup
// error, not a per-request condition.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Key == "" || cfg.JWT.Issuer == "" || cfg.JWT.Audience == "" {
		return nil, errors.New("jwt key, issuer and audience must be provided")
	}

	return &jwtService{
		key:      []byte(cfg.JWT.Key),
		issuer:   cfg.JWT.Issuer,
		audience: cfg.JWT.Audience,
		ttl:      tokenTTL,
	}, nil
}

// Issue creates a signed HS256 token carrying the username as subject and a
// fresh unique token identifier.
func (s *jwtService) Issue(username string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks signature integrity, issuer, audience and expiry of the
// presented token and returns its claims. Any failure rejects the token as a
// whole; there is no partially authenticated state.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.key, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
