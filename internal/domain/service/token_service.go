package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the payload carried by a bearer token. It is transient:
// created at login, never stored server-side, valid only until it expires
// or its signature fails to verify.
type Claims struct {
	jwt.RegisteredClaims
}

// Username returns the account the token was issued for.
func (c *Claims) Username() string {
	return c.Subject
}

// TokenService defines the interface for issuing and validating signed bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed, time-bounded token carrying the username as subject.
	Issue(username string) (string, error)

	// Validate checks signature integrity, issuer, audience and expiry of a
	// presented token and returns its claims.
	Validate(tokenString string) (*Claims, error)
}
