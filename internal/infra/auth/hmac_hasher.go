// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"strings"
	"unicode"

	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/service"

	"github.com/pkg/errors"
)

// saltSize is the native HMAC-SHA512 key size. Every account gets a fresh
// random key of this length as its salt.
const saltSize = sha512.BlockSize

// specialChars is the set accepted by the complexity policy.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// minPasswordLength is the floor enforced by ValidateStrength.
const minPasswordLength = 8

// hmacHasher is a concrete implementation of the PasswordHasher interface
// using HMAC-SHA512 keyed with a per-account random salt.
type hmacHasher struct{}

// NewHMACHasher is the constructor for hmacHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewHMACHasher() service.PasswordHasher {
	return &hmacHasher{}
}

// Hash generates a fresh random salt and the HMAC-SHA512 digest of the
// password keyed with that salt. The same password hashed for two accounts
// yields unequal digests because the salts differ.
func (h *hmacHasher) Hash(password string) ([]byte, []byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate password salt")
	}

	return h.compute(password, salt), salt, nil
}

// Verify recomputes the digest with the stored salt and compares it with the
// expected digest. hmac.Equal compares in constant time, so the comparison
// does not leak the position of the first mismatching byte.
func (h *hmacHasher) Verify(password string, salt []byte, digest []byte) bool {
	return hmac.Equal(h.compute(password, salt), digest)
}

func (h *hmacHasher) compute(password string, salt []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))

	return mac.Sum(nil)
}

// ValidateStrength checks the password against the complexity policy:
// at least 8 characters, one uppercase letter, one digit and one special
// character.
func (h *hmacHasher) ValidateStrength(password string) error {
	if len(password) < minPasswordLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must be at least 8 characters long")
	}
	if !containsFunc(password, unicode.IsUpper) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one uppercase letter")
	}
	if !containsFunc(password, unicode.IsDigit) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one number")
	}
	if !strings.ContainsAny(password, specialChars) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one special character")
	}

	return nil
}

func containsFunc(s string, fn func(rune) bool) bool {
	return strings.IndexFunc(s, fn) >= 0
}
