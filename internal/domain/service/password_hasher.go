// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for salted password hashing and verification.
// This abstracts the underlying keyed-hash construction, keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a fresh random salt and the keyed digest of the password.
	// The caller persists both values.
	Hash(password string) (digest []byte, salt []byte, err error)

	// Verify recomputes the keyed digest of password using salt as the key and
	// compares it with the expected digest in constant time.
	Verify(password string, salt []byte, digest []byte) bool

	// ValidateStrength checks a plaintext password against the complexity policy.
	ValidateStrength(password string) error
}
