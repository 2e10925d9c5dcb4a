// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account that can log in and own contacts.
// The username is case-normalized to lowercase before storage and comparison.
type User struct {
	ID           uuid.UUID // The unique identifier for the account, assigned on creation.
	Username     string    // Lowercased login name, unique across all accounts.
	PasswordHash []byte    // Keyed HMAC-SHA512 digest of the plaintext password.
	PasswordSalt []byte    // Per-account random HMAC key; generated fresh at registration, never reused.
	CreatedAt    time.Time // Timestamp of when this account was created.
}
