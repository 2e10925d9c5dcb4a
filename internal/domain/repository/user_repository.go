// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"contacts/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for account persistence.
// Callers pass usernames already normalized to lowercase.
type UserRepository interface {
	// FindByUsername retrieves a single user by their normalized username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// UsernameExists reports whether an account with the normalized username exists.
	// This is an early exit only; the unique index on the username column is the
	// correctness backstop for concurrent registrations.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error
}
