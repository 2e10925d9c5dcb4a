// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrContactNotFound is a domain-specific error returned when a contact is not found.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository defines the standard operations for contact persistence.
type ContactRepository interface {
	// FindByID retrieves a single contact by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)

	// FindAll retrieves every stored contact.
	FindAll(ctx context.Context) ([]*entity.Contact, error)

	// Create persists a new contact entity to the storage.
	Create(ctx context.Context, contact *entity.Contact) error

	// Update modifies an existing contact entity in the storage.
	Update(ctx context.Context, contact *entity.Contact) error

	// Delete removes a contact by its unique ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// EmailExists reports whether any contact already uses the given email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// EmailExistsExcluding reports whether any contact other than the one with
	// the given ID already uses the email.
	EmailExistsExcluding(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}
