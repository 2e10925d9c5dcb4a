// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Default values applied to a registration-seeded contact when the caller
// leaves the optional fields empty.
const (
	DefaultCategory    = "Default"
	DefaultSubcategory = "Default"
	DefaultCity        = "DefaultCity"
	DefaultCountry     = "DefaultCountry"
)

// Contact represents a single address-book entry belonging to a user.
type Contact struct {
	ID          uuid.UUID // The unique identifier for the contact.
	FirstName   string    // First name of the contact.
	LastName    string    // Last name of the contact.
	Email       string    // Email address, unique across all contacts.
	Phone       string    // Optional phone number.
	Category    string    // Category of the contact (e.g. business, private).
	Subcategory string    // Optional finer-grained classification.
	BirthDate   time.Time // Birth date of the contact.
	City        string    // Optional city where the contact lives.
	Country     string    // Optional country where the contact lives.
	UserID      uuid.UUID // The account this contact belongs to.
	CreatedAt   time.Time // Timestamp of when this contact was created.
	UpdatedAt   time.Time // Timestamp of the last modification.
}
