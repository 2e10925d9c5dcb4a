package usecase

import (
	"context"
	"time"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactInput defines the data required to create or update a contact.
type ContactInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Category    string
	Subcategory string
	BirthDate   time.Time
	City        string
	Country     string
	UserID      uuid.UUID
}

// UpdateContactInput carries the body ID alongside the new field values so the
// service can reject a body/path mismatch.
type UpdateContactInput struct {
	ID uuid.UUID
	ContactInput
}

// ContactUsecase defines the interface for contact CRUD operations.
type ContactUsecase interface {
	List(ctx context.Context) ([]*entity.Contact, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	Create(ctx context.Context, input *ContactInput) (*entity.Contact, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateContactInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}
