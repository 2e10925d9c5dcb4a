package postgres

import (
	"context"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/errors"
	"contacts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// contactRepository implements the domain's ContactRepository interface.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

// FindByID retrieves a single contact by its primary key.
func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contactModel model.ContactModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&contactModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, dbError("find contact by id", err)
	}

	return toContactEntity(&contactModel), nil
}

// FindAll retrieves all contacts ordered by creation time.
func (r *contactRepository) FindAll(ctx context.Context) ([]*entity.Contact, error) {
	var contactModels []model.ContactModel
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&contactModels).Error
	if err != nil {
		return nil, dbError("list contacts", err)
	}

	contacts := make([]*entity.Contact, 0, len(contactModels))
	for i := range contactModels {
		contacts = append(contacts, toContactEntity(&contactModels[i]))
	}

	return contacts, nil
}

// Create persists a new contact. The unique index on email is the concurrency
// backstop for the pre-check done in the use case layer.
func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	contactModel := toContactModel(contact)
	if err := r.db.WithContext(ctx).Create(contactModel).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken
		}

		return dbError("create contact", err)
	}

	contact.ID = contactModel.ID
	contact.CreatedAt = contactModel.CreatedAt
	contact.UpdatedAt = contactModel.UpdatedAt

	return nil
}

// Update persists every column of an existing contact.
func (r *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	contactModel := toContactModel(contact)
	result := r.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("id = ?", contact.ID).
		Updates(map[string]any{
			"first_name":  contactModel.FirstName,
			"last_name":   contactModel.LastName,
			"email":       contactModel.Email,
			"phone":       contactModel.Phone,
			"category":    contactModel.Category,
			"subcategory": contactModel.Subcategory,
			"birth_date":  contactModel.BirthDate,
			"city":        contactModel.City,
			"country":     contactModel.Country,
			"user_id":     contactModel.UserID,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrEmailTaken
		}

		return dbError("update contact", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// Delete removes a contact by id.
func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ContactModel{})
	if result.Error != nil {
		return dbError("delete contact", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// EmailExists reports whether any contact already uses the given email.
func (r *contactRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, dbError("count contacts by email", err)
	}

	return count > 0, nil
}

// EmailExistsExcluding reports whether a contact other than excludeID uses the
// given email. Used on update so a contact keeping its own email passes.
func (r *contactRepository) EmailExistsExcluding(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, dbError("count contacts by email", err)
	}

	return count > 0, nil
}

func toContactEntity(m *model.ContactModel) *entity.Contact {
	return &entity.Contact{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Phone:       m.Phone,
		Category:    m.Category,
		Subcategory: m.Subcategory,
		BirthDate:   m.BirthDate,
		City:        m.City,
		Country:     m.Country,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toContactModel(e *entity.Contact) *model.ContactModel {
	return &model.ContactModel{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		Phone:       e.Phone,
		Category:    e.Category,
		Subcategory: e.Subcategory,
		BirthDate:   e.BirthDate,
		City:        e.City,
		Country:     e.Country,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
