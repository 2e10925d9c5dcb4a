// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// contactService implements the ContactUsecase interface.
type contactService struct {
	txManager   repository.TransactionManager
	contactRepo repository.ContactRepository
	logger      *slog.Logger
}

// ContactServiceParams holds dependencies for contactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ContactRepo repository.ContactRepository
	Logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	return &contactService{
		txManager:   params.TxManager,
		contactRepo: params.ContactRepo,
		logger:      params.Logger,
	}
}

func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List retrieves every stored contact.
func (srv *contactService) List(ctx context.Context) ([]*entity.Contact, error) {
	// Single query operation - use the repository directly.
	contactList, err := srv.contactRepo.FindAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list contacts", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contactList, nil
}

// Get retrieves a single contact by its ID.
func (srv *contactService) Get(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, err := srv.contactRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, errors.Wrap(domainerrors.ErrContactNotFound, "contact lookup failed")
		}
		srv.log(ctx).Error("Failed to get contact", slog.Any("contactID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to get contact")
	}

	return contact, nil
}

// Create persists a new contact.
func (srv *contactService) Create(ctx context.Context, input *usecase.ContactInput) (*entity.Contact, error) {
	contact := fromContactInput(input)

	if err := srv.contactRepo.Create(ctx, contact); err != nil {
		srv.log(ctx).Warn("Failed to create contact", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create contact")
	}

	srv.log(ctx).Debug("Contact created", slog.Any("contactID", contact.ID))

	return contact, nil
}

// Update modifies an existing contact. The email-uniqueness check and the
// write run in one transaction so a concurrent update cannot slip a duplicate
// email between them.
func (srv *contactService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateContactInput) error {
	if input.ID != id {
		return errors.Wrap(domainerrors.ErrIDMismatch, "update rejected")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		contactRepo := repoFactory.ContactRepo()

		existing, err := contactRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrContactNotFound) {
				return errors.Wrap(domainerrors.ErrContactNotFound, "update failed")
			}

			return errors.Wrap(err, "failed to load contact for update")
		}

		emailUsed, err := contactRepo.EmailExistsExcluding(ctx, input.Email, id)
		if err != nil {
			return errors.Wrap(err, "failed to check email existence")
		}
		if emailUsed {
			return errors.Wrap(domainerrors.ErrEmailTaken, "update failed")
		}

		existing.FirstName = input.FirstName
		existing.LastName = input.LastName
		existing.Email = input.Email
		existing.Phone = input.Phone
		existing.BirthDate = input.BirthDate
		existing.Category = input.Category
		existing.Subcategory = input.Subcategory
		existing.City = input.City
		existing.Country = input.Country

		// Only reassign ownership when the caller provided an owner.
		if input.UserID != uuid.Nil {
			existing.UserID = input.UserID
		}

		return contactRepo.Update(ctx, existing)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update contact", slog.Any("contactID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute contact update transaction")
	}

	srv.log(ctx).Debug("Contact updated", slog.Any("contactID", id))

	return nil
}

// Delete removes a contact by its ID.
func (srv *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.contactRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return errors.Wrap(domainerrors.ErrContactNotFound, "delete failed")
		}
		srv.log(ctx).Error("Failed to delete contact", slog.Any("contactID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete contact")
	}

	srv.log(ctx).Debug("Contact deleted", slog.Any("contactID", id))

	return nil
}

func fromContactInput(input *usecase.ContactInput) *entity.Contact {
	return &entity.Contact{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		BirthDate:   input.BirthDate,
		City:        input.City,
		Country:     input.Country,
		UserID:      input.UserID,
	}
}
