package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	mockRepo "contacts/internal/mocks/repository"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// contactServiceFixtures holds all test dependencies for contact service tests.
type contactServiceFixtures struct {
	service     usecase.ContactUsecase
	txManager   *mockRepo.MockTransactionManager
	contactRepo *mockRepo.MockContactRepository
}

func createTestContactService(t *testing.T) contactServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	contactRepo := mockRepo.NewMockContactRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewContactService(ContactServiceParams{
		TxManager:   txManager,
		ContactRepo: contactRepo,
		Logger:      logger,
	})

	return contactServiceFixtures{
		service:     service,
		txManager:   txManager,
		contactRepo: contactRepo,
	}
}

func testContact(id uuid.UUID) *entity.Contact {
	return &entity.Contact{
		ID:          id,
		FirstName:   "Alice",
		LastName:    "Smith",
		Email:       "alice@example.com",
		Phone:       "555-0100",
		Category:    "Business",
		Subcategory: "Client",
		BirthDate:   time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		City:        "Warsaw",
		Country:     "Poland",
		UserID:      uuid.New(),
	}
}

func contactInput() *usecase.ContactInput {
	return &usecase.ContactInput{
		FirstName:   "Alice",
		LastName:    "Smith",
		Email:       "alice@example.com",
		Phone:       "555-0100",
		Category:    "Business",
		Subcategory: "Client",
		BirthDate:   time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		City:        "Warsaw",
		Country:     "Poland",
		UserID:      uuid.New(),
	}
}

func TestContactService_List(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	stored := []*entity.Contact{testContact(uuid.New()), testContact(uuid.New())}

	fx.contactRepo.EXPECT().FindAll(ctx).Return(stored, nil)

	contacts, err := fx.service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, stored, contacts)
}

func TestContactService_Get(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	id := uuid.New()
	stored := testContact(id)

	fx.contactRepo.EXPECT().FindByID(ctx, id).Return(stored, nil)

	contact, err := fx.service.Get(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, stored, contact)
}

func TestContactService_Get_NotFound(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.contactRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrContactNotFound)

	contact, err := fx.service.Get(ctx, id)

	require.Error(t, err)
	assert.Nil(t, contact)
	assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
}

func TestContactService_Create(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	input := contactInput()

	fx.contactRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Contact")).
		Run(func(ctx context.Context, contact *entity.Contact) {
			assert.Equal(t, input.Email, contact.Email)
			assert.Equal(t, input.UserID, contact.UserID)
			contact.ID = uuid.New()
		}).
		Return(nil)

	contact, err := fx.service.Create(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, contact)
	assert.NotEqual(t, uuid.Nil, contact.ID)
}

func TestContactService_Create_EmailTaken(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	input := contactInput()

	fx.contactRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Contact")).
		Return(domainerrors.ErrEmailTaken)

	contact, err := fx.service.Create(ctx, input)

	require.Error(t, err)
	assert.Nil(t, contact)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestContactService_Update(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	id := uuid.New()
	existing := testContact(id)
	originalUserID := existing.UserID

	input := &usecase.UpdateContactInput{
		ID: id,
		ContactInput: usecase.ContactInput{
			FirstName: "Alicia",
			LastName:  "Smith",
			Email:     "alicia@example.com",
			Phone:     "555-0101",
			Category:  "Private",
			BirthDate: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
			City:      "Krakow",
			Country:   "Poland",
		},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockContactRepo := mockRepo.NewMockContactRepository(t)

			mockFactory.EXPECT().ContactRepo().Return(mockContactRepo)

			mockContactRepo.EXPECT().FindByID(ctx, id).Return(existing, nil)
			mockContactRepo.EXPECT().EmailExistsExcluding(ctx, input.Email, id).Return(false, nil)

			mockContactRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Contact")).
				Run(func(ctx context.Context, contact *entity.Contact) {
					assert.Equal(t, id, contact.ID)
					assert.Equal(t, "Alicia", contact.FirstName)
					assert.Equal(t, "alicia@example.com", contact.Email)
					// No owner in the input leaves ownership untouched.
					assert.Equal(t, originalUserID, contact.UserID)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.Update(ctx, id, input)

	require.NoError(t, err)
}

func TestContactService_Update_IDMismatch(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	input := &usecase.UpdateContactInput{
		ID:           uuid.New(),
		ContactInput: *contactInput(),
	}

	err := fx.service.Update(ctx, uuid.New(), input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrIDMismatch))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestContactService_Update_NotFound(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	id := uuid.New()
	input := &usecase.UpdateContactInput{
		ID:           id,
		ContactInput: *contactInput(),
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockContactRepo := mockRepo.NewMockContactRepository(t)

			mockFactory.EXPECT().ContactRepo().Return(mockContactRepo)
			mockContactRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrContactNotFound)

			return fn(mockFactory)
		})

	err := fx.service.Update(ctx, id, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
}

func TestContactService_Update_EmailTakenByAnotherContact(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	id := uuid.New()
	existing := testContact(id)
	input := &usecase.UpdateContactInput{
		ID:           id,
		ContactInput: *contactInput(),
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockContactRepo := mockRepo.NewMockContactRepository(t)

			mockFactory.EXPECT().ContactRepo().Return(mockContactRepo)
			mockContactRepo.EXPECT().FindByID(ctx, id).Return(existing, nil)
			mockContactRepo.EXPECT().EmailExistsExcluding(ctx, input.Email, id).Return(true, nil)

			return fn(mockFactory)
		})

	err := fx.service.Update(ctx, id, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestContactService_Update_ReassignsOwnerWhenProvided(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	id := uuid.New()
	existing := testContact(id)
	newOwner := uuid.New()

	input := &usecase.UpdateContactInput{
		ID:           id,
		ContactInput: *contactInput(),
	}
	input.UserID = newOwner

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockContactRepo := mockRepo.NewMockContactRepository(t)

			mockFactory.EXPECT().ContactRepo().Return(mockContactRepo)
			mockContactRepo.EXPECT().FindByID(ctx, id).Return(existing, nil)
			mockContactRepo.EXPECT().EmailExistsExcluding(ctx, input.Email, id).Return(false, nil)
			mockContactRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Contact")).
				Run(func(ctx context.Context, contact *entity.Contact) {
					assert.Equal(t, newOwner, contact.UserID)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.Update(ctx, id, input)

	require.NoError(t, err)
}

func TestContactService_Delete(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.contactRepo.EXPECT().Delete(ctx, id).Return(nil)

	err := fx.service.Delete(ctx, id)

	require.NoError(t, err)
}

func TestContactService_Delete_NotFound(t *testing.T) {
	fx := createTestContactService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.contactRepo.EXPECT().Delete(ctx, id).Return(repository.ErrContactNotFound)

	err := fx.service.Delete(ctx, id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
}
