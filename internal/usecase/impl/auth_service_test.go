package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	mockRepo "contacts/internal/mocks/repository"
	mockSvc "contacts/internal/mocks/service"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	contactRepo  *mockRepo.MockContactRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	contactRepo := mockRepo.NewMockContactRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		ContactRepo:  contactRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return authServiceFixtures{
		service:      service,
		txManager:    txManager,
		userRepo:     userRepo,
		contactRepo:  contactRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func registerInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:  "Alice",
		Email:     "alice@example.com",
		Password:  "StrongPass123!",
		FirstName: "Alice",
		LastName:  "Smith",
		Phone:     "555-0100",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := registerInput()

	fx.hasher.EXPECT().ValidateStrength(input.Password).Return(nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockContactRepo := mockRepo.NewMockContactRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().ContactRepo().Return(mockContactRepo)

			mockUserRepo.EXPECT().UsernameExists(ctx, "alice").Return(false, nil)
			mockContactRepo.EXPECT().EmailExists(ctx, input.Email).Return(false, nil)

			fx.hasher.EXPECT().Hash(input.Password).Return([]byte("digest"), []byte("salt"), nil)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					assert.Equal(t, "alice", user.Username)
					assert.Equal(t, []byte("digest"), user.PasswordHash)
					assert.Equal(t, []byte("salt"), user.PasswordSalt)
					user.ID = uuid.New()
				}).
				Return(nil)

			mockContactRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Contact")).
				Run(func(ctx context.Context, contact *entity.Contact) {
					assert.Equal(t, input.Email, contact.Email)
					assert.Equal(t, entity.DefaultCategory, contact.Category)
					assert.Equal(t, entity.DefaultSubcategory, contact.Subcategory)
					assert.Equal(t, entity.DefaultCity, contact.City)
					assert.Equal(t, entity.DefaultCountry, contact.Country)
					assert.NotEqual(t, uuid.Nil, contact.UserID)
					assert.False(t, contact.BirthDate.IsZero())
				}).
				Return(nil)

			return fn(mockFactory)
		})

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "alice", output.Username)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := registerInput()
	input.Password = "weakpass"

	fx.hasher.EXPECT().
		ValidateStrength(input.Password).
		Return(domainerrors.ErrPasswordStrength)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
	// The transaction never starts for a weak password.
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := registerInput()

	fx.hasher.EXPECT().ValidateStrength(input.Password).Return(nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockContactRepo := mockRepo.NewMockContactRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().ContactRepo().Return(mockContactRepo)

			mockUserRepo.EXPECT().UsernameExists(ctx, "alice").Return(true, nil)

			return fn(mockFactory)
		})

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := registerInput()

	fx.hasher.EXPECT().ValidateStrength(input.Password).Return(nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockContactRepo := mockRepo.NewMockContactRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().ContactRepo().Return(mockContactRepo)

			mockUserRepo.EXPECT().UsernameExists(ctx, "alice").Return(false, nil)
			mockContactRepo.EXPECT().EmailExists(ctx, input.Email).Return(true, nil)

			return fn(mockFactory)
		})

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestAuthService_Register_DuplicateRaceMapsToConflict(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := registerInput()

	fx.hasher.EXPECT().ValidateStrength(input.Password).Return(nil)

	// A concurrent registration slipped past the pre-check; the unique index
	// violation surfaces as the same conflict error.
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockContactRepo := mockRepo.NewMockContactRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().ContactRepo().Return(mockContactRepo)

			mockUserRepo.EXPECT().UsernameExists(ctx, "alice").Return(false, nil)
			mockContactRepo.EXPECT().EmailExists(ctx, input.Email).Return(false, nil)

			fx.hasher.EXPECT().Hash(input.Password).Return([]byte("digest"), []byte("salt"), nil)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Return(domainerrors.ErrUsernameTaken)

			return fn(mockFactory)
		})

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: []byte("digest"),
		PasswordSalt: []byte("salt"),
	}

	// Mixed-case input resolves to the stored lowercase username.
	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.hasher.EXPECT().Verify("StrongPass123!", user.PasswordSalt, user.PasswordHash).Return(true)
	fx.tokenService.EXPECT().Issue("alice").Return("signed.jwt.token", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "ALICE",
		Password: "StrongPass123!",
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "alice", output.Username)
	assert.Equal(t, "signed.jwt.token", output.Token)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByUsername(ctx, "ghost").
		Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "ghost",
		Password: "StrongPass123!",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: []byte("digest"),
		PasswordSalt: []byte("salt"),
	}

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.hasher.EXPECT().Verify("WrongPassword1!", user.PasswordSalt, user.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "WrongPassword1!",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	// No token is issued on a failed login.
	fx.tokenService.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuthService_Login_UnknownUserAndWrongPasswordShareMessage(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: []byte("digest"),
		PasswordSalt: []byte("salt"),
	}

	fx.userRepo.EXPECT().
		FindByUsername(ctx, "ghost").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.hasher.EXPECT().Verify("WrongPassword1!", user.PasswordSalt, user.PasswordHash).Return(false)

	_, unknownErr := fx.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "StrongPass123!"})
	_, wrongErr := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "WrongPassword1!"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	// Both failure modes surface the identical user-facing message, so the
	// response cannot be used to enumerate accounts.
	var unknownApp domainerrors.AppError
	var wrongApp domainerrors.AppError
	require.True(t, errors.As(unknownErr, &unknownApp))
	require.True(t, errors.As(wrongErr, &wrongApp))
	assert.Equal(t, unknownApp.Message(), wrongApp.Message())
	assert.Equal(t, unknownApp.HTTPCode(), wrongApp.HTTPCode())
}
