// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/domain/service"
	"contacts/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	contactRepo  repository.ContactRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	ContactRepo  repository.ContactRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		contactRepo:  params.ContactRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process: uniqueness checks,
// password hashing and persisting the account together with its seeded default
// contact. The account row and the contact row are written in one transaction
// so a failure on either side leaves no half-registered state.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	username := strings.ToLower(input.Username)
	srv.log(ctx).Info("Starting registration", slog.String("username", username))

	if err := srv.hasher.ValidateStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet security requirements")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		contactRepo := repoFactory.ContactRepo()

		// Application-level early exits. The unique indexes on users.username
		// and contacts.email remain the backstop for concurrent registrations.
		taken, err := userRepo.UsernameExists(ctx, username)
		if err != nil {
			return errors.Wrap(err, "failed to check username existence")
		}
		if taken {
			return errors.Wrap(domainerrors.ErrUsernameTaken, "registration failed")
		}

		emailUsed, err := contactRepo.EmailExists(ctx, input.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check email existence")
		}
		if emailUsed {
			return errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
		}

		digest, salt, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password during registration")
		}

		newUser := &entity.User{
			Username:     username,
			PasswordHash: digest,
			PasswordSalt: salt,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		if err := contactRepo.Create(ctx, buildDefaultContact(input, newUser)); err != nil {
			return errors.Wrap(err, "failed to create default contact during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.String("username", username))

	return &usecase.RegisterOutput{Username: username}, nil
}

// buildDefaultContact seeds the contact created alongside a new account from
// the registration fields, applying fixed defaults for anything left empty.
func buildDefaultContact(input *usecase.RegisterInput, user *entity.User) *entity.Contact {
	contact := &entity.Contact{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		City:        input.City,
		Country:     input.Country,
		UserID:      user.ID,
	}

	if input.BirthDate != nil {
		contact.BirthDate = *input.BirthDate
	} else {
		contact.BirthDate = time.Now()
	}
	if contact.Category == "" {
		contact.Category = entity.DefaultCategory
	}
	if contact.Subcategory == "" {
		contact.Subcategory = entity.DefaultSubcategory
	}
	if contact.City == "" {
		contact.City = entity.DefaultCity
	}
	if contact.Country == "" {
		contact.Country = entity.DefaultCountry
	}

	return contact
}

// Login orchestrates the user login process. Unknown usernames and wrong
// passwords surface the same credentials error so responses cannot be used to
// probe which accounts exist.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	username := strings.ToLower(input.Username)
	srv.log(ctx).Debug("Starting login", slog.String("username", username))

	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("username", username), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Verify(input.Password, user.PasswordSalt, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", username), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Issue(user.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.String("username", username))

	return &usecase.LoginOutput{
		Username: user.Username,
		Token:    token,
	}, nil
}
