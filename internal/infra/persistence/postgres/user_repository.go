package postgres

import (
	"context"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	"contacts/internal/domain/repository"
	"contacts/internal/errors"
	"contacts/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// userRepository implements the domain's UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByUsername retrieves a user by username. Callers normalize the username
// to lower case before lookup.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, dbError("find user by username", err)
	}

	return toUserEntity(&userModel), nil
}

// UsernameExists reports whether a user with the given username already exists.
func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, dbError("count users by username", err)
	}

	return count > 0, nil
}

// Create persists a new user. The database's unique index on username is the
// final arbiter under concurrent registrations; a violation maps to the same
// domain error the pre-check raises.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := toUserModel(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUsernameTaken
		}

		return dbError("create user", err)
	}

	user.ID = userModel.ID
	user.CreatedAt = userModel.CreatedAt

	return nil
}

func toUserEntity(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		PasswordSalt: m.PasswordSalt,
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(e *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:           e.ID,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		PasswordSalt: e.PasswordSalt,
		CreatedAt:    e.CreatedAt,
	}
}
