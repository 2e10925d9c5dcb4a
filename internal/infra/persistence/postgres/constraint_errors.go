package postgres

import (
	"strings"

	domainerrors "contacts/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// dbError wraps an unexpected driver error into the application taxonomy,
// keeping the failed operation name as detail.
func dbError(operation string, err error) error {
	return domainerrors.NewDatabaseExecuteError(err, operation)
}

// Helper functions for PostgreSQL error classification.

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// The pgx driver surfaces unique violations as SQLSTATE 23505 before GORM
	// translation kicks in.
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23505") || strings.Contains(errMsg, "duplicate key")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23503") || strings.Contains(errMsg, "foreign key")
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23502") || strings.Contains(errMsg, "null value")
}
