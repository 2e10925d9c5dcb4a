// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// The unique index on username serializes concurrent registrations for the
// same name; the application-level existence check is only an early exit.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash []byte    `gorm:"type:bytea;not null"`
	PasswordSalt []byte    `gorm:"type:bytea;not null"`
	CreatedAt    time.Time

	Contacts []ContactModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
