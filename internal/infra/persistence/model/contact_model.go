package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel mirrors the 'contacts' table. The email column carries a unique
// index across all contacts, which also backs the registration email check.
type ContactModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	FirstName   string    `gorm:"type:varchar(100);not null"`
	LastName    string    `gorm:"type:varchar(100);not null"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone       string    `gorm:"type:varchar(50)"`
	Category    string    `gorm:"type:varchar(100);not null"`
	Subcategory string    `gorm:"type:varchar(100)"`
	BirthDate   time.Time
	City        string    `gorm:"type:varchar(100)"`
	Country     string    `gorm:"type:varchar(100)"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}
