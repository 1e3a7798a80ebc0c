package models

import (
	"time"
)

// User is the identity record of a principal.
// Email is the unique key and is compared exactly, without case folding.
// Role and CreatedAt are create-only columns: gorm never writes them on update.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Email is the verified email address the user logged in with.
	Email string `gorm:"uniqueIndex;size:255;not null"`
	// DisplayName is the provider supplied name, or the local part of the email.
	DisplayName string `gorm:"size:150"`
	// Role is fixed at creation.
	Role Role `gorm:"<-:create;type:varchar(10);not null"`
	// ExternalID is the sub claim of the identity provider, empty when unknown.
	ExternalID string `gorm:"size:255"`
	// CreatedAt is set once when the record is inserted.
	CreatedAt time.Time `gorm:"<-:create"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}
