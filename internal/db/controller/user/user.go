// Package user persists identity records keyed by email.
package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hackaholics/identity/internal/db/models"
)

const (
	emailQueryPattern = "email = ?"
)

var (
	// ErrUserNotFound is returned when no record exists for an email.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when a record for the email was inserted first by someone else.
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	// ErrEmailEmpty is returned when looking up or creating a user without an email.
	ErrEmailEmpty = errors.New("user email cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Store reads and inserts users. It never updates a role and never deletes.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on top of db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetByEmail returns the user with exactly this email, or ErrUserNotFound.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	if email == "" {
		return nil, ErrEmailEmpty
	}

	var user models.User

	result := s.db.WithContext(ctx).Where(emailQueryPattern, email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

// CreateIfAbsent inserts u unless a user with the same email exists.
// The insert is a single conditional statement on the unique email index, so of
// two concurrent calls for one email exactly one succeeds and the other gets
// ErrUserAlreadyExists. The existing row is never overwritten.
func (s *Store) CreateIfAbsent(ctx context.Context, u *models.User) (*models.User, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	if u == nil || u.Email == "" {
		return nil, ErrEmailEmpty
	}

	record := *u

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&record)

	switch {
	case errors.Is(result.Error, gorm.ErrDuplicatedKey):
		return nil, ErrUserAlreadyExists
	case result.Error != nil:
		return nil, result.Error
	case result.RowsAffected == 0:
		return nil, ErrUserAlreadyExists
	}

	return &record, nil
}
