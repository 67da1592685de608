// Package store provides persistence for user accounts. Callers match the
// sentinel errors with errors.Is.
package store

import (
	"context"
	"errors"

	"github.com/lexidev/users-backend/internal/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the persistence contract the account service depends on.
// The production implementation is MongoUserStore; tests substitute fakes.
type UserStore interface {
	// Insert persists a new user and fills in its generated ID.
	// Returns ErrDuplicateEmail when the unique email index rejects the write.
	Insert(ctx context.Context, user *models.User) error

	// FindByEmail returns the user with the given email or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns the user with the given hex ID or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Update replaces the stored document for user.ID. Returns ErrNotFound if
	// the account no longer exists and ErrDuplicateEmail if an email change
	// collides with another account.
	Update(ctx context.Context, user *models.User) error
}
