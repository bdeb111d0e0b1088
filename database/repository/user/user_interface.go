package userRepo

import (
	"context"

	"okclinic/models"
)

// UserRepository is the identity store.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user, including its password hash, by email.
	// It returns nil, nil when no account uses the address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetAll retrieves all users with sensitive fields excluded.
	GetAll(ctx context.Context) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update replaces the mutable fields of an existing user.
	Update(ctx context.Context, user *models.User) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
	// UpsertByEmail creates or overwrites the account registered under user.Email.
	UpsertByEmail(ctx context.Context, user *models.User) (*models.User, error)
}
