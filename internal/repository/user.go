package repository

import (
	"context"

	"galleryapi/internal/model"
)

// UserRepository defines data access for gallery accounts.
type UserRepository interface {
	// Create inserts a new user row and returns the stored record.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByEmail returns a user by email, or sql.ErrNoRows.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns a user by ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.User, error)
}
