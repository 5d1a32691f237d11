// Package users declares the repository contract for user accounts.
package users

import (
	"context"

	"github.com/ysemenov/blogkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. A duplicate email yields
	// errcode.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email or errcode.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id or errcode.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
