package user

import (
	"context"

	"storefront/internal/domain"
)

// CreateUserInput carries the fields persisted at registration.
type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

// UpdateProfileInput carries the mutable profile fields. Nil pointers leave
// the current value untouched.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
}

type Repository interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.User, error)
}
