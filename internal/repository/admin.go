package repository

import (
	"context"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
)

// AdminUserRepository defines the persistence operations for admin users.
// The backing store enforces a uniqueness constraint on the email column.
type AdminUserRepository interface {
	// Create persists a new admin user. Returns ErrDuplicateEmail when the
	// email is already registered.
	Create(ctx context.Context, user *domain.AdminUser) error

	// GetByID retrieves an admin user by id.
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)

	// GetByEmail retrieves an admin user by email.
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)

	// GetAll retrieves all admin users.
	GetAll(ctx context.Context) ([]*domain.AdminUser, error)

	// Delete removes an admin user permanently.
	Delete(ctx context.Context, id string) error
}
