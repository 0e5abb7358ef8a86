package persistence

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
)

// UserPatch carries a partial user update; nil fields are left untouched.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	IsActive     *bool
	IsSuperuser  *bool
}

// UserRepository defines persistence operations for operator accounts
type UserRepository interface {
	// GetByID retrieves a user by primary key
	GetByID(ctx context.Context, id uint64) (*entity.User, error)
	// GetByUsername retrieves a user by unique username
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Create persists a new user and returns it with the assigned ID
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	// Update applies the non-nil patch fields and returns the updated user
	Update(ctx context.Context, id uint64, patch UserPatch) (*entity.User, error)
	// Delete removes a user permanently
	Delete(ctx context.Context, id uint64) error
}
