package usecase

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
)

// CreateUserInput carries the fields accepted at user registration.
// IsSuperuser is always forced to false for self-registered users.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	IsActive bool
}

// UpdateUserInput is a partial user update; the plain Password, when set,
// is hashed before persisting.
type UpdateUserInput struct {
	Email       *string
	Password    *string
	IsActive    *bool
	IsSuperuser *bool
}

// AdminSeed describes the bootstrap admin account
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// UserUseCase exposes operator account management
type UserUseCase interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*entity.User, error)
	GetUser(ctx context.Context, actor *entity.User, userID uint64) (*entity.User, error)
	UpdateUser(ctx context.Context, actor *entity.User, userID uint64, input UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, actor *entity.User, userID uint64) error
	// SeedAdmin creates the bootstrap admin if absent; idempotent
	SeedAdmin(ctx context.Context, seed AdminSeed) error
}
