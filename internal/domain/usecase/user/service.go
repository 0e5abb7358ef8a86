package user

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/authz"
	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/persistence"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
)

// Service implements operator account management. Registration is open but
// never grants superuser; elevation happens only through an admin update or
// the bootstrap seed.
type Service struct {
	users        persistence.UserRepository
	hasher       coreport.PasswordHasher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a user service instance
func NewService(users persistence.UserRepository, hasher coreport.PasswordHasher, timeProvider coreport.TimeProvider, logger coreport.Logger) usecase.UserUseCase {
	return &Service{
		users:        users,
		hasher:       hasher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateUser registers a new operator account
func (s *Service) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	if err := entity.ValidateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := entity.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if len(input.Password) < entity.PasswordMinLen {
		return nil, errs.NewValidation("password", "password must be at least 6 characters")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errs.NewValidation("password", "password cannot be hashed")
	}

	user, err := entity.NewUser(input.Username, input.Email, hash, input.IsActive, false, s.timeProvider)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created", map[string]any{
		"user_id":  created.ID,
		"username": created.Username,
	})
	return created, nil
}

// GetUser returns a user by id; non-admins can only read themselves
func (s *Service) GetUser(ctx context.Context, actor *entity.User, userID uint64) (*entity.User, error) {
	if err := authz.RequireSelfOrAdmin(actor, userID); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// UpdateUser applies a partial update. Only admins may change IsSuperuser
// or IsActive; the owner may change their own email and password.
func (s *Service) UpdateUser(ctx context.Context, actor *entity.User, userID uint64, input usecase.UpdateUserInput) (*entity.User, error) {
	if err := authz.RequireSelfOrAdmin(actor, userID); err != nil {
		return nil, err
	}
	if (input.IsSuperuser != nil || input.IsActive != nil) && !actor.IsSuperuser {
		return nil, errs.NewForbidden("only an admin may change account flags")
	}

	patch := persistence.UserPatch{
		IsActive:    input.IsActive,
		IsSuperuser: input.IsSuperuser,
	}
	if input.Email != nil {
		if err := entity.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
		patch.Email = input.Email
	}
	if input.Password != nil {
		if len(*input.Password) < entity.PasswordMinLen {
			return nil, errs.NewValidation("password", "password must be at least 6 characters")
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errs.NewValidation("password", "password cannot be hashed")
		}
		patch.PasswordHash = &hash
	}

	if patch.Email == nil && patch.PasswordHash == nil && patch.IsActive == nil && patch.IsSuperuser == nil {
		return nil, errs.NewValidation("body", "no fields to update")
	}

	updated, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated", map[string]any{
		"user_id": updated.ID,
	})
	return updated, nil
}

// DeleteUser removes a user account
func (s *Service) DeleteUser(ctx context.Context, actor *entity.User, userID uint64) error {
	if err := authz.RequireSelfOrAdmin(actor, userID); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("User deleted", map[string]any{
		"user_id": userID,
	})
	return nil
}

// SeedAdmin ensures the bootstrap admin exists. It is called at startup
// and is a no-op when the account is already present.
func (s *Service) SeedAdmin(ctx context.Context, seed usecase.AdminSeed) error {
	if _, err := s.users.GetByUsername(ctx, seed.Username); err == nil {
		return nil
	} else if !errs.IsNotFound(err) {
		return err
	}

	hash, err := s.hasher.Hash(seed.Password)
	if err != nil {
		return errs.NewValidation("password", "password cannot be hashed")
	}

	admin, err := entity.NewUser(seed.Username, seed.Email, hash, true, true, s.timeProvider)
	if err != nil {
		return err
	}

	created, err := s.users.Create(ctx, admin)
	if err != nil {
		// a concurrent boot may have seeded it first
		if errs.KindOf(err) == errs.KindDuplicate {
			return nil
		}
		return err
	}

	s.logger.Info("Admin user seeded", map[string]any{
		"user_id":  created.ID,
		"username": created.Username,
	})
	return nil
}
