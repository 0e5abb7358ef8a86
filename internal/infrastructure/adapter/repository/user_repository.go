package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/persistence"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) persistence.UserRepository {
	return &UserRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func userModelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive != nil && *m.IsActive,
		IsSuperuser:  m.IsSuperuser,
		CreatedAt:    m.CreatedAt,
	}
}

// GetByID retrieves a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var m model.User
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewUserNotFound(id)
		}
		return nil, r.databaseError("getting user", result.Error)
	}
	return userModelToEntity(&m), nil
}

// GetByUsername retrieves a user by unique username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var m model.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewUserNameNotFound(username)
		}
		return nil, r.databaseError("getting user by username", result.Error)
	}
	return userModelToEntity(&m), nil
}

// Create persists a new user and returns it with the assigned ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	isActive := user.IsActive
	m := model.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsActive:     &isActive,
		IsSuperuser:  user.IsSuperuser,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    r.timeProvider.Now(),
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			field, value := "username", user.Username
			if duplicateKeyErrorMentions(result.Error, "email") {
				field, value = "email", user.Email
			}
			r.logger.Warn("Duplicate user", map[string]any{
				field: value,
			})
			return nil, errs.NewDuplicate("user", field, value)
		}
		return nil, r.databaseError("creating user", result.Error)
	}

	return userModelToEntity(&m), nil
}

// Update applies the non-nil patch fields and returns the updated user
func (r *UserRepository) Update(ctx context.Context, id uint64, patch persistence.UserPatch) (*entity.User, error) {
	columns := map[string]interface{}{
		"updated_at": r.timeProvider.Now(),
	}
	if patch.Email != nil {
		columns["email"] = *patch.Email
	}
	if patch.PasswordHash != nil {
		columns["password_hash"] = *patch.PasswordHash
	}
	if patch.IsActive != nil {
		columns["is_active"] = *patch.IsActive
	}
	if patch.IsSuperuser != nil {
		columns["is_superuser"] = *patch.IsSuperuser
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		// email is the only unique column a patch can touch
		if isDuplicateKeyError(result.Error) {
			email := ""
			if patch.Email != nil {
				email = *patch.Email
			}
			return nil, errs.NewDuplicate("user", "email", email)
		}
		return nil, r.databaseError("updating user", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewUserNotFound(id)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a user permanently
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return r.databaseError("deleting user", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewUserNotFound(id)
	}
	return nil
}

func (r *UserRepository) databaseError(operation string, err error) error {
	r.logger.Error("Database error when "+operation, map[string]any{
		"error": err.Error(),
	})
	return errs.NewDatabase(err)
}
