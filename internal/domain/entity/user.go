package entity

import (
	"strings"
	"time"

	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
)

// User is an operator account. Passwords are stored hashed; superusers may
// manage members and other users.
type User struct {
	ID           uint64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
}

// NewUser validates and builds a user entity. The caller supplies an
// already-hashed password.
func NewUser(username, email, passwordHash string, isActive, isSuperuser bool, timeProvider coreport.TimeProvider) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, errs.NewValidation("password", "password hash cannot be empty")
	}

	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     isActive,
		IsSuperuser:  isSuperuser,
		CreatedAt:    timeProvider.Now(),
	}, nil
}

// ValidateUsername checks for a non-empty alphanumeric username
func ValidateUsername(username string) error {
	if username == "" {
		return errs.NewValidation("username", "username cannot be empty")
	}
	if len(username) > 50 {
		return errs.NewValidation("username", "username must be at most 50 characters")
	}
	for _, r := range username {
		if !isAlphanumeric(r) {
			return errs.NewValidation("username", "username must be alphanumeric")
		}
	}
	return nil
}

// ValidateEmail applies a minimal format check; uniqueness is enforced by
// the store.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || len(email) > 100 {
		return errs.NewValidation("email", "email must be a valid address")
	}
	if !strings.Contains(email[at+1:], ".") {
		return errs.NewValidation("email", "email must be a valid address")
	}
	return nil
}
