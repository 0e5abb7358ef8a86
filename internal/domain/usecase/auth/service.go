package auth

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/persistence"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
)

// Service implements credential verification and token exchange
type Service struct {
	users  persistence.UserRepository
	hasher coreport.PasswordHasher
	tokens coreport.TokenCodec
	logger coreport.Logger
}

// NewService creates an auth service instance
func NewService(users persistence.UserRepository, hasher coreport.PasswordHasher, tokens coreport.TokenCodec, logger coreport.Logger) usecase.AuthUseCase {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies credentials and issues a signed access token. An unknown
// username is reported as such; a wrong password yields InvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*usecase.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn("Login with wrong password", map[string]any{
			"username": username,
		})
		return nil, errs.NewInvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return &usecase.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// Authenticate resolves a bearer token to the user it was issued for
func (s *Service) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewInvalidToken("token subject no longer exists")
		}
		return nil, err
	}
	return user, nil
}
