package usecase

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
)

// TokenResponse is the payload returned by a successful login
type TokenResponse struct {
	AccessToken string
	TokenType   string
}

// AuthUseCase exposes credential verification and token handling
type AuthUseCase interface {
	// Login verifies credentials and issues a signed access token
	Login(ctx context.Context, username, password string) (*TokenResponse, error)
	// Authenticate resolves a bearer token to the user it was issued for
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}
