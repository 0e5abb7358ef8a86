package usecase

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
)

// BalanceResponse is the standardized balance payload
type BalanceResponse struct {
	MemberID uint64
	Balance  string
}

// CheckBalanceInput is a public balance inquiry authenticated by the
// member's own pin and password.
type CheckBalanceInput struct {
	Name     string
	PIN      string
	Password string
}

// CheckBalanceSignedInput is a public balance inquiry authenticated by an
// upstream signature. Members with AllowNoSign may omit the signature.
type CheckBalanceSignedInput struct {
	Name string
	Sign string
}

// BalanceUseCase exposes the balance ledger. Admin-gated mutations plus
// public member-facing inquiries.
type BalanceUseCase interface {
	// GetBalance returns a member's current balance
	GetBalance(ctx context.Context, actor *entity.User, memberID uint64) (*BalanceResponse, error)
	// AddBalance credits a positive decimal amount
	AddBalance(ctx context.Context, actor *entity.User, memberID uint64, amount string) (*entity.Member, error)
	// DeductBalance debits a positive decimal amount, failing with
	// InsufficientBalance when the balance does not cover it
	DeductBalance(ctx context.Context, actor *entity.User, memberID uint64, amount string) (*entity.Member, error)
	// CheckBalance answers a pin/password-authenticated inquiry
	CheckBalance(ctx context.Context, input CheckBalanceInput) (*BalanceResponse, error)
	// CheckBalanceSigned answers a signature-authenticated inquiry
	CheckBalanceSigned(ctx context.Context, input CheckBalanceSignedInput) (*BalanceResponse, error)
}
