package balance

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/authz"
	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/persistence"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
)

// Service implements the balance ledger over the member repository. All
// mutations are delegated to the repository's row-locked balance
// adjustment so concurrent operations against one member serialize.
type Service struct {
	members persistence.MemberRepository
	logger  coreport.Logger
}

// NewService creates a balance service instance
func NewService(members persistence.MemberRepository, logger coreport.Logger) usecase.BalanceUseCase {
	return &Service{
		members: members,
		logger:  logger,
	}
}

// GetBalance returns the member's current balance
func (s *Service) GetBalance(ctx context.Context, actor *entity.User, memberID uint64) (*usecase.BalanceResponse, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	return &usecase.BalanceResponse{
		MemberID: member.ID,
		Balance:  member.FormattedBalance(),
	}, nil
}

// AddBalance credits the member's balance by a positive decimal amount
func (s *Service) AddBalance(ctx context.Context, actor *entity.User, memberID uint64, amount string) (*entity.Member, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	cents, err := parsePositiveAmount(amount)
	if err != nil {
		return nil, err
	}

	member, err := s.members.AdjustBalance(ctx, memberID, cents)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Balance credited", map[string]any{
		"member_id":   member.ID,
		"amount":      amount,
		"new_balance": member.FormattedBalance(),
	})
	return member, nil
}

// DeductBalance debits the member's balance, failing with
// InsufficientBalance when the balance does not cover the amount.
func (s *Service) DeductBalance(ctx context.Context, actor *entity.User, memberID uint64, amount string) (*entity.Member, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	cents, err := parsePositiveAmount(amount)
	if err != nil {
		return nil, err
	}

	member, err := s.members.AdjustBalance(ctx, memberID, -cents)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Balance debited", map[string]any{
		"member_id":   member.ID,
		"amount":      amount,
		"new_balance": member.FormattedBalance(),
	})
	return member, nil
}

// parsePositiveAmount parses a decimal amount and rejects zero. Negative
// amounts are already rejected by the parser, so a credit can never be
// turned into a hidden debit.
func parsePositiveAmount(amount string) (int64, error) {
	cents, err := entity.ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	if cents == 0 {
		return 0, errs.NewValidation("amount", "amount must be greater than zero")
	}
	return cents, nil
}
