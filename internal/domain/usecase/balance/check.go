package balance

import (
	"context"
	"crypto/subtle"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
)

// Public balance inquiries let members query their own balance without an
// operator token. The caller proves identity with either the member's
// pin and password or an upstream signature over them.

// CheckBalance answers a pin/password-authenticated inquiry
func (s *Service) CheckBalance(ctx context.Context, input usecase.CheckBalanceInput) (*usecase.BalanceResponse, error) {
	member, err := s.members.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	if !member.IsActive {
		return nil, errs.NewForbidden("member is not active")
	}

	if !constantTimeEquals(input.PIN, member.PIN) || !constantTimeEquals(input.Password, member.Password) {
		s.logger.Warn("Balance check with wrong credentials", map[string]any{
			"member": input.Name,
		})
		return nil, errs.NewInvalidCredentials()
	}

	return &usecase.BalanceResponse{
		MemberID: member.ID,
		Balance:  member.FormattedBalance(),
	}, nil
}

// CheckBalanceSigned answers a signature-authenticated inquiry. Members
// flagged AllowNoSign may omit the signature entirely.
func (s *Service) CheckBalanceSigned(ctx context.Context, input usecase.CheckBalanceSignedInput) (*usecase.BalanceResponse, error) {
	member, err := s.members.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	if !member.IsActive {
		return nil, errs.NewForbidden("member is not active")
	}

	if !member.AllowNoSign {
		expected := entity.CheckBalanceSignature(member.Name, member.PIN, member.Password)
		if !constantTimeEquals(input.Sign, expected) {
			s.logger.Warn("Balance check with invalid signature", map[string]any{
				"member": input.Name,
			})
			return nil, errs.NewInvalidCredentials()
		}
	}

	return &usecase.BalanceResponse{
		MemberID: member.ID,
		Balance:  member.FormattedBalance(),
	}, nil
}

func constantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
