package member

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/authz"
	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/persistence"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Service implements member management. Every operation is admin-gated;
// the repository handed in is expected to be the cache-aware one so reads
// stay hot and writes invalidate.
type Service struct {
	members      persistence.MemberRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a member service instance
func NewService(members persistence.MemberRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) usecase.MemberUseCase {
	return &Service{
		members:      members,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateMember validates and registers a new member
func (s *Service) CreateMember(ctx context.Context, actor *entity.User, input usecase.CreateMemberInput) (*entity.Member, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	balance := input.Balance
	if balance == "" {
		balance = "0.00"
	}
	cents, err := entity.ParseAmount(balance)
	if err != nil {
		return nil, err
	}

	member, err := entity.NewMember(entity.MemberParams{
		Name:         input.Name,
		IPAddress:    input.IPAddress,
		URLReport:    input.URLReport,
		PIN:          input.PIN,
		Password:     input.Password,
		IsActive:     input.IsActive,
		AllowNoSign:  input.AllowNoSign,
		BalanceCents: cents,
	}, s.timeProvider)
	if err != nil {
		return nil, err
	}

	created, err := s.members.Create(ctx, member)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Member created", map[string]any{
		"member_id": created.ID,
		"name":      created.Name,
	})
	return created, nil
}

// GetMember returns a member by id
func (s *Service) GetMember(ctx context.Context, actor *entity.User, memberID uint64) (*entity.Member, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.members.GetByID(ctx, memberID)
}

// UpdateMember applies a partial update. Fields absent from the patch are
// left untouched; an empty patch is rejected outright.
func (s *Service) UpdateMember(ctx context.Context, actor *entity.User, memberID uint64, patch entity.MemberPatch) (*entity.Member, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, errs.NewValidation("body", "no fields to update")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.members.Update(ctx, memberID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Member updated", map[string]any{
		"member_id": updated.ID,
	})
	return updated, nil
}

// DeleteMember removes a member by id
func (s *Service) DeleteMember(ctx context.Context, actor *entity.User, memberID uint64) error {
	if err := authz.RequireAdmin(actor); err != nil {
		return err
	}

	if err := s.members.Delete(ctx, memberID); err != nil {
		return err
	}

	s.logger.Info("Member deleted", map[string]any{
		"member_id": memberID,
	})
	return nil
}

// ListMembers returns a page of members ordered by id
func (s *Service) ListMembers(ctx context.Context, actor *entity.User, skip, limit int) ([]*entity.Member, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if skip < 0 {
		return nil, errs.NewValidation("skip", "skip cannot be negative")
	}
	if limit < 0 {
		return nil, errs.NewValidation("limit", "limit cannot be negative")
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return s.members.List(ctx, skip, limit)
}
