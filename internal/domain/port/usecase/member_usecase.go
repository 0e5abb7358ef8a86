package usecase

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
)

// CreateMemberInput carries the fields accepted when registering a member
type CreateMemberInput struct {
	Name        string
	IPAddress   string
	URLReport   string
	PIN         string
	Password    string
	IsActive    bool
	AllowNoSign bool
	Balance     string // decimal string, defaults to "0.00"
}

// MemberUseCase exposes admin-gated CRUD over members. Every operation
// takes the acting user; non-admin actors receive a Forbidden error.
type MemberUseCase interface {
	CreateMember(ctx context.Context, actor *entity.User, input CreateMemberInput) (*entity.Member, error)
	GetMember(ctx context.Context, actor *entity.User, memberID uint64) (*entity.Member, error)
	UpdateMember(ctx context.Context, actor *entity.User, memberID uint64, patch entity.MemberPatch) (*entity.Member, error)
	DeleteMember(ctx context.Context, actor *entity.User, memberID uint64) error
	ListMembers(ctx context.Context, actor *entity.User, skip, limit int) ([]*entity.Member, error)
}
