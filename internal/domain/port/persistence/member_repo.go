package persistence

import (
	"context"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
)

// MemberRepository defines persistence operations for members. Point
// lookups return ErrMemberNotFound when the key does not resolve.
type MemberRepository interface {
	// GetByID retrieves a member by primary key
	GetByID(ctx context.Context, id uint64) (*entity.Member, error)
	// GetByIP retrieves a member by IP address
	GetByIP(ctx context.Context, ip string) (*entity.Member, error)
	// GetByName retrieves a member by unique name
	GetByName(ctx context.Context, name string) (*entity.Member, error)
	// Create persists a new member and returns it with the assigned ID
	Create(ctx context.Context, member *entity.Member) (*entity.Member, error)
	// Update applies the non-nil patch fields and returns the updated member
	Update(ctx context.Context, id uint64, patch entity.MemberPatch) (*entity.Member, error)
	// Delete removes a member permanently
	Delete(ctx context.Context, id uint64) error
	// List returns members ordered by ID with offset/limit pagination
	List(ctx context.Context, skip, limit int) ([]*entity.Member, error)
	// AdjustBalance atomically applies a balance delta in cents under a row
	// lock, failing with InsufficientBalance when the result would be
	// negative. Returns the updated member.
	AdjustBalance(ctx context.Context, id uint64, deltaCents int64) (*entity.Member, error)
}
