package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/persistence"
)

// CachedMemberRepository wraps a member repository with a read-through TTL
// cache. Point lookups and list pages are cached on hit only; a miss in the
// store is never cached. Mutations invalidate using the identity values the
// row held BEFORE the change, so stale entries cannot survive a rename or
// an IP move.
type CachedMemberRepository struct {
	inner  persistence.MemberRepository
	cache  coreport.Cache
	ttl    time.Duration
	logger coreport.Logger
}

// NewCachedMemberRepository decorates inner with cache
func NewCachedMemberRepository(inner persistence.MemberRepository, cache coreport.Cache, ttl time.Duration, logger coreport.Logger) persistence.MemberRepository {
	return &CachedMemberRepository{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// memberSnapshot is the cached wire form of a member
type memberSnapshot struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	IPAddress    string    `json:"ipaddress"`
	URLReport    string    `json:"urlreport,omitempty"`
	PIN          string    `json:"pin"`
	Password     string    `json:"password"`
	IsActive     bool      `json:"is_active"`
	AllowNoSign  bool      `json:"allow_nosign"`
	BalanceCents int64     `json:"balance_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

func snapshotFromEntity(m *entity.Member) memberSnapshot {
	return memberSnapshot{
		ID:           m.ID,
		Name:         m.Name,
		IPAddress:    m.IPAddress,
		URLReport:    m.URLReport,
		PIN:          m.PIN,
		Password:     m.Password,
		IsActive:     m.IsActive,
		AllowNoSign:  m.AllowNoSign,
		BalanceCents: m.Balance(),
		CreatedAt:    m.CreatedAt,
	}
}

func (s memberSnapshot) toEntity() *entity.Member {
	member := &entity.Member{
		ID:          s.ID,
		Name:        s.Name,
		IPAddress:   s.IPAddress,
		URLReport:   s.URLReport,
		PIN:         s.PIN,
		Password:    s.Password,
		IsActive:    s.IsActive,
		AllowNoSign: s.AllowNoSign,
		CreatedAt:   s.CreatedAt,
	}
	member.SetBalanceCents(s.BalanceCents)
	return member
}

func memberIDKey(id uint64) string { return fmt.Sprintf("member:id:%d", id) }

func memberIPKey(ip string) string { return fmt.Sprintf("member:ip:%s", ip) }

func memberNameKey(name string) string { return fmt.Sprintf("member:name:%s", name) }

func memberListKey(skip, limit int) string { return fmt.Sprintf("members:list:%d:%d", skip, limit) }

// GetByID serves from cache when possible
func (r *CachedMemberRepository) GetByID(ctx context.Context, id uint64) (*entity.Member, error) {
	return r.getThrough(ctx, memberIDKey(id), func() (*entity.Member, error) {
		return r.inner.GetByID(ctx, id)
	})
}

// GetByIP serves from cache when possible
func (r *CachedMemberRepository) GetByIP(ctx context.Context, ip string) (*entity.Member, error) {
	return r.getThrough(ctx, memberIPKey(ip), func() (*entity.Member, error) {
		return r.inner.GetByIP(ctx, ip)
	})
}

// GetByName serves from cache when possible
func (r *CachedMemberRepository) GetByName(ctx context.Context, name string) (*entity.Member, error) {
	return r.getThrough(ctx, memberNameKey(name), func() (*entity.Member, error) {
		return r.inner.GetByName(ctx, name)
	})
}

func (r *CachedMemberRepository) getThrough(ctx context.Context, key string, load func() (*entity.Member, error)) (*entity.Member, error) {
	if raw, ok := r.cache.Get(ctx, key); ok {
		var snap memberSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err == nil {
			return snap.toEntity(), nil
		}
		// corrupt entry; drop it and fall through to the store
		r.cache.Delete(ctx, key)
	}

	member, err := load()
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, member)
	return member, nil
}

func (r *CachedMemberRepository) store(ctx context.Context, key string, member *entity.Member) {
	raw, err := json.Marshal(snapshotFromEntity(member))
	if err != nil {
		r.logger.Warn("Failed to encode member for cache", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	r.cache.Set(ctx, key, string(raw), r.ttl)
}

// Create passes through; a fresh member has no cache entries to invalidate
// and list pages expire by TTL.
func (r *CachedMemberRepository) Create(ctx context.Context, member *entity.Member) (*entity.Member, error) {
	return r.inner.Create(ctx, member)
}

// Update snapshots the identity fields before mutating, then invalidates
// the entries derived from both the old and the new identity.
func (r *CachedMemberRepository) Update(ctx context.Context, id uint64, patch entity.MemberPatch) (*entity.Member, error) {
	before, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prior := before.Keys()

	updated, err := r.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, prior)
	r.invalidate(ctx, updated.Keys())
	return updated, nil
}

// Delete snapshots the identity fields before removing the row
func (r *CachedMemberRepository) Delete(ctx context.Context, id uint64) error {
	before, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return err
	}
	prior := before.Keys()

	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, prior)
	return nil
}

// List caches pages under the exact skip/limit pair. Pages are refreshed by
// TTL only; an empty page is not cached.
func (r *CachedMemberRepository) List(ctx context.Context, skip, limit int) ([]*entity.Member, error) {
	key := memberListKey(skip, limit)
	if raw, ok := r.cache.Get(ctx, key); ok {
		var snaps []memberSnapshot
		if err := json.Unmarshal([]byte(raw), &snaps); err == nil {
			members := make([]*entity.Member, 0, len(snaps))
			for _, s := range snaps {
				members = append(members, s.toEntity())
			}
			return members, nil
		}
		r.cache.Delete(ctx, key)
	}

	members, err := r.inner.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return members, nil
	}

	snaps := make([]memberSnapshot, 0, len(members))
	for _, m := range members {
		snaps = append(snaps, snapshotFromEntity(m))
	}
	if raw, err := json.Marshal(snaps); err == nil {
		r.cache.Set(ctx, key, string(raw), r.ttl)
	}
	return members, nil
}

// AdjustBalance mutates only the balance, so the identity keys cannot move;
// the updated row's own keys are invalidated so readers see the new balance.
func (r *CachedMemberRepository) AdjustBalance(ctx context.Context, id uint64, deltaCents int64) (*entity.Member, error) {
	member, err := r.inner.AdjustBalance(ctx, id, deltaCents)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, member.Keys())
	return member, nil
}

func (r *CachedMemberRepository) invalidate(ctx context.Context, keys entity.MemberKeys) {
	r.cache.Delete(ctx, memberIDKey(keys.ID))
	r.cache.Delete(ctx, memberIPKey(keys.IPAddress))
	r.cache.Delete(ctx, memberNameKey(keys.Name))
}
