package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/cache"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/logger"
	mockpersistence "github.com/rakapradana/member-gateway/mocks/port/persistence"
)

func cachedMember(id uint64) *entity.Member {
	member := &entity.Member{
		ID:        id,
		Name:      "member01",
		IPAddress: "10.0.0.1",
		PIN:       "123456",
		Password:  "secret99",
		IsActive:  true,
		CreatedAt: time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC),
	}
	member.SetBalanceCents(5000)
	return member
}

func newCachedRepo(inner *mockpersistence.MockMemberRepository) (*CachedMemberRepository, *cache.MemoryCache) {
	store := cache.NewMemoryCache(100).(*cache.MemoryCache)
	repo := NewCachedMemberRepository(inner, store, time.Minute, logger.NewNoopLogger()).(*CachedMemberRepository)
	return repo, store
}

func TestCachedMemberRepositoryReads(t *testing.T) {
	t.Run("should hit the store once and serve the second read from cache", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, _ := newCachedRepo(inner)

		inner.On("GetByID", ctx, uint64(10)).Return(cachedMember(10), nil).Once()

		first, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)

		second, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)

		assert.Equal(t, first.Name, second.Name)
		assert.Equal(t, int64(5000), second.Balance())
		inner.AssertExpectations(t)
	})

	t.Run("should cache lookups by ip and name independently", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, _ := newCachedRepo(inner)

		inner.On("GetByIP", ctx, "10.0.0.1").Return(cachedMember(10), nil).Once()
		inner.On("GetByName", ctx, "member01").Return(cachedMember(10), nil).Once()

		for i := 0; i < 2; i++ {
			_, err := repo.GetByIP(ctx, "10.0.0.1")
			assert.NoError(t, err)
			_, err = repo.GetByName(ctx, "member01")
			assert.NoError(t, err)
		}
		inner.AssertExpectations(t)
	})

	t.Run("should never cache a miss", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, store := newCachedRepo(inner)

		inner.On("GetByID", ctx, uint64(99)).Return(nil, errs.NewMemberNotFound(99)).Twice()

		_, err := repo.GetByID(ctx, 99)
		assert.Equal(t, errs.KindMemberNotFound, errs.KindOf(err))

		_, err = repo.GetByID(ctx, 99)
		assert.Equal(t, errs.KindMemberNotFound, errs.KindOf(err))

		assert.Equal(t, 0, store.Len())
		inner.AssertExpectations(t)
	})

	t.Run("should drop a corrupt entry and reload from the store", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, store := newCachedRepo(inner)

		store.Set(ctx, "member:id:10", "{not json", time.Minute)
		inner.On("GetByID", ctx, uint64(10)).Return(cachedMember(10), nil).Once()

		got, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, "member01", got.Name)

		raw, ok := store.Get(ctx, "member:id:10")
		assert.True(t, ok)
		assert.Contains(t, raw, `"name":"member01"`)
	})
}

func TestCachedMemberRepositoryCreate(t *testing.T) {
	t.Run("should pass through without touching the cache", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, store := newCachedRepo(inner)

		inner.On("Create", ctx, mock.Anything).Return(cachedMember(10), nil)

		got, err := repo.Create(ctx, cachedMember(0))
		assert.NoError(t, err)
		assert.Equal(t, uint64(10), got.ID)
		assert.Equal(t, 0, store.Len())
	})
}

func TestCachedMemberRepositoryUpdate(t *testing.T) {
	t.Run("should invalidate the keys held before a rename", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, store := newCachedRepo(inner)

		inner.On("GetByName", ctx, "member01").Return(cachedMember(10), nil).Once()
		_, err := repo.GetByName(ctx, "member01")
		assert.NoError(t, err)

		newName := "renamed01"
		renamed := cachedMember(10)
		renamed.Name = newName
		inner.On("GetByID", ctx, uint64(10)).Return(cachedMember(10), nil).Once()
		inner.On("Update", ctx, uint64(10), entity.MemberPatch{Name: &newName}).Return(renamed, nil)

		_, err = repo.Update(ctx, 10, entity.MemberPatch{Name: &newName})
		assert.NoError(t, err)

		_, ok := store.Get(ctx, "member:name:member01")
		assert.False(t, ok)

		// the next read by the old name must go back to the store
		inner.On("GetByName", ctx, "member01").Return(nil, errs.NewMemberNotFoundByKey("name", "member01")).Once()
		_, err = repo.GetByName(ctx, "member01")
		assert.Equal(t, errs.KindMemberNotFound, errs.KindOf(err))
		inner.AssertExpectations(t)
	})

	t.Run("should not invalidate when the store rejects the patch", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, store := newCachedRepo(inner)

		inner.On("GetByID", ctx, uint64(10)).Return(cachedMember(10), nil)
		_, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)

		newName := "taken0001"
		inner.On("Update", ctx, uint64(10), mock.Anything).Return(nil, errs.NewDuplicate("member", "name", newName))

		_, err = repo.Update(ctx, 10, entity.MemberPatch{Name: &newName})
		assert.Equal(t, errs.KindDuplicate, errs.KindOf(err))

		_, ok := store.Get(ctx, "member:id:10")
		assert.True(t, ok)
	})
}

func TestCachedMemberRepositoryDelete(t *testing.T) {
	t.Run("should invalidate every identity key of the removed row", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, store := newCachedRepo(inner)

		inner.On("GetByID", ctx, uint64(10)).Return(cachedMember(10), nil)
		inner.On("GetByIP", ctx, "10.0.0.1").Return(cachedMember(10), nil)
		inner.On("GetByName", ctx, "member01").Return(cachedMember(10), nil)

		_, _ = repo.GetByID(ctx, 10)
		_, _ = repo.GetByIP(ctx, "10.0.0.1")
		_, _ = repo.GetByName(ctx, "member01")
		assert.Equal(t, 3, store.Len())

		inner.On("Delete", ctx, uint64(10)).Return(nil)
		assert.NoError(t, repo.Delete(ctx, 10))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("should pass through not found before touching the cache", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, _ := newCachedRepo(inner)

		inner.On("GetByID", ctx, uint64(99)).Return(nil, errs.NewMemberNotFound(99))

		err := repo.Delete(ctx, 99)
		assert.Equal(t, errs.KindMemberNotFound, errs.KindOf(err))
		inner.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCachedMemberRepositoryList(t *testing.T) {
	t.Run("should cache a page under its skip and limit", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, _ := newCachedRepo(inner)

		page := []*entity.Member{cachedMember(10), cachedMember(11)}
		inner.On("List", ctx, 0, 2).Return(page, nil).Once()

		first, err := repo.List(ctx, 0, 2)
		assert.NoError(t, err)
		assert.Len(t, first, 2)

		second, err := repo.List(ctx, 0, 2)
		assert.NoError(t, err)
		assert.Len(t, second, 2)
		assert.Equal(t, first[0].ID, second[0].ID)
		inner.AssertExpectations(t)
	})

	t.Run("should not cache an empty page", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, store := newCachedRepo(inner)

		inner.On("List", ctx, 100, 10).Return([]*entity.Member{}, nil).Twice()

		for i := 0; i < 2; i++ {
			got, err := repo.List(ctx, 100, 10)
			assert.NoError(t, err)
			assert.Empty(t, got)
		}
		assert.Equal(t, 0, store.Len())
		inner.AssertExpectations(t)
	})
}

func TestCachedMemberRepositoryAdjustBalance(t *testing.T) {
	t.Run("should invalidate the member's keys after the adjustment", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, store := newCachedRepo(inner)

		inner.On("GetByID", ctx, uint64(10)).Return(cachedMember(10), nil).Once()
		_, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)

		credited := cachedMember(10)
		credited.SetBalanceCents(7500)
		inner.On("AdjustBalance", ctx, uint64(10), int64(2500)).Return(credited, nil)

		got, err := repo.AdjustBalance(ctx, 10, 2500)
		assert.NoError(t, err)
		assert.Equal(t, int64(7500), got.Balance())

		// the stale snapshot is gone; the next read reflects the new balance
		inner.On("GetByID", ctx, uint64(10)).Return(credited, nil).Once()
		reread, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(7500), reread.Balance())

		raw, ok := store.Get(ctx, "member:id:10")
		assert.True(t, ok)
		assert.Contains(t, raw, `"balance_cents":7500`)
	})

	t.Run("should leave the cache alone when the adjustment fails", func(t *testing.T) {
		ctx := context.Background()
		inner := new(mockpersistence.MockMemberRepository)
		repo, store := newCachedRepo(inner)

		inner.On("GetByID", ctx, uint64(10)).Return(cachedMember(10), nil).Once()
		_, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)

		inner.On("AdjustBalance", ctx, uint64(10), int64(-999999)).
			Return(nil, errs.NewInsufficientBalance(10, "50.00", "9999.99"))

		_, err = repo.AdjustBalance(ctx, 10, -999999)
		assert.Equal(t, errs.KindInsufficientBalance, errs.KindOf(err))

		_, ok := store.Get(ctx, "member:id:10")
		assert.True(t, ok)
	})
}
