package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	mockcore "github.com/rakapradana/member-gateway/mocks/port/core"
	mockpersistence "github.com/rakapradana/member-gateway/mocks/port/persistence"
)

func adminActor() *entity.User {
	return &entity.User{ID: 1, Username: "admin", IsActive: true, IsSuperuser: true}
}

func regularActor() *entity.User {
	return &entity.User{ID: 2, Username: "viewer", IsActive: true}
}

func testMember(balanceCents int64) *entity.Member {
	member := &entity.Member{
		ID:        10,
		Name:      "member01",
		IPAddress: "10.0.0.1",
		PIN:       "123456",
		Password:  "secret99",
		IsActive:  true,
	}
	member.SetBalanceCents(balanceCents)
	return member
}

func TestGetBalance(t *testing.T) {
	t.Run("should return the formatted balance for an admin", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		mockRepo.On("GetByID", ctx, uint64(10)).Return(testMember(5000), nil)

		svc := NewService(mockRepo, mockLogger)
		resp, err := svc.GetBalance(ctx, adminActor(), 10)

		assert.NoError(t, err)
		assert.Equal(t, uint64(10), resp.MemberID)
		assert.Equal(t, "50.00", resp.Balance)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should refuse a non-admin actor", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		svc := NewService(mockRepo, mockLogger)
		_, err := svc.GetBalance(context.Background(), regularActor(), 10)

		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("should pass through member not found", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		mockRepo.On("GetByID", ctx, uint64(99)).Return(nil, errs.NewMemberNotFound(99))

		svc := NewService(mockRepo, mockLogger)
		_, err := svc.GetBalance(ctx, adminActor(), 99)

		assert.Equal(t, errs.KindMemberNotFound, errs.KindOf(err))
	})
}

func TestAddBalance(t *testing.T) {
	t.Run("should credit the member", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		mockRepo.On("AdjustBalance", ctx, uint64(10), int64(5000)).Return(testMember(5000), nil)
		mockLogger.On("Info", "Balance credited", mock.Anything).Return()

		svc := NewService(mockRepo, mockLogger)
		member, err := svc.AddBalance(ctx, adminActor(), 10, "50.00")

		assert.NoError(t, err)
		assert.Equal(t, "50.00", member.FormattedBalance())
		mockRepo.AssertExpectations(t)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should reject zero amounts", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		svc := NewService(mockRepo, mockLogger)
		_, err := svc.AddBalance(context.Background(), adminActor(), 10, "0.00")

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		mockRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject malformed amounts", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		svc := NewService(mockRepo, mockLogger)
		_, err := svc.AddBalance(context.Background(), adminActor(), 10, "fifty")

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should refuse a non-admin actor", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		svc := NewService(mockRepo, mockLogger)
		_, err := svc.AddBalance(context.Background(), regularActor(), 10, "50.00")

		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})
}

func TestDeductBalance(t *testing.T) {
	t.Run("should debit when the balance covers the amount", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		mockRepo.On("AdjustBalance", ctx, uint64(10), int64(-5000)).Return(testMember(0), nil)
		mockLogger.On("Info", "Balance debited", mock.Anything).Return()

		svc := NewService(mockRepo, mockLogger)
		member, err := svc.DeductBalance(ctx, adminActor(), 10, "50.00")

		assert.NoError(t, err)
		assert.Equal(t, "0.00", member.FormattedBalance())
		mockLogger.AssertExpectations(t)
	})

	t.Run("should surface insufficient balance untouched", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		mockRepo.On("AdjustBalance", ctx, uint64(10), int64(-7000)).
			Return(nil, errs.NewInsufficientBalance(10, "50.00", "70.00"))

		svc := NewService(mockRepo, mockLogger)
		_, err := svc.DeductBalance(ctx, adminActor(), 10, "70.00")

		assert.Equal(t, errs.KindInsufficientBalance, errs.KindOf(err))
		ctxMap := errs.ContextOf(err)
		assert.Equal(t, "50.00", ctxMap["current_balance"])
		assert.Equal(t, "70.00", ctxMap["requested_amount"])
	})

	t.Run("should reject negative amounts before touching the store", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		svc := NewService(mockRepo, mockLogger)
		_, err := svc.DeductBalance(context.Background(), adminActor(), 10, "-50.00")

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		mockRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})
}

// Ledger walk from a fresh member: credit 50, bounce a 70 debit, then
// drain the remaining 50.
func TestBalanceLifecycle(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mockpersistence.MockMemberRepository)
	mockLogger := new(mockcore.MockLogger)
	mockLogger.On("Info", mock.Anything, mock.Anything).Return()

	mockRepo.On("AdjustBalance", ctx, uint64(10), int64(5000)).Return(testMember(5000), nil).Once()
	mockRepo.On("AdjustBalance", ctx, uint64(10), int64(-7000)).
		Return(nil, errs.NewInsufficientBalance(10, "50.00", "70.00")).Once()
	mockRepo.On("AdjustBalance", ctx, uint64(10), int64(-5000)).Return(testMember(0), nil).Once()

	svc := NewService(mockRepo, mockLogger)

	credited, err := svc.AddBalance(ctx, adminActor(), 10, "50.00")
	assert.NoError(t, err)
	assert.Equal(t, "50.00", credited.FormattedBalance())

	_, err = svc.DeductBalance(ctx, adminActor(), 10, "70.00")
	assert.Equal(t, errs.KindInsufficientBalance, errs.KindOf(err))

	drained, err := svc.DeductBalance(ctx, adminActor(), 10, "50.00")
	assert.NoError(t, err)
	assert.Equal(t, "0.00", drained.FormattedBalance())

	mockRepo.AssertExpectations(t)
}
