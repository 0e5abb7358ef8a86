package member

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
	mockcore "github.com/rakapradana/member-gateway/mocks/port/core"
	mockpersistence "github.com/rakapradana/member-gateway/mocks/port/persistence"
)

func adminActor() *entity.User {
	return &entity.User{ID: 1, Username: "admin", IsActive: true, IsSuperuser: true}
}

func regularActor() *entity.User {
	return &entity.User{ID: 2, Username: "viewer", IsActive: true}
}

func fixedTimeProvider() *mockcore.MockTimeProvider {
	tp := new(mockcore.MockTimeProvider)
	tp.On("Now").Return(time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC))
	return tp
}

func validCreateInput() usecase.CreateMemberInput {
	return usecase.CreateMemberInput{
		Name:      "member01",
		IPAddress: "10.0.0.1",
		PIN:       "123456",
		Password:  "secret99",
		IsActive:  true,
		Balance:   "50.00",
	}
}

func TestCreateMember(t *testing.T) {
	t.Run("should create a member with a starting balance", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)
		mockLogger.On("Info", "Member created", mock.Anything).Return()

		created := &entity.Member{ID: 10, Name: "member01", IPAddress: "10.0.0.1", PIN: "123456", Password: "secret99", IsActive: true}
		created.SetBalanceCents(5000)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(m *entity.Member) bool {
			return m.Name == "member01" && m.Balance() == 5000
		})).Return(created, nil)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		got, err := svc.CreateMember(ctx, adminActor(), validCreateInput())

		assert.NoError(t, err)
		assert.Equal(t, uint64(10), got.ID)
		assert.Equal(t, "50.00", got.FormattedBalance())
		mockRepo.AssertExpectations(t)
	})

	t.Run("should default the balance to zero", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)
		mockLogger.On("Info", "Member created", mock.Anything).Return()

		input := validCreateInput()
		input.Balance = ""

		created := &entity.Member{ID: 11, Name: "member01", IPAddress: "10.0.0.1"}
		mockRepo.On("Create", ctx, mock.MatchedBy(func(m *entity.Member) bool {
			return m.Balance() == 0
		})).Return(created, nil)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		got, err := svc.CreateMember(ctx, adminActor(), input)

		assert.NoError(t, err)
		assert.Equal(t, "0.00", got.FormattedBalance())
	})

	t.Run("should refuse a non-admin actor", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		_, err := svc.CreateMember(context.Background(), regularActor(), validCreateInput())

		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should reject invalid fields before touching the store", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		input := validCreateInput()
		input.PIN = "12"

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		_, err := svc.CreateMember(context.Background(), adminActor(), input)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should surface duplicate names", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		mockRepo.On("Create", ctx, mock.Anything).Return(nil, errs.NewDuplicate("member", "name", "member01"))

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		_, err := svc.CreateMember(ctx, adminActor(), validCreateInput())

		assert.Equal(t, errs.KindDuplicate, errs.KindOf(err))
	})
}

func TestUpdateMember(t *testing.T) {
	t.Run("should apply a partial patch", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)
		mockLogger.On("Info", "Member updated", mock.Anything).Return()

		newName := "renamed01"
		patch := entity.MemberPatch{Name: &newName}

		updated := &entity.Member{ID: 10, Name: "renamed01", IPAddress: "10.0.0.1"}
		mockRepo.On("Update", ctx, uint64(10), patch).Return(updated, nil)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		got, err := svc.UpdateMember(ctx, adminActor(), 10, patch)

		assert.NoError(t, err)
		assert.Equal(t, "renamed01", got.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should reject an empty patch", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		_, err := svc.UpdateMember(context.Background(), adminActor(), 10, entity.MemberPatch{})

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should validate patched fields", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		badIP := "not-an-ip"
		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		_, err := svc.UpdateMember(context.Background(), adminActor(), 10, entity.MemberPatch{IPAddress: &badIP})

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should refuse a non-admin actor", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		name := "renamed01"
		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		_, err := svc.UpdateMember(context.Background(), regularActor(), 10, entity.MemberPatch{Name: &name})

		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})
}

func TestDeleteMember(t *testing.T) {
	t.Run("should delete an existing member", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)
		mockLogger.On("Info", "Member deleted", mock.Anything).Return()

		mockRepo.On("Delete", ctx, uint64(10)).Return(nil)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		assert.NoError(t, svc.DeleteMember(ctx, adminActor(), 10))
		mockRepo.AssertExpectations(t)
	})

	t.Run("should pass through not found", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		mockRepo.On("Delete", ctx, uint64(99)).Return(errs.NewMemberNotFound(99))

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		err := svc.DeleteMember(ctx, adminActor(), 99)

		assert.Equal(t, errs.KindMemberNotFound, errs.KindOf(err))
	})
}

func TestListMembers(t *testing.T) {
	t.Run("should page through members", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		page := []*entity.Member{
			{ID: 3, Name: "member03"},
			{ID: 4, Name: "member04"},
		}
		mockRepo.On("List", ctx, 2, 2).Return(page, nil)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		got, err := svc.ListMembers(ctx, adminActor(), 2, 2)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, uint64(3), got[0].ID)
	})

	t.Run("should apply the default limit when zero", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		mockRepo.On("List", ctx, 0, defaultListLimit).Return([]*entity.Member{}, nil)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		_, err := svc.ListMembers(ctx, adminActor(), 0, 0)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should reject negative skip", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		_, err := svc.ListMembers(context.Background(), adminActor(), -1, 10)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should refuse a non-admin actor", func(t *testing.T) {
		mockRepo := new(mockpersistence.MockMemberRepository)
		mockLogger := new(mockcore.MockLogger)

		svc := NewService(mockRepo, fixedTimeProvider(), mockLogger)
		_, err := svc.ListMembers(context.Background(), regularActor(), 0, 10)

		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})
}
