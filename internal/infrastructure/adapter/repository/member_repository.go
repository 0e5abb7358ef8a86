package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/persistence"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/model"
)

// MemberRepository implements persistence.MemberRepository using GORM
type MemberRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewMemberRepository creates a new MemberRepository instance
func NewMemberRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) persistence.MemberRepository {
	return &MemberRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// modelToEntity converts a member model to an entity
func memberModelToEntity(m *model.Member) *entity.Member {
	urlReport := ""
	if m.URLReport != nil {
		urlReport = *m.URLReport
	}
	member := &entity.Member{
		ID:          m.ID,
		Name:        m.Name,
		IPAddress:   m.IPAddress,
		URLReport:   urlReport,
		PIN:         m.PIN,
		Password:    m.Password,
		IsActive:    m.IsActive != nil && *m.IsActive,
		AllowNoSign: m.AllowNoSign,
		CreatedAt:   m.CreatedAt,
	}
	member.SetBalanceCents(m.Balance)
	return member
}

// entityToModel converts a member entity to the database model
func memberEntityToModel(member *entity.Member) *model.Member {
	var urlReport *string
	if member.URLReport != "" {
		u := member.URLReport
		urlReport = &u
	}
	isActive := member.IsActive
	return &model.Member{
		ID:          member.ID,
		Name:        member.Name,
		IPAddress:   member.IPAddress,
		URLReport:   urlReport,
		PIN:         member.PIN,
		Password:    member.Password,
		IsActive:    &isActive,
		AllowNoSign: member.AllowNoSign,
		Balance:     member.Balance(),
		CreatedAt:   member.CreatedAt,
	}
}

// GetByID retrieves a member by primary key
func (r *MemberRepository) GetByID(ctx context.Context, id uint64) (*entity.Member, error) {
	var m model.Member
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewMemberNotFound(id)
		}
		return nil, r.databaseError("getting member", result.Error)
	}
	return memberModelToEntity(&m), nil
}

// GetByIP retrieves a member by IP address
func (r *MemberRepository) GetByIP(ctx context.Context, ip string) (*entity.Member, error) {
	var m model.Member
	result := r.db.WithContext(ctx).Where("ip_address = ?", ip).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewMemberNotFoundByKey("ipaddress", ip)
		}
		return nil, r.databaseError("getting member by ip", result.Error)
	}
	return memberModelToEntity(&m), nil
}

// GetByName retrieves a member by unique name
func (r *MemberRepository) GetByName(ctx context.Context, name string) (*entity.Member, error) {
	var m model.Member
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewMemberNotFoundByKey("name", name)
		}
		return nil, r.databaseError("getting member by name", result.Error)
	}
	return memberModelToEntity(&m), nil
}

// Create persists a new member and returns it with the assigned ID
func (r *MemberRepository) Create(ctx context.Context, member *entity.Member) (*entity.Member, error) {
	m := memberEntityToModel(member)
	m.UpdatedAt = r.timeProvider.Now()

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate member name", map[string]any{
				"name": member.Name,
			})
			return nil, errs.NewDuplicate("member", "name", member.Name)
		}
		return nil, r.databaseError("creating member", result.Error)
	}

	return memberModelToEntity(m), nil
}

// Update applies the non-nil patch fields and returns the updated member
func (r *MemberRepository) Update(ctx context.Context, id uint64, patch entity.MemberPatch) (*entity.Member, error) {
	columns := map[string]interface{}{
		"updated_at": r.timeProvider.Now(),
	}
	if patch.Name != nil {
		columns["name"] = *patch.Name
	}
	if patch.IPAddress != nil {
		columns["ip_address"] = *patch.IPAddress
	}
	if patch.URLReport != nil {
		if *patch.URLReport == "" {
			columns["url_report"] = nil
		} else {
			columns["url_report"] = *patch.URLReport
		}
	}
	if patch.PIN != nil {
		columns["pin"] = *patch.PIN
	}
	if patch.Password != nil {
		columns["password"] = *patch.Password
	}
	if patch.IsActive != nil {
		columns["is_active"] = *patch.IsActive
	}
	if patch.AllowNoSign != nil {
		columns["allow_no_sign"] = *patch.AllowNoSign
	}

	result := r.db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			name := ""
			if patch.Name != nil {
				name = *patch.Name
			}
			return nil, errs.NewDuplicate("member", "name", name)
		}
		return nil, r.databaseError("updating member", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewMemberNotFound(id)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a member permanently
func (r *MemberRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Member{}, id)
	if result.Error != nil {
		return r.databaseError("deleting member", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewMemberNotFound(id)
	}
	return nil
}

// List returns members ordered by id for stable pagination
func (r *MemberRepository) List(ctx context.Context, skip, limit int) ([]*entity.Member, error) {
	var rows []model.Member
	result := r.db.WithContext(ctx).Order("id").Offset(skip).Limit(limit).Find(&rows)
	if result.Error != nil {
		return nil, r.databaseError("listing members", result.Error)
	}

	members := make([]*entity.Member, 0, len(rows))
	for i := range rows {
		members = append(members, memberModelToEntity(&rows[i]))
	}
	return members, nil
}

// AdjustBalance applies a signed delta to the member's balance inside a
// transaction holding a FOR UPDATE row lock, so concurrent adjustments to
// one member serialize. A delta that would take the balance negative fails
// with InsufficientBalance and leaves the row untouched.
func (r *MemberRepository) AdjustBalance(ctx context.Context, id uint64, deltaCents int64) (*entity.Member, error) {
	var member *entity.Member

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Member
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.NewMemberNotFound(id)
			}
			return result.Error
		}

		newBalance := m.Balance + deltaCents
		if newBalance < 0 {
			r.logger.Warn("Insufficient balance for debit", map[string]any{
				"member_id":        id,
				"current_balance":  entity.FormatCents(m.Balance),
				"requested_change": entity.FormatCents(-deltaCents),
			})
			return errs.NewInsufficientBalance(id, entity.FormatCents(m.Balance), entity.FormatCents(-deltaCents))
		}

		m.Balance = newBalance
		m.UpdatedAt = r.timeProvider.Now()

		result = tx.Model(&m).Updates(map[string]interface{}{
			"balance":    m.Balance,
			"updated_at": m.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}

		member = memberModelToEntity(&m)
		return nil
	})

	if err != nil {
		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if isLockError(err) {
			r.logger.Warn("Balance adjustment lost a lock race", map[string]any{
				"member_id": id,
				"error":     err.Error(),
			})
		}
		return nil, r.databaseError("adjusting balance", err)
	}

	return member, nil
}

func (r *MemberRepository) databaseError(operation string, err error) error {
	r.logger.Error("Database error when "+operation, map[string]any{
		"error": err.Error(),
	})
	return errs.NewDatabase(err)
}
