package dto

import (
	"time"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
)

// CreateMemberRequest is the body for POST /v1/members. IsActive defaults
// to true when absent.
type CreateMemberRequest struct {
	Name        string `json:"name" binding:"required"`
	IPAddress   string `json:"ipaddress" binding:"required"`
	URLReport   string `json:"urlreport"`
	PIN         string `json:"pin" binding:"required"`
	Password    string `json:"password" binding:"required"`
	IsActive    *bool  `json:"is_active"`
	AllowNoSign bool   `json:"allow_nosign"`
	Balance     string `json:"balance"`
}

// Active resolves the is_active flag, defaulting to true
func (r CreateMemberRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

// UpdateMemberRequest is the body for PATCH /v1/members/:memberId. Absent
// fields are left untouched.
type UpdateMemberRequest struct {
	Name        *string `json:"name"`
	IPAddress   *string `json:"ipaddress"`
	URLReport   *string `json:"urlreport"`
	PIN         *string `json:"pin"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"is_active"`
	AllowNoSign *bool   `json:"allow_nosign"`
}

// ToPatch converts the request into a domain patch
func (r UpdateMemberRequest) ToPatch() entity.MemberPatch {
	return entity.MemberPatch{
		Name:        r.Name,
		IPAddress:   r.IPAddress,
		URLReport:   r.URLReport,
		PIN:         r.PIN,
		Password:    r.Password,
		IsActive:    r.IsActive,
		AllowNoSign: r.AllowNoSign,
	}
}

// MemberResponse is the wire form of a member. Credentials are never
// echoed back.
type MemberResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	IPAddress   string    `json:"ipaddress"`
	URLReport   string    `json:"urlreport,omitempty"`
	IsActive    bool      `json:"is_active"`
	AllowNoSign bool      `json:"allow_nosign"`
	Balance     string    `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMemberResponse maps a member entity to its wire form
func NewMemberResponse(m *entity.Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		Name:        m.Name,
		IPAddress:   m.IPAddress,
		URLReport:   m.URLReport,
		IsActive:    m.IsActive,
		AllowNoSign: m.AllowNoSign,
		Balance:     m.FormattedBalance(),
		CreatedAt:   m.CreatedAt,
	}
}

// NewMemberListResponse maps a page of members to wire form
func NewMemberListResponse(members []*entity.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, NewMemberResponse(m))
	}
	return out
}
