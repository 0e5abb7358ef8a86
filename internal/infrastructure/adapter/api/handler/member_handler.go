package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/dto"
)

// MemberHandler handles member CRUD requests
type MemberHandler struct {
	memberUseCase usecase.MemberUseCase
	logger        coreport.Logger
}

// NewMemberHandler creates a new member handler instance
func NewMemberHandler(memberUseCase usecase.MemberUseCase, logger coreport.Logger) *MemberHandler {
	return &MemberHandler{
		memberUseCase: memberUseCase,
		logger:        logger,
	}
}

// Create handles the POST /v1/members endpoint
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid member payload")
		return
	}

	member, err := h.memberUseCase.CreateMember(c.Request.Context(), currentUser(c), usecase.CreateMemberInput{
		Name:        req.Name,
		IPAddress:   req.IPAddress,
		URLReport:   req.URLReport,
		PIN:         req.PIN,
		Password:    req.Password,
		IsActive:    req.Active(),
		AllowNoSign: req.AllowNoSign,
		Balance:     req.Balance,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewMemberResponse(member))
}

// Get handles the GET /v1/members/:memberId endpoint
func (h *MemberHandler) Get(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}

	member, err := h.memberUseCase.GetMember(c.Request.Context(), currentUser(c), memberID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMemberResponse(member))
}

// Update handles the PATCH /v1/members/:memberId endpoint
func (h *MemberHandler) Update(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid member payload")
		return
	}

	member, err := h.memberUseCase.UpdateMember(c.Request.Context(), currentUser(c), memberID, req.ToPatch())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMemberResponse(member))
}

// Delete handles the DELETE /v1/members/:memberId endpoint
func (h *MemberHandler) Delete(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}

	if err := h.memberUseCase.DeleteMember(c.Request.Context(), currentUser(c), memberID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List handles the GET /v1/members endpoint with skip/limit pagination
func (h *MemberHandler) List(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		respondBadRequest(c, "skip must be an integer")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		respondBadRequest(c, "limit must be an integer")
		return
	}

	members, err := h.memberUseCase.ListMembers(c.Request.Context(), currentUser(c), skip, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMemberListResponse(members))
}

func memberIDParam(c *gin.Context) (uint64, bool) {
	memberID, err := strconv.ParseUint(c.Param("memberId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid member ID format")
		return 0, false
	}
	return memberID, true
}
