package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/dto"
)

// BalanceHandler handles balance ledger requests
type BalanceHandler struct {
	balanceUseCase usecase.BalanceUseCase
	logger         coreport.Logger
}

// NewBalanceHandler creates a new balance handler instance
func NewBalanceHandler(balanceUseCase usecase.BalanceUseCase, logger coreport.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceUseCase: balanceUseCase,
		logger:         logger,
	}
}

// GetBalance handles the GET /v1/members/:memberId/balance endpoint
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}

	balance, err := h.balanceUseCase.GetBalance(c.Request.Context(), currentUser(c), memberID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		MemberID: balance.MemberID,
		Balance:  balance.Balance,
	})
}

// AddBalance handles the POST /v1/members/:memberId/balance/add endpoint
func (h *BalanceHandler) AddBalance(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "amount is required")
		return
	}

	member, err := h.balanceUseCase.AddBalance(c.Request.Context(), currentUser(c), memberID, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		MemberID: member.ID,
		Balance:  member.FormattedBalance(),
	})
}

// DeductBalance handles the POST /v1/members/:memberId/balance/deduct endpoint
func (h *BalanceHandler) DeductBalance(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "amount is required")
		return
	}

	member, err := h.balanceUseCase.DeductBalance(c.Request.Context(), currentUser(c), memberID, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		MemberID: member.ID,
		Balance:  member.FormattedBalance(),
	})
}

// CheckBalance handles the public POST /v1/balance/check endpoint
func (h *BalanceHandler) CheckBalance(c *gin.Context) {
	var req dto.CheckBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name, pin and password are required")
		return
	}

	balance, err := h.balanceUseCase.CheckBalance(c.Request.Context(), usecase.CheckBalanceInput{
		Name:     req.Name,
		PIN:      req.PIN,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		MemberID: balance.MemberID,
		Balance:  balance.Balance,
	})
}

// CheckBalanceSigned handles the public POST /v1/balance/check-sign endpoint
func (h *BalanceHandler) CheckBalanceSigned(c *gin.Context) {
	var req dto.CheckBalanceSignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	balance, err := h.balanceUseCase.CheckBalanceSigned(c.Request.Context(), usecase.CheckBalanceSignedInput{
		Name: req.Name,
		Sign: req.Sign,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		MemberID: balance.MemberID,
		Balance:  balance.Balance,
	})
}
