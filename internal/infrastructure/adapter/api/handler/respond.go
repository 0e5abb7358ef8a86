package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rakapradana/member-gateway/internal/domain/entity"
	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/dto"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/middleware"
)

// currentUser returns the authenticated user, or nil on public routes
func currentUser(c *gin.Context) *entity.User {
	value, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.User)
	if !ok {
		return nil
	}
	return user
}

// respondError maps a domain error to the wire error envelope
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := errs.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
	}

	c.JSON(status, dto.ErrorResponse{
		AppException: string(errs.KindOf(err)),
		Context:      errs.ContextOf(err),
	})
}

// respondBadRequest reports a malformed request body or parameter
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		AppException: string(errs.KindValidation),
		Context:      map[string]any{"message": message},
	})
}
