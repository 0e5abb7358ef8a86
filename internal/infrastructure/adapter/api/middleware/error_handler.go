package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/dto"
)

// ErrorHandler middleware recovers from panics and returns a standardized
// error response
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetHeader("X-Request-ID"),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					AppException: string(errs.KindUnknown),
					Context:      map[string]any{"message": "internal server error"},
				})
			}
		}()

		c.Next()
	}
}
