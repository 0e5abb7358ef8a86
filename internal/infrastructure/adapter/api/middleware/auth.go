package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/dto"
)

// CurrentUserKey is the context key the authenticated user is stored under
const CurrentUserKey = "currentUser"

// Auth middleware validates the bearer token and resolves the acting user.
// Requests without a valid token are rejected before reaching handlers.
func Auth(authUseCase usecase.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				AppException: string(errs.KindInvalidToken),
				Context:      map[string]any{"message": "missing bearer token"},
			})
			return
		}

		user, err := authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(errs.StatusOf(err), dto.ErrorResponse{
				AppException: string(errs.KindOf(err)),
				Context:      errs.ContextOf(err),
			})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}
