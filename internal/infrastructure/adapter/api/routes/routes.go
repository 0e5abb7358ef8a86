package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/handler"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	authUseCase usecase.AuthUseCase,
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	userHandler *handler.UserHandler,
	balanceHandler *handler.BalanceHandler,
) {
	// Public routes
	router.POST("/auth/login", authHandler.Login)

	v1 := router.Group("/v1")
	{
		// Public member-facing balance inquiries
		v1.POST("/balance/check", balanceHandler.CheckBalance)
		v1.POST("/balance/check-sign", balanceHandler.CheckBalanceSigned)

		// Registration is open; everything else under /v1 needs a token
		v1.POST("/users", userHandler.Create)

		authed := v1.Group("")
		authed.Use(middleware.Auth(authUseCase))
		{
			authed.GET("/users/:userId", userHandler.Get)
			authed.PATCH("/users/:userId", userHandler.Update)
			authed.DELETE("/users/:userId", userHandler.Delete)

			authed.POST("/members", memberHandler.Create)
			authed.GET("/members", memberHandler.List)
			authed.GET("/members/:memberId", memberHandler.Get)
			authed.PATCH("/members/:memberId", memberHandler.Update)
			authed.DELETE("/members/:memberId", memberHandler.Delete)

			authed.GET("/members/:memberId/balance", balanceHandler.GetBalance)
			authed.POST("/members/:memberId/balance/add", balanceHandler.AddBalance)
			authed.POST("/members/:memberId/balance/deduct", balanceHandler.DeductBalance)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
