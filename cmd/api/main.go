package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	authUseCase "github.com/rakapradana/member-gateway/internal/domain/usecase/auth"
	balanceUseCase "github.com/rakapradana/member-gateway/internal/domain/usecase/balance"
	memberUseCase "github.com/rakapradana/member-gateway/internal/domain/usecase/member"
	userUseCase "github.com/rakapradana/member-gateway/internal/domain/usecase/user"

	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
	"github.com/rakapradana/member-gateway/internal/domain/port/usecase"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/handler"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/api/routes"
	jwtauth "github.com/rakapradana/member-gateway/internal/infrastructure/adapter/auth"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/cache"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/database"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/database/migration"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/logger"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/repository"
	"github.com/rakapradana/member-gateway/internal/infrastructure/adapter/security"
	timeProvider "github.com/rakapradana/member-gateway/internal/infrastructure/adapter/time"
	"github.com/rakapradana/member-gateway/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
	}

	conn, err := database.NewConnection(dbConfig, tp, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	migrator := migration.NewMigrator(conn.DB, appLogger)
	if err := migrator.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	memberCache, err := cache.New(cache.Options{
		Backend:       cfg.Cache.Backend,
		MaxSize:       cfg.Cache.MaxSize,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize cache", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Repositories; member reads go through the cache decorator
	memberRepo := repository.NewMemberRepository(conn.DB, tp, appLogger)
	cachedMemberRepo := repository.NewCachedMemberRepository(memberRepo, memberCache, cfg.Cache.TTL, appLogger)
	userRepo := repository.NewUserRepository(conn.DB, tp, appLogger)

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokenCodec := jwtauth.NewJWTCodec(cfg.Auth.SecretKey, cfg.Auth.TokenTTL, tp)

	// Use cases
	userService := userUseCase.NewService(userRepo, hasher, tp, appLogger)
	authService := authUseCase.NewService(userRepo, hasher, tokenCodec, appLogger)
	memberService := memberUseCase.NewService(cachedMemberRepo, tp, appLogger)
	balanceService := balanceUseCase.NewService(cachedMemberRepo, appLogger)

	// Seed the bootstrap admin
	if err := userService.SeedAdmin(context.Background(), usecase.AdminSeed{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}); err != nil {
		appLogger.Error("Failed to seed admin user", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// API handlers
	authHandler := handler.NewAuthHandler(authService, appLogger)
	memberHandler := handler.NewMemberHandler(memberService, appLogger)
	userHandler := handler.NewUserHandler(userService, appLogger)
	balanceHandler := handler.NewBalanceHandler(balanceService, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, authService, authHandler, memberHandler, userHandler, balanceHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missing = append(missing, "database.host (or MG_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missing = append(missing, "database.username (or MG_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missing = append(missing, "database.password (or MG_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missing = append(missing, "database.database (or MG_DB_NAME environment variable)")
	}

	if cfg.Auth.SecretKey == "" {
		missing = append(missing, "auth.secretKey (or MG_AUTH_SECRET_KEY environment variable)")
	}
	if cfg.Auth.TokenTTL == 0 {
		missing = append(missing, "auth.tokenTTL")
	}

	if cfg.Admin.Password == "" {
		missing = append(missing, "admin.password (or MG_ADMIN_PASSWORD environment variable)")
	}

	if cfg.Cache.Backend == "redis" && cfg.Cache.RedisAddr == "" {
		missing = append(missing, "cache.redisAddr (or MG_CACHE_REDIS_ADDR environment variable)")
	}

	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	return nil
}
