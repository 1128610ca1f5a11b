package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shopgate.backend/internal/config"
	"shopgate.backend/internal/infrastructure/models"
	"shopgate.backend/internal/infrastructure/repositories"
	"shopgate.backend/internal/interfaces/http/handlers"
	"shopgate.backend/internal/interfaces/http/middleware"
	"shopgate.backend/internal/usecases"
	"shopgate.backend/pkg/jwt"
	"shopgate.backend/pkg/logger"
	"shopgate.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Role{}, &models.User{}, &models.ApiKey{}, &models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := repositories.SeedRoles(context.Background(), db); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	productRepo := repositories.NewProductRepository(db)

	authUsecase := usecases.NewAuthUsecase(userRepo, roleRepo, jwtService)
	principalUsecase := usecases.NewPrincipalUsecase(userRepo, apiKeyRepo, jwtService)
	authzUsecase := usecases.NewAuthzUsecase(roleRepo)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, roleRepo)
	userUsecase := usecases.NewUserUsecase(userRepo, roleRepo)
	productUsecase := usecases.NewProductUsecase(productRepo)

	loginLimiter := redis.NewLoginLimiter(redis.GetClient(), cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	registerAPIV1Routes(r, routeDeps{
		authHandler:    handlers.NewAuthHandler(authUsecase),
		userHandler:    handlers.NewUserHandler(userUsecase),
		apiKeyHandler:  handlers.NewApiKeyHandler(apiKeyUsecase),
		productHandler: handlers.NewProductHandler(productUsecase, authzUsecase),
		authzUsecase:   authzUsecase,
		authenticate:   middleware.Authenticate(principalUsecase),
		loginLimit:     middleware.LoginRateLimit(loginLimiter),
	})

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
