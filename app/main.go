package main

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"checksheet-system/internal/repositories"
	"checksheet-system/internal/routes"
	"checksheet-system/internal/services"
	"checksheet-system/migrations"
	"checksheet-system/pkg/config"
	"checksheet-system/pkg/customvalidator"
	"checksheet-system/pkg/database/postgresql"
	apperrors "checksheet-system/pkg/errors"
	applogger "checksheet-system/pkg/logger"
	"checksheet-system/pkg/middleware"
	"checksheet-system/pkg/service"
	"checksheet-system/pkg/utils"
)

func main() {
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{"Content-Disposition"},
	}))
	e.Use(middleware.RequestLogger(logger))

	uploadsPath, err := filepath.Abs(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("failed to resolve uploads path", zap.Error(err))
	}
	e.Static("/uploads", uploadsPath)

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("failed to register custom validations", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	ctx := context.Background()

	if err := postgresql.Migrate(cfg.Postgres.DSN, migrations.FS); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	dbConn, err := postgresql.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	permissionRepo := repositories.NewPermissionRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	authPermissionService := services.NewAuthPermissionService(permissionRepo, cacheRepo, logger, cfg.PermissionsCacheTTL)

	loggers := &routes.Loggers{
		Main:       logger,
		Auth:       logger.Named("auth"),
		Checksheet: logger.Named("checksheet"),
		User:       logger.Named("user"),
		Report:     logger.Named("report"),
	}
	if err := routes.InitRouter(e, dbConn, jwtSvc, authPermissionService, loggers, cfg); err != nil {
		logger.Fatal("failed to initialize routes", zap.Error(err))
	}

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
