package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-service/internal/api/http"
	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/identity"
	"github.com/spec-kit/user-service/internal/observability"
	"github.com/spec-kit/user-service/internal/persistence"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/internal/service"
	"github.com/spec-kit/user-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics(cfg.App.Name)
	metricsServer := observability.NewMetricsServer(cfg.Metrics, metrics, logger)
	metricsServer.Start()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	suspensionRepo := repository.NewSuspensionRepository(pool)
	recoveryRepo := repository.NewRecoveryTokenRepository(redis.Client, cfg.Auth.BcryptCost)

	verifier, err := identity.NewJWKSVerifier(cfg.Identity, logger)
	if err != nil {
		logger.Fatal("failed to init identity verifier", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:       userRepo,
		AdminRepo:      adminRepo,
		SuspensionRepo: suspensionRepo,
		Verifier:       verifier,
	}, logger)
	registerService := service.NewRegisterService(userRepo, adminRepo, dispatcher, logger)
	profileService := service.NewProfileService(userRepo, adminRepo, dispatcher, logger)
	suspensionService := service.NewSuspensionService(userRepo, suspensionRepo, dispatcher, logger)
	directoryService := service.NewDirectoryService(userRepo)
	exportService := service.NewExportService(userRepo)
	recoveryService := service.NewRecoveryService(cfg.Auth, userRepo, recoveryRepo, dispatcher, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), suspensionRepo, logger)
	identityGate := auth.NewIdentityGate(verifier, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pool.Ping, redis.Ping),
		Auth:           handlers.NewAuthHandler(authService, registerService),
		Profiles:       handlers.NewProfileHandler(profileService),
		Suspensions:    handlers.NewSuspensionHandler(suspensionService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		Export:         handlers.NewExportHandler(exportService),
		Recovery:       handlers.NewRecoveryHandler(recoveryService),
		AuthMiddleware: authMiddleware,
		IdentityGate:   identityGate,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
