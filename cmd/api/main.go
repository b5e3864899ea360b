package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/catalog"
	"github.com/research-hours/backend/internal/config"
	"github.com/research-hours/backend/internal/db"
	"github.com/research-hours/backend/internal/events"
	"github.com/research-hours/backend/internal/hours"
	apphttp "github.com/research-hours/backend/internal/http"
	"github.com/research-hours/backend/internal/http/handlers"
	"github.com/research-hours/backend/internal/repositories"
	"github.com/research-hours/backend/internal/services"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	roleRepo := repositories.NewRoleRepo(pool)
	orgRepo := repositories.NewOrgRepo(pool)
	publicationRepo := repositories.NewPublicationRepo(pool)
	projectRepo := repositories.NewProjectRepo(pool)
	activityRepo := repositories.NewActivityRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)
	journalRepo := repositories.NewJournalRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	approvalService := services.NewApprovalService(pool, publicationRepo, projectRepo, activityRepo, userRepo, roleRepo, auditRepo, publisher, log)
	submissionService := services.NewSubmissionService(pool, publicationRepo, projectRepo, activityRepo, auditRepo, log)
	roleService := services.NewRoleService(roleRepo, userRepo, orgRepo, auditRepo, publisher, log)
	reportService := services.NewReportService(publicationRepo, projectRepo, activityRepo, hours.DefaultConfig, log)
	catalogParser := catalog.NewParser(cfg.CatalogFetchTimeoutMS, cfg.CatalogFetchMaxRetries, log)
	catalogService := services.NewCatalogService(journalRepo, catalogParser, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	userHandler := handlers.NewUserHandler(userRepo, cfg, log)
	itemHandler := handlers.NewItemHandler(submissionService, publicationRepo, projectRepo, activityRepo, auditRepo, userRepo, log)
	approvalHandler := handlers.NewApprovalHandler(approvalService, publicationRepo, projectRepo, activityRepo, log)
	adminHandler := handlers.NewAdminHandler(roleService, roleRepo, orgRepo, auditRepo, log)
	reportHandler := handlers.NewReportHandler(reportService, log)
	catalogHandler := handlers.NewCatalogHandler(catalogService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, userRepo, roleRepo,
		authHandler, userHandler, itemHandler, approvalHandler, adminHandler, reportHandler, catalogHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
