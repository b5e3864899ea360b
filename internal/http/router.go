package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/config"
	"github.com/research-hours/backend/internal/http/handlers"
	"github.com/research-hours/backend/internal/middleware"
	"github.com/research-hours/backend/internal/repositories"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	userRepo *repositories.UserRepo,
	roleRepo *repositories.RoleRepo,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	itemHandler *handlers.ItemHandler,
	approvalHandler *handlers.ApprovalHandler,
	adminHandler *handlers.AdminHandler,
	reportHandler *handlers.ReportHandler,
	catalogHandler *handlers.CatalogHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitMax, cfg.RateLimitWindow))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, userRepo, roleRepo, log))

	// Session
	protected.Get("/me", userHandler.GetMe)
	protected.Put("/me/profile", userHandler.UpdateProfile)
	protected.Post("/me/password", userHandler.ChangePassword)
	protected.Post("/me/context", userHandler.SwitchContext)

	// Directory (read-only for everyone)
	protected.Get("/units", adminHandler.ListUnits)
	protected.Get("/divisions", adminHandler.ListDivisions)

	// Journal catalog lookups
	protected.Get("/catalog/journals", catalogHandler.SearchJournals)
	protected.Get("/catalog/domestic-journals", catalogHandler.SearchDomestic)

	// Reports
	protected.Get("/reports/me", reportHandler.MyReport)

	// Publications
	protected.Post("/publications", itemHandler.CreatePublication)
	protected.Get("/publications", itemHandler.ListMyPublications)
	protected.Get("/publications/:id", itemHandler.GetPublication)
	protected.Put("/publications/:id", itemHandler.UpdatePublication)
	protected.Get("/publications/:id/hours", reportHandler.PublicationHours)

	// Projects
	protected.Post("/projects", itemHandler.CreateProject)
	protected.Get("/projects", itemHandler.ListMyProjects)
	protected.Get("/projects/:id", itemHandler.GetProject)
	protected.Put("/projects/:id", itemHandler.UpdateProject)
	protected.Get("/projects/:id/hours", reportHandler.ProjectHours)

	// Activities
	protected.Post("/activities", itemHandler.CreateActivity)
	protected.Get("/activities", itemHandler.ListMyActivities)
	protected.Get("/activities/:id", itemHandler.GetActivity)
	protected.Put("/activities/:id", itemHandler.UpdateActivity)

	// Kind-generic item operations; :kind is publications, projects or
	// activities and is validated in the handler.
	protected.Post("/:kind/:id/submit", itemHandler.Submit)
	protected.Get("/:kind/:id/history", itemHandler.History)
	protected.Delete("/:kind/:id", itemHandler.Delete)

	// Admin desk: any effective admin level
	admin := protected.Group("/admin", middleware.AdminMiddleware())
	admin.Get("/users", userHandler.ListUsers)
	admin.Get("/reports/users/:id", reportHandler.UserReport)

	// University-only management
	uni := admin.Group("", middleware.UniversityMiddleware())
	uni.Post("/roles", adminHandler.GrantRole)
	uni.Get("/roles", adminHandler.ListRoles)
	uni.Post("/roles/:id/revoke", adminHandler.RevokeRole)
	uni.Post("/roles/:id/toggle", adminHandler.ToggleRole)
	uni.Delete("/roles/:id", adminHandler.DeleteRole)
	uni.Get("/permission-logs", adminHandler.PermissionLogs)
	uni.Post("/units", adminHandler.CreateUnit)
	uni.Put("/units/:id", adminHandler.UpdateUnit)
	uni.Post("/divisions", adminHandler.CreateDivision)
	uni.Put("/divisions/:id", adminHandler.UpdateDivision)
	uni.Post("/catalog/journals/import", catalogHandler.ImportJournals)
	uni.Post("/catalog/domestic-journals/import", catalogHandler.ImportDomestic)

	// Approval queues and actions, registered after the static admin routes
	// so the :kind segment never shadows them.
	admin.Get("/:kind/pending", approvalHandler.Pending)
	admin.Get("/:kind", approvalHandler.ListScoped)
	admin.Post("/:kind/approve-all", approvalHandler.ApproveAll)
	admin.Post("/:kind/:id/approve", approvalHandler.Approve)
	admin.Post("/:kind/:id/return", approvalHandler.Return)
	admin.Post("/:kind/:id/reject", approvalHandler.Reject)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
