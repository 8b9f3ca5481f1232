package main

import (
	"log"
	"strings"

	"scraptrack-backend/internal/audit"
	"scraptrack-backend/internal/auth"
	"scraptrack-backend/internal/cache"
	"scraptrack-backend/internal/config"
	"scraptrack-backend/internal/database"
	"scraptrack-backend/internal/endpiece"
	"scraptrack-backend/internal/job"
	"scraptrack-backend/internal/models"
	"scraptrack-backend/internal/provision"
	"scraptrack-backend/internal/queue"
	"scraptrack-backend/internal/report"
	"scraptrack-backend/internal/scrap"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	cache.Init(cfg.RedisAddr)
	queue.Init(cfg.RabbitMQURL)
	scrap.SetStatsCacheTTL(cfg.StatsCacheTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin: user provisioning + audit trail
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/users", provision.CreateUserHandler())

	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Cutting jobs
	protected.Post("/jobs", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), job.CreateJobHandler())
	protected.Get("/jobs", job.ListJobsHandler())
	protected.Get("/jobs/:id", job.GetJobHandler())
	protected.Put("/jobs/:id/status", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), job.UpdateJobStatusHandler())

	// Scrap entries. /stats must be registered before /:id.
	protected.Post("/scrap-entries", scrap.CreateScrapEntryHandler())
	protected.Get("/scrap-entries", scrap.ListScrapEntriesHandler())
	protected.Get("/scrap-entries/stats", scrap.GetScrapStatsHandler())
	protected.Get("/scrap-entries/:id", scrap.GetScrapEntryHandler())

	// Approval workflow (supervisors decide)
	protected.Post("/scrap-entries/approve", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), scrap.ApproveScrapEntriesHandler())
	protected.Post("/scrap-entries/reject", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), scrap.RejectScrapEntriesHandler())

	// End pieces
	protected.Post("/end-pieces", endpiece.CreateEndPieceHandler())
	protected.Get("/end-pieces", endpiece.ListEndPiecesHandler())
	protected.Get("/end-pieces/:id", endpiece.GetEndPieceHandler())
	protected.Post("/end-pieces/:id/use", endpiece.UseEndPieceHandler())
	protected.Post("/end-pieces/:id/scrap", endpiece.ScrapEndPieceHandler())

	// Reports
	protected.Get("/reports/scrap-register", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), report.ScrapRegisterHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
