package main

import (
	"log"
	"strings"

	"kumes-backend/internal/admin"
	"kumes-backend/internal/audit"
	"kumes-backend/internal/auth"
	"kumes-backend/internal/config"
	"kumes-backend/internal/dashboard"
	"kumes-backend/internal/database"
	"kumes-backend/internal/entry"
	"kumes-backend/internal/models"
	"kumes-backend/internal/reports"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
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

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Kümes yönetimi
	adminRoutes.Post("/sheds", admin.CreateShedHandler())
	adminRoutes.Get("/sheds", admin.ListShedsHandler())
	adminRoutes.Get("/sheds/:id", admin.GetShedHandler())
	adminRoutes.Put("/sheds/:id", admin.UpdateShedHandler())
	adminRoutes.Delete("/sheds/:id", admin.DeleteShedHandler())

	// İşçi yönetimi
	adminRoutes.Post("/workers", admin.CreateWorkerHandler())
	adminRoutes.Get("/workers", admin.ListWorkersHandler())
	adminRoutes.Post("/workers/:id/assignments", admin.AssignWorkerHandler())
	adminRoutes.Delete("/workers/:id/assignments/:shedId", admin.UnassignWorkerHandler())

	// Giriş düzeltme (orijinal değerler ilk düzeltmede saklanır)
	adminRoutes.Put("/entries/:id/correct", entry.CorrectEntryHandler())
	adminRoutes.Get("/entries/corrected", entry.ListCorrectedEntriesHandler())
	adminRoutes.Delete("/entries/:id", entry.DeleteEntryHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Ortak (auth gerektiren) route'lar

	// Günlük girişler
	protected.Post("/entries", entry.CreateEntryHandler())
	protected.Get("/entries", entry.ListEntriesHandler())
	protected.Get("/entries/latest", entry.LatestEntryHandler())
	protected.Get("/entries/exists", entry.EntryExistsHandler())
	protected.Get("/entries/:id", entry.GetEntryHandler())

	// İşçinin atandığı kümesler
	protected.Get("/my-sheds", entry.MyShedsHandler())

	// Raporlama
	protected.Get("/reports/production-summary", reports.ProductionSummaryHandler())

	// Dashboard
	protected.Get("/dashboard/stats", dashboard.StatsHandler())
	protected.Get("/dashboard/production-chart", dashboard.ProductionChartHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
