package api

import (
	"github.com/JayDad/energy-insight-ui/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp creates the fiber app with the JSON error handler.
func NewApp(cfg fiber.Config) *fiber.App {
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = middleware.ErrorHandler
	}
	return fiber.New(cfg)
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, h *Handlers) {
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: h.cfg.CORSOrigins,
		AllowMethods: "GET,OPTIONS",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", h.HealthCheck)

	api := app.Group("/api")
	api.Get("/news", h.GetNews)
	api.Get("/news-recent", h.GetRecentNews)
	api.Get("/news-history", h.GetNewsHistory)
	api.Get("/market-indicators", h.GetMarketIndicators)

	cron := api.Group("/cron", middleware.CronAuth(h.cfg.CronSecret))
	cron.Get("/update-news", h.UpdateNews)
	cron.Get("/cleanup-news", h.CleanupNews)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
