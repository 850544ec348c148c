package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var timeNow = time.Now

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/views", handler.GetViews)

		// Record snapshot and dashboard
		api.Get("/hotspots", handler.GetHotspots)
		api.Get("/classify", handler.Classify)
		api.Get("/analytics", handler.GetAnalytics)
		api.Post("/records/refresh", handler.RefreshRecords)

		// Map sessions
		api.Post("/sessions", handler.CreateSession)
		api.Get("/sessions/:id", handler.GetSession)
		api.Delete("/sessions/:id", handler.DeleteSession)
		api.Post("/sessions/:id/events", handler.PostEvent)
		api.Post("/sessions/:id/refresh", handler.RefreshSession)
		api.Post("/sessions/:id/controls/:control", handler.Control)
	}
}

// ErrorHandler renders errors as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
