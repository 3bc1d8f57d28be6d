package server

import (
	"context"
	"time"

	"github.com/visiongate/visiongate/internal/controllers"
	"github.com/visiongate/visiongate/internal/middlewares"
	"github.com/visiongate/visiongate/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/rs/xid"
)

type HTTPServerDependencies struct {
	ClassifyController *controllers.ClassifyController
}

func NewHTTPServer(ctx context.Context, deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      "visiongate",
		ErrorHandler: middlewares.ErrorHandler,
	})

	// Add basic middleware
	router.Use(recoverer.New())
	router.Use(cors.New())
	router.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))
	router.Use(logger.New())

	// Health check endpoint (no authentication required)
	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   "visiongate",
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.Post("/classify", deps.ClassifyController.Classify)

	return router
}
