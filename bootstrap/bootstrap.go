package bootstrap

import (
	"huddle-backend/internal/config"
	"huddle-backend/internal/interfaces/router"
	"huddle-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless deployments (the api handler imports this package, not internal).
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(logger.Options{Level: cfg.LogLevel, Service: "huddle-api"})
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
