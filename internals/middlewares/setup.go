package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"claimcenter_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the global chain: recover, access log, CORS,
// rate limit.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
