package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"mms_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar urutan: recover → CORS → logger → limiter global.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
