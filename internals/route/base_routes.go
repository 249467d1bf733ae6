package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "mms_backend/internals/helpers"
)

var startedAt = time.Now()

// BaseRoutes: endpoint publik tanpa auth.
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "Member Management System API", fiber.Map{
			"service": "mms_backend",
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
		})
	})

	// 🩺 health: status proses + konektivitas DB
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil {
			dbStatus = "error: " + err.Error()
		} else if err := sqlDB.PingContext(c.UserContext()); err != nil {
			dbStatus = "error: " + err.Error()
		}

		status := fiber.StatusOK
		if dbStatus != "ok" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"success":  dbStatus == "ok",
			"message":  "health",
			"database": dbStatus,
			"uptime":   time.Since(startedAt).Round(time.Second).String(),
		})
	})
}
