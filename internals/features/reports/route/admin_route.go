package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "mms_backend/internals/features/reports/controller"
)

// Route definisi laporan tersimpan (admin).
func ReportAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)

	reports := admin.Group("/reports")
	reports.Get("/", ctrl.GetAll)
	reports.Get("/:id", ctrl.GetByID)
	reports.Post("/", ctrl.Create)
	reports.Put("/:id", ctrl.Update)
	reports.Delete("/:id", ctrl.Delete)
}
