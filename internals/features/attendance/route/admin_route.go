package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mms_backend/internals/configs"
	attendanceController "mms_backend/internals/features/attendance/controller"
	attendanceRepo "mms_backend/internals/features/attendance/repository"
	"mms_backend/internals/features/attendance/service"
	memberRepo "mms_backend/internals/features/members/repository"
	middlewares "mms_backend/internals/middlewares"
)

// Route laporan + import (admin).
func AttendanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	loc := configs.SchoolLocation()
	svc := service.NewAttendanceService(
		memberRepo.NewGormMemberRepository(db),
		attendanceRepo.NewGormAttendanceRepository(db),
		loc,
	)
	ctrl := attendanceController.NewAttendanceController(svc, loc)

	att := admin.Group("/attendance")
	att.Get("/range", ctrl.GetRange) // 📄 Laporan rentang tanggal (+grade filter)
	att.Get("/stats", ctrl.GetStats) // 📊 Agregat dashboard
	att.Post("/bulk-checkin", middlewares.BulkImportRateLimiter(), ctrl.BulkCheckIn) // 📦 Import batch
}
