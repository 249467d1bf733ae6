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

// Route operasional harian (operator yang login): scan check-in + dashboard.
func AttendanceUserRoutes(api fiber.Router, db *gorm.DB) {
	loc := configs.SchoolLocation()
	svc := service.NewAttendanceService(
		memberRepo.NewGormMemberRepository(db),
		attendanceRepo.NewGormAttendanceRepository(db),
		loc,
	)
	ctrl := attendanceController.NewAttendanceController(svc, loc)

	api.Post("/checkin", middlewares.CheckInRateLimiter(), ctrl.CheckIn) // 📷 scan kartu / manual

	att := api.Group("/attendance")
	att.Get("/today", ctrl.GetToday)                       // 📄 Dashboard hari ini
	att.Get("/student/:student_id", ctrl.GetStudentHistory) // 🔍 Riwayat member
}
