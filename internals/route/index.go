package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mms_backend/internals/configs"
	attendanceRoute "mms_backend/internals/features/attendance/route"
	memberRoute "mms_backend/internals/features/members/route"
	reportRoute "mms_backend/internals/features/reports/route"
	"mms_backend/internals/middlewares/auth"
)

// SetupRoutes menyusun tiga lapis akses:
//
//	/            → publik (health, root)
//	/api/u/...   → operator login (JWT)
//	/api/a/...   → admin (JWT + role admin)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// 📁 foto member hasil upload
	app.Static("/uploads", "./uploads")

	BaseRoutes(app, db)

	jwtOpts := auth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}

	// 🧑‍🏫 operasional harian
	userAPI := app.Group("/api/u", auth.AuthJWT(jwtOpts))
	attendanceRoute.AttendanceUserRoutes(userAPI, db)

	// 🛡 admin
	adminAPI := app.Group("/api/a", auth.AuthJWT(jwtOpts), auth.IsAdmin())
	attendanceRoute.AttendanceAdminRoutes(adminAPI, db)
	memberRoute.MemberAdminRoutes(adminAPI, db)
	reportRoute.ReportAdminRoutes(adminAPI, db)
}
