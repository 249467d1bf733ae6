package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberController "mms_backend/internals/features/members/controller"
)

// Route pengelolaan direktori member (admin).
func MemberAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := memberController.NewMemberController(db)

	members := admin.Group("/members")
	members.Get("/", ctrl.GetAll)                        // 📄 List + filter
	members.Get("/:student_id", ctrl.GetByStudentID)     // 🔍 Detail
	members.Post("/", ctrl.Create)                       // ➕ Daftar member baru
	members.Put("/:student_id", ctrl.Update)             // ✏️ Update data
	members.Put("/:student_id/photo", ctrl.UploadPhoto)  // 📷 Foto kartu
	members.Delete("/:student_id", ctrl.Deactivate)      // 🗑 Nonaktifkan (soft)
}
