package controller

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mms_backend/internals/features/members/dto"
	"mms_backend/internals/features/members/model"
	helper "mms_backend/internals/helpers"
	"mms_backend/internals/helpers/images"
)

type MemberController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{
		DB:       db,
		validate: validator.New(),
	}
}

// 📄 GET /members?name=&grade=&status=&page=&per_page=
func (ctrl *MemberController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := ctrl.DB.WithContext(c.UserContext()).Model(&model.MemberModel{})

	if name := strings.TrimSpace(c.Query("name")); name != "" {
		tx = tx.Where("member_name ILIKE ?", "%"+name+"%")
	}
	if grade := strings.TrimSpace(c.Query("grade")); grade != "" && !strings.EqualFold(grade, "All") {
		tx = tx.Where("member_grade = ?", grade)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" && !strings.EqualFold(status, "All") {
		tx = tx.Where("member_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count members: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve members")
	}

	var rows []model.MemberModel
	if err := tx.
		Order("member_name ASC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list members: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve members")
	}

	out := make([]dto.MemberDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToMemberDTO(m))
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(out))
	return helper.JsonList(c, "Members", out, &pagination)
}

// 🔍 GET /members/:student_id
func (ctrl *MemberController) GetByStudentID(c *fiber.Ctx) error {
	studentID := strings.TrimSpace(c.Params("student_id"))

	var m model.MemberModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("member_student_id = ?", studentID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, fmt.Sprintf("Student ID %s not found.", studentID))
		}
		log.Printf("[ERROR] get member: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve member")
	}
	return helper.JsonOK(c, "Member detail", dto.ToMemberDTO(m))
}

// ➕ POST /members
func (ctrl *MemberController) Create(c *fiber.Ctx) error {
	var body dto.CreateMemberRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	studentID := strings.TrimSpace(body.StudentID)
	if studentID == "" {
		generated, err := ctrl.nextStudentID(c, body.Grade)
		if err != nil {
			log.Printf("[ERROR] generate student id: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create member")
		}
		studentID = generated
	}

	status := body.Status
	if status == "" {
		status = model.StatusActive
	}

	today := datatypes.Date(time.Now())
	m := model.MemberModel{
		MemberStudentID:        studentID,
		MemberName:             strings.TrimSpace(body.Name),
		MemberGrade:            strings.TrimSpace(body.Grade),
		MemberStatus:           status,
		MemberParentName:       body.ParentName,
		MemberContact:          body.Contact,
		MemberEmail:            body.Email,
		MemberEmergencyContact: body.EmergencyContact,
		MemberAllergies:        body.Allergies,
		MemberDateOfBirth:      parseDatePtr(body.DateOfBirth),
		MemberAddress:          body.Address,
		MemberAcademicYear:     body.AcademicYear,
		MemberEnrollmentDate:   &today,
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, fmt.Sprintf("Student ID %s already exists.", studentID))
		}
		log.Printf("[ERROR] create member: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create member")
	}
	return helper.JsonCreated(c, "Member created", dto.ToMemberDTO(m))
}

// ✏️ PUT /members/:student_id — partial update, field nil tidak disentuh
func (ctrl *MemberController) Update(c *fiber.Ctx) error {
	studentID := strings.TrimSpace(c.Params("student_id"))

	var body dto.UpdateMemberRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.MemberModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("member_student_id = ?", studentID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, fmt.Sprintf("Student ID %s not found.", studentID))
		}
		log.Printf("[ERROR] get member: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update member")
	}

	if body.Name != nil {
		m.MemberName = strings.TrimSpace(*body.Name)
	}
	if body.Grade != nil {
		m.MemberGrade = strings.TrimSpace(*body.Grade)
	}
	if body.Status != nil {
		m.MemberStatus = *body.Status
	}
	if body.ParentName != nil {
		m.MemberParentName = body.ParentName
	}
	if body.Contact != nil {
		m.MemberContact = body.Contact
	}
	if body.Email != nil {
		m.MemberEmail = body.Email
	}
	if body.EmergencyContact != nil {
		m.MemberEmergencyContact = body.EmergencyContact
	}
	if body.Allergies != nil {
		m.MemberAllergies = body.Allergies
	}
	if body.DateOfBirth != nil {
		m.MemberDateOfBirth = parseDatePtr(body.DateOfBirth)
	}
	if body.Address != nil {
		m.MemberAddress = body.Address
	}
	if body.AcademicYear != nil {
		m.MemberAcademicYear = body.AcademicYear
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		log.Printf("[ERROR] update member: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update member")
	}
	return helper.JsonUpdated(c, "Member updated", dto.ToMemberDTO(m))
}

// 🗑 DELETE /members/:student_id — soft-deactivate.
// Record presensi historis butuh barisnya, jadi status diubah ke Inactive.
func (ctrl *MemberController) Deactivate(c *fiber.Ctx) error {
	studentID := strings.TrimSpace(c.Params("student_id"))

	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.MemberModel{}).
		Where("member_student_id = ?", studentID).
		Update("member_status", model.StatusInactive)
	if res.Error != nil {
		log.Printf("[ERROR] deactivate member: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate member")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, fmt.Sprintf("Student ID %s not found.", studentID))
	}
	return helper.JsonDeleted(c, "Member deactivated", fiber.Map{"student_id": studentID, "status": model.StatusInactive})
}

// 📷 PUT /members/:student_id/photo — multipart field "photo"
func (ctrl *MemberController) UploadPhoto(c *fiber.Ctx) error {
	studentID := strings.TrimSpace(c.Params("student_id"))

	var m model.MemberModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("member_student_id = ?", studentID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, fmt.Sprintf("Student ID %s not found.", studentID))
		}
		log.Printf("[ERROR] get member: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload photo")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "photo file is required")
	}

	webpBytes, err := images.ConvertToWebP(fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "photo must be a valid JPEG or PNG image")
	}

	dir := filepath.Join(uploadRoot(), "members")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[ERROR] mkdir uploads: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload photo")
	}

	filename := images.GenerateUniqueFilename(studentID)
	if err := os.WriteFile(filepath.Join(dir, filename), webpBytes, 0o644); err != nil {
		log.Printf("[ERROR] write photo: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload photo")
	}

	photoURL := "/uploads/members/" + filename
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.MemberModel{}).
		Where("member_student_id = ?", studentID).
		Update("member_photo_url", photoURL).Error; err != nil {
		log.Printf("[ERROR] update photo url: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload photo")
	}

	return helper.JsonUpdated(c, "Photo updated", fiber.Map{
		"student_id": studentID,
		"photo_url":  photoURL,
	})
}

// nextStudentID membentuk ID baru [S|T|P|O]NNNNN:
// prefix dari grade, nomor urut lanjut dari yang terbesar.
func (ctrl *MemberController) nextStudentID(c *fiber.Ctx, grade string) (string, error) {
	prefix := studentIDPrefix(grade)

	var last string
	err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.MemberModel{}).
		Select("member_student_id").
		Where("member_student_id LIKE ?", prefix+"%").
		Order("member_student_id DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" {
		if n, convErr := strconv.Atoi(last[len(prefix):]); convErr == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%05d", prefix, seq), nil
}

func studentIDPrefix(grade string) string {
	g := strings.ToLower(strings.TrimSpace(grade))
	switch {
	case strings.Contains(g, "teacher"), strings.Contains(g, "staff"), strings.Contains(g, "instructor"):
		return "T"
	case strings.Contains(g, "parent"), strings.Contains(g, "guardian"):
		return "P"
	case g == "":
		return "O"
	default:
		// kelas reguler (angka, K, Pre-K, dst) → student
		return "S"
	}
}

func parseDatePtr(s *string) *datatypes.Date {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func uploadRoot() string {
	if dir := strings.TrimSpace(os.Getenv("UPLOAD_DIR")); dir != "" {
		return dir
	}
	return "./uploads"
}
