package seeds

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mms_backend/internals/constants"
	memberModel "mms_backend/internals/features/members/model"
	userModel "mms_backend/internals/features/users/model"
)

// Run mengisi data awal: akun admin default + contoh member.
// Idempotent — aman dipanggil setiap boot (SEED_ON_BOOT=true).
func Run(db *gorm.DB) error {
	if err := seedDefaultAdmin(db); err != nil {
		return err
	}
	if err := seedSampleMembers(db); err != nil {
		return err
	}
	return nil
}

func seedDefaultAdmin(db *gorm.DB) error {
	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("[WARN] ADMIN_PASSWORD tidak di-set, memakai password default — ganti segera")
	}

	var existing userModel.UserModel
	err := db.Where("user_username = ?", username).First(&existing).Error
	if err == nil {
		return nil // sudah ada
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := userModel.UserModel{
		UserUsername: username,
		UserPassword: string(hash),
		UserRole:     constants.RoleAdmin,
		UserIsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("[SEED] admin user '%s' dibuat", username)
	return nil
}

// seedSampleMembers: contoh data untuk lingkungan dev/demo.
func seedSampleMembers(db *gorm.DB) error {
	var n int64
	if err := db.Model(&memberModel.MemberModel{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	parent := func(s string) *string { return &s }
	enrolled := datatypes.Date(time.Now())

	samples := []memberModel.MemberModel{
		{
			MemberStudentID:      "S00001",
			MemberName:           "Arjun",
			MemberGrade:          "5",
			MemberStatus:         memberModel.StatusActive,
			MemberParentName:     parent("Priya"),
			MemberEnrollmentDate: &enrolled,
		},
		{
			MemberStudentID:      "S00002",
			MemberName:           "Meera",
			MemberGrade:          "3",
			MemberStatus:         memberModel.StatusActive,
			MemberAllergies:      []string{"peanuts"},
			MemberEnrollmentDate: &enrolled,
		},
		{
			MemberStudentID:      "S00003",
			MemberName:           "Rohan",
			MemberGrade:          "5",
			MemberStatus:         memberModel.StatusInactive,
			MemberEnrollmentDate: &enrolled,
		},
		{
			MemberStudentID:      "T00001",
			MemberName:           "Lakshmi",
			MemberGrade:          "Teacher",
			MemberStatus:         memberModel.StatusActive,
			MemberEnrollmentDate: &enrolled,
		},
	}
	if err := db.Create(&samples).Error; err != nil {
		return err
	}
	log.Printf("[SEED] %d sample members dibuat", len(samples))
	return nil
}
