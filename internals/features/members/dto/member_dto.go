package dto

import (
	"time"

	"gorm.io/datatypes"

	"mms_backend/internals/features/members/model"
)

// ============================
// Response DTO
// ============================
type MemberDTO struct {
	StudentID        string     `json:"student_id"`
	Name             string     `json:"name"`
	Grade            string     `json:"grade"`
	Status           string     `json:"status"`
	ParentName       *string    `json:"parent_name,omitempty"`
	Contact          *string    `json:"contact,omitempty"`
	Email            *string    `json:"email,omitempty"`
	EmergencyContact *string    `json:"emergency_contact,omitempty"`
	Allergies        []string   `json:"allergies,omitempty"`
	PhotoURL         *string    `json:"photo_url,omitempty"`
	DateOfBirth      *string    `json:"date_of_birth,omitempty"`
	Address          *string    `json:"address,omitempty"`
	AcademicYear     *string    `json:"academic_year,omitempty"`
	EnrollmentDate   *string    `json:"enrollment_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ============================
// Create Request DTO
// ============================
type CreateMemberRequest struct {
	// kosongkan student_id untuk auto-generate ([S|T|P|O]NNNNN)
	StudentID        string   `json:"student_id" validate:"omitempty,min=2,max=20"`
	Name             string   `json:"name" validate:"required,min=1"`
	Grade            string   `json:"grade" validate:"required,min=1"`
	Status           string   `json:"status" validate:"omitempty,oneof=Active Inactive Alumni Transferred"`
	ParentName       *string  `json:"parent_name"`
	Contact          *string  `json:"contact"`
	Email            *string  `json:"email" validate:"omitempty,email"`
	EmergencyContact *string  `json:"emergency_contact"`
	Allergies        []string `json:"allergies"`
	DateOfBirth      *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address          *string  `json:"address"`
	AcademicYear     *string  `json:"academic_year"`
}

// ============================
// Update Request DTO (partial)
// ============================
type UpdateMemberRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=1"`
	Grade            *string  `json:"grade" validate:"omitempty,min=1"`
	Status           *string  `json:"status" validate:"omitempty,oneof=Active Inactive Alumni Transferred"`
	ParentName       *string  `json:"parent_name"`
	Contact          *string  `json:"contact"`
	Email            *string  `json:"email" validate:"omitempty,email"`
	EmergencyContact *string  `json:"emergency_contact"`
	Allergies        []string `json:"allergies"`
	DateOfBirth      *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address          *string  `json:"address"`
	AcademicYear     *string  `json:"academic_year"`
}

// ============================
// Converter
// ============================
func ToMemberDTO(m model.MemberModel) MemberDTO {
	return MemberDTO{
		StudentID:        m.MemberStudentID,
		Name:             m.MemberName,
		Grade:            m.MemberGrade,
		Status:           m.MemberStatus,
		ParentName:       m.MemberParentName,
		Contact:          m.MemberContact,
		Email:            m.MemberEmail,
		EmergencyContact: m.MemberEmergencyContact,
		Allergies:        m.MemberAllergies,
		PhotoURL:         m.MemberPhotoURL,
		DateOfBirth:      dateToString(m.MemberDateOfBirth),
		Address:          m.MemberAddress,
		AcademicYear:     m.MemberAcademicYear,
		EnrollmentDate:   dateToString(m.MemberEnrollmentDate),
		CreatedAt:        m.MemberCreatedAt,
		UpdatedAt:        m.MemberUpdatedAt,
	}
}

func dateToString(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format("2006-01-02")
	return &s
}
