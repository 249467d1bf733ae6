package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Status member. Member tidak pernah dihapus dari tabel;
// nonaktifkan lewat status (soft-deactivate).
const (
	StatusActive      = "Active"
	StatusInactive    = "Inactive"
	StatusAlumni      = "Alumni"
	StatusTransferred = "Transferred"
)

type MemberModel struct {
	MemberID        string `gorm:"column:member_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	MemberStudentID string `gorm:"column:member_student_id;type:varchar(20);uniqueIndex;not null"`
	MemberName      string `gorm:"column:member_name;type:varchar(100);not null"`
	MemberGrade     string `gorm:"column:member_grade;type:varchar(20);not null"`
	MemberStatus    string `gorm:"column:member_status;type:varchar(20);not null;default:'Active'"`

	MemberParentName       *string        `gorm:"column:member_parent_name;type:varchar(100)"`
	MemberContact          *string        `gorm:"column:member_contact;type:varchar(20)"`
	MemberEmail            *string        `gorm:"column:member_email;type:varchar(100)"`
	MemberEmergencyContact *string        `gorm:"column:member_emergency_contact;type:varchar(20)"`
	MemberAllergies        pq.StringArray `gorm:"column:member_allergies;type:text[]"`
	MemberPhotoURL         *string        `gorm:"column:member_photo_url;type:varchar(255)"`
	MemberDateOfBirth      *datatypes.Date `gorm:"column:member_date_of_birth;type:date"`
	MemberAddress          *string        `gorm:"column:member_address;type:text"`
	MemberAcademicYear     *string        `gorm:"column:member_academic_year;type:varchar(10)"`

	MemberEnrollmentDate *datatypes.Date `gorm:"column:member_enrollment_date;type:date"`

	MemberCreatedAt time.Time `gorm:"column:member_created_at;autoCreateTime"`
	MemberUpdatedAt time.Time `gorm:"column:member_updated_at;autoUpdateTime"`
}

func (MemberModel) TableName() string {
	return "members"
}

// IsActive: hanya member Active yang boleh check-in.
func (m *MemberModel) IsActive() bool {
	return m.MemberStatus == StatusActive
}
