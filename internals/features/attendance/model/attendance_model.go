package model

import (
	"time"

	"gorm.io/datatypes"
)

// Metode check-in yang dikenal.
const (
	MethodQR     = "qr"
	MethodManual = "manual"
	MethodApp    = "app"
	MethodBulk   = "bulk"
)

// AttendanceModel: satu bukti kehadiran per member per hari kalender.
// AttendanceDate dihitung service di timezone sekolah; unique index
// (attendance_student_id, attendance_date) dibuat di databases.Migrate
// dan menjadi penjaga utama invariant anti-duplikat.
// Record bersifat append-only: tidak ada path update/delete di flow normal.
type AttendanceModel struct {
	AttendanceID            string         `gorm:"column:attendance_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	AttendanceStudentID     string         `gorm:"column:attendance_student_id;type:varchar(20);not null;index"`
	AttendanceName          string         `gorm:"column:attendance_name;type:varchar(100);not null"`
	AttendanceTimestamp     time.Time      `gorm:"column:attendance_timestamp;not null"`
	AttendanceDate          datatypes.Date `gorm:"column:attendance_date;type:date;not null"`
	AttendanceCheckInMethod string         `gorm:"column:attendance_check_in_method;type:varchar(20);not null;default:'manual'"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime"`
}

func (AttendanceModel) TableName() string {
	return "attendance_records"
}
