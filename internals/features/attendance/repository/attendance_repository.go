package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mms_backend/internals/features/attendance/model"
)

// ErrDuplicateDay: pelanggaran unique index (attendance_student_id, attendance_date).
// Constraint di storage adalah penegak invariant yang sebenarnya; cek aplikasi
// hanya fast-path, jadi error ini tetap bisa muncul saat dua scan balapan.
var ErrDuplicateDay = errors.New("attendance: member sudah tercatat hadir di hari itu")

// RecordWithGrade: row presensi + grade member hasil join ke members.
type RecordWithGrade struct {
	AttendanceStudentID     string    `gorm:"column:attendance_student_id"`
	AttendanceName          string    `gorm:"column:attendance_name"`
	MemberGrade             string    `gorm:"column:member_grade"`
	AttendanceTimestamp     time.Time `gorm:"column:attendance_timestamp"`
	AttendanceCheckInMethod string    `gorm:"column:attendance_check_in_method"`
}

// StudentSummary: agregat riwayat satu member.
type StudentSummary struct {
	TotalAttendance int64
	FirstAttendance *time.Time
	LastAttendance  *time.Time
}

type GormAttendanceRepository struct {
	DB *gorm.DB
}

func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{DB: db}
}

// Insert menulis satu record presensi. Unique violation diterjemahkan ke
// ErrDuplicateDay (butuh TranslateError aktif di gorm.Config).
func (r *GormAttendanceRepository) Insert(ctx context.Context, rec *model.AttendanceModel) error {
	err := r.DB.WithContext(ctx).Create(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "SQLSTATE 23505") {
			return ErrDuplicateDay
		}
		return err
	}
	return nil
}

// FindOn: record member pada hari kalender tertentu; (nil, nil) jika belum ada.
func (r *GormAttendanceRepository) FindOn(ctx context.Context, studentID string, day time.Time) (*model.AttendanceModel, error) {
	var rec model.AttendanceModel
	err := r.DB.WithContext(ctx).
		Where("attendance_student_id = ? AND attendance_date = ?", studentID, datatypes.Date(day)).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListByDay: semua presensi satu hari + grade member, terbaru dulu.
func (r *GormAttendanceRepository) ListByDay(ctx context.Context, day time.Time) ([]RecordWithGrade, error) {
	var rows []RecordWithGrade
	err := r.DB.WithContext(ctx).
		Table("attendance_records").
		Select("attendance_records.attendance_student_id, attendance_records.attendance_name, attendance_records.attendance_timestamp, attendance_records.attendance_check_in_method, members.member_grade").
		Joins("LEFT JOIN members ON members.member_student_id = attendance_records.attendance_student_id").
		Where("attendance_records.attendance_date = ?", datatypes.Date(day)).
		Order("attendance_records.attendance_timestamp DESC").
		Scan(&rows).Error
	return rows, err
}

// ListRange: presensi pada [startDay, endDay] (inklusif per tanggal), opsional
// filter grade; terbaru dulu.
func (r *GormAttendanceRepository) ListRange(ctx context.Context, startDay, endDay time.Time, grade string) ([]RecordWithGrade, error) {
	q := r.DB.WithContext(ctx).
		Table("attendance_records").
		Select("attendance_records.attendance_student_id, attendance_records.attendance_name, attendance_records.attendance_timestamp, attendance_records.attendance_check_in_method, members.member_grade").
		Joins("LEFT JOIN members ON members.member_student_id = attendance_records.attendance_student_id").
		Where("attendance_records.attendance_date BETWEEN ? AND ?", datatypes.Date(startDay), datatypes.Date(endDay))
	if grade != "" && grade != "All" {
		q = q.Where("members.member_grade = ?", grade)
	}
	var rows []RecordWithGrade
	err := q.Order("attendance_records.attendance_timestamp DESC").Scan(&rows).Error
	return rows, err
}

// CountOnDay: jumlah record pada satu hari kalender.
func (r *GormAttendanceRepository) CountOnDay(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.AttendanceModel{}).
		Where("attendance_date = ?", datatypes.Date(day)).
		Count(&n).Error
	return n, err
}

// CountDistinctStudentsBetween: member unik yang hadir pada [startDay, endDay].
func (r *GormAttendanceRepository) CountDistinctStudentsBetween(ctx context.Context, startDay, endDay time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.AttendanceModel{}).
		Where("attendance_date BETWEEN ? AND ?", datatypes.Date(startDay), datatypes.Date(endDay)).
		Distinct("attendance_student_id").
		Count(&n).Error
	return n, err
}

// ListByStudent: riwayat satu member, terbaru dulu; window tanggal opsional.
func (r *GormAttendanceRepository) ListByStudent(ctx context.Context, studentID string, startDay, endDay *time.Time, limit int) ([]model.AttendanceModel, error) {
	q := r.DB.WithContext(ctx).
		Where("attendance_student_id = ?", studentID)
	if startDay != nil && endDay != nil {
		q = q.Where("attendance_date BETWEEN ? AND ?", datatypes.Date(*startDay), datatypes.Date(*endDay))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []model.AttendanceModel
	err := q.Order("attendance_timestamp DESC").Find(&recs).Error
	return recs, err
}

// StudentSummary: total + presensi pertama & terakhir satu member.
func (r *GormAttendanceRepository) StudentSummary(ctx context.Context, studentID string) (StudentSummary, error) {
	var out struct {
		Total int64      `gorm:"column:total"`
		First *time.Time `gorm:"column:first"`
		Last  *time.Time `gorm:"column:last"`
	}
	err := r.DB.WithContext(ctx).
		Model(&model.AttendanceModel{}).
		Select("COUNT(*) AS total, MIN(attendance_timestamp) AS first, MAX(attendance_timestamp) AS last").
		Where("attendance_student_id = ?", studentID).
		Scan(&out).Error
	if err != nil {
		return StudentSummary{}, err
	}
	return StudentSummary{
		TotalAttendance: out.Total,
		FirstAttendance: out.First,
		LastAttendance:  out.Last,
	}, nil
}
