package dto

import "time"

// ============================
// Check-in
// ============================
type CheckInRequest struct {
	// payload scanner bisa mengandung field ekstra dipisah pipe,
	// mis. "S00123|Arjun|5" — service hanya memakai token pertama
	StudentID string `json:"student_id" validate:"required"`
	Method    string `json:"check_in_method" validate:"omitempty,oneof=qr manual app"`
}

type CheckInResponse struct {
	Message   string `json:"message"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Time      string `json:"time"` // HH:MM:SS di timezone sekolah
}

// ============================
// Record / list
// ============================
type AttendanceRecordDTO struct {
	StudentID string    `json:"student_id"`
	Name      string    `json:"name"`
	Grade     string    `json:"grade,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Method    string    `json:"check_in_method,omitempty"`
}

// ============================
// Range query
// ============================
type RangeSummary struct {
	TotalRecords   int    `json:"total_records"`
	UniqueStudents int    `json:"unique_students"`
	DateRange      string `json:"date_range"`
	GradeFilter    string `json:"grade_filter,omitempty"`
}

type AttendanceRangeResponse struct {
	Records []AttendanceRecordDTO `json:"records"`
	Summary RangeSummary          `json:"summary"`
}

// ============================
// Stats dashboard
// ============================
type PeriodCount struct {
	Count      int64 `json:"count"`
	Percentage int   `json:"percentage"`
}

type PeriodUnique struct {
	UniqueStudents int64 `json:"unique_students"`
	Percentage     int   `json:"percentage"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type AttendanceStatsResponse struct {
	Today               PeriodCount  `json:"today"`
	ThisWeek            PeriodUnique `json:"this_week"`
	ThisMonth           PeriodUnique `json:"this_month"`
	TotalActiveStudents int64        `json:"total_active_students"`
	Last7DaysTrend      []TrendPoint `json:"last_7_days_trend"`
}

// ============================
// Riwayat per member
// ============================
type StudentBrief struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Grade     string `json:"grade"`
	Status    string `json:"status"`
}

type StudentHistorySummary struct {
	TotalAttendance int64      `json:"total_attendance"`
	FirstAttendance *time.Time `json:"first_attendance"`
	LastAttendance  *time.Time `json:"last_attendance"`
	RecordsReturned int        `json:"records_returned"`
}

type StudentHistoryResponse struct {
	Student StudentBrief          `json:"student"`
	Records []AttendanceRecordDTO `json:"attendance_records"`
	Summary StudentHistorySummary `json:"summary"`
}

// ============================
// Bulk check-in (import)
// ============================
type BulkCheckInEntry struct {
	StudentID string    `json:"student_id"`
	Timestamp time.Time `json:"timestamp"`
}

type BulkCheckInRequest struct {
	AttendanceData []BulkCheckInEntry `json:"attendanceData" validate:"required,min=1"`
}

type BulkSuccess struct {
	StudentID string    `json:"student_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

type BulkFailed struct {
	Entry BulkCheckInEntry `json:"entry"`
	Error string           `json:"error"`
}

type BulkDuplicate struct {
	Entry             BulkCheckInEntry `json:"entry"`
	ExistingTimestamp time.Time        `json:"existing_timestamp"`
}

type BulkResults struct {
	Successful []BulkSuccess   `json:"successful"`
	Failed     []BulkFailed    `json:"failed"`
	Duplicates []BulkDuplicate `json:"duplicates"`
}

type BulkSummary struct {
	TotalProcessed int `json:"total_processed"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
	Duplicates     int `json:"duplicates"`
}

type BulkCheckInResponse struct {
	Message string      `json:"message"`
	Summary BulkSummary `json:"summary"`
	Results BulkResults `json:"results"`
}
