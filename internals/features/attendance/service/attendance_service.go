package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/datatypes"

	"mms_backend/internals/features/attendance/dto"
	"mms_backend/internals/features/attendance/model"
	"mms_backend/internals/features/attendance/repository"
	memberModel "mms_backend/internals/features/members/model"
	"mms_backend/internals/helpers/schooltime"
)

// MemberDirectory: pandangan read-only service presensi terhadap data member.
type MemberDirectory interface {
	// (nil, nil) jika student_id tidak terdaftar
	FindByStudentID(ctx context.Context, studentID string) (*memberModel.MemberModel, error)
	CountActive(ctx context.Context) (int64, error)
}

// AttendanceRepository: ledger presensi. Insert WAJIB mengembalikan
// repository.ErrDuplicateDay saat unique constraint (student, hari) dilanggar.
type AttendanceRepository interface {
	Insert(ctx context.Context, rec *model.AttendanceModel) error
	FindOn(ctx context.Context, studentID string, day time.Time) (*model.AttendanceModel, error)
	ListByDay(ctx context.Context, day time.Time) ([]repository.RecordWithGrade, error)
	ListRange(ctx context.Context, startDay, endDay time.Time, grade string) ([]repository.RecordWithGrade, error)
	CountOnDay(ctx context.Context, day time.Time) (int64, error)
	CountDistinctStudentsBetween(ctx context.Context, startDay, endDay time.Time) (int64, error)
	ListByStudent(ctx context.Context, studentID string, startDay, endDay *time.Time, limit int) ([]model.AttendanceModel, error)
	StudentSummary(ctx context.Context, studentID string) (repository.StudentSummary, error)
}

// AttendanceService: validasi check-in + invariant satu-presensi-per-hari,
// plus query dashboard/laporan di atas ledger yang sama.
type AttendanceService struct {
	members MemberDirectory
	ledger  AttendanceRepository
	loc     *time.Location

	// timestamp selalu dari service, bukan client (anti spoofing);
	// bisa dioverride di test
	now func() time.Time
}

func NewAttendanceService(members MemberDirectory, ledger AttendanceRepository, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{
		members: members,
		ledger:  ledger,
		loc:     loc,
		now:     time.Now,
	}
}

// CheckIn menjalankan alur inti: normalisasi → resolve member → cek duplikat
// (fast-path) → insert. Unique constraint di storage tetap penjaga terakhir;
// pelanggarannya diterjemahkan ke DuplicateAttendanceError yang sama.
func (s *AttendanceService) CheckIn(ctx context.Context, rawIdentifier, method string) (*dto.CheckInResponse, error) {
	studentID, err := NormalizeStudentID(rawIdentifier)
	if err != nil {
		return nil, err
	}

	m, err := s.members.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &MemberNotFoundError{StudentID: studentID}
	}
	if !m.IsActive() {
		return nil, &MemberInactiveError{StudentID: studentID, Name: m.MemberName, Status: m.MemberStatus}
	}

	now := s.now()
	day := schooltime.DateOf(now, s.loc)

	// fast-path: tolak lebih awal tanpa menyentuh constraint
	existing, err := s.ledger.FindOn(ctx, studentID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateAttendanceError{StudentID: studentID, Name: m.MemberName, Day: day}
	}

	if method == "" {
		method = model.MethodManual
	}
	rec := model.AttendanceModel{
		AttendanceStudentID:     studentID,
		AttendanceName:          m.MemberName,
		AttendanceTimestamp:     now,
		AttendanceDate:          datatypes.Date(day),
		AttendanceCheckInMethod: method,
	}
	if err := s.ledger.Insert(ctx, &rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateDay) {
			// kalah balapan dengan scan paralel member yang sama
			return nil, &DuplicateAttendanceError{StudentID: studentID, Name: m.MemberName, Day: day}
		}
		return nil, err
	}

	clock := schooltime.FormatClock(now, s.loc)
	return &dto.CheckInResponse{
		Message:   fmt.Sprintf("Hari Om! %s! Your attendance has been marked at %s.", m.MemberName, clock),
		StudentID: studentID,
		Name:      m.MemberName,
		Time:      clock,
	}, nil
}

// TodayAttendance: presensi hari ini (timezone sekolah) + nama & grade,
// terbaru dulu. Dipakai dashboard; filter prefix nama dikerjakan client.
func (s *AttendanceService) TodayAttendance(ctx context.Context) ([]dto.AttendanceRecordDTO, error) {
	day := schooltime.DateOf(s.now(), s.loc)
	rows, err := s.ledger.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return s.toRecordDTOs(rows), nil
}

// Range: presensi pada [startDay, endDay] + ringkasan.
func (s *AttendanceService) Range(ctx context.Context, startDay, endDay time.Time, grade string) (*dto.AttendanceRangeResponse, error) {
	rows, err := s.ledger.ListRange(ctx, startDay, endDay, grade)
	if err != nil {
		return nil, err
	}

	unique := map[string]struct{}{}
	for _, r := range rows {
		unique[r.AttendanceStudentID] = struct{}{}
	}

	resp := &dto.AttendanceRangeResponse{
		Records: s.toRecordDTOs(rows),
		Summary: dto.RangeSummary{
			TotalRecords:   len(rows),
			UniqueStudents: len(unique),
			DateRange: fmt.Sprintf("%s to %s",
				schooltime.FormatDate(startDay, s.loc),
				schooltime.FormatDate(endDay, s.loc)),
			GradeFilter: grade,
		},
	}
	return resp, nil
}

// Stats: agregat dashboard — hari ini, minggu ini, bulan ini, tren 7 hari.
// Persentase dihitung terhadap jumlah member Active.
func (s *AttendanceService) Stats(ctx context.Context) (*dto.AttendanceStatsResponse, error) {
	now := s.now()
	today := schooltime.DateOf(now, s.loc)
	weekStart := schooltime.WeekStart(now, s.loc)
	monthStart := schooltime.MonthStart(now, s.loc)

	totalActive, err := s.members.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	todayCount, err := s.ledger.CountOnDay(ctx, today)
	if err != nil {
		return nil, err
	}
	weekUnique, err := s.ledger.CountDistinctStudentsBetween(ctx, weekStart, today)
	if err != nil {
		return nil, err
	}
	monthUnique, err := s.ledger.CountDistinctStudentsBetween(ctx, monthStart, today)
	if err != nil {
		return nil, err
	}

	trend := make([]dto.TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count, err := s.ledger.CountOnDay(ctx, day)
		if err != nil {
			return nil, err
		}
		trend = append(trend, dto.TrendPoint{
			Date:  schooltime.FormatDate(day, s.loc),
			Count: count,
		})
	}

	return &dto.AttendanceStatsResponse{
		Today:               dto.PeriodCount{Count: todayCount, Percentage: percentage(todayCount, totalActive)},
		ThisWeek:            dto.PeriodUnique{UniqueStudents: weekUnique, Percentage: percentage(weekUnique, totalActive)},
		ThisMonth:           dto.PeriodUnique{UniqueStudents: monthUnique, Percentage: percentage(monthUnique, totalActive)},
		TotalActiveStudents: totalActive,
		Last7DaysTrend:      trend,
	}, nil
}

// StudentHistory: detail riwayat satu member + ringkasan total/pertama/terakhir.
func (s *AttendanceService) StudentHistory(ctx context.Context, studentID string, startDay, endDay *time.Time, limit int) (*dto.StudentHistoryResponse, error) {
	m, err := s.members.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &MemberNotFoundError{StudentID: studentID}
	}

	if limit <= 0 {
		limit = 50
	}
	recs, err := s.ledger.ListByStudent(ctx, studentID, startDay, endDay, limit)
	if err != nil {
		return nil, err
	}
	summary, err := s.ledger.StudentSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}

	records := make([]dto.AttendanceRecordDTO, 0, len(recs))
	for _, r := range recs {
		records = append(records, dto.AttendanceRecordDTO{
			StudentID: r.AttendanceStudentID,
			Name:      r.AttendanceName,
			Grade:     m.MemberGrade,
			Timestamp: r.AttendanceTimestamp,
			Date:      schooltime.FormatDate(r.AttendanceTimestamp, s.loc),
			Time:      schooltime.FormatClock(r.AttendanceTimestamp, s.loc),
			Method:    r.AttendanceCheckInMethod,
		})
	}

	return &dto.StudentHistoryResponse{
		Student: dto.StudentBrief{
			StudentID: m.MemberStudentID,
			Name:      m.MemberName,
			Grade:     m.MemberGrade,
			Status:    m.MemberStatus,
		},
		Records: records,
		Summary: dto.StudentHistorySummary{
			TotalAttendance: summary.TotalAttendance,
			FirstAttendance: summary.FirstAttendance,
			LastAttendance:  summary.LastAttendance,
			RecordsReturned: len(records),
		},
	}, nil
}

// BulkCheckIn: import batch (timestamp dari data, bukan jam sekarang).
// Tiap entry dievaluasi sendiri; invariant per (member, hari) tetap berlaku.
func (s *AttendanceService) BulkCheckIn(ctx context.Context, entries []dto.BulkCheckInEntry) (*dto.BulkCheckInResponse, error) {
	results := dto.BulkResults{
		Successful: []dto.BulkSuccess{},
		Failed:     []dto.BulkFailed{},
		Duplicates: []dto.BulkDuplicate{},
	}

	for _, entry := range entries {
		studentID, err := NormalizeStudentID(entry.StudentID)
		if err != nil || entry.Timestamp.IsZero() {
			results.Failed = append(results.Failed, dto.BulkFailed{
				Entry: entry,
				Error: "student_id and timestamp are required",
			})
			continue
		}

		m, err := s.members.FindByStudentID(ctx, studentID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			results.Failed = append(results.Failed, dto.BulkFailed{
				Entry: entry,
				Error: fmt.Sprintf("Student ID %s not found", studentID),
			})
			continue
		}
		if !m.IsActive() {
			results.Failed = append(results.Failed, dto.BulkFailed{
				Entry: entry,
				Error: fmt.Sprintf("%s is not an active member (status: %s)", m.MemberName, m.MemberStatus),
			})
			continue
		}

		day := schooltime.DateOf(entry.Timestamp, s.loc)
		existing, err := s.ledger.FindOn(ctx, studentID, day)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			results.Duplicates = append(results.Duplicates, dto.BulkDuplicate{
				Entry:             entry,
				ExistingTimestamp: existing.AttendanceTimestamp,
			})
			continue
		}

		rec := model.AttendanceModel{
			AttendanceStudentID:     studentID,
			AttendanceName:          m.MemberName,
			AttendanceTimestamp:     entry.Timestamp,
			AttendanceDate:          datatypes.Date(day),
			AttendanceCheckInMethod: model.MethodBulk,
		}
		if err := s.ledger.Insert(ctx, &rec); err != nil {
			if errors.Is(err, repository.ErrDuplicateDay) {
				results.Duplicates = append(results.Duplicates, dto.BulkDuplicate{
					Entry:             entry,
					ExistingTimestamp: entry.Timestamp,
				})
				continue
			}
			results.Failed = append(results.Failed, dto.BulkFailed{Entry: entry, Error: err.Error()})
			continue
		}

		results.Successful = append(results.Successful, dto.BulkSuccess{
			StudentID: studentID,
			Name:      m.MemberName,
			Timestamp: entry.Timestamp,
		})
	}

	return &dto.BulkCheckInResponse{
		Message: "Bulk check-in completed",
		Summary: dto.BulkSummary{
			TotalProcessed: len(entries),
			Successful:     len(results.Successful),
			Failed:         len(results.Failed),
			Duplicates:     len(results.Duplicates),
		},
		Results: results,
	}, nil
}

func (s *AttendanceService) toRecordDTOs(rows []repository.RecordWithGrade) []dto.AttendanceRecordDTO {
	out := make([]dto.AttendanceRecordDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AttendanceRecordDTO{
			StudentID: r.AttendanceStudentID,
			Name:      r.AttendanceName,
			Grade:     r.MemberGrade,
			Timestamp: r.AttendanceTimestamp,
			Date:      schooltime.FormatDate(r.AttendanceTimestamp, s.loc),
			Time:      schooltime.FormatClock(r.AttendanceTimestamp, s.loc),
			Method:    r.AttendanceCheckInMethod,
		})
	}
	return out
}

func percentage(n, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
