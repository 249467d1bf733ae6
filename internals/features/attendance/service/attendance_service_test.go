package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mms_backend/internals/features/attendance/dto"
	"mms_backend/internals/features/attendance/model"
	"mms_backend/internals/features/attendance/repository"
	memberModel "mms_backend/internals/features/members/model"
)

// IST tanpa tzdata supaya test tidak tergantung environment
var testLoc = time.FixedZone("IST", 5*3600+1800)

// ---------- fakes ----------

type fakeDirectory struct {
	members map[string]*memberModel.MemberModel
	active  int64
}

func (f *fakeDirectory) FindByStudentID(_ context.Context, studentID string) (*memberModel.MemberModel, error) {
	m, ok := f.members[studentID]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (f *fakeDirectory) CountActive(_ context.Context) (int64, error) {
	return f.active, nil
}

type fakeLedger struct {
	records []model.AttendanceModel
	grades  map[string]string

	// simulasi balapan: FindOn bilang kosong tapi constraint menolak
	insertErr error
	hideOnFind bool
}

func (f *fakeLedger) Insert(_ context.Context, rec *model.AttendanceModel) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, r := range f.records {
		if r.AttendanceStudentID == rec.AttendanceStudentID &&
			time.Time(r.AttendanceDate).Equal(time.Time(rec.AttendanceDate)) {
			return repository.ErrDuplicateDay
		}
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeLedger) FindOn(_ context.Context, studentID string, day time.Time) (*model.AttendanceModel, error) {
	if f.hideOnFind {
		return nil, nil
	}
	for i, r := range f.records {
		if r.AttendanceStudentID == studentID && time.Time(r.AttendanceDate).Equal(day) {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) ListByDay(_ context.Context, day time.Time) ([]repository.RecordWithGrade, error) {
	var rows []repository.RecordWithGrade
	for _, r := range f.records {
		if time.Time(r.AttendanceDate).Equal(day) {
			rows = append(rows, f.toRow(r))
		}
	}
	return rows, nil
}

func (f *fakeLedger) ListRange(_ context.Context, startDay, endDay time.Time, grade string) ([]repository.RecordWithGrade, error) {
	var rows []repository.RecordWithGrade
	for _, r := range f.records {
		d := time.Time(r.AttendanceDate)
		if d.Before(startDay) || d.After(endDay) {
			continue
		}
		row := f.toRow(r)
		if grade != "" && grade != "All" && row.MemberGrade != grade {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (f *fakeLedger) CountOnDay(_ context.Context, day time.Time) (int64, error) {
	var n int64
	for _, r := range f.records {
		if time.Time(r.AttendanceDate).Equal(day) {
			n++
		}
	}
	return n, nil
}

func (f *fakeLedger) CountDistinctStudentsBetween(_ context.Context, startDay, endDay time.Time) (int64, error) {
	seen := map[string]struct{}{}
	for _, r := range f.records {
		d := time.Time(r.AttendanceDate)
		if !d.Before(startDay) && !d.After(endDay) {
			seen[r.AttendanceStudentID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func (f *fakeLedger) ListByStudent(_ context.Context, studentID string, startDay, endDay *time.Time, limit int) ([]model.AttendanceModel, error) {
	var recs []model.AttendanceModel
	for _, r := range f.records {
		if r.AttendanceStudentID != studentID {
			continue
		}
		if startDay != nil && endDay != nil {
			d := time.Time(r.AttendanceDate)
			if d.Before(*startDay) || d.After(*endDay) {
				continue
			}
		}
		recs = append(recs, r)
		if limit > 0 && len(recs) >= limit {
			break
		}
	}
	return recs, nil
}

func (f *fakeLedger) StudentSummary(_ context.Context, studentID string) (repository.StudentSummary, error) {
	var sum repository.StudentSummary
	for _, r := range f.records {
		if r.AttendanceStudentID != studentID {
			continue
		}
		ts := r.AttendanceTimestamp
		sum.TotalAttendance++
		if sum.FirstAttendance == nil || ts.Before(*sum.FirstAttendance) {
			t := ts
			sum.FirstAttendance = &t
		}
		if sum.LastAttendance == nil || ts.After(*sum.LastAttendance) {
			t := ts
			sum.LastAttendance = &t
		}
	}
	return sum, nil
}

func (f *fakeLedger) toRow(r model.AttendanceModel) repository.RecordWithGrade {
	return repository.RecordWithGrade{
		AttendanceStudentID:     r.AttendanceStudentID,
		AttendanceName:          r.AttendanceName,
		MemberGrade:             f.grades[r.AttendanceStudentID],
		AttendanceTimestamp:     r.AttendanceTimestamp,
		AttendanceCheckInMethod: r.AttendanceCheckInMethod,
	}
}

// ---------- helpers ----------

func activeMember(studentID, name, grade string) *memberModel.MemberModel {
	return &memberModel.MemberModel{
		MemberStudentID: studentID,
		MemberName:      name,
		MemberGrade:     grade,
		MemberStatus:    memberModel.StatusActive,
	}
}

func newTestService(dir *fakeDirectory, ledger *fakeLedger, at time.Time) *AttendanceService {
	svc := NewAttendanceService(dir, ledger, testLoc)
	svc.now = func() time.Time { return at }
	return svc
}

func defaultDirectory() *fakeDirectory {
	inactive := activeMember("S00003", "Rohan", "5")
	inactive.MemberStatus = memberModel.StatusInactive
	return &fakeDirectory{
		members: map[string]*memberModel.MemberModel{
			"S00001": activeMember("S00001", "Arjun", "5"),
			"S00002": activeMember("S00002", "Meera", "3"),
			"S00003": inactive,
		},
		active: 10,
	}
}

// ---------- check-in ----------

func TestCheckInSuccess(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc)
	ledger := &fakeLedger{grades: map[string]string{"S00001": "5"}}
	svc := newTestService(defaultDirectory(), ledger, at)

	resp, err := svc.CheckIn(context.Background(), "S00001", "")
	require.NoError(t, err)

	assert.Equal(t, "Hari Om! Arjun! Your attendance has been marked at 09:00:00.", resp.Message)
	assert.Equal(t, "S00001", resp.StudentID)
	assert.Equal(t, "Arjun", resp.Name)
	assert.Equal(t, "09:00:00", resp.Time)

	require.Len(t, ledger.records, 1)
	assert.Equal(t, model.MethodManual, ledger.records[0].AttendanceCheckInMethod)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, testLoc), time.Time(ledger.records[0].AttendanceDate))
}

func TestCheckInPipeDelimitedIdentifier(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc)
	ledger := &fakeLedger{grades: map[string]string{}}
	svc := newTestService(defaultDirectory(), ledger, at)

	resp, err := svc.CheckIn(context.Background(), "S00001|Arjun|5", "qr")
	require.NoError(t, err)
	assert.Equal(t, "S00001", resp.StudentID)
	require.Len(t, ledger.records, 1)
	assert.Equal(t, model.MethodQR, ledger.records[0].AttendanceCheckInMethod)
}

func TestCheckInRejectsSecondScanSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 2, 8, 30, 0, 0, testLoc)
	afternoon := time.Date(2026, 3, 2, 15, 0, 0, 0, testLoc)
	ledger := &fakeLedger{grades: map[string]string{}}
	dir := defaultDirectory()

	svc := newTestService(dir, ledger, morning)
	_, err := svc.CheckIn(context.Background(), "S00001", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return afternoon }
	_, err = svc.CheckIn(context.Background(), "S00001", "")

	var dup *DuplicateAttendanceError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Arjun has already been marked present today.", err.Error())
	assert.Len(t, ledger.records, 1)
}

func TestCheckInAllowedAcrossDayBoundary(t *testing.T) {
	lateNight := time.Date(2026, 3, 2, 23, 59, 59, 0, testLoc)
	justAfterMidnight := time.Date(2026, 3, 3, 0, 0, 1, 0, testLoc)
	ledger := &fakeLedger{grades: map[string]string{}}
	dir := defaultDirectory()

	svc := newTestService(dir, ledger, lateNight)
	_, err := svc.CheckIn(context.Background(), "S00001", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return justAfterMidnight }
	_, err = svc.CheckIn(context.Background(), "S00001", "")
	require.NoError(t, err)
	assert.Len(t, ledger.records, 2)
}

func TestCheckInUnknownMember(t *testing.T) {
	svc := newTestService(defaultDirectory(), &fakeLedger{}, time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc))

	_, err := svc.CheckIn(context.Background(), "S99999", "")
	var notFound *MemberNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Student ID S99999 not found.", err.Error())
}

func TestCheckInInactiveMember(t *testing.T) {
	svc := newTestService(defaultDirectory(), &fakeLedger{}, time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc))

	_, err := svc.CheckIn(context.Background(), "S00003", "")
	var inactive *MemberInactiveError
	require.ErrorAs(t, err, &inactive)
	assert.Equal(t, "Rohan is not an active member (status: Inactive).", err.Error())
}

func TestCheckInEmptyIdentifier(t *testing.T) {
	svc := newTestService(defaultDirectory(), &fakeLedger{}, time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc))

	for _, raw := range []string{"", "   ", "|Arjun|5"} {
		_, err := svc.CheckIn(context.Background(), raw, "")
		var invalid *InvalidIdentifierError
		require.ErrorAs(t, err, &invalid, "raw=%q", raw)
	}
}

func TestCheckInRaceLosesToConstraint(t *testing.T) {
	// FindOn tidak melihat record (scan paralel baru saja insert),
	// constraint yang menolak — hasilnya tetap error duplikat yang sama
	ledger := &fakeLedger{hideOnFind: true, insertErr: repository.ErrDuplicateDay}
	svc := newTestService(defaultDirectory(), ledger, time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc))

	_, err := svc.CheckIn(context.Background(), "S00001", "")
	var dup *DuplicateAttendanceError
	require.ErrorAs(t, err, &dup)
}

// ---------- queries ----------

func TestTodayAttendanceOnlyCurrentDay(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, testLoc)
	ledger := &fakeLedger{grades: map[string]string{"S00001": "5", "S00002": "3"}}
	dir := defaultDirectory()

	svc := newTestService(dir, ledger, time.Date(2026, 3, 1, 9, 0, 0, 0, testLoc))
	_, err := svc.CheckIn(context.Background(), "S00002", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return at }
	_, err = svc.CheckIn(context.Background(), "S00001", "")
	require.NoError(t, err)

	records, err := svc.TodayAttendance(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "S00001", records[0].StudentID)
	assert.Equal(t, "5", records[0].Grade)
	assert.Equal(t, "2026-03-02", records[0].Date)
}

func TestRangeSummary(t *testing.T) {
	ledger := &fakeLedger{grades: map[string]string{"S00001": "5", "S00002": "3"}}
	dir := defaultDirectory()

	svc := newTestService(dir, ledger, time.Date(2026, 3, 1, 9, 0, 0, 0, testLoc))
	_, err := svc.CheckIn(context.Background(), "S00001", "")
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc) }
	_, err = svc.CheckIn(context.Background(), "S00001", "")
	require.NoError(t, err)
	_, err = svc.CheckIn(context.Background(), "S00002", "")
	require.NoError(t, err)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, testLoc)
	end := time.Date(2026, 3, 2, 0, 0, 0, 0, testLoc)

	resp, err := svc.Range(context.Background(), start, end, "")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Summary.TotalRecords)
	assert.Equal(t, 2, resp.Summary.UniqueStudents)
	assert.Equal(t, "2026-03-01 to 2026-03-02", resp.Summary.DateRange)

	// filter grade
	resp, err = svc.Range(context.Background(), start, end, "3")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Summary.TotalRecords)
	assert.Equal(t, "S00002", resp.Records[0].StudentID)
}

func TestStatsPercentages(t *testing.T) {
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, testLoc) // Rabu
	ledger := &fakeLedger{grades: map[string]string{}}
	dir := &fakeDirectory{
		members: map[string]*memberModel.MemberModel{
			"S00001": activeMember("S00001", "Arjun", "5"),
			"S00002": activeMember("S00002", "Meera", "3"),
			"S00003": activeMember("S00003", "Rohan", "5"),
		},
		active: 10,
	}

	svc := newTestService(dir, ledger, at)
	for _, id := range []string{"S00001", "S00002", "S00003"} {
		_, err := svc.CheckIn(context.Background(), id, "")
		require.NoError(t, err)
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Today.Count)
	assert.Equal(t, 30, stats.Today.Percentage)
	assert.Equal(t, int64(3), stats.ThisWeek.UniqueStudents)
	assert.Equal(t, int64(10), stats.TotalActiveStudents)

	require.Len(t, stats.Last7DaysTrend, 7)
	assert.Equal(t, "2026-02-26", stats.Last7DaysTrend[0].Date)
	assert.Equal(t, "2026-03-04", stats.Last7DaysTrend[6].Date)
	assert.Equal(t, int64(3), stats.Last7DaysTrend[6].Count)
	assert.Equal(t, int64(0), stats.Last7DaysTrend[0].Count)
}

func TestStatsZeroActiveMembers(t *testing.T) {
	dir := &fakeDirectory{members: map[string]*memberModel.MemberModel{}, active: 0}
	svc := newTestService(dir, &fakeLedger{}, time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Today.Percentage)
	assert.Equal(t, 0, stats.ThisWeek.Percentage)
}

func TestStudentHistory(t *testing.T) {
	ledger := &fakeLedger{grades: map[string]string{"S00001": "5"}}
	dir := defaultDirectory()

	svc := newTestService(dir, ledger, time.Date(2026, 3, 1, 9, 0, 0, 0, testLoc))
	_, err := svc.CheckIn(context.Background(), "S00001", "")
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 30, 0, 0, testLoc) }
	_, err = svc.CheckIn(context.Background(), "S00001", "")
	require.NoError(t, err)

	resp, err := svc.StudentHistory(context.Background(), "S00001", nil, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, "Arjun", resp.Student.Name)
	assert.Equal(t, "5", resp.Student.Grade)
	assert.Equal(t, int64(2), resp.Summary.TotalAttendance)
	assert.Equal(t, 2, resp.Summary.RecordsReturned)
	require.NotNil(t, resp.Summary.FirstAttendance)
	require.NotNil(t, resp.Summary.LastAttendance)
	assert.True(t, resp.Summary.FirstAttendance.Before(*resp.Summary.LastAttendance))

	_, err = svc.StudentHistory(context.Background(), "S99999", nil, nil, 0)
	var notFound *MemberNotFoundError
	require.ErrorAs(t, err, &notFound)
}

// ---------- bulk ----------

func TestBulkCheckInMixedResults(t *testing.T) {
	ledger := &fakeLedger{grades: map[string]string{}}
	dir := defaultDirectory()
	svc := newTestService(dir, ledger, time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc))

	// Meera sudah hadir di 2026-03-01
	existing := time.Date(2026, 3, 1, 8, 0, 0, 0, testLoc)
	svcDay1 := newTestService(dir, ledger, existing)
	_, err := svcDay1.CheckIn(context.Background(), "S00002", "")
	require.NoError(t, err)

	entries := []dto.BulkCheckInEntry{
		{StudentID: "S00001", Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, testLoc)}, // sukses
		{StudentID: "S00002", Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, testLoc)}, // duplikat
		{StudentID: "S99999", Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, testLoc)}, // tidak terdaftar
		{StudentID: "S00003", Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, testLoc)}, // inactive
		{StudentID: "", Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, testLoc)},       // invalid
	}

	resp, err := svc.BulkCheckIn(context.Background(), entries)
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Summary.TotalProcessed)
	assert.Equal(t, 1, resp.Summary.Successful)
	assert.Equal(t, 1, resp.Summary.Duplicates)
	assert.Equal(t, 3, resp.Summary.Failed)

	require.Len(t, resp.Results.Successful, 1)
	assert.Equal(t, "S00001", resp.Results.Successful[0].StudentID)
	assert.Equal(t, existing, resp.Results.Duplicates[0].ExistingTimestamp)

	// record bulk memakai timestamp dari data, bukan jam service
	found := false
	for _, r := range ledger.records {
		if r.AttendanceStudentID == "S00001" {
			found = true
			assert.Equal(t, model.MethodBulk, r.AttendanceCheckInMethod)
			assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, testLoc), time.Time(r.AttendanceDate))
		}
	}
	assert.True(t, found)
}
