package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"mms_backend/internals/features/attendance/model"
	"mms_backend/internals/features/attendance/repository"
	"mms_backend/internals/features/attendance/service"
	memberModel "mms_backend/internals/features/members/model"
	"mms_backend/internals/helpers/schooltime"
)

var testLoc = time.FixedZone("IST", 5*3600+1800)

// fakes seperlunya untuk jalur handler; query agregat tidak diuji di sini

type stubDirectory struct {
	members map[string]*memberModel.MemberModel
}

func (s *stubDirectory) FindByStudentID(_ context.Context, studentID string) (*memberModel.MemberModel, error) {
	return s.members[studentID], nil
}

func (s *stubDirectory) CountActive(_ context.Context) (int64, error) { return 1, nil }

type stubLedger struct {
	existing map[string]model.AttendanceModel // key: studentID|YYYY-MM-DD
}

func (s *stubLedger) key(studentID string, day time.Time) string {
	return studentID + "|" + day.Format("2006-01-02")
}

func (s *stubLedger) Insert(_ context.Context, rec *model.AttendanceModel) error {
	k := s.key(rec.AttendanceStudentID, time.Time(rec.AttendanceDate))
	if _, ok := s.existing[k]; ok {
		return repository.ErrDuplicateDay
	}
	if s.existing == nil {
		s.existing = map[string]model.AttendanceModel{}
	}
	s.existing[k] = *rec
	return nil
}

func (s *stubLedger) FindOn(_ context.Context, studentID string, day time.Time) (*model.AttendanceModel, error) {
	if rec, ok := s.existing[s.key(studentID, day)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (s *stubLedger) ListByDay(context.Context, time.Time) ([]repository.RecordWithGrade, error) {
	return nil, nil
}

func (s *stubLedger) ListRange(context.Context, time.Time, time.Time, string) ([]repository.RecordWithGrade, error) {
	return nil, nil
}

func (s *stubLedger) CountOnDay(context.Context, time.Time) (int64, error) { return 0, nil }

func (s *stubLedger) CountDistinctStudentsBetween(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}

func (s *stubLedger) ListByStudent(context.Context, string, *time.Time, *time.Time, int) ([]model.AttendanceModel, error) {
	return nil, nil
}

func (s *stubLedger) StudentSummary(context.Context, string) (repository.StudentSummary, error) {
	return repository.StudentSummary{}, nil
}

func newTestApp(ledger *stubLedger) *fiber.App {
	inactive := &memberModel.MemberModel{
		MemberStudentID: "S00003",
		MemberName:      "Rohan",
		MemberGrade:     "5",
		MemberStatus:    memberModel.StatusInactive,
	}
	dir := &stubDirectory{
		members: map[string]*memberModel.MemberModel{
			"S00001": {
				MemberStudentID: "S00001",
				MemberName:      "Arjun",
				MemberGrade:     "5",
				MemberStatus:    memberModel.StatusActive,
			},
			"S00003": inactive,
		},
	}

	svc := service.NewAttendanceService(dir, ledger, testLoc)
	ctrl := NewAttendanceController(svc, testLoc)

	app := fiber.New()
	app.Post("/checkin", ctrl.CheckIn)
	app.Get("/attendance/range", ctrl.GetRange)
	return app
}

func postCheckIn(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/checkin", bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestCheckInEndpointSuccess(t *testing.T) {
	app := newTestApp(&stubLedger{})

	status, body := postCheckIn(t, app, `{"student_id":"S00001"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "S00001", data["student_id"])
	assert.Equal(t, "Arjun", data["name"])
}

func TestCheckInEndpointUnknownMember(t *testing.T) {
	app := newTestApp(&stubLedger{})

	status, body := postCheckIn(t, app, `{"student_id":"S99999"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Student ID S99999 not found.", body["message"])
}

func TestCheckInEndpointInactiveMember(t *testing.T) {
	app := newTestApp(&stubLedger{})

	status, body := postCheckIn(t, app, `{"student_id":"S00003"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "Rohan is not an active member (status: Inactive).", body["message"])
}

func TestCheckInEndpointDuplicate(t *testing.T) {
	// record hari ini sudah ada di ledger
	today := schooltime.DateOf(time.Now(), testLoc)
	ledger := &stubLedger{existing: map[string]model.AttendanceModel{}}
	ledger.existing["S00001|"+today.Format("2006-01-02")] = model.AttendanceModel{
		AttendanceStudentID: "S00001",
		AttendanceName:      "Arjun",
		AttendanceTimestamp: time.Now(),
		AttendanceDate:      datatypes.Date(today),
	}
	app := newTestApp(ledger)

	status, body := postCheckIn(t, app, `{"student_id":"S00001"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Arjun has already been marked present today.", body["message"])
	assert.Equal(t, "CONFLICT", body["error_code"])
}

func TestCheckInEndpointValidation(t *testing.T) {
	app := newTestApp(&stubLedger{})

	// student_id hilang → 422 dari validator
	status, _ := postCheckIn(t, app, `{}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	// identifier rusak (kosong sebelum pipe) → 400 dari service
	status, body := postCheckIn(t, app, `{"student_id":"|Arjun|5"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid Student ID format", body["message"])
}

func TestRangeEndpointValidation(t *testing.T) {
	app := newTestApp(&stubLedger{})

	cases := []struct {
		url  string
		want int
	}{
		{"/attendance/range", fiber.StatusBadRequest},
		{"/attendance/range?start_date=2026-03-01", fiber.StatusBadRequest},
		{"/attendance/range?start_date=bad&end_date=2026-03-02", fiber.StatusBadRequest},
		{"/attendance/range?start_date=2026-03-02&end_date=2026-03-01", fiber.StatusBadRequest},
		{"/attendance/range?start_date=2026-03-01&end_date=2026-03-02", fiber.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(fiber.MethodGet, tc.url, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, tc.url)
		resp.Body.Close()
	}
}
