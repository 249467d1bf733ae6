package controller

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mms_backend/internals/features/attendance/dto"
	"mms_backend/internals/features/attendance/service"
	helper "mms_backend/internals/helpers"
	"mms_backend/internals/helpers/schooltime"
)

type AttendanceController struct {
	Service  *service.AttendanceService
	Loc      *time.Location
	validate *validator.Validate
}

func NewAttendanceController(svc *service.AttendanceService, loc *time.Location) *AttendanceController {
	return &AttendanceController{
		Service:  svc,
		Loc:      loc,
		validate: validator.New(),
	}
}

// 📷 POST /checkin — scan kartu / input manual
func (ctrl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	var body dto.CheckInRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	resp, err := ctrl.Service.CheckIn(c.UserContext(), body.StudentID, body.Method)
	if err != nil {
		return ctrl.writeServiceError(c, err, "Failed to log attendance: ")
	}
	return helper.JsonOK(c, resp.Message, resp)
}

// 📄 GET /attendance/today — dashboard hari ini
func (ctrl *AttendanceController) GetToday(c *fiber.Ctx) error {
	records, err := ctrl.Service.TodayAttendance(c.UserContext())
	if err != nil {
		return ctrl.writeServiceError(c, err, "Failed to retrieve attendance: ")
	}
	return helper.JsonOK(c, "Today's attendance", records)
}

// 📄 GET /attendance/range?start_date=&end_date=&grade=
func (ctrl *AttendanceController) GetRange(c *fiber.Ctx) error {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "start_date and end_date are required")
	}

	start, err := schooltime.ParseDate(startStr, ctrl.Loc)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	end, err := schooltime.ParseDate(endStr, ctrl.Loc)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_date must not be before start_date")
	}

	resp, err := ctrl.Service.Range(c.UserContext(), start, end, c.Query("grade"))
	if err != nil {
		return ctrl.writeServiceError(c, err, "Failed to retrieve attendance: ")
	}
	return helper.JsonOK(c, "Attendance range", resp)
}

// 📊 GET /attendance/stats — agregat dashboard
func (ctrl *AttendanceController) GetStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.Stats(c.UserContext())
	if err != nil {
		return ctrl.writeServiceError(c, err, "Failed to retrieve attendance stats: ")
	}
	return helper.JsonOK(c, "Attendance stats", stats)
}

// 🔍 GET /attendance/student/:student_id — riwayat satu member
func (ctrl *AttendanceController) GetStudentHistory(c *fiber.Ctx) error {
	studentID := c.Params("student_id")

	var startDay, endDay *time.Time
	if s, e := c.Query("start_date"), c.Query("end_date"); s != "" && e != "" {
		sd, err := schooltime.ParseDate(s, ctrl.Loc)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
		}
		ed, err := schooltime.ParseDate(e, ctrl.Loc)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
		}
		startDay, endDay = &sd, &ed
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	resp, err := ctrl.Service.StudentHistory(c.UserContext(), studentID, startDay, endDay, limit)
	if err != nil {
		return ctrl.writeServiceError(c, err, "Failed to retrieve attendance: ")
	}
	return helper.JsonOK(c, "Student attendance", resp)
}

// 📦 POST /attendance/bulk-checkin — import batch
func (ctrl *AttendanceController) BulkCheckIn(c *fiber.Ctx) error {
	var body dto.BulkCheckInRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "attendanceData must be a non-empty array")
	}

	resp, err := ctrl.Service.BulkCheckIn(c.UserContext(), body.AttendanceData)
	if err != nil {
		return ctrl.writeServiceError(c, err, "Failed to process bulk check-in: ")
	}
	return helper.JsonOK(c, resp.Message, resp)
}

// writeServiceError memetakan error domain ke kategori response:
// not-found vs conflict vs client error vs failure generic. Duplikat adalah
// kondisi wajar (scan dua kali) → 409, bukan failure.
func (ctrl *AttendanceController) writeServiceError(c *fiber.Ctx, err error, fallbackPrefix string) error {
	var (
		invalidErr   *service.InvalidIdentifierError
		notFoundErr  *service.MemberNotFoundError
		inactiveErr  *service.MemberInactiveError
		duplicateErr *service.DuplicateAttendanceError
	)
	switch {
	case errors.As(err, &invalidErr):
		return helper.JsonError(c, fiber.StatusBadRequest, invalidErr.Error())
	case errors.As(err, &notFoundErr):
		return helper.JsonError(c, fiber.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &inactiveErr):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, inactiveErr.Error())
	case errors.As(err, &duplicateErr):
		return helper.JsonError(c, fiber.StatusConflict, duplicateErr.Error())
	default:
		// error tak terduga: jangan ditelan, log + 500 dengan pesan asli
		log.Printf("[ERROR] attendance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, fallbackPrefix+err.Error())
	}
}
