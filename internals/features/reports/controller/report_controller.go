package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mms_backend/internals/features/reports/dto"
	"mms_backend/internals/features/reports/model"
	helper "mms_backend/internals/helpers"
)

type ReportController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{
		DB:       db,
		validate: validator.New(),
	}
}

// 📄 GET /reports?type=&active=
func (ctrl *ReportController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := ctrl.DB.WithContext(c.UserContext()).Model(&model.ReportDefinitionModel{})
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		tx = tx.Where("report_type = ?", t)
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		tx = tx.Where("report_is_active = ?", active == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count reports: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve reports")
	}

	var rows []model.ReportDefinitionModel
	if err := tx.
		Order("report_created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list reports: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve reports")
	}

	out := make([]dto.ReportDefinitionDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToReportDefinitionDTO(m))
	}
	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(out))
	return helper.JsonList(c, "Report definitions", out, &pagination)
}

// 🔍 GET /reports/:id
func (ctrl *ReportController) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var m model.ReportDefinitionModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("report_id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Report definition not found")
		}
		log.Printf("[ERROR] get report: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to retrieve report")
	}
	return helper.JsonOK(c, "Report definition", dto.ToReportDefinitionDTO(m))
}

// ➕ POST /reports
func (ctrl *ReportController) Create(c *fiber.Ctx) error {
	var body dto.CreateReportRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := model.ReportDefinitionModel{
		ReportName:        strings.TrimSpace(body.Name),
		ReportType:        body.Type,
		ReportParameters:  datatypes.JSON(body.Parameters),
		ReportDescription: body.Description,
		ReportIsActive:    true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		log.Printf("[ERROR] create report: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create report")
	}
	return helper.JsonCreated(c, "Report definition created", dto.ToReportDefinitionDTO(m))
}

// ✏️ PUT /reports/:id
func (ctrl *ReportController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var body dto.UpdateReportRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.ReportDefinitionModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("report_id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Report definition not found")
		}
		log.Printf("[ERROR] get report: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update report")
	}

	if body.Name != nil {
		m.ReportName = strings.TrimSpace(*body.Name)
	}
	if body.Type != nil {
		m.ReportType = *body.Type
	}
	if body.Parameters != nil {
		m.ReportParameters = datatypes.JSON(body.Parameters)
	}
	if body.Description != nil {
		m.ReportDescription = body.Description
	}
	if body.IsActive != nil {
		m.ReportIsActive = *body.IsActive
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		log.Printf("[ERROR] update report: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update report")
	}
	return helper.JsonUpdated(c, "Report definition updated", dto.ToReportDefinitionDTO(m))
}

// 🗑 DELETE /reports/:id
func (ctrl *ReportController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid report id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("report_id = ?", id).
		Delete(&model.ReportDefinitionModel{})
	if res.Error != nil {
		log.Printf("[ERROR] delete report: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete report")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Report definition not found")
	}
	return helper.JsonDeleted(c, "Report definition deleted", fiber.Map{"report_id": id})
}
