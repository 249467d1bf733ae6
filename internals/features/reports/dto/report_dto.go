package dto

import (
	"encoding/json"
	"time"

	"mms_backend/internals/features/reports/model"
)

type ReportDefinitionDTO struct {
	ReportID    string          `json:"report_id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
	Description *string         `json:"description,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateReportRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Type        string          `json:"type" validate:"required,oneof=daily_attendance range_summary student_history member_roster"`
	Parameters  json.RawMessage `json:"parameters"`
	Description *string         `json:"description"`
}

type UpdateReportRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=100"`
	Type        *string         `json:"type" validate:"omitempty,oneof=daily_attendance range_summary student_history member_roster"`
	Parameters  json.RawMessage `json:"parameters"`
	Description *string         `json:"description"`
	IsActive    *bool           `json:"is_active"`
}

func ToReportDefinitionDTO(m model.ReportDefinitionModel) ReportDefinitionDTO {
	return ReportDefinitionDTO{
		ReportID:    m.ReportID,
		Name:        m.ReportName,
		Type:        m.ReportType,
		Parameters:  json.RawMessage(m.ReportParameters),
		Description: m.ReportDescription,
		IsActive:    m.ReportIsActive,
		CreatedAt:   m.ReportCreatedAt,
		UpdatedAt:   m.ReportUpdatedAt,
	}
}
