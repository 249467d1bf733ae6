package model

import (
	"time"

	"gorm.io/datatypes"
)

// ReportDefinitionModel: definisi laporan tersimpan (nama + tipe + parameter).
// Rendering PDF/Excel dikerjakan report layer terpisah; backend ini hanya
// menyimpan definisinya.
type ReportDefinitionModel struct {
	ReportID          string         `gorm:"column:report_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	ReportName        string         `gorm:"column:report_name;type:varchar(100);not null"`
	ReportType        string         `gorm:"column:report_type;type:varchar(50);not null"`
	ReportParameters  datatypes.JSON `gorm:"column:report_parameters;type:jsonb"`
	ReportDescription *string        `gorm:"column:report_description;type:text"`
	ReportIsActive    bool           `gorm:"column:report_is_active;not null;default:true"`

	ReportCreatedAt time.Time `gorm:"column:report_created_at;autoCreateTime"`
	ReportUpdatedAt time.Time `gorm:"column:report_updated_at;autoUpdateTime"`
}

func (ReportDefinitionModel) TableName() string {
	return "report_definitions"
}
