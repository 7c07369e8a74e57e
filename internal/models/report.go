package models

import "time"

type Report struct {
	BaseModel
	ContentType ReportContentType `gorm:"type:varchar(20);not null" json:"content_type"`
	ContentID   string            `gorm:"not null;index" json:"content_id"`
	ReporterID  string            `gorm:"not null;index" json:"reporter_id"`
	Reason      string            `gorm:"not null" json:"reason"`
	Status      ReportStatus      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes       string            `json:"notes,omitempty"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty"`
	ResolvedBy  *string           `json:"resolved_by,omitempty"`

	Reporter *User `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
}
