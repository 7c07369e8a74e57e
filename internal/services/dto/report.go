package dto

import (
	"time"

	"propertydeals_backend/internal/models"
)

type SubmitReportRequest struct {
	ContentType models.ReportContentType `json:"content_type" validate:"required,oneof=property user message other"`
	ContentID   string                   `json:"content_id" validate:"required"`
	Reason      string                   `json:"reason" validate:"required,min=3,max=2000"`
}

type UpdateReportRequest struct {
	Status models.ReportStatus `json:"status" validate:"required,oneof=reviewed resolved dismissed"`
	Notes  string              `json:"notes,omitempty" validate:"max=2000"`
}

type ReportResponse struct {
	ID          string                   `json:"id"`
	ContentType models.ReportContentType `json:"content_type"`
	ContentID   string                   `json:"content_id"`
	ReporterID  string                   `json:"reporter_id"`
	Reason      string                   `json:"reason"`
	Status      models.ReportStatus      `json:"status"`
	StatusBadge models.Badge             `json:"status_badge"`
	Notes       string                   `json:"notes,omitempty"`
	ResolvedAt  *time.Time               `json:"resolved_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}
