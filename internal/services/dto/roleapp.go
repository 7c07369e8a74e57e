package dto

import (
	"time"

	"propertydeals_backend/internal/models"
)

type ApplyForRoleRequest struct {
	// Free-form answers from the application form, stored verbatim.
	Data map[string]interface{} `json:"data,omitempty"`
}

type DenyRoleRequest struct {
	Notes string `json:"notes" validate:"required,min=3,max=2000"`
}

type RoleApplicationResponse struct {
	UserID      string                   `json:"user_id"`
	Role        models.Role              `json:"role"`
	Status      models.ApplicationStatus `json:"status"`
	StatusBadge models.Badge             `json:"status_badge"`
	Notes       string                   `json:"notes,omitempty"`
	AppliedAt   *time.Time               `json:"applied_at,omitempty"`
	DecidedAt   *time.Time               `json:"decided_at,omitempty"`
}
