package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoleApplication tracks one user's standing for one marketplace role.
// A (user, role) pair has exactly one row; re-application reuses it and the
// notes field accumulates the decision history.
type RoleApplication struct {
	BaseModel
	UserID    string            `gorm:"not null;index;uniqueIndex:idx_user_role" json:"user_id"`
	Role      Role              `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_role" json:"role"`
	Status    ApplicationStatus `gorm:"type:varchar(20);not null;default:'not_applied'" json:"status"`
	Data      datatypes.JSON    `gorm:"type:jsonb" json:"data,omitempty"` // free-form application answers
	Notes     string            `json:"notes,omitempty"`
	AppliedAt *time.Time        `json:"applied_at,omitempty"`
	DecidedAt *time.Time        `json:"decided_at,omitempty"`
	DecidedBy *string           `json:"decided_by,omitempty"`
}
