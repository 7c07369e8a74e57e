package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"` // "offer_received", "offer_response", "role_decision", "report_update"
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"property_id": "...", "offer_id": "..."}
	IsRead  bool           `gorm:"default:false" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at,omitempty"`
}

const (
	NotificationOfferReceived = "offer_received"
	NotificationOfferResponse = "offer_response"
	NotificationRoleDecision  = "role_decision"
	NotificationReportUpdate  = "report_update"
	NotificationInquiry       = "inquiry_received"
)
