package models

import "time"

// Event is a community event (meetup, open house, seminar).
type Event struct {
	BaseModel
	HostID      string     `gorm:"not null;index" json:"host_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	IsPublished bool       `gorm:"default:false" json:"is_published"`

	Host *User `gorm:"foreignKey:HostID" json:"host,omitempty"`
}
