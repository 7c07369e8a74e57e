package dto

import "time"

type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	Location    string     `json:"location" validate:"max=300"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=300"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}
