package dto

import (
	"time"

	"propertydeals_backend/internal/models"
)

type CreatePropertyRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Street      string   `json:"street" validate:"max=200"`
	City        string   `json:"city" validate:"max=100"`
	State       string   `json:"state" validate:"max=50"`
	ZipCode     string   `json:"zip_code" validate:"max=20"`
	Price       float64  `json:"price" validate:"gte=0"`
	Images      []string `json:"images" validate:"dive,url"`
	Beds        *int     `json:"beds,omitempty" validate:"omitempty,gte=0"`
	Baths       *float64 `json:"baths,omitempty" validate:"omitempty,gte=0"`
	Sqft        *int     `json:"sqft,omitempty" validate:"omitempty,gte=0"`
	YearBuilt   *int     `json:"year_built,omitempty" validate:"omitempty,gte=1800"`
}

type UpdatePropertyRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Street      *string  `json:"street,omitempty"`
	City        *string  `json:"city,omitempty"`
	State       *string  `json:"state,omitempty"`
	ZipCode     *string  `json:"zip_code,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Beds        *int     `json:"beds,omitempty" validate:"omitempty,gte=0"`
	Baths       *float64 `json:"baths,omitempty" validate:"omitempty,gte=0"`
	Sqft        *int     `json:"sqft,omitempty" validate:"omitempty,gte=0"`
	YearBuilt   *int     `json:"year_built,omitempty" validate:"omitempty,gte=1800"`
}

type SearchPropertiesRequest struct {
	Query    string   `form:"q"`
	City     string   `form:"city"`
	State    string   `form:"state"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	MinBeds  *int     `form:"min_beds"`
	SortBy   string   `form:"sort_by" validate:"omitempty,oneof=price created_at published_at"`
	SortDesc bool     `form:"sort_desc"`
	Page     int      `form:"page"`
	PageSize int      `form:"page_size"`
}

type PropertyResponse struct {
	ID          string               `json:"id"`
	OwnerID     string               `json:"owner_id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Street      string               `json:"street,omitempty"`
	City        string               `json:"city,omitempty"`
	State       string               `json:"state,omitempty"`
	ZipCode     string               `json:"zip_code,omitempty"`
	Price       float64              `json:"price"`
	Status      models.ListingStatus `json:"status"`
	StatusBadge models.Badge         `json:"status_badge"`
	Images      []string             `json:"images"`
	Beds        *int                 `json:"beds,omitempty"`
	Baths       *float64             `json:"baths,omitempty"`
	Sqft        *int                 `json:"sqft,omitempty"`
	YearBuilt   *int                 `json:"year_built,omitempty"`
	PublishedAt *time.Time           `json:"published_at,omitempty"`
	ClosedAt    *time.Time           `json:"closed_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
