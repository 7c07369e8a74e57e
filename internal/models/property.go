package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// PropertyListing follows a soft status lifecycle; rows are never hard-deleted.
type PropertyListing struct {
	BaseModel
	OwnerID     string         `gorm:"not null;index" json:"owner_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Street      string         `json:"street"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	ZipCode     string         `json:"zip_code"`
	Price       float64        `json:"price"`
	Status      ListingStatus  `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"images"` // ["url", ...]
	Beds        *int           `json:"beds,omitempty"`
	Baths       *float64       `json:"baths,omitempty"`
	Sqft        *int           `json:"sqft,omitempty"`
	YearBuilt   *int           `json:"year_built,omitempty"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty"`

	// Set while under contract; cleared on fall-through rollback.
	AcceptedOfferID *string `gorm:"index" json:"accepted_offer_id,omitempty"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// HasRequiredFields reports whether the listing can be published: address,
// positive price and at least one image.
func (p *PropertyListing) HasRequiredFields() bool {
	if p.Street == "" || p.City == "" || p.State == "" || p.ZipCode == "" {
		return false
	}
	if p.Price <= 0 {
		return false
	}
	var images []string
	if len(p.Images) > 0 {
		_ = json.Unmarshal(p.Images, &images)
	}
	return len(images) > 0
}
