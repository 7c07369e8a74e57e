package models

// Inquiry is a contact message about a property. SenderID is empty for
// unauthenticated visitors.
type Inquiry struct {
	BaseModel
	PropertyID string `gorm:"not null;index" json:"property_id"`
	SenderID   string `gorm:"index" json:"sender_id,omitempty"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"not null" json:"email"`
	Phone      string `json:"phone,omitempty"`
	Message    string `gorm:"not null" json:"message"`
	IsRead     bool   `gorm:"default:false" json:"is_read"`

	Property *PropertyListing `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}
