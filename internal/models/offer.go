package models

import (
	"time"

	"gorm.io/datatypes"
)

// Offer is one negotiation round on a property. A counter closes the current
// round as "countered" and opens a new pending round with Round+1 and
// PreviousOfferID pointing at the closed one, keeping every amount auditable.
type Offer struct {
	BaseModel
	PropertyID          string         `gorm:"not null;index" json:"property_id"`
	BuyerID             string         `gorm:"not null;index" json:"buyer_id"`
	OfferAmount         float64        `gorm:"not null" json:"offer_amount"`
	AskingPriceSnapshot float64        `json:"asking_price_snapshot"`
	Status              OfferStatus    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Contingencies       datatypes.JSON `gorm:"type:jsonb" json:"contingencies"` // ["inspection", "financing", ...]
	ClosingDate         *time.Time     `json:"closing_date,omitempty"`
	EarnestMoney        float64        `json:"earnest_money"`
	Round               int            `gorm:"not null;default:1" json:"round"`
	PreviousOfferID     *string        `gorm:"index" json:"previous_offer_id,omitempty"`

	// Set on sibling pending offers when another offer on the same property is
	// accepted. Flagged, not auto-rejected; cleared if the contract falls through.
	SupersededByID *string `gorm:"index" json:"superseded_by_id,omitempty"`

	DecidedAt *time.Time `json:"decided_at,omitempty"`

	Property *PropertyListing `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Buyer    *User            `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
}
