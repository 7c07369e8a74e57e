package dto

import (
	"time"

	"propertydeals_backend/internal/models"
)

type SubmitOfferRequest struct {
	PropertyID    string     `json:"property_id" validate:"required,uuid"`
	OfferAmount   float64    `json:"offer_amount" validate:"required,gt=0"`
	Contingencies []string   `json:"contingencies,omitempty"`
	ClosingDate   *time.Time `json:"closing_date,omitempty"`
	EarnestMoney  float64    `json:"earnest_money" validate:"gte=0"`
}

type RespondToOfferRequest struct {
	Action        models.OfferAction `json:"action" validate:"required,oneof=accept counter reject"`
	CounterAmount *float64           `json:"counter_amount,omitempty" validate:"omitempty,gt=0"`
	Notes         string             `json:"notes,omitempty" validate:"max=2000"`
}

type OfferResponse struct {
	ID                  string             `json:"id"`
	PropertyID          string             `json:"property_id"`
	BuyerID             string             `json:"buyer_id"`
	OfferAmount         float64            `json:"offer_amount"`
	AskingPriceSnapshot float64            `json:"asking_price_snapshot"`
	Status              models.OfferStatus `json:"status"`
	StatusBadge         models.Badge       `json:"status_badge"`
	Contingencies       []string           `json:"contingencies,omitempty"`
	ClosingDate         *time.Time         `json:"closing_date,omitempty"`
	EarnestMoney        float64            `json:"earnest_money"`
	Round               int                `json:"round"`
	PreviousOfferID     *string            `json:"previous_offer_id,omitempty"`
	SupersededByID      *string            `json:"superseded_by_id,omitempty"`
	DecidedAt           *time.Time         `json:"decided_at,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}
