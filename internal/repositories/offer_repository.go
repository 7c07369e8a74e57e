package repositories

import (
	"time"

	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

type OfferRepository interface {
	Create(db *gorm.DB, o *models.Offer) error
	FindByID(db *gorm.DB, id string) (*models.Offer, error)
	Update(db *gorm.DB, o *models.Offer) error
	FindByProperty(db *gorm.DB, propertyID string) ([]models.Offer, error)
	FindByBuyer(db *gorm.DB, buyerID string) ([]models.Offer, error)
	FlagSuperseded(db *gorm.DB, propertyID, acceptedOfferID string) (int64, error)
	ClearSuperseded(db *gorm.DB, propertyID string) error
	RejectExpired(db *gorm.DB, cutoff time.Time) (int64, error)
	CountByBuyerAndStatus(db *gorm.DB, buyerID string) (map[models.OfferStatus]int64, error)
}

type offerRepository struct{}

func NewOfferRepository() OfferRepository {
	return &offerRepository{}
}

func (r *offerRepository) Create(db *gorm.DB, o *models.Offer) error {
	return db.Create(o).Error
}

func (r *offerRepository) FindByID(db *gorm.DB, id string) (*models.Offer, error) {
	var o models.Offer
	err := db.Preload("Property").First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *offerRepository) Update(db *gorm.DB, o *models.Offer) error {
	return db.Save(o).Error
}

func (r *offerRepository) FindByProperty(db *gorm.DB, propertyID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := db.Preload("Buyer").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

func (r *offerRepository) FindByBuyer(db *gorm.DB, buyerID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := db.Preload("Property").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

// FlagSuperseded marks sibling pending offers when one offer is accepted.
// They keep their pending status; the flag tells the seller they are on hold.
func (r *offerRepository) FlagSuperseded(db *gorm.DB, propertyID, acceptedOfferID string) (int64, error) {
	result := db.Model(&models.Offer{}).
		Where("property_id = ? AND id <> ? AND status = ? AND superseded_by_id IS NULL",
			propertyID, acceptedOfferID, models.OfferStatusPending).
		Update("superseded_by_id", acceptedOfferID)
	return result.RowsAffected, result.Error
}

func (r *offerRepository) ClearSuperseded(db *gorm.DB, propertyID string) error {
	return db.Model(&models.Offer{}).
		Where("property_id = ? AND superseded_by_id IS NOT NULL", propertyID).
		Update("superseded_by_id", nil).Error
}

// RejectExpired closes pending offers whose closing date has passed.
func (r *offerRepository) RejectExpired(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Model(&models.Offer{}).
		Where("status = ? AND closing_date IS NOT NULL AND closing_date < ?",
			models.OfferStatusPending, cutoff).
		Updates(map[string]interface{}{
			"status":     models.OfferStatusRejected,
			"decided_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *offerRepository) CountByBuyerAndStatus(db *gorm.DB, buyerID string) (map[models.OfferStatus]int64, error) {
	type row struct {
		Status models.OfferStatus
		Count  int64
	}
	var rows []row
	err := db.Model(&models.Offer{}).
		Select("status, count(*) as count").
		Where("buyer_id = ?", buyerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.OfferStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
