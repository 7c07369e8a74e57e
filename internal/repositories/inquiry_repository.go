package repositories

import (
	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(db *gorm.DB, inquiry *models.Inquiry) error
	FindByID(db *gorm.DB, id string) (*models.Inquiry, error)
	FindByListingOwner(db *gorm.DB, ownerID string) ([]models.Inquiry, error)
	MarkRead(db *gorm.DB, id string) error
}

type inquiryRepository struct{}

func NewInquiryRepository() InquiryRepository {
	return &inquiryRepository{}
}

func (r *inquiryRepository) Create(db *gorm.DB, inquiry *models.Inquiry) error {
	return db.Create(inquiry).Error
}

func (r *inquiryRepository) FindByID(db *gorm.DB, id string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := db.Preload("Property").First(&inquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) FindByListingOwner(db *gorm.DB, ownerID string) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := db.Preload("Property").
		Joins("JOIN property_listings ON property_listings.id = inquiries.property_id").
		Where("property_listings.owner_id = ?", ownerID).
		Order("inquiries.created_at DESC").
		Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) MarkRead(db *gorm.DB, id string) error {
	return db.Model(&models.Inquiry{}).Where("id = ?", id).Update("is_read", true).Error
}
