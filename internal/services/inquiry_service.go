package services

import (
	"encoding/json"

	"propertydeals_backend/internal/logger"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InquiryService struct {
	inquiryRepo      repositories.InquiryRepository
	propertyRepo     repositories.PropertyRepository
	notificationRepo repositories.NotificationRepository
}

func NewInquiryService(
	inquiryRepo repositories.InquiryRepository,
	propertyRepo repositories.PropertyRepository,
	notificationRepo repositories.NotificationRepository,
) *InquiryService {
	return &InquiryService{
		inquiryRepo:      inquiryRepo,
		propertyRepo:     propertyRepo,
		notificationRepo: notificationRepo,
	}
}

// Create records a contact message on an active listing. senderID is empty
// for anonymous visitors.
func (s *InquiryService) Create(db *gorm.DB, senderID string, req *dto.CreateInquiryRequest) (*models.Inquiry, error) {
	property, err := s.propertyRepo.FindByID(db, req.PropertyID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if property.Status != models.ListingStatusActive {
		return nil, apperrors.ErrInvalidListingStatus
	}

	inquiry := &models.Inquiry{
		PropertyID: property.ID,
		SenderID:   senderID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
	}
	if err := s.inquiryRepo.Create(db, inquiry); err != nil {
		return nil, wrapRepoError(err)
	}

	go s.notifyOwner(db, property, inquiry)

	return inquiry, nil
}

// ListForOwner is the seller's inquiry inbox, newest first.
func (s *InquiryService) ListForOwner(db *gorm.DB, ownerID string) ([]models.Inquiry, error) {
	inquiries, err := s.inquiryRepo.FindByListingOwner(db, ownerID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return inquiries, nil
}

// MarkRead marks an inquiry read; only the listing owner may do so.
func (s *InquiryService) MarkRead(db *gorm.DB, ownerID, inquiryID string) error {
	inquiry, err := s.inquiryRepo.FindByID(db, inquiryID)
	if err != nil {
		return wrapRepoError(err)
	}

	property, err := s.propertyRepo.FindByID(db, inquiry.PropertyID)
	if err != nil {
		return wrapRepoError(err)
	}
	if property.OwnerID != ownerID {
		return apperrors.NewForbiddenError("You can only manage inquiries on your own listings")
	}

	if err := s.inquiryRepo.MarkRead(db, inquiryID); err != nil {
		return wrapRepoError(err)
	}
	return nil
}

func (s *InquiryService) notifyOwner(db *gorm.DB, property *models.PropertyListing, inquiry *models.Inquiry) {
	data, _ := json.Marshal(map[string]string{"property_id": property.ID, "inquiry_id": inquiry.ID})
	n := &models.Notification{
		UserID:  property.OwnerID,
		Type:    models.NotificationInquiry,
		Title:   "New inquiry on " + property.Title,
		Message: inquiry.Name + " sent a message about your listing.",
		Data:    datatypes.JSON(data),
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		logger.Error("failed to create inquiry notification", "property_id", property.ID, "error", err)
	}
}
