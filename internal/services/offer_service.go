package services

import (
	"encoding/json"
	"fmt"
	"time"

	"propertydeals_backend/internal/email"
	"propertydeals_backend/internal/logger"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OfferService runs the negotiation machine: pending -> accepted | rejected |
// countered, where a counter closes the round and opens a new pending round
// with the revised amount. Accepting triggers the listing's move to pending.
type OfferService struct {
	offerRepo        repositories.OfferRepository
	propertyRepo     repositories.PropertyRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	propertyService  *PropertyService
	emailProvider    email.Provider
}

func NewOfferService(
	offerRepo repositories.OfferRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	propertyService *PropertyService,
	emailProvider email.Provider,
) *OfferService {
	return &OfferService{
		offerRepo:        offerRepo,
		propertyRepo:     propertyRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		propertyService:  propertyService,
		emailProvider:    emailProvider,
	}
}

// SubmitOffer creates the first pending round of a negotiation.
func (s *OfferService) SubmitOffer(db *gorm.DB, buyerID string, req *dto.SubmitOfferRequest) (*dto.OfferResponse, error) {
	buyer, err := s.userRepo.FindByID(db, buyerID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if !buyer.HasApprovedRole(models.RoleBuyer) {
		return nil, apperrors.ErrRoleNotApproved
	}

	listing, err := s.propertyRepo.FindByID(db, req.PropertyID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if listing.Status != models.ListingStatusActive {
		return nil, apperrors.ErrListingNotAcceptingOffers
	}
	if listing.OwnerID == buyerID {
		return nil, apperrors.ErrCannotOfferOnOwnListing
	}

	contingenciesJSON, err := json.Marshal(req.Contingencies)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("failed to marshal contingencies: %w", err))
	}

	offer := &models.Offer{
		PropertyID:          req.PropertyID,
		BuyerID:             buyerID,
		OfferAmount:         req.OfferAmount,
		AskingPriceSnapshot: listing.Price,
		Status:              models.OfferStatusPending,
		Contingencies:       datatypes.JSON(contingenciesJSON),
		ClosingDate:         req.ClosingDate,
		EarnestMoney:        req.EarnestMoney,
		Round:               1,
	}

	if err := s.offerRepo.Create(db, offer); err != nil {
		return nil, wrapRepoError(err)
	}

	go s.notifyOfferReceived(db, listing, offer)

	return buildOfferResponse(offer), nil
}

// Respond applies the seller decision on a pending round.
func (s *OfferService) Respond(db *gorm.DB, offerID, requesterID string, req *dto.RespondToOfferRequest) (*dto.OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(db, offerID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	listing := offer.Property
	if listing == nil {
		listing, err = s.propertyRepo.FindByID(db, offer.PropertyID)
		if err != nil {
			return nil, wrapRepoError(err)
		}
	}
	if listing.OwnerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	switch req.Action {
	case models.OfferActionAccept:
		return s.accept(db, offer, listing)
	case models.OfferActionCounter:
		return s.counter(db, offer, req)
	case models.OfferActionReject:
		return s.reject(db, offer, listing)
	default:
		return nil, apperrors.NewBadRequestError("Unknown offer action")
	}
}

func (s *OfferService) accept(db *gorm.DB, offer *models.Offer, listing *models.PropertyListing) (*dto.OfferResponse, error) {
	// Idempotent: accepting an already-accepted offer is a no-op.
	if offer.Status == models.OfferStatusAccepted {
		return buildOfferResponse(offer), nil
	}

	if err := models.GuardTransition(models.EntityOffer, string(offer.Status), string(models.OfferStatusAccepted)); err != nil {
		return nil, err
	}

	// The listing must still be able to go under contract. Checked before the
	// offer row changes so a conflict never leaves a second accepted offer.
	if err := models.GuardTransition(models.EntityListing, string(listing.Status), string(models.ListingStatusPending)); err != nil {
		return nil, err
	}

	now := time.Now()
	offer.Status = models.OfferStatusAccepted
	offer.DecidedAt = &now

	if err := s.offerRepo.Update(db, offer); err != nil {
		return nil, wrapRepoError(err)
	}

	if _, err := s.propertyService.MarkUnderContract(db, offer.PropertyID, offer.ID); err != nil {
		return nil, err
	}

	go s.notifyOfferResponse(db, listing, offer, "accepted")

	return buildOfferResponse(offer), nil
}

func (s *OfferService) counter(db *gorm.DB, offer *models.Offer, req *dto.RespondToOfferRequest) (*dto.OfferResponse, error) {
	if req.CounterAmount == nil || *req.CounterAmount <= 0 {
		return nil, apperrors.ErrCounterAmountRequired
	}

	if err := models.GuardTransition(models.EntityOffer, string(offer.Status), string(models.OfferStatusCountered)); err != nil {
		return nil, err
	}

	now := time.Now()
	offer.Status = models.OfferStatusCountered
	offer.DecidedAt = &now

	if err := s.offerRepo.Update(db, offer); err != nil {
		return nil, wrapRepoError(err)
	}

	// The prior round stays on record; the negotiation continues in a fresh
	// pending round at the countered amount.
	next := &models.Offer{
		PropertyID:          offer.PropertyID,
		BuyerID:             offer.BuyerID,
		OfferAmount:         *req.CounterAmount,
		AskingPriceSnapshot: offer.AskingPriceSnapshot,
		Status:              models.OfferStatusPending,
		Contingencies:       offer.Contingencies,
		ClosingDate:         offer.ClosingDate,
		EarnestMoney:        offer.EarnestMoney,
		Round:               offer.Round + 1,
		PreviousOfferID:     &offer.ID,
	}

	if err := s.offerRepo.Create(db, next); err != nil {
		return nil, wrapRepoError(err)
	}

	listing := offer.Property
	if listing != nil {
		go s.notifyOfferResponse(db, listing, next, "countered")
	}

	return buildOfferResponse(next), nil
}

func (s *OfferService) reject(db *gorm.DB, offer *models.Offer, listing *models.PropertyListing) (*dto.OfferResponse, error) {
	if err := models.GuardTransition(models.EntityOffer, string(offer.Status), string(models.OfferStatusRejected)); err != nil {
		return nil, err
	}

	now := time.Now()
	offer.Status = models.OfferStatusRejected
	offer.DecidedAt = &now

	if err := s.offerRepo.Update(db, offer); err != nil {
		return nil, wrapRepoError(err)
	}

	go s.notifyOfferResponse(db, listing, offer, "rejected")

	return buildOfferResponse(offer), nil
}

// GetPropertyOffers lists the offers on a listing for its owner.
func (s *OfferService) GetPropertyOffers(db *gorm.DB, propertyID, requesterID string) ([]*dto.OfferResponse, error) {
	listing, err := s.propertyRepo.FindByID(db, propertyID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if listing.OwnerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	offers, err := s.offerRepo.FindByProperty(db, propertyID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	responses := make([]*dto.OfferResponse, 0, len(offers))
	for i := range offers {
		responses = append(responses, buildOfferResponse(&offers[i]))
	}
	return responses, nil
}

// GetBuyerOffers lists a buyer's own offers across listings.
func (s *OfferService) GetBuyerOffers(db *gorm.DB, buyerID, requesterID string) ([]*dto.OfferResponse, error) {
	if buyerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	offers, err := s.offerRepo.FindByBuyer(db, buyerID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	responses := make([]*dto.OfferResponse, 0, len(offers))
	for i := range offers {
		responses = append(responses, buildOfferResponse(&offers[i]))
	}
	return responses, nil
}

func (s *OfferService) notifyOfferReceived(db *gorm.DB, listing *models.PropertyListing, offer *models.Offer) {
	data, _ := json.Marshal(map[string]string{"property_id": listing.ID, "offer_id": offer.ID})
	n := &models.Notification{
		UserID:  listing.OwnerID,
		Type:    models.NotificationOfferReceived,
		Title:   "New offer received",
		Message: fmt.Sprintf("You received an offer of $%.2f on %s", offer.OfferAmount, listing.Title),
		Data:    datatypes.JSON(data),
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		logger.Error("failed to create offer notification", "offer_id", offer.ID, "error", err)
	}

	owner, err := s.userRepo.FindByID(db, listing.OwnerID)
	if err != nil {
		return
	}
	subject, body := email.OfferReceivedBody(listing.Title, offer.OfferAmount)
	if err := s.emailProvider.Send([]string{owner.Email}, subject, body); err != nil {
		logger.Error("failed to send offer email", "offer_id", offer.ID, "error", err)
	}
}

func (s *OfferService) notifyOfferResponse(db *gorm.DB, listing *models.PropertyListing, offer *models.Offer, action string) {
	data, _ := json.Marshal(map[string]string{"property_id": listing.ID, "offer_id": offer.ID, "action": action})
	n := &models.Notification{
		UserID:  offer.BuyerID,
		Type:    models.NotificationOfferResponse,
		Title:   fmt.Sprintf("Offer %s", action),
		Message: fmt.Sprintf("Your offer on %s was %s", listing.Title, action),
		Data:    datatypes.JSON(data),
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		logger.Error("failed to create offer response notification", "offer_id", offer.ID, "error", err)
	}

	buyer, err := s.userRepo.FindByID(db, offer.BuyerID)
	if err != nil {
		return
	}
	subject, body := email.OfferResponseBody(listing.Title, action, offer.OfferAmount)
	if err := s.emailProvider.Send([]string{buyer.Email}, subject, body); err != nil {
		logger.Error("failed to send offer response email", "offer_id", offer.ID, "error", err)
	}
}

func buildOfferResponse(offer *models.Offer) *dto.OfferResponse {
	var contingencies []string
	if len(offer.Contingencies) > 0 {
		_ = json.Unmarshal(offer.Contingencies, &contingencies)
	}

	return &dto.OfferResponse{
		ID:                  offer.ID,
		PropertyID:          offer.PropertyID,
		BuyerID:             offer.BuyerID,
		OfferAmount:         offer.OfferAmount,
		AskingPriceSnapshot: offer.AskingPriceSnapshot,
		Status:              offer.Status,
		StatusBadge:         models.StatusBadge(models.EntityOffer, string(offer.Status)),
		Contingencies:       contingencies,
		ClosingDate:         offer.ClosingDate,
		EarnestMoney:        offer.EarnestMoney,
		Round:               offer.Round,
		PreviousOfferID:     offer.PreviousOfferID,
		SupersededByID:      offer.SupersededByID,
		DecidedAt:           offer.DecidedAt,
		CreatedAt:           offer.CreatedAt,
	}
}
