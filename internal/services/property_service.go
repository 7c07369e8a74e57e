package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"propertydeals_backend/internal/cache"
	"propertydeals_backend/internal/logger"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const propertyCachePrefix = "properties"

// PropertyService owns the listing lifecycle: draft -> active -> pending ->
// closed, with the explicit pending -> active rollback when a contract falls
// through. Every transition is checked against the transition table before
// anything is written.
type PropertyService struct {
	propertyRepo repositories.PropertyRepository
	offerRepo    repositories.OfferRepository
	userRepo     repositories.UserRepository
	cache        *cache.Cache
}

func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	offerRepo repositories.OfferRepository,
	userRepo repositories.UserRepository,
	queryCache *cache.Cache,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		offerRepo:    offerRepo,
		userRepo:     userRepo,
		cache:        queryCache,
	}
}

// CreateDraft builds a new listing in draft for a user with an approved
// seller role.
func (s *PropertyService) CreateDraft(db *gorm.DB, ownerID string, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	owner, err := s.userRepo.FindByID(db, ownerID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if !owner.HasApprovedRole(models.RoleSeller) {
		return nil, apperrors.ErrRoleNotApproved
	}

	imagesJSON, err := json.Marshal(req.Images)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("failed to marshal images: %w", err))
	}

	listing := &models.PropertyListing{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Price:       req.Price,
		Status:      models.ListingStatusDraft,
		Images:      datatypes.JSON(imagesJSON),
		Beds:        req.Beds,
		Baths:       req.Baths,
		Sqft:        req.Sqft,
		YearBuilt:   req.YearBuilt,
	}

	if err := s.propertyRepo.Create(db, listing); err != nil {
		return nil, wrapRepoError(err)
	}

	s.invalidateCache()
	return buildPropertyResponse(listing), nil
}

// UpdateDraft applies field updates. Only drafts are editable and only by the
// owner.
func (s *PropertyService) UpdateDraft(db *gorm.DB, listingID, requesterID string, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	listing, err := s.propertyRepo.FindByID(db, listingID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if listing.OwnerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if listing.Status != models.ListingStatusDraft {
		return nil, apperrors.ErrInvalidListingStatus
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Street != nil {
		listing.Street = *req.Street
	}
	if req.City != nil {
		listing.City = *req.City
	}
	if req.State != nil {
		listing.State = *req.State
	}
	if req.ZipCode != nil {
		listing.ZipCode = *req.ZipCode
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.Beds != nil {
		listing.Beds = req.Beds
	}
	if req.Baths != nil {
		listing.Baths = req.Baths
	}
	if req.Sqft != nil {
		listing.Sqft = req.Sqft
	}
	if req.YearBuilt != nil {
		listing.YearBuilt = req.YearBuilt
	}
	if req.Images != nil {
		imagesJSON, err := json.Marshal(req.Images)
		if err != nil {
			return nil, apperrors.InternalError(fmt.Errorf("failed to marshal images: %w", err))
		}
		listing.Images = datatypes.JSON(imagesJSON)
	}

	if err := s.propertyRepo.Update(db, listing); err != nil {
		return nil, wrapRepoError(err)
	}

	s.invalidateCache()
	return buildPropertyResponse(listing), nil
}

// Publish moves draft -> active. The listing must carry the minimum required
// fields: full address, positive price and at least one image.
func (s *PropertyService) Publish(db *gorm.DB, listingID, requesterID string) (*dto.PropertyResponse, error) {
	listing, err := s.propertyRepo.FindByID(db, listingID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if listing.OwnerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if err := models.GuardTransition(models.EntityListing, string(listing.Status), string(models.ListingStatusActive)); err != nil {
		return nil, err
	}
	if !listing.HasRequiredFields() {
		return nil, apperrors.ErrIncompleteListing
	}

	now := time.Now()
	listing.Status = models.ListingStatusActive
	listing.PublishedAt = &now

	if err := s.propertyRepo.Update(db, listing); err != nil {
		return nil, wrapRepoError(err)
	}

	s.invalidateCache()
	return buildPropertyResponse(listing), nil
}

// MarkUnderContract moves active -> pending when an offer is accepted and
// flags the sibling pending offers. They are not auto-rejected; the seller
// resolves them manually or they are released by a rollback.
func (s *PropertyService) MarkUnderContract(db *gorm.DB, listingID, offerID string) (*models.PropertyListing, error) {
	listing, err := s.propertyRepo.FindByID(db, listingID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	// Idempotent: already under contract with the same offer.
	if listing.Status == models.ListingStatusPending &&
		listing.AcceptedOfferID != nil && *listing.AcceptedOfferID == offerID {
		return listing, nil
	}

	if err := models.GuardTransition(models.EntityListing, string(listing.Status), string(models.ListingStatusPending)); err != nil {
		return nil, err
	}

	listing.Status = models.ListingStatusPending
	listing.AcceptedOfferID = &offerID

	if err := s.propertyRepo.Update(db, listing); err != nil {
		return nil, wrapRepoError(err)
	}

	flagged, err := s.offerRepo.FlagSuperseded(db, listingID, offerID)
	if err != nil {
		logger.Error("failed to flag sibling offers", "listing_id", listingID, "error", err)
	} else if flagged > 0 {
		logger.Info("flagged sibling offers as superseded", "listing_id", listingID, "count", flagged)
	}

	s.invalidateCache()
	return listing, nil
}

// ReleaseContract rolls pending -> active after an accepted offer falls
// through, clearing the accepted linkage and superseded flags.
func (s *PropertyService) ReleaseContract(db *gorm.DB, listingID, requesterID string) (*dto.PropertyResponse, error) {
	listing, err := s.propertyRepo.FindByID(db, listingID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if listing.OwnerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if err := models.GuardTransition(models.EntityListing, string(listing.Status), string(models.ListingStatusActive)); err != nil {
		return nil, err
	}

	listing.Status = models.ListingStatusActive
	listing.AcceptedOfferID = nil

	if err := s.propertyRepo.Update(db, listing); err != nil {
		return nil, wrapRepoError(err)
	}
	if err := s.offerRepo.ClearSuperseded(db, listingID); err != nil {
		logger.Error("failed to clear superseded flags", "listing_id", listingID, "error", err)
	}

	s.invalidateCache()
	return buildPropertyResponse(listing), nil
}

// Close moves pending -> closed. Terminal.
func (s *PropertyService) Close(db *gorm.DB, listingID, requesterID string) (*dto.PropertyResponse, error) {
	listing, err := s.propertyRepo.FindByID(db, listingID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if listing.OwnerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if err := models.GuardTransition(models.EntityListing, string(listing.Status), string(models.ListingStatusClosed)); err != nil {
		return nil, err
	}

	now := time.Now()
	listing.Status = models.ListingStatusClosed
	listing.ClosedAt = &now

	if err := s.propertyRepo.Update(db, listing); err != nil {
		return nil, wrapRepoError(err)
	}

	s.invalidateCache()
	return buildPropertyResponse(listing), nil
}

// GetProperty returns one listing. Drafts are only visible to their owner.
func (s *PropertyService) GetProperty(db *gorm.DB, listingID, requesterID string) (*dto.PropertyResponse, error) {
	cacheKey := propertyCachePrefix + ":id:" + listingID

	var cached dto.PropertyResponse
	if s.cache.Get(cacheKey, &cached) {
		if cached.Status == models.ListingStatusDraft && cached.OwnerID != requesterID {
			return nil, apperrors.ErrNotFound(gorm.ErrRecordNotFound)
		}
		return &cached, nil
	}

	listing, err := s.propertyRepo.FindByID(db, listingID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if listing.Status == models.ListingStatusDraft && listing.OwnerID != requesterID {
		return nil, apperrors.ErrNotFound(gorm.ErrRecordNotFound)
	}

	response := buildPropertyResponse(listing)
	s.cache.Set(cacheKey, response)
	return response, nil
}

// SearchProperties serves the public search over active listings.
func (s *PropertyService) SearchProperties(db *gorm.DB, req dto.SearchPropertiesRequest) ([]*dto.PropertyResponse, int64, error) {
	criteria := repositories.PropertySearchCriteria{
		Query:    req.Query,
		City:     req.City,
		State:    req.State,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		MinBeds:  req.MinBeds,
		Status:   models.ListingStatusActive,
		Page:     req.Page,
		PageSize: req.PageSize,
		SortBy:   req.SortBy,
		SortDesc: req.SortDesc,
	}

	cacheKey := searchCacheKey(req)
	var cached struct {
		Listings []*dto.PropertyResponse `json:"listings"`
		Total    int64                   `json:"total"`
	}
	if s.cache.Get(cacheKey, &cached) {
		return cached.Listings, cached.Total, nil
	}

	listings, total, err := s.propertyRepo.Search(db, criteria)
	if err != nil {
		return nil, 0, wrapRepoError(err)
	}

	responses := make([]*dto.PropertyResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, buildPropertyResponse(&listings[i]))
	}

	cached.Listings = responses
	cached.Total = total
	s.cache.Set(cacheKey, cached)

	return responses, total, nil
}

// GetOwnerListings returns all listings of a seller, drafts included.
func (s *PropertyService) GetOwnerListings(db *gorm.DB, ownerID, requesterID string) ([]*dto.PropertyResponse, error) {
	if ownerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	listings, err := s.propertyRepo.FindByOwner(db, ownerID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	responses := make([]*dto.PropertyResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, buildPropertyResponse(&listings[i]))
	}
	return responses, nil
}

func (s *PropertyService) invalidateCache() {
	go s.cache.InvalidatePrefix(propertyCachePrefix)
}

func searchCacheKey(req dto.SearchPropertiesRequest) string {
	params := map[string]string{
		"q":         req.Query,
		"city":      req.City,
		"state":     req.State,
		"sort_by":   req.SortBy,
		"sort_desc": strconv.FormatBool(req.SortDesc),
		"page":      strconv.Itoa(req.Page),
		"page_size": strconv.Itoa(req.PageSize),
	}
	if req.MinPrice != nil {
		params["min_price"] = strconv.FormatFloat(*req.MinPrice, 'f', 2, 64)
	}
	if req.MaxPrice != nil {
		params["max_price"] = strconv.FormatFloat(*req.MaxPrice, 'f', 2, 64)
	}
	if req.MinBeds != nil {
		params["min_beds"] = strconv.Itoa(*req.MinBeds)
	}
	return cache.QueryKey(propertyCachePrefix+":search", params)
}

func buildPropertyResponse(listing *models.PropertyListing) *dto.PropertyResponse {
	var images []string
	if len(listing.Images) > 0 {
		_ = json.Unmarshal(listing.Images, &images)
	}

	return &dto.PropertyResponse{
		ID:          listing.ID,
		OwnerID:     listing.OwnerID,
		Title:       listing.Title,
		Description: listing.Description,
		Street:      listing.Street,
		City:        listing.City,
		State:       listing.State,
		ZipCode:     listing.ZipCode,
		Price:       listing.Price,
		Status:      listing.Status,
		StatusBadge: models.StatusBadge(models.EntityListing, string(listing.Status)),
		Images:      images,
		Beds:        listing.Beds,
		Baths:       listing.Baths,
		Sqft:        listing.Sqft,
		YearBuilt:   listing.YearBuilt,
		PublishedAt: listing.PublishedAt,
		ClosedAt:    listing.ClosedAt,
		CreatedAt:   listing.CreatedAt,
		UpdatedAt:   listing.UpdatedAt,
	}
}
