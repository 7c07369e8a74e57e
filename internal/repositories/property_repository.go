package repositories

import (
	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

// PropertySearchCriteria filters the public listing search.
type PropertySearchCriteria struct {
	Query    string
	City     string
	State    string
	MinPrice *float64
	MaxPrice *float64
	MinBeds  *int
	Status   models.ListingStatus
	OwnerID  string
	Page     int
	PageSize int
	SortBy   string
	SortDesc bool
}

type PropertyRepository interface {
	Create(db *gorm.DB, p *models.PropertyListing) error
	FindByID(db *gorm.DB, id string) (*models.PropertyListing, error)
	Update(db *gorm.DB, p *models.PropertyListing) error
	FindByOwner(db *gorm.DB, ownerID string) ([]models.PropertyListing, error)
	Search(db *gorm.DB, criteria PropertySearchCriteria) ([]models.PropertyListing, int64, error)
	CountByOwnerAndStatus(db *gorm.DB, ownerID string) (map[models.ListingStatus]int64, error)
}

type propertyRepository struct{}

func NewPropertyRepository() PropertyRepository {
	return &propertyRepository{}
}

func (r *propertyRepository) Create(db *gorm.DB, p *models.PropertyListing) error {
	return db.Create(p).Error
}

func (r *propertyRepository) FindByID(db *gorm.DB, id string) (*models.PropertyListing, error) {
	var p models.PropertyListing
	err := db.First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) Update(db *gorm.DB, p *models.PropertyListing) error {
	return db.Save(p).Error
}

func (r *propertyRepository) FindByOwner(db *gorm.DB, ownerID string) ([]models.PropertyListing, error) {
	var listings []models.PropertyListing
	err := db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

func (r *propertyRepository) Search(db *gorm.DB, criteria PropertySearchCriteria) ([]models.PropertyListing, int64, error) {
	query := db.Model(&models.PropertyListing{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Query != "" {
		like := "%" + criteria.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR street ILIKE ?", like, like, like)
	}
	if criteria.City != "" {
		query = query.Where("city ILIKE ?", criteria.City)
	}
	if criteria.State != "" {
		query = query.Where("state ILIKE ?", criteria.State)
	}
	if criteria.MinPrice != nil {
		query = query.Where("price >= ?", *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		query = query.Where("price <= ?", *criteria.MaxPrice)
	}
	if criteria.MinBeds != nil {
		query = query.Where("beds >= ?", *criteria.MinBeds)
	}
	if criteria.OwnerID != "" {
		query = query.Where("owner_id = ?", criteria.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := criteria.SortBy
	switch sortBy {
	case "price", "created_at", "published_at":
	default:
		sortBy = "created_at"
	}
	order := sortBy + " ASC"
	if criteria.SortDesc {
		order = sortBy + " DESC"
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var listings []models.PropertyListing
	err := query.
		Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&listings).Error
	return listings, total, err
}

func (r *propertyRepository) CountByOwnerAndStatus(db *gorm.DB, ownerID string) (map[models.ListingStatus]int64, error) {
	type row struct {
		Status models.ListingStatus
		Count  int64
	}
	var rows []row
	err := db.Model(&models.PropertyListing{}).
		Select("status, count(*) as count").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ListingStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
