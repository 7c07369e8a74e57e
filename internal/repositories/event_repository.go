package repositories

import (
	"time"

	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

type EventRepository interface {
	Create(db *gorm.DB, event *models.Event) error
	FindByID(db *gorm.DB, id string) (*models.Event, error)
	Update(db *gorm.DB, event *models.Event) error
	ListUpcoming(db *gorm.DB, limit int) ([]models.Event, error)
	FindByHost(db *gorm.DB, hostID string) ([]models.Event, error)
	UnpublishPast(db *gorm.DB, now time.Time) (int64, error)
}

type eventRepository struct{}

func NewEventRepository() EventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(db *gorm.DB, event *models.Event) error {
	return db.Create(event).Error
}

func (r *eventRepository) FindByID(db *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	err := db.First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(db *gorm.DB, event *models.Event) error {
	return db.Save(event).Error
}

func (r *eventRepository) ListUpcoming(db *gorm.DB, limit int) ([]models.Event, error) {
	var events []models.Event
	err := db.Where("is_published = true AND starts_at > ?", time.Now()).
		Order("starts_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindByHost(db *gorm.DB, hostID string) ([]models.Event, error) {
	var events []models.Event
	err := db.Where("host_id = ?", hostID).Order("starts_at DESC").Find(&events).Error
	return events, err
}

func (r *eventRepository) UnpublishPast(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Event{}).
		Where("is_published = true AND starts_at < ? AND (ends_at IS NULL OR ends_at < ?)", now, now).
		Update("is_published", false)
	return result.RowsAffected, result.Error
}
