package repositories

import (
	"time"

	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, n *models.Notification) error
	FindByUser(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(db *gorm.DB, id, userID string) error
	MarkAllRead(db *gorm.DB, userID string) error
	CountUnread(db *gorm.DB, userID string) (int64, error)
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, n *models.Notification) error {
	return db.Create(n).Error
}

func (r *notificationRepository) FindByUser(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	query := db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = false")
	}
	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(db *gorm.DB, id, userID string) error {
	now := time.Now()
	return db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

func (r *notificationRepository) MarkAllRead(db *gorm.DB, userID string) error {
	now := time.Now()
	return db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

func (r *notificationRepository) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}
