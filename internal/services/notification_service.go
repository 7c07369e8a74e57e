package services

import (
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"

	"gorm.io/gorm"
)

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) List(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.FindByUser(db, userID, unreadOnly)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(db *gorm.DB, userID, notificationID string) error {
	if err := s.notificationRepo.MarkRead(db, notificationID, userID); err != nil {
		return wrapRepoError(err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllRead(db, userID); err != nil {
		return wrapRepoError(err)
	}
	return nil
}

func (s *NotificationService) CountUnread(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, wrapRepoError(err)
	}
	return count, nil
}
