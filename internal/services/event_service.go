package services

import (
	"time"

	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EventService struct {
	eventRepo repositories.EventRepository
}

func NewEventService(eventRepo repositories.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

func (s *EventService) Create(db *gorm.DB, hostID string, req *dto.CreateEventRequest) (*models.Event, error) {
	if req.StartsAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("Event start time must be in the future")
	}

	event := &models.Event{
		HostID:      hostID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := s.eventRepo.Create(db, event); err != nil {
		return nil, wrapRepoError(err)
	}
	return event, nil
}

func (s *EventService) Update(db *gorm.DB, hostID, eventID string, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.getOwned(db, hostID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = req.EndsAt
	}

	if err := s.eventRepo.Update(db, event); err != nil {
		return nil, wrapRepoError(err)
	}
	return event, nil
}

func (s *EventService) Publish(db *gorm.DB, hostID, eventID string) (*models.Event, error) {
	event, err := s.getOwned(db, hostID, eventID)
	if err != nil {
		return nil, err
	}
	if event.StartsAt.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("Cannot publish an event that already started")
	}

	event.IsPublished = true
	if err := s.eventRepo.Update(db, event); err != nil {
		return nil, wrapRepoError(err)
	}
	return event, nil
}

// ListUpcoming is the public feed of published future events.
func (s *EventService) ListUpcoming(db *gorm.DB, limit int) ([]models.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	events, err := s.eventRepo.ListUpcoming(db, limit)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return events, nil
}

func (s *EventService) ListForHost(db *gorm.DB, hostID string) ([]models.Event, error) {
	events, err := s.eventRepo.FindByHost(db, hostID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return events, nil
}

func (s *EventService) getOwned(db *gorm.DB, hostID, eventID string) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(db, eventID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if event.HostID != hostID {
		return nil, apperrors.NewForbiddenError("You can only manage your own events")
	}
	return event, nil
}
