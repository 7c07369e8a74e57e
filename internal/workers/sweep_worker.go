package workers

import (
	"context"
	"time"

	"propertydeals_backend/internal/logger"
	"propertydeals_backend/internal/repositories"

	"gorm.io/gorm"
)

// SweepWorker runs the periodic housekeeping jobs: rejecting pending offers
// whose closing date has passed, unpublishing stale events and purging
// expired refresh tokens.
type SweepWorker struct {
	db               *gorm.DB
	offerRepo        repositories.OfferRepository
	eventRepo        repositories.EventRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	offerInterval    time.Duration
	eventInterval    time.Duration
}

func NewSweepWorker(
	db *gorm.DB,
	offerRepo repositories.OfferRepository,
	eventRepo repositories.EventRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	offerSweepMinutes, eventSweepMinutes int,
) *SweepWorker {
	if offerSweepMinutes <= 0 {
		offerSweepMinutes = 60
	}
	if eventSweepMinutes <= 0 {
		eventSweepMinutes = 60
	}
	return &SweepWorker{
		db:               db,
		offerRepo:        offerRepo,
		eventRepo:        eventRepo,
		refreshTokenRepo: refreshTokenRepo,
		offerInterval:    time.Duration(offerSweepMinutes) * time.Minute,
		eventInterval:    time.Duration(eventSweepMinutes) * time.Minute,
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	go w.sweepOffers(ctx)
	go w.sweepEvents(ctx)
}

func (w *SweepWorker) sweepOffers(ctx context.Context) {
	ticker := time.NewTicker(w.offerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Offer sweep worker stopped")
			return
		case <-ticker.C:
			count, err := w.offerRepo.RejectExpired(w.db, time.Now())
			logger.WorkerLog("sweep", "reject_expired_offers", err)
			if err == nil && count > 0 {
				logger.Info("Rejected expired offers", "count", count)
			}

			deleted, err := w.refreshTokenRepo.DeleteExpired(w.db)
			logger.WorkerLog("sweep", "delete_expired_refresh_tokens", err)
			if err == nil && deleted > 0 {
				logger.Info("Deleted expired refresh tokens", "count", deleted)
			}
		}
	}
}

func (w *SweepWorker) sweepEvents(ctx context.Context) {
	ticker := time.NewTicker(w.eventInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Event sweep worker stopped")
			return
		case <-ticker.C:
			count, err := w.eventRepo.UnpublishPast(w.db, time.Now())
			logger.WorkerLog("sweep", "unpublish_past_events", err)
			if err == nil && count > 0 {
				logger.Info("Unpublished past events", "count", count)
			}
		}
	}
}
