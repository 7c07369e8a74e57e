package database

import (
	"fmt"

	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date for every persisted model. It runs at
// startup, before seeding or any query touches the database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.RoleApplication{},
		&models.PropertyListing{},
		&models.Offer{},
		&models.Report{},
		&models.Inquiry{},
		&models.Event{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}
