package repositories

import (
	"time"

	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error
	FindByToken(db *gorm.DB, token string) (*models.RefreshToken, error)
	Delete(db *gorm.DB, token string) error
	DeleteByUser(db *gorm.DB, userID string) error
	DeleteExpired(db *gorm.DB) (int64, error)
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *refreshTokenRepository) FindByToken(db *gorm.DB, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := db.First(&rt, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *refreshTokenRepository) Delete(db *gorm.DB, token string) error {
	return db.Delete(&models.RefreshToken{}, "token = ?", token).Error
}

func (r *refreshTokenRepository) DeleteByUser(db *gorm.DB, userID string) error {
	return db.Delete(&models.RefreshToken{}, "user_id = ?", userID).Error
}

func (r *refreshTokenRepository) DeleteExpired(db *gorm.DB) (int64, error) {
	result := db.Delete(&models.RefreshToken{}, "expires_at < ?", time.Now())
	return result.RowsAffected, result.Error
}
