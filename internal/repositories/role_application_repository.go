package repositories

import (
	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

type RoleApplicationRepository interface {
	Create(db *gorm.DB, app *models.RoleApplication) error
	FindByUserAndRole(db *gorm.DB, userID string, role models.Role) (*models.RoleApplication, error)
	FindByUser(db *gorm.DB, userID string) ([]models.RoleApplication, error)
	Update(db *gorm.DB, app *models.RoleApplication) error
	ListPending(db *gorm.DB, page, pageSize int) ([]models.RoleApplication, int64, error)
}

type roleApplicationRepository struct{}

func NewRoleApplicationRepository() RoleApplicationRepository {
	return &roleApplicationRepository{}
}

func (r *roleApplicationRepository) Create(db *gorm.DB, app *models.RoleApplication) error {
	return db.Create(app).Error
}

func (r *roleApplicationRepository) FindByUserAndRole(db *gorm.DB, userID string, role models.Role) (*models.RoleApplication, error) {
	var app models.RoleApplication
	err := db.First(&app, "user_id = ? AND role = ?", userID, role).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *roleApplicationRepository) FindByUser(db *gorm.DB, userID string) ([]models.RoleApplication, error) {
	var apps []models.RoleApplication
	err := db.Where("user_id = ?", userID).Order("role").Find(&apps).Error
	return apps, err
}

func (r *roleApplicationRepository) Update(db *gorm.DB, app *models.RoleApplication) error {
	return db.Save(app).Error
}

func (r *roleApplicationRepository) ListPending(db *gorm.DB, page, pageSize int) ([]models.RoleApplication, int64, error) {
	var apps []models.RoleApplication
	var total int64

	query := db.Model(&models.RoleApplication{}).
		Where("status = ?", models.ApplicationStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("applied_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&apps).Error
	return apps, total, err
}
