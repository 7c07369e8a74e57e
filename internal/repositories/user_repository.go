package repositories

import (
	"errors"

	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUserAlreadyExists = errors.New("user already exists")

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	Update(db *gorm.DB, user *models.User) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	var count int64
	db.Model(&models.User{}).
		Where("email = ? OR username = ?", user.Email, user.Username).
		Count(&count)
	if count > 0 {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("RoleApplications").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("RoleApplications").First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.Preload("RoleApplications").First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}
