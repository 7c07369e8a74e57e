package services

import (
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(db *gorm.DB, userID string) (*dto.UserSummary, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return BuildUserSummary(user), nil
}

// UpdateProfile applies the self-service subset of UpdateUserRequest.
// Suspension is admin-only and ignored here.
func (s *UserService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserSummary, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.userRepo.FindByUsername(db, *req.Username); err == nil {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		user.Username = *req.Username
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, wrapRepoError(err)
	}
	return BuildUserSummary(user), nil
}

// AdminUpdateUser also toggles suspension. Admins cannot suspend themselves.
func (s *UserService) AdminUpdateUser(db *gorm.DB, adminID, userID string, req *dto.UpdateUserRequest) (*dto.UserSummary, error) {
	if req.IsSuspended != nil && adminID == userID {
		return nil, apperrors.ErrCannotModifySelf
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.IsSuspended != nil {
		user.IsSuspended = *req.IsSuspended
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, wrapRepoError(err)
	}
	return BuildUserSummary(user), nil
}
