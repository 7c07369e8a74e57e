package services

import (
	"errors"
	"time"

	"propertydeals_backend/internal/auth"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService struct {
	userRepo         repositories.UserRepository
	roleAppRepo      repositories.RoleApplicationRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

func NewAuthService(
	userRepo repositories.UserRepository,
	roleAppRepo repositories.RoleApplicationRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		roleAppRepo:      roleAppRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Register creates the account and seeds its role map: everyone is a buyer
// from day one, seller and rep start as not_applied and go through the
// application queue.
func (s *AuthService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		ActiveRole:   models.RoleBuyer,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, wrapRepoError(err)
	}

	now := time.Now()
	for _, role := range models.ValidRoles {
		app := &models.RoleApplication{
			UserID: user.ID,
			Role:   role,
			Status: models.ApplicationStatusNotApplied,
		}
		if role == models.RoleBuyer {
			app.Status = models.ApplicationStatusApproved
			app.DecidedAt = &now
		}
		if err := s.roleAppRepo.Create(db, app); err != nil {
			return nil, wrapRepoError(err)
		}
		user.RoleApplications = append(user.RoleApplications, *app)
	}

	return s.issueTokens(db, user)
}

func (s *AuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, wrapRepoError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.IsSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueTokens(db, user)
}

// Refresh rotates the refresh token in place.
func (s *AuthService) Refresh(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.refreshTokenRepo.FindByToken(db, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, wrapRepoError(err)
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokenRepo.Delete(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if user.IsSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	if err := s.refreshTokenRepo.Delete(db, refreshToken); err != nil {
		return nil, wrapRepoError(err)
	}
	return s.issueTokens(db, user)
}

func (s *AuthService) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.refreshTokenRepo.Delete(db, refreshToken); err != nil {
		return wrapRepoError(err)
	}
	return nil
}

func (s *AuthService) issueTokens(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.ActiveRole), user.IsAdmin)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(db, refresh); err != nil {
		return nil, wrapRepoError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		User:         BuildUserSummary(user),
	}, nil
}

// BuildUserSummary flattens the user's role applications into the role map
// the dashboard reads.
func BuildUserSummary(user *models.User) *dto.UserSummary {
	roles := make(map[models.Role]models.ApplicationStatus, len(models.ValidRoles))
	for _, role := range models.ValidRoles {
		roles[role] = user.RoleStatus(role)
	}
	return &dto.UserSummary{
		ID:         user.ID,
		Username:   user.Username,
		FullName:   user.FullName,
		Email:      user.Email,
		ActiveRole: user.ActiveRole,
		IsAdmin:    user.IsAdmin,
		Roles:      roles,
	}
}
