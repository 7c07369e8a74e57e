package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"propertydeals_backend/internal/email"
	"propertydeals_backend/internal/logger"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoleApplicationService runs the role workflow consumed by both the
// user-facing dashboard and the admin approval queue:
// not_applied -> pending -> approved | denied, with denied -> pending on
// re-application. Approving never switches the active role; SwitchRole is a
// separate, guarded step.
type RoleApplicationService struct {
	roleAppRepo      repositories.RoleApplicationRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	emailProvider    email.Provider
}

func NewRoleApplicationService(
	roleAppRepo repositories.RoleApplicationRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	emailProvider email.Provider,
) *RoleApplicationService {
	return &RoleApplicationService{
		roleAppRepo:      roleAppRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailProvider:    emailProvider,
	}
}

// ApplyForRole opens (or re-opens) an application. Idempotent for an already
// pending application: the existing one is returned unchanged.
func (s *RoleApplicationService) ApplyForRole(db *gorm.DB, userID string, role models.Role, req *dto.ApplyForRoleRequest) (*dto.RoleApplicationResponse, error) {
	if !models.IsValidRole(role) {
		return nil, apperrors.NewBadRequestError("Unknown role: " + string(role))
	}

	app, err := s.roleAppRepo.FindByUserAndRole(db, userID, role)
	if err != nil {
		if !apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wrapRepoError(err)
		}
		app = &models.RoleApplication{
			UserID: userID,
			Role:   role,
			Status: models.ApplicationStatusNotApplied,
		}
		if err := s.roleAppRepo.Create(db, app); err != nil {
			return nil, wrapRepoError(err)
		}
	}

	switch app.Status {
	case models.ApplicationStatusPending:
		// Already applied; return the open application instead of duplicating.
		return buildRoleApplicationResponse(app), nil
	case models.ApplicationStatusApproved:
		return nil, apperrors.ErrApplicationAlreadyApproved
	}

	if err := models.GuardTransition(models.EntityRoleApplication, string(app.Status), string(models.ApplicationStatusPending)); err != nil {
		return nil, err
	}

	now := time.Now()
	app.Status = models.ApplicationStatusPending
	app.AppliedAt = &now
	app.DecidedAt = nil
	app.DecidedBy = nil
	// Prior denial notes stay on record for the next reviewer.

	if req != nil && req.Data != nil {
		dataJSON, err := json.Marshal(req.Data)
		if err != nil {
			return nil, apperrors.InternalError(fmt.Errorf("failed to marshal application data: %w", err))
		}
		app.Data = datatypes.JSON(dataJSON)
	}

	if err := s.roleAppRepo.Update(db, app); err != nil {
		return nil, wrapRepoError(err)
	}

	return buildRoleApplicationResponse(app), nil
}

// Approve moves pending -> approved. Admin only; the caller's admin check
// happens at the route level, the state guard here.
func (s *RoleApplicationService) Approve(db *gorm.DB, adminID, userID string, role models.Role) (*dto.RoleApplicationResponse, error) {
	return s.decide(db, adminID, userID, role, models.ApplicationStatusApproved, "")
}

// Deny moves pending -> denied. Notes are required and appended to the
// application history.
func (s *RoleApplicationService) Deny(db *gorm.DB, adminID, userID string, role models.Role, notes string) (*dto.RoleApplicationResponse, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, apperrors.ErrDenialNotesRequired
	}
	return s.decide(db, adminID, userID, role, models.ApplicationStatusDenied, notes)
}

func (s *RoleApplicationService) decide(db *gorm.DB, adminID, userID string, role models.Role, decision models.ApplicationStatus, notes string) (*dto.RoleApplicationResponse, error) {
	if !models.IsValidRole(role) {
		return nil, apperrors.NewBadRequestError("Unknown role: " + string(role))
	}

	app, err := s.roleAppRepo.FindByUserAndRole(db, userID, role)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	if err := models.GuardTransition(models.EntityRoleApplication, string(app.Status), string(decision)); err != nil {
		return nil, err
	}

	now := time.Now()
	app.Status = decision
	app.DecidedAt = &now
	app.DecidedBy = &adminID
	if notes != "" {
		if app.Notes != "" {
			app.Notes = app.Notes + "\n" + notes
		} else {
			app.Notes = notes
		}
	}

	if err := s.roleAppRepo.Update(db, app); err != nil {
		return nil, wrapRepoError(err)
	}

	go s.notifyDecision(db, userID, role, decision, notes)

	return buildRoleApplicationResponse(app), nil
}

// SwitchRole changes the active role. Only approved roles can be activated.
func (s *RoleApplicationService) SwitchRole(db *gorm.DB, userID string, role models.Role) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, apperrors.NewBadRequestError("Unknown role: " + string(role))
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	if !user.HasApprovedRole(role) {
		return nil, apperrors.ErrRoleNotApproved
	}

	user.ActiveRole = role
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, wrapRepoError(err)
	}

	return user, nil
}

// GetUserRoles returns the user's full role map, with not_applied stubs for
// roles never applied for.
func (s *RoleApplicationService) GetUserRoles(db *gorm.DB, userID string) ([]*dto.RoleApplicationResponse, error) {
	apps, err := s.roleAppRepo.FindByUser(db, userID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	byRole := make(map[models.Role]*models.RoleApplication, len(apps))
	for i := range apps {
		byRole[apps[i].Role] = &apps[i]
	}

	responses := make([]*dto.RoleApplicationResponse, 0, len(models.ValidRoles))
	for _, role := range models.ValidRoles {
		if app, ok := byRole[role]; ok {
			responses = append(responses, buildRoleApplicationResponse(app))
			continue
		}
		responses = append(responses, &dto.RoleApplicationResponse{
			UserID:      userID,
			Role:        role,
			Status:      models.ApplicationStatusNotApplied,
			StatusBadge: models.StatusBadge(models.EntityRoleApplication, string(models.ApplicationStatusNotApplied)),
		})
	}
	return responses, nil
}

// ListPending serves the admin approval queue.
func (s *RoleApplicationService) ListPending(db *gorm.DB, page, pageSize int) ([]*dto.RoleApplicationResponse, int64, error) {
	apps, total, err := s.roleAppRepo.ListPending(db, page, pageSize)
	if err != nil {
		return nil, 0, wrapRepoError(err)
	}

	responses := make([]*dto.RoleApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, buildRoleApplicationResponse(&apps[i]))
	}
	return responses, total, nil
}

func (s *RoleApplicationService) notifyDecision(db *gorm.DB, userID string, role models.Role, decision models.ApplicationStatus, notes string) {
	data, _ := json.Marshal(map[string]string{"role": string(role), "decision": string(decision)})
	n := &models.Notification{
		UserID:  userID,
		Type:    models.NotificationRoleDecision,
		Title:   fmt.Sprintf("%s application %s", role, decision),
		Message: fmt.Sprintf("Your application for the %s role has been %s", role, decision),
		Data:    datatypes.JSON(data),
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		logger.Error("failed to create role decision notification", "user_id", userID, "error", err)
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return
	}
	subject, body := email.RoleDecisionBody(string(role), string(decision), notes)
	if err := s.emailProvider.Send([]string{user.Email}, subject, body); err != nil {
		logger.Error("failed to send role decision email", "user_id", userID, "error", err)
	}
}

func buildRoleApplicationResponse(app *models.RoleApplication) *dto.RoleApplicationResponse {
	return &dto.RoleApplicationResponse{
		UserID:      app.UserID,
		Role:        app.Role,
		Status:      app.Status,
		StatusBadge: models.StatusBadge(models.EntityRoleApplication, string(app.Status)),
		Notes:       app.Notes,
		AppliedAt:   app.AppliedAt,
		DecidedAt:   app.DecidedAt,
	}
}
