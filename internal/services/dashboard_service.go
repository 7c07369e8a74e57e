package services

import (
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/services/dto"

	"gorm.io/gorm"
)

type DashboardService struct {
	userRepo         repositories.UserRepository
	propertyRepo     repositories.PropertyRepository
	offerRepo        repositories.OfferRepository
	reportRepo       repositories.ReportRepository
	roleAppRepo      repositories.RoleApplicationRepository
	notificationRepo repositories.NotificationRepository
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	propertyRepo repositories.PropertyRepository,
	offerRepo repositories.OfferRepository,
	reportRepo repositories.ReportRepository,
	roleAppRepo repositories.RoleApplicationRepository,
	notificationRepo repositories.NotificationRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:         userRepo,
		propertyRepo:     propertyRepo,
		offerRepo:        offerRepo,
		reportRepo:       reportRepo,
		roleAppRepo:      roleAppRepo,
		notificationRepo: notificationRepo,
	}
}

// GetDashboard gathers the current state for the user and delegates to
// ComposeDashboard. All selection logic lives in the pure function so it can
// be tested without a database.
func (s *DashboardService) GetDashboard(db *gorm.DB, userID string) (*dto.DashboardView, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	state := dto.DashboardState{
		ActiveRole: user.ActiveRole,
		IsAdmin:    user.IsAdmin,
		RoleStatus: make(map[models.Role]models.ApplicationStatus, len(models.ValidRoles)),
	}
	for _, role := range models.ValidRoles {
		state.RoleStatus[role] = user.RoleStatus(role)
	}

	if user.HasApprovedRole(models.RoleSeller) {
		if state.ListingCounts, err = s.propertyRepo.CountByOwnerAndStatus(db, userID); err != nil {
			return nil, wrapRepoError(err)
		}
	}
	if state.OfferCounts, err = s.offerRepo.CountByBuyerAndStatus(db, userID); err != nil {
		return nil, wrapRepoError(err)
	}
	if user.IsAdmin {
		if state.ReportCounts, err = s.reportRepo.CountByStatus(db); err != nil {
			return nil, wrapRepoError(err)
		}
		if _, state.PendingRoleApplications, err = s.roleAppRepo.ListPending(db, 1, 1); err != nil {
			return nil, wrapRepoError(err)
		}
	}
	if state.UnreadNotifications, err = s.notificationRepo.CountUnread(db, userID); err != nil {
		return nil, wrapRepoError(err)
	}

	view := ComposeDashboard(state)
	return &view, nil
}

// ComposeDashboard selects panels and enabled actions from the current state.
// It is deterministic and side-effect free: the same state always yields the
// same view.
func ComposeDashboard(state dto.DashboardState) dto.DashboardView {
	view := dto.DashboardView{
		ActiveRole: state.ActiveRole,
		IsAdmin:    state.IsAdmin,
		Actions:    make(map[string]bool),
		RoleBadges: make(map[models.Role]models.Badge, len(state.RoleStatus)),
		RoleStatus: state.RoleStatus,
	}

	for role, status := range state.RoleStatus {
		view.RoleBadges[role] = models.StatusBadge(models.EntityRoleApplication, string(status))
	}

	switch state.ActiveRole {
	case models.RoleBuyer:
		view.Panels = append(view.Panels,
			dto.DashboardPanel{Key: "saved_properties", Title: "Saved Properties"},
			dto.DashboardPanel{Key: "my_offers", Title: "My Offers", Counts: offerCountMap(state.OfferCounts)},
		)
		view.Actions["submit_offer"] = state.RoleStatus[models.RoleBuyer] == models.ApplicationStatusApproved

	case models.RoleSeller:
		view.Panels = append(view.Panels,
			dto.DashboardPanel{Key: "my_listings", Title: "My Listings", Counts: listingCountMap(state.ListingCounts)},
			dto.DashboardPanel{Key: "offers_received", Title: "Offers Received"},
		)
		approved := state.RoleStatus[models.RoleSeller] == models.ApplicationStatusApproved
		view.Actions["create_listing"] = approved
		view.Actions["publish_listing"] = approved && state.ListingCounts[models.ListingStatusDraft] > 0
		view.Actions["respond_to_offers"] = approved && state.ListingCounts[models.ListingStatusActive]+state.ListingCounts[models.ListingStatusPending] > 0

	case models.RoleRep:
		view.Panels = append(view.Panels,
			dto.DashboardPanel{Key: "client_directory", Title: "Client Directory"},
			dto.DashboardPanel{Key: "active_deals", Title: "Active Deals"},
		)
		view.Actions["manage_clients"] = state.RoleStatus[models.RoleRep] == models.ApplicationStatusApproved
	}

	// Every signed-in user may apply for roles they do not hold yet.
	for role, status := range state.RoleStatus {
		if models.CanTransition(models.EntityRoleApplication, string(status), string(models.ApplicationStatusPending)) {
			view.Actions["apply_"+string(role)] = true
		}
	}

	if state.IsAdmin {
		view.Panels = append(view.Panels,
			dto.DashboardPanel{Key: "role_approvals", Title: "Role Approvals", Counts: map[string]int64{"pending": state.PendingRoleApplications}},
			dto.DashboardPanel{Key: "reports", Title: "Reports", Counts: reportCountMap(state.ReportCounts)},
		)
		view.Actions["review_reports"] = true
		view.Actions["manage_users"] = true
	}

	if state.UnreadNotifications > 0 {
		view.Panels = append(view.Panels, dto.DashboardPanel{
			Key:    "notifications",
			Title:  "Notifications",
			Counts: map[string]int64{"unread": state.UnreadNotifications},
		})
	}

	return view
}

func listingCountMap(counts map[models.ListingStatus]int64) map[string]int64 {
	if len(counts) == 0 {
		return nil
	}
	out := make(map[string]int64, len(counts))
	for k, v := range counts {
		out[string(k)] = v
	}
	return out
}

func offerCountMap(counts map[models.OfferStatus]int64) map[string]int64 {
	if len(counts) == 0 {
		return nil
	}
	out := make(map[string]int64, len(counts))
	for k, v := range counts {
		out[string(k)] = v
	}
	return out
}

func reportCountMap(counts map[models.ReportStatus]int64) map[string]int64 {
	if len(counts) == 0 {
		return nil
	}
	out := make(map[string]int64, len(counts))
	for k, v := range counts {
		out[string(k)] = v
	}
	return out
}
