package dto

import "propertydeals_backend/internal/models"

// DashboardView is the full render model for a role dashboard: which panels
// to show and which actions are currently enabled. Computed fresh on every
// request from current state, never stored.
type DashboardView struct {
	ActiveRole models.Role                              `json:"active_role"`
	IsAdmin    bool                                     `json:"is_admin"`
	Panels     []DashboardPanel                         `json:"panels"`
	Actions    map[string]bool                          `json:"actions"`
	RoleBadges map[models.Role]models.Badge             `json:"role_badges"`
	RoleStatus map[models.Role]models.ApplicationStatus `json:"role_status"`
}

type DashboardPanel struct {
	Key    string           `json:"key"`
	Title  string           `json:"title"`
	Counts map[string]int64 `json:"counts,omitempty"`
}

// DashboardState is everything the composition function may consult.
type DashboardState struct {
	ActiveRole              models.Role
	IsAdmin                 bool
	RoleStatus              map[models.Role]models.ApplicationStatus
	ListingCounts           map[models.ListingStatus]int64
	OfferCounts             map[models.OfferStatus]int64
	ReportCounts            map[models.ReportStatus]int64
	PendingRoleApplications int64
	UnreadNotifications     int64
}
