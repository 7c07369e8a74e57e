package services

import (
	"testing"

	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buyerState() dto.DashboardState {
	return dto.DashboardState{
		ActiveRole: models.RoleBuyer,
		RoleStatus: map[models.Role]models.ApplicationStatus{
			models.RoleBuyer:  models.ApplicationStatusApproved,
			models.RoleSeller: models.ApplicationStatusNotApplied,
			models.RoleRep:    models.ApplicationStatusNotApplied,
		},
	}
}

func panelKeys(view dto.DashboardView) []string {
	keys := make([]string, 0, len(view.Panels))
	for _, p := range view.Panels {
		keys = append(keys, p.Key)
	}
	return keys
}

func TestComposeDashboard_IsDeterministic(t *testing.T) {
	t.Parallel()

	state := buyerState()
	first := ComposeDashboard(state)
	second := ComposeDashboard(state)

	assert.Equal(t, first.Actions, second.Actions)
	assert.Equal(t, panelKeys(first), panelKeys(second))
	assert.Equal(t, first.RoleBadges, second.RoleBadges)
}

func TestComposeDashboard_BuyerPanelsAndActions(t *testing.T) {
	t.Parallel()

	view := ComposeDashboard(buyerState())
	keys := panelKeys(view)
	assert.Contains(t, keys, "saved_properties")
	assert.Contains(t, keys, "my_offers")
	assert.NotContains(t, keys, "my_listings")
	assert.NotContains(t, keys, "role_approvals")

	assert.True(t, view.Actions["submit_offer"])
	assert.True(t, view.Actions["apply_seller"], "not_applied roles are offered for application")
	assert.True(t, view.Actions["apply_rep"])
	assert.False(t, view.Actions["apply_buyer"], "approved roles cannot be re-applied for")
}

func TestComposeDashboard_SellerActionsGatedByListingState(t *testing.T) {
	t.Parallel()

	state := dto.DashboardState{
		ActiveRole: models.RoleSeller,
		RoleStatus: map[models.Role]models.ApplicationStatus{
			models.RoleBuyer:  models.ApplicationStatusApproved,
			models.RoleSeller: models.ApplicationStatusApproved,
			models.RoleRep:    models.ApplicationStatusNotApplied,
		},
	}

	// No listings at all: can create, nothing to publish or respond to.
	view := ComposeDashboard(state)
	assert.True(t, view.Actions["create_listing"])
	assert.False(t, view.Actions["publish_listing"])
	assert.False(t, view.Actions["respond_to_offers"])

	state.ListingCounts = map[models.ListingStatus]int64{
		models.ListingStatusDraft:  1,
		models.ListingStatusActive: 2,
	}
	view = ComposeDashboard(state)
	assert.True(t, view.Actions["publish_listing"])
	assert.True(t, view.Actions["respond_to_offers"])
}

func TestComposeDashboard_PendingSellerGetsNoSellerActions(t *testing.T) {
	t.Parallel()

	state := dto.DashboardState{
		ActiveRole: models.RoleSeller,
		RoleStatus: map[models.Role]models.ApplicationStatus{
			models.RoleBuyer:  models.ApplicationStatusApproved,
			models.RoleSeller: models.ApplicationStatusPending,
			models.RoleRep:    models.ApplicationStatusNotApplied,
		},
		ListingCounts: map[models.ListingStatus]int64{models.ListingStatusDraft: 1},
	}

	view := ComposeDashboard(state)
	assert.False(t, view.Actions["create_listing"])
	assert.False(t, view.Actions["publish_listing"])
	assert.Equal(t, models.StatusBadge(models.EntityRoleApplication, string(models.ApplicationStatusPending)), view.RoleBadges[models.RoleSeller])
}

func TestComposeDashboard_AdminQueues(t *testing.T) {
	t.Parallel()

	state := buyerState()
	state.IsAdmin = true
	state.PendingRoleApplications = 3
	state.ReportCounts = map[models.ReportStatus]int64{models.ReportStatusPending: 2}

	view := ComposeDashboard(state)
	keys := panelKeys(view)
	assert.Contains(t, keys, "role_approvals")
	assert.Contains(t, keys, "reports")
	assert.True(t, view.Actions["review_reports"])
	assert.True(t, view.Actions["manage_users"])

	for _, p := range view.Panels {
		if p.Key == "role_approvals" {
			assert.Equal(t, int64(3), p.Counts["pending"])
		}
		if p.Key == "reports" {
			assert.Equal(t, int64(2), p.Counts["pending"])
		}
	}
}

func TestGetDashboard_ComposesFromRepositories(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	properties := newFakePropertyRepo()
	offers := newFakeOfferRepo()
	reports := newFakeReportRepo()
	apps := newFakeRoleAppRepo()
	notifications := newFakeNotificationRepo()

	svc := NewDashboardService(users, properties, offers, reports, apps, notifications)

	seller := seedUser(t, users, models.RoleBuyer, models.RoleSeller)
	seller.ActiveRole = models.RoleSeller
	require.NoError(t, users.Update(nil, seller))

	require.NoError(t, properties.Create(nil, &models.PropertyListing{OwnerID: seller.ID, Status: models.ListingStatusActive}))
	require.NoError(t, notifications.Create(nil, &models.Notification{UserID: seller.ID, Type: models.NotificationOfferReceived, Title: "New offer"}))

	view, err := svc.GetDashboard(nil, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, view.ActiveRole)
	assert.True(t, view.Actions["respond_to_offers"])

	keys := panelKeys(*view)
	assert.Contains(t, keys, "my_listings")
	assert.Contains(t, keys, "notifications")
}
