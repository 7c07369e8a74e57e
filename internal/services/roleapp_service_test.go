package services

import (
	"testing"

	"propertydeals_backend/internal/email"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleFixture struct {
	svc     *RoleApplicationService
	authSvc *AuthService
	users   *fakeUserRepo
	apps    *fakeRoleAppRepo
}

func newRoleFixture(t *testing.T) *roleFixture {
	t.Helper()
	apps := newFakeRoleAppRepo()
	users := newFakeUserRepoWithApps(apps)
	notifications := newFakeNotificationRepo()
	tokens := newFakeRefreshTokenRepo()

	return &roleFixture{
		svc:     NewRoleApplicationService(apps, users, notifications, &email.MockProvider{}),
		authSvc: NewAuthService(users, apps, tokens),
		users:   users,
		apps:    apps,
	}
}

func (f *roleFixture) register(t *testing.T, username string) *dto.LoginResponse {
	t.Helper()
	resp, err := f.authSvc.Register(nil, &dto.RegisterRequest{
		Username: username,
		FullName: "Test User",
		Email:    username + "@example.com",
		Password: "hunter22024",
	})
	require.NoError(t, err)
	return resp
}

func TestApplyForRole_OpensPending(t *testing.T) {
	t.Parallel()
	f := newRoleFixture(t)
	user := f.register(t, "applicant")

	app, err := f.svc.ApplyForRole(nil, user.User.ID, models.RoleSeller, &dto.ApplyForRoleRequest{
		Data: map[string]interface{}{"license": "TX-12345"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.NotNil(t, app.AppliedAt)

	// Applying again while pending returns the open application unchanged.
	again, err := f.svc.ApplyForRole(nil, user.User.ID, models.RoleSeller, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, again.Status)

	queue, total, err := f.svc.ListPending(nil, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "duplicate applications must not pile up")
	require.Len(t, queue, 1)
	assert.Equal(t, models.RoleSeller, queue[0].Role)
}

func TestApplyForRole_ApprovedRoleCannotReapply(t *testing.T) {
	t.Parallel()
	f := newRoleFixture(t)
	user := f.register(t, "buyerperson")

	// Buyer is auto-approved at registration.
	_, err := f.svc.ApplyForRole(nil, user.User.ID, models.RoleBuyer, nil)
	assert.ErrorIs(t, err, apperrors.ErrApplicationAlreadyApproved)
}

func TestDeny_RequiresNotes(t *testing.T) {
	t.Parallel()
	f := newRoleFixture(t)
	user := f.register(t, "denied")
	admin := f.register(t, "admin")

	_, err := f.svc.ApplyForRole(nil, user.User.ID, models.RoleSeller, nil)
	require.NoError(t, err)

	_, err = f.svc.Deny(nil, admin.User.ID, user.User.ID, models.RoleSeller, "   ")
	assert.ErrorIs(t, err, apperrors.ErrDenialNotesRequired)

	denied, err := f.svc.Deny(nil, admin.User.ID, user.User.ID, models.RoleSeller, "License number could not be verified")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusDenied, denied.Status)
	assert.Contains(t, denied.Notes, "License number could not be verified")
}

func TestDeniedUser_CanReapply_NotesRetained(t *testing.T) {
	t.Parallel()
	f := newRoleFixture(t)
	user := f.register(t, "persistent")
	admin := f.register(t, "admin2")

	_, err := f.svc.ApplyForRole(nil, user.User.ID, models.RoleSeller, nil)
	require.NoError(t, err)
	_, err = f.svc.Deny(nil, admin.User.ID, user.User.ID, models.RoleSeller, "Missing paperwork")
	require.NoError(t, err)

	reapplied, err := f.svc.ApplyForRole(nil, user.User.ID, models.RoleSeller, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, reapplied.Status)
	assert.Contains(t, reapplied.Notes, "Missing paperwork", "prior denial notes stay on record")

	approved, err := f.svc.Approve(nil, admin.User.ID, user.User.ID, models.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, approved.Status)
}

func TestSwitchRole_OnlyApproved(t *testing.T) {
	t.Parallel()
	f := newRoleFixture(t)
	user := f.register(t, "switcher")

	// Seller not approved yet.
	_, err := f.svc.SwitchRole(nil, user.User.ID, models.RoleSeller)
	assert.ErrorIs(t, err, apperrors.ErrRoleNotApproved)

	// Unknown role is a bad request, not a state conflict.
	_, err = f.svc.SwitchRole(nil, user.User.ID, models.Role("landlord"))
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

// TestRoleWorkflow_FullFlow: register, apply for seller, admin approves,
// switch the active role.
func TestRoleWorkflow_FullFlow(t *testing.T) {
	t.Parallel()
	f := newRoleFixture(t)
	user := f.register(t, "journey")
	admin := f.register(t, "admin3")

	assert.Equal(t, models.ApplicationStatusApproved, user.User.Roles[models.RoleBuyer])
	assert.Equal(t, models.ApplicationStatusNotApplied, user.User.Roles[models.RoleSeller])
	assert.Equal(t, models.RoleBuyer, user.User.ActiveRole)

	_, err := f.svc.ApplyForRole(nil, user.User.ID, models.RoleSeller, nil)
	require.NoError(t, err)

	approved, err := f.svc.Approve(nil, admin.User.ID, user.User.ID, models.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, approved.Status)

	// Approval alone never flips the active role, but any read of the user
	// must already see the approved seller role.
	stored, err := f.users.FindByID(nil, user.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, stored.ActiveRole)
	assert.Equal(t, models.ApplicationStatusApproved, stored.RoleStatus(models.RoleSeller))

	switched, err := f.svc.SwitchRole(nil, user.User.ID, models.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, switched.ActiveRole)
}

func TestGetUserRoles_IncludesNotAppliedStubs(t *testing.T) {
	t.Parallel()
	f := newRoleFixture(t)
	user := f.register(t, "rolecard")

	roles, err := f.svc.GetUserRoles(nil, user.User.ID)
	require.NoError(t, err)
	require.Len(t, roles, len(models.ValidRoles))

	byRole := map[models.Role]models.ApplicationStatus{}
	for _, r := range roles {
		byRole[r.Role] = r.Status
	}
	assert.Equal(t, models.ApplicationStatusApproved, byRole[models.RoleBuyer])
	assert.Equal(t, models.ApplicationStatusNotApplied, byRole[models.RoleSeller])
	assert.Equal(t, models.ApplicationStatusNotApplied, byRole[models.RoleRep])
}
