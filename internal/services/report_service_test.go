package services

import (
	"testing"

	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	svc           *ReportService
	reports       *fakeReportRepo
	notifications *fakeNotificationRepo
}

func newReportFixture() *reportFixture {
	reports := newFakeReportRepo()
	notifications := newFakeNotificationRepo()
	return &reportFixture{
		svc:           NewReportService(reports, notifications),
		reports:       reports,
		notifications: notifications,
	}
}

func submitReport(t *testing.T, f *reportFixture, reporterID string) *dto.ReportResponse {
	t.Helper()
	resp, err := f.svc.Submit(nil, reporterID, &dto.SubmitReportRequest{
		ContentType: models.ReportContentProperty,
		ContentID:   "listing-1",
		Reason:      "Listing photos do not match the address",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitReport_OpensPending(t *testing.T) {
	t.Parallel()

	f := newReportFixture()
	resp := submitReport(t, f, "reporter-1")

	assert.Equal(t, models.ReportStatusPending, resp.Status)
	assert.Nil(t, resp.ResolvedAt)
	assert.Equal(t, models.StatusBadge(models.EntityReport, "pending"), resp.StatusBadge)
}

func TestUpdateReport_MustBeReviewedBeforeResolution(t *testing.T) {
	t.Parallel()

	f := newReportFixture()
	resp := submitReport(t, f, "reporter-1")

	// pending -> resolved skips review
	_, err := f.svc.Update(nil, "admin-1", resp.ID, &dto.UpdateReportRequest{Status: models.ReportStatusResolved})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)

	_, err = f.svc.Update(nil, "admin-1", resp.ID, &dto.UpdateReportRequest{Status: models.ReportStatusReviewed})
	require.NoError(t, err)

	resolved, err := f.svc.Update(nil, "admin-1", resp.ID, &dto.UpdateReportRequest{Status: models.ReportStatusResolved, Notes: "listing taken down"})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	assert.Equal(t, "listing taken down", resolved.Notes)
	require.NotNil(t, resolved.ResolvedAt)

	stored, err := f.reports.FindByID(nil, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResolvedBy)
	assert.Equal(t, "admin-1", *stored.ResolvedBy)
}

func TestUpdateReport_TerminalStatesAreFinal(t *testing.T) {
	t.Parallel()

	f := newReportFixture()
	resp := submitReport(t, f, "reporter-1")

	_, err := f.svc.Update(nil, "admin-1", resp.ID, &dto.UpdateReportRequest{Status: models.ReportStatusReviewed})
	require.NoError(t, err)
	_, err = f.svc.Update(nil, "admin-1", resp.ID, &dto.UpdateReportRequest{Status: models.ReportStatusDismissed})
	require.NoError(t, err)

	// dismissed cannot be reopened or resolved
	for _, next := range []models.ReportStatus{models.ReportStatusPending, models.ReportStatusReviewed, models.ReportStatusResolved} {
		_, err = f.svc.Update(nil, "admin-1", resp.ID, &dto.UpdateReportRequest{Status: next})
		assert.Error(t, err, "dismissed -> %s should be rejected", next)
	}
}

func TestUpdateReport_ReviewDoesNotStampResolution(t *testing.T) {
	t.Parallel()

	f := newReportFixture()
	resp := submitReport(t, f, "reporter-1")

	reviewed, err := f.svc.Update(nil, "admin-1", resp.ID, &dto.UpdateReportRequest{Status: models.ReportStatusReviewed})
	require.NoError(t, err)
	assert.Nil(t, reviewed.ResolvedAt)

	stored, err := f.reports.FindByID(nil, resp.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ResolvedBy)
}

func TestListReports_FiltersByStatus(t *testing.T) {
	t.Parallel()

	f := newReportFixture()
	first := submitReport(t, f, "reporter-1")
	submitReport(t, f, "reporter-2")

	_, err := f.svc.Update(nil, "admin-1", first.ID, &dto.UpdateReportRequest{Status: models.ReportStatusReviewed})
	require.NoError(t, err)

	pending, total, err := f.svc.List(nil, models.ReportStatusPending, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.Equal(t, models.ReportStatusPending, pending[0].Status)

	all, total, err := f.svc.List(nil, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}
