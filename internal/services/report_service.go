package services

import (
	"encoding/json"
	"time"

	"propertydeals_backend/internal/logger"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"
	"propertydeals_backend/internal/services/dto"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReportService struct {
	reportRepo       repositories.ReportRepository
	notificationRepo repositories.NotificationRepository
}

func NewReportService(
	reportRepo repositories.ReportRepository,
	notificationRepo repositories.NotificationRepository,
) *ReportService {
	return &ReportService{
		reportRepo:       reportRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *ReportService) Submit(db *gorm.DB, reporterID string, req *dto.SubmitReportRequest) (*dto.ReportResponse, error) {
	report := &models.Report{
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		ReporterID:  reporterID,
		Reason:      req.Reason,
		Status:      models.ReportStatusPending,
	}
	if err := s.reportRepo.Create(db, report); err != nil {
		return nil, wrapRepoError(err)
	}
	return buildReportResponse(report), nil
}

// Update advances the moderation workflow. The transition table forces
// pending reports through review before they can be resolved or dismissed.
func (s *ReportService) Update(db *gorm.DB, adminID, reportID string, req *dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindByID(db, reportID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	if err := models.GuardTransition(models.EntityReport, string(report.Status), string(req.Status)); err != nil {
		return nil, err
	}

	report.Status = req.Status
	if req.Notes != "" {
		report.Notes = req.Notes
	}
	if models.IsTerminal(models.EntityReport, string(req.Status)) {
		now := time.Now()
		report.ResolvedAt = &now
		report.ResolvedBy = &adminID
	}

	if err := s.reportRepo.Update(db, report); err != nil {
		return nil, wrapRepoError(err)
	}

	if models.IsTerminal(models.EntityReport, string(report.Status)) {
		go s.notifyReporter(db, report)
	}

	return buildReportResponse(report), nil
}

func (s *ReportService) List(db *gorm.DB, status models.ReportStatus, page, pageSize int) ([]*dto.ReportResponse, int64, error) {
	reports, total, err := s.reportRepo.List(db, status, page, pageSize)
	if err != nil {
		return nil, 0, wrapRepoError(err)
	}

	responses := make([]*dto.ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, buildReportResponse(&reports[i]))
	}
	return responses, total, nil
}

func (s *ReportService) notifyReporter(db *gorm.DB, report *models.Report) {
	data, _ := json.Marshal(map[string]string{"report_id": report.ID, "status": string(report.Status)})
	n := &models.Notification{
		UserID:  report.ReporterID,
		Type:    models.NotificationReportUpdate,
		Title:   "Your report has been " + string(report.Status),
		Message: "A moderator has reviewed your report.",
		Data:    datatypes.JSON(data),
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		logger.Error("failed to create report notification", "report_id", report.ID, "error", err)
	}
}

func buildReportResponse(report *models.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:          report.ID,
		ContentType: report.ContentType,
		ContentID:   report.ContentID,
		ReporterID:  report.ReporterID,
		Reason:      report.Reason,
		Status:      report.Status,
		StatusBadge: models.StatusBadge(models.EntityReport, string(report.Status)),
		Notes:       report.Notes,
		ResolvedAt:  report.ResolvedAt,
		CreatedAt:   report.CreatedAt,
	}
}
