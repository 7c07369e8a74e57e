package repositories

import (
	"propertydeals_backend/internal/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(db *gorm.DB, report *models.Report) error
	FindByID(db *gorm.DB, id string) (*models.Report, error)
	Update(db *gorm.DB, report *models.Report) error
	List(db *gorm.DB, status models.ReportStatus, page, pageSize int) ([]models.Report, int64, error)
	CountByStatus(db *gorm.DB) (map[models.ReportStatus]int64, error)
}

type reportRepository struct{}

func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(db *gorm.DB, report *models.Report) error {
	return db.Create(report).Error
}

func (r *reportRepository) FindByID(db *gorm.DB, id string) (*models.Report, error) {
	var report models.Report
	err := db.Preload("Reporter").First(&report, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Update(db *gorm.DB, report *models.Report) error {
	return db.Save(report).Error
}

func (r *reportRepository) List(db *gorm.DB, status models.ReportStatus, page, pageSize int) ([]models.Report, int64, error) {
	query := db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := query.
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reports).Error
	return reports, total, err
}

func (r *reportRepository) CountByStatus(db *gorm.DB) (map[models.ReportStatus]int64, error) {
	type row struct {
		Status models.ReportStatus
		Count  int64
	}
	var rows []row
	err := db.Model(&models.Report{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ReportStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
