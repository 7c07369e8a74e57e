package handlers

import (
	"net/http"

	"propertydeals_backend/internal/middleware"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/services"
	"propertydeals_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	*BaseHandler
	reportService *services.ReportService
}

func NewReportHandler(base *BaseHandler, reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   base,
		reportService: reportService,
	}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.POST("", h.SubmitReport)
	}

	admin := r.Group("/admin/reports")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.GET("", h.ListReports)
		admin.PUT("/:reportId", h.UpdateReport)
	}
}

func (h *ReportHandler) SubmitReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	report, err := h.reportService.Submit(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	status := models.ReportStatus(c.Query("status"))

	reports, total, err := h.reportService.List(h.GetDB(c), status, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   total,
		"page":    page,
	})
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	report, err := h.reportService.Update(h.GetDB(c), adminID, c.Param("reportId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
