package handlers

import (
	"net/http"

	"propertydeals_backend/internal/middleware"
	"propertydeals_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService *services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      base,
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("", h.GetDashboard)
	}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	view, err := h.dashboardService.GetDashboard(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
