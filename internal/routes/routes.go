package routes

import (
	"propertydeals_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every handler group under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.RoleAppHandler.RegisterRoutes(api)
		appHandlers.PropertyHandler.RegisterRoutes(api)
		appHandlers.OfferHandler.RegisterRoutes(api)
		appHandlers.DashboardHandler.RegisterRoutes(api)
		appHandlers.ReportHandler.RegisterRoutes(api)
		appHandlers.InquiryHandler.RegisterRoutes(api)
		appHandlers.EventHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}
}
