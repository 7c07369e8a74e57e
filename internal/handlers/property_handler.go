package handlers

import (
	"net/http"

	"propertydeals_backend/internal/middleware"
	"propertydeals_backend/internal/services"
	"propertydeals_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	*BaseHandler
	propertyService *services.PropertyService
	offerService    *services.OfferService
}

func NewPropertyHandler(base *BaseHandler, propertyService *services.PropertyService, offerService *services.OfferService) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler:     base,
		propertyService: propertyService,
		offerService:    offerService,
	}
}

func (h *PropertyHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes. Optional auth lets owners see their own drafts.
	public := r.Group("/properties")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("", h.SearchProperties)
		public.GET("/:propertyId", h.GetProperty)
	}

	// Seller-side lifecycle
	properties := r.Group("/properties")
	properties.Use(middleware.AuthMiddleware())
	{
		properties.POST("", h.CreateProperty)
		properties.GET("/my", h.GetMyListings)
		properties.PUT("/:propertyId", h.UpdateProperty)
		properties.POST("/:propertyId/publish", h.PublishProperty)
		properties.POST("/:propertyId/release", h.ReleaseProperty)
		properties.POST("/:propertyId/close", h.CloseProperty)
		properties.GET("/:propertyId/offers", h.GetPropertyOffers)
	}
}

// --- Public handlers ---

func (h *PropertyHandler) SearchProperties(c *gin.Context) {
	var criteria dto.SearchPropertiesRequest
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	properties, total, err := h.propertyService.SearchProperties(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"total":      total,
		"page":       criteria.Page,
		"pages": func() int64 {
			if criteria.PageSize == 0 {
				return 0
			}
			return (total + int64(criteria.PageSize) - 1) / int64(criteria.PageSize)
		}(),
	})
}

func (h *PropertyHandler) GetProperty(c *gin.Context) {
	propertyID := c.Param("propertyId")
	requesterID := middleware.GetUserID(c)

	property, err := h.propertyService.GetProperty(h.GetDB(c), propertyID, requesterID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// --- Seller handlers ---

func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePropertyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	property, err := h.propertyService.CreateDraft(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

func (h *PropertyHandler) GetMyListings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	properties, err := h.propertyService.GetOwnerListings(h.GetDB(c), userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	property, err := h.propertyService.UpdateDraft(h.GetDB(c), c.Param("propertyId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) PublishProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	property, err := h.propertyService.Publish(h.GetDB(c), c.Param("propertyId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// ReleaseProperty puts an under-contract listing back on the market after a
// deal falls through.
func (h *PropertyHandler) ReleaseProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	property, err := h.propertyService.ReleaseContract(h.GetDB(c), c.Param("propertyId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) CloseProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	property, err := h.propertyService.Close(h.GetDB(c), c.Param("propertyId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) GetPropertyOffers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	offers, err := h.offerService.GetPropertyOffers(h.GetDB(c), c.Param("propertyId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}
