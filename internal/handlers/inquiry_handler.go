package handlers

import (
	"net/http"

	"propertydeals_backend/internal/middleware"
	"propertydeals_backend/internal/services"
	"propertydeals_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type InquiryHandler struct {
	*BaseHandler
	inquiryService *services.InquiryService
}

func NewInquiryHandler(base *BaseHandler, inquiryService *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		BaseHandler:    base,
		inquiryService: inquiryService,
	}
}

func (h *InquiryHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Anonymous visitors may submit; signed-in users get attributed.
	public := r.Group("/inquiries")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.POST("", h.CreateInquiry)
	}

	inquiries := r.Group("/inquiries")
	inquiries.Use(middleware.AuthMiddleware())
	{
		inquiries.GET("/inbox", h.GetInbox)
		inquiries.POST("/:inquiryId/read", h.MarkRead)
	}
}

func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	var req dto.CreateInquiryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	inquiry, err := h.inquiryService.Create(h.GetDB(c), middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

func (h *InquiryHandler) GetInbox(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	inquiries, err := h.inquiryService.ListForOwner(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries})
}

func (h *InquiryHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.inquiryService.MarkRead(h.GetDB(c), userID, c.Param("inquiryId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inquiry marked as read"})
}
