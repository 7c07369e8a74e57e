package handlers

import (
	"net/http"

	"propertydeals_backend/internal/middleware"
	"propertydeals_backend/internal/services"
	"propertydeals_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	*BaseHandler
	offerService *services.OfferService
}

func NewOfferHandler(base *BaseHandler, offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{
		BaseHandler:  base,
		offerService: offerService,
	}
}

func (h *OfferHandler) RegisterRoutes(r *gin.RouterGroup) {
	offers := r.Group("/offers")
	offers.Use(middleware.AuthMiddleware())
	{
		offers.POST("", h.SubmitOffer)
		offers.GET("/my", h.GetMyOffers)
		offers.POST("/:offerId/respond", h.RespondToOffer)
	}
}

func (h *OfferHandler) SubmitOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	offer, err := h.offerService.SubmitOffer(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) GetMyOffers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	offers, err := h.offerService.GetBuyerOffers(h.GetDB(c), userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// RespondToOffer is the seller's single decision endpoint: accept, counter
// or reject.
func (h *OfferHandler) RespondToOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RespondToOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	offer, err := h.offerService.Respond(h.GetDB(c), c.Param("offerId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}
