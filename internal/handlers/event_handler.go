package handlers

import (
	"net/http"

	"propertydeals_backend/internal/middleware"
	"propertydeals_backend/internal/services"
	"propertydeals_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	*BaseHandler
	eventService *services.EventService
}

func NewEventHandler(base *BaseHandler, eventService *services.EventService) *EventHandler {
	return &EventHandler{
		BaseHandler:  base,
		eventService: eventService,
	}
}

func (h *EventHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/events")
	{
		public.GET("", h.ListUpcoming)
	}

	events := r.Group("/events")
	events.Use(middleware.AuthMiddleware())
	{
		events.POST("", h.CreateEvent)
		events.GET("/my", h.GetMyEvents)
		events.PUT("/:eventId", h.UpdateEvent)
		events.POST("/:eventId/publish", h.PublishEvent)
	}
}

func (h *EventHandler) ListUpcoming(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 20)

	events, err := h.eventService.ListUpcoming(h.GetDB(c), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	event, err := h.eventService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) GetMyEvents(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	events, err := h.eventService.ListForHost(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	event, err := h.eventService.Update(h.GetDB(c), userID, c.Param("eventId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) PublishEvent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	event, err := h.eventService.Publish(h.GetDB(c), userID, c.Param("eventId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
