package handlers

import (
	"net/http"

	"propertydeals_backend/internal/middleware"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/services"
	"propertydeals_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RoleAppHandler struct {
	*BaseHandler
	roleAppService *services.RoleApplicationService
	authService    *services.AuthService
}

func NewRoleAppHandler(base *BaseHandler, roleAppService *services.RoleApplicationService, authService *services.AuthService) *RoleAppHandler {
	return &RoleAppHandler{
		BaseHandler:    base,
		roleAppService: roleAppService,
		authService:    authService,
	}
}

func (h *RoleAppHandler) RegisterRoutes(r *gin.RouterGroup) {
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware())
	{
		roles.GET("", h.GetMyRoles)
		roles.POST("/:role/apply", h.ApplyForRole)
		roles.POST("/:role/switch", h.SwitchRole)
	}

	admin := r.Group("/admin/approvals")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.GET("", h.ListPending)
		admin.POST("/:userId/approve/:role", h.Approve)
		admin.POST("/:userId/deny/:role", h.Deny)
	}
}

func (h *RoleAppHandler) GetMyRoles(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	roles, err := h.roleAppService.GetUserRoles(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

func (h *RoleAppHandler) ApplyForRole(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// Body is optional; applications without form data are allowed.
	var req dto.ApplyForRoleRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.roleAppService.ApplyForRole(h.GetDB(c), userID, models.Role(c.Param("role")), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *RoleAppHandler) SwitchRole(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.roleAppService.SwitchRole(h.GetDB(c), userID, models.Role(c.Param("role")))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// A fresh token so the client's active role claim matches immediately.
	resp, err := h.authService.Refresh(h.GetDB(c), c.GetHeader("X-Refresh-Token"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"user": services.BuildUserSummary(user)})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Admin handlers ---

func (h *RoleAppHandler) ListPending(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	apps, total, err := h.roleAppService.ListPending(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        total,
		"page":         page,
	})
}

func (h *RoleAppHandler) Approve(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.roleAppService.Approve(h.GetDB(c), adminID, c.Param("userId"), models.Role(c.Param("role")))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *RoleAppHandler) Deny(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DenyRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.roleAppService.Deny(h.GetDB(c), adminID, c.Param("userId"), models.Role(c.Param("role")), req.Notes)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
