package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/video"
)

// Handler serves the admin API
type Handler struct {
	service         AdminService
	responseHandler ResponseHandler
}

// NewHandler creates a new admin handler
func NewHandler(service AdminService, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers the admin routes. router must already require an
// admin; superAdmin guards the account management routes.
func (h *Handler) RegisterRoutes(router gin.IRouter, superAdmin gin.HandlerFunc) {
	router.GET("/dashboard", h.handleDashboard)
	router.POST("/change-password", h.handleChangePassword)

	videos := router.Group("/videos")
	{
		videos.GET("/pending", h.handleVideos(video.StatusPending))
		videos.GET("/approved", h.handleVideos(video.StatusApproved))
		videos.GET("/rejected", h.handleVideos(video.StatusRejected))
		videos.GET("/:id", h.handleVideo)
	}

	users := router.Group("/users")
	{
		users.GET("", h.handleUsers)
		users.PUT("/:id", h.handleUpdateUser)
		users.POST("/:id/ban", h.handleBan)
		users.POST("/:id/unban", h.handleUnban)
	}
	router.GET("/admins", h.handleAdmins)

	super := router.Group("", superAdmin)
	{
		super.POST("/register", h.handleRegister)
		super.POST("/promote", h.handlePromote)
		super.DELETE("/admins/:id", h.handleDeleteAdmin)
		super.GET("/audit-logs", h.handleAuditLogs)
	}
}

// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.Response{data=Dashboard}
// @Failure 403 {object} http.Response "Admin privileges required"
// @Router /api/admin/dashboard [get]
func (h *Handler) handleDashboard(c *gin.Context) {
	out, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to load dashboard data")
		return
	}
	h.responseHandler.SuccessResponse(c, out, "")
}

// @Summary List videos by moderation status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.Response{data=[]video.Video}
// @Router /api/admin/videos/pending [get]
// @Router /api/admin/videos/approved [get]
// @Router /api/admin/videos/rejected [get]
func (h *Handler) handleVideos(status video.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		videos, err := h.service.Videos(c.Request.Context(), status)
		if err != nil {
			h.responseHandler.HandleError(c, err, "Failed to fetch videos")
			return
		}
		h.responseHandler.SuccessResponse(c, videos, "")
	}
}

// @Summary Get any video
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} http.Response{data=video.Video}
// @Failure 404 {object} http.Response "Video not found"
// @Router /api/admin/videos/{id} [get]
func (h *Handler) handleVideo(c *gin.Context) {
	videoID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}
	v, err := h.service.Video(c.Request.Context(), videoID)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to fetch video")
		return
	}
	h.responseHandler.SuccessResponse(c, v, "")
}

// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.Response{data=[]UserSummary}
// @Router /api/admin/users [get]
func (h *Handler) handleUsers(c *gin.Context) {
	users, err := h.service.Users(c.Request.Context())
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to fetch users")
		return
	}
	h.responseHandler.SuccessResponse(c, users, "")
}

// @Summary List admins
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.Response{data=[]auth.User}
// @Router /api/admin/admins [get]
func (h *Handler) handleAdmins(c *gin.Context) {
	admins, err := h.service.Admins(c.Request.Context())
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to fetch admins")
		return
	}
	h.responseHandler.SuccessResponse(c, admins, "")
}

// @Summary Update a user
// @Description Name and email by any admin; role changes by super admins only
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} http.Response{data=auth.User}
// @Failure 403 {object} http.Response "Insufficient privileges"
// @Router /api/admin/users/{id} [put]
func (h *Handler) handleUpdateUser(c *gin.Context) {
	actor, userID, ok := h.target(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}
	user, err := h.service.UpdateUser(c.Request.Context(), actor, userID, req)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to update user")
		return
	}
	h.responseHandler.SuccessResponse(c, user, "User updated successfully")
}

// @Summary Ban a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body BanRequest false "Reason"
// @Success 200 {object} http.Response{data=auth.User}
// @Failure 403 {object} http.Response "Insufficient privileges"
// @Router /api/admin/users/{id}/ban [post]
func (h *Handler) handleBan(c *gin.Context) {
	actor, userID, ok := h.target(c)
	if !ok {
		return
	}
	var req BanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
			return
		}
	}
	user, err := h.service.Ban(c.Request.Context(), actor, userID, req.Reason)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to ban user")
		return
	}
	h.responseHandler.SuccessResponse(c, user, "User banned")
}

// @Summary Unban a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} http.Response{data=auth.User}
// @Router /api/admin/users/{id}/unban [post]
func (h *Handler) handleUnban(c *gin.Context) {
	actor, userID, ok := h.target(c)
	if !ok {
		return
	}
	user, err := h.service.Unban(c.Request.Context(), actor, userID)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to unban user")
		return
	}
	h.responseHandler.SuccessResponse(c, user, "User unbanned")
}

// @Summary Register an admin
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterAdminRequest true "New admin"
// @Success 201 {object} http.Response{data=auth.User}
// @Failure 403 {object} http.Response "Super admin privileges required"
// @Failure 409 {object} http.Response "Email already registered"
// @Router /api/admin/register [post]
func (h *Handler) handleRegister(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}
	admin, err := h.service.RegisterAdmin(c.Request.Context(), actor, req)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to register admin")
		return
	}
	h.responseHandler.CreatedResponse(c, admin, "Admin registered successfully")
}

// @Summary Promote an admin to super admin
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PromoteRequest true "Admin to promote"
// @Success 200 {object} http.Response{data=auth.User}
// @Router /api/admin/promote [post]
func (h *Handler) handlePromote(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}
	user, err := h.service.Promote(c.Request.Context(), actor, req.UserID)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to promote admin")
		return
	}
	h.responseHandler.SuccessResponse(c, user, "Admin promoted to super admin")
}

// @Summary Delete an admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} http.Response
// @Failure 403 {object} http.Response "Super admins cannot be deleted"
// @Failure 404 {object} http.Response "Admin not found"
// @Router /api/admin/admins/{id} [delete]
func (h *Handler) handleDeleteAdmin(c *gin.Context) {
	actor, userID, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAdmin(c.Request.Context(), actor, userID); err != nil {
		h.responseHandler.HandleError(c, err, "Failed to delete admin")
		return
	}
	h.responseHandler.SuccessResponse(c, nil, "Admin deleted successfully")
}

// @Summary List audit logs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} http.PaginatedResponse{data=[]AuditLog}
// @Router /api/admin/audit-logs [get]
func (h *Handler) handleAuditLogs(c *gin.Context) {
	page, limit := apphttp.PageParams(c, defaultLogLimit)
	entries, total, err := h.service.AuditLogs(c.Request.Context(), page, limit)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to fetch audit logs")
		return
	}
	h.responseHandler.PaginatedResponse(c, entries, apphttp.NewPagination(page, limit, total), "")
}

// @Summary Change own password
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} http.Response
// @Failure 401 {object} http.Response "Current password is incorrect"
// @Router /api/admin/change-password [post]
func (h *Handler) handleChangePassword(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), actor, req); err != nil {
		h.responseHandler.HandleError(c, err, "Failed to change password")
		return
	}
	h.responseHandler.SuccessResponse(c, nil, "Password changed successfully")
}

func (h *Handler) actor(c *gin.Context) (*auth.User, bool) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "Authentication required")
	}
	return actor, ok
}

func (h *Handler) target(c *gin.Context) (*auth.User, int64, bool) {
	actor, ok := h.actor(c)
	if !ok {
		return nil, 0, false
	}
	userID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid user ID")
		return nil, 0, false
	}
	return actor, userID, true
}
