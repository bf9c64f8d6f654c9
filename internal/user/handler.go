package user

import (
	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apphttp "github.com/soldout/backend/internal/http"
)

// Handler handles profile endpoints
type Handler struct {
	service         ProfileService
	responseHandler ResponseHandler
}

// NewHandler creates a new profile handler
func NewHandler(service ProfileService, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers the profile routes
func (h *Handler) RegisterRoutes(router gin.IRouter, authenticate, optionalAuth gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.GET("/:id/profile", optionalAuth, h.handleProfile)
		users.PUT("/:id", authenticate, h.handleUpdate)
		users.POST("/:id/profile-picture", authenticate, h.handleUpdatePicture)
	}
}

// @Summary Get user profile
// @Description Public profile with the user's videos and channel stats
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} http.Response{data=Profile}
// @Failure 404 {object} http.Response "User not found"
// @Router /api/users/{id}/profile [get]
func (h *Handler) handleProfile(c *gin.Context) {
	userID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid user ID")
		return
	}
	viewer, _ := auth.CurrentUser(c)

	profile, err := h.service.Profile(c.Request.Context(), userID, viewer)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to fetch profile")
		return
	}
	h.responseHandler.SuccessResponse(c, profile, "")
}

// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} http.Response{data=auth.User}
// @Failure 403 {object} http.Response "Not your profile"
// @Failure 409 {object} http.Response "Email already registered"
// @Router /api/users/{id} [put]
func (h *Handler) handleUpdate(c *gin.Context) {
	actorID, ok := auth.CurrentUserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "Authentication required")
		return
	}
	userID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid user ID")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	user, err := h.service.Update(c.Request.Context(), actorID, userID, req)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to update profile")
		return
	}
	h.responseHandler.SuccessResponse(c, user, "Profile updated successfully")
}

// @Summary Update profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param profilePicture formData file true "Image file"
// @Success 200 {object} http.Response{data=auth.User}
// @Failure 400 {object} http.Response "Missing or invalid file"
// @Failure 403 {object} http.Response "Not your profile"
// @Router /api/users/{id}/profile-picture [post]
func (h *Handler) handleUpdatePicture(c *gin.Context) {
	actorID, ok := auth.CurrentUserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "Authentication required")
		return
	}
	userID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid user ID")
		return
	}

	upload, closeUpload, err := apphttp.FormUpload(c, "profilePicture")
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to read profile picture")
		return
	}
	defer closeUpload()

	user, err := h.service.UpdatePicture(c.Request.Context(), actorID, userID, upload)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to update profile picture")
		return
	}
	h.responseHandler.SuccessResponse(c, user, "Profile picture updated successfully")
}
