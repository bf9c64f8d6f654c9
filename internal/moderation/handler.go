package moderation

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/video"
)

// Moderator is the surface the HTTP handler depends on
type Moderator interface {
	Approve(ctx context.Context, videoID int64, actor *auth.User) (*video.Video, error)
	Reject(ctx context.Context, videoID int64, actor *auth.User, reason string) (*video.Video, error)
	Unpublish(ctx context.Context, videoID int64, actor *auth.User) (*video.Video, error)
}

// ResponseHandler handles HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	ValidationErrorResponse(c *gin.Context, field, message string)
	UnauthorizedResponse(c *gin.Context, message string)
	HandleError(c *gin.Context, err error, message string)
}

// RejectRequest represents the reject payload
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Handler handles moderation endpoints
type Handler struct {
	moderator       Moderator
	responseHandler ResponseHandler
}

// NewHandler creates a new moderation handler instance
func NewHandler(moderator Moderator, responseHandler ResponseHandler) *Handler {
	return &Handler{moderator: moderator, responseHandler: responseHandler}
}

// RegisterRoutes registers the moderation routes on an admin guarded group
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	videos := router.Group("/videos")
	{
		videos.POST("/:id/approve", h.handleApprove)
		videos.POST("/:id/reject", h.handleReject)
		videos.POST("/:id/unpublish", h.handleUnpublish)
	}
}

// @Summary Approve video
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} http.Response{data=video.Video} "Video approved successfully"
// @Failure 403 {object} http.Response "Admin privileges required"
// @Failure 404 {object} http.Response "Video not found"
// @Failure 409 {object} http.Response "Transition not allowed"
// @Router /api/admin/videos/{id}/approve [post]
func (h *Handler) handleApprove(c *gin.Context) {
	actor, videoID, ok := h.target(c)
	if !ok {
		return
	}
	v, err := h.moderator.Approve(c.Request.Context(), videoID, actor)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to approve video")
		return
	}
	h.responseHandler.SuccessResponse(c, v, "Video approved successfully")
}

// @Summary Reject video
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Param request body RejectRequest false "Rejection reason"
// @Success 200 {object} http.Response{data=video.Video} "Video rejected successfully"
// @Failure 400 {object} http.Response "Reason too long"
// @Failure 404 {object} http.Response "Video not found"
// @Failure 409 {object} http.Response "Transition not allowed"
// @Router /api/admin/videos/{id}/reject [post]
func (h *Handler) handleReject(c *gin.Context) {
	actor, videoID, ok := h.target(c)
	if !ok {
		return
	}
	var req RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
			return
		}
	}
	v, err := h.moderator.Reject(c.Request.Context(), videoID, actor, req.Reason)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to reject video")
		return
	}
	h.responseHandler.SuccessResponse(c, v, "Video rejected successfully")
}

// @Summary Unpublish video
// @Description Move an approved video back to PENDING
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} http.Response{data=video.Video} "Video unpublished"
// @Failure 404 {object} http.Response "Video not found"
// @Failure 409 {object} http.Response "Transition not allowed"
// @Router /api/admin/videos/{id}/unpublish [post]
func (h *Handler) handleUnpublish(c *gin.Context) {
	actor, videoID, ok := h.target(c)
	if !ok {
		return
	}
	v, err := h.moderator.Unpublish(c.Request.Context(), videoID, actor)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to unpublish video")
		return
	}
	h.responseHandler.SuccessResponse(c, v, "Video unpublished")
}

func (h *Handler) target(c *gin.Context) (*auth.User, int64, bool) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "Authentication required")
		return nil, 0, false
	}
	videoID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return nil, 0, false
	}
	return actor, videoID, true
}
