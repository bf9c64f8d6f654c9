package video

import (
	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apphttp "github.com/soldout/backend/internal/http"
)

// Handler handles HTTP requests for video operations
type Handler struct {
	service         VideoService
	responseHandler ResponseHandler
}

// NewHandler creates a new video handler instance
func NewHandler(service VideoService, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers the video routes. authenticate guards uploads and edits.
func (h *Handler) RegisterRoutes(router gin.IRouter, authenticate gin.HandlerFunc) {
	videos := router.Group("/videos")
	{
		videos.POST("", authenticate, h.handleSubmit)
		videos.GET("/approved", h.handleListApproved)
		videos.GET("/premium", h.handleListPremium)
		videos.GET("/trending", h.handleListTrending)
		videos.POST("/:id/synopsis", authenticate, h.handleUpdateSynopsis)
	}
}

// @Summary Upload video
// @Description Upload a video with its thumbnail. The video is stored as PENDING until an admin reviews it.
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Video title"
// @Param description formData string false "Video description"
// @Param genre formData string true "Genre"
// @Param releaseDate formData string true "Release date (YYYY, YYYY-MM-DD or RFC 3339)"
// @Param thumbnail formData file true "Thumbnail image"
// @Param video formData file true "Video file"
// @Success 201 {object} http.Response{data=Video} "Video uploaded and pending approval"
// @Failure 400 {object} http.Response "Missing asset, invalid date or invalid field"
// @Failure 401 {object} http.Response "Unauthorized"
// @Failure 500 {object} http.Response "Upload failed"
// @Router /api/videos [post]
func (h *Handler) handleSubmit(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	thumbnail, closeThumbnail, err := apphttp.FormUpload(c, "thumbnail")
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to read thumbnail")
		return
	}
	defer closeThumbnail()

	file, closeVideo, err := apphttp.FormUpload(c, "video")
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to read video")
		return
	}
	defer closeVideo()

	video, err := h.service.Submit(c.Request.Context(), userID, SubmitInput{
		SubmitRequest: req,
		Thumbnail:     thumbnail,
		Video:         file,
	})
	if err != nil {
		h.responseHandler.HandleError(c, err, "Video upload failed")
		return
	}

	h.responseHandler.CreatedResponse(c, video, "Video uploaded successfully and pending approval")
}

// @Summary List approved videos
// @Tags videos
// @Produce json
// @Success 200 {object} http.Response{data=[]Summary}
// @Router /api/videos/approved [get]
func (h *Handler) handleListApproved(c *gin.Context) {
	videos, err := h.service.ListApproved(c.Request.Context())
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to fetch videos")
		return
	}
	h.responseHandler.SuccessResponse(c, videos, "")
}

// @Summary List premium videos
// @Description Approved videos uploaded within the premium window, newest first
// @Tags videos
// @Produce json
// @Success 200 {object} http.Response{data=[]Summary}
// @Router /api/videos/premium [get]
func (h *Handler) handleListPremium(c *gin.Context) {
	videos, err := h.service.ListPremium(c.Request.Context())
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to fetch videos")
		return
	}
	h.responseHandler.SuccessResponse(c, videos, "")
}

// @Summary List trending videos
// @Description Approved videos older than the premium window, most viewed first
// @Tags videos
// @Produce json
// @Success 200 {object} http.Response{data=[]Summary}
// @Router /api/videos/trending [get]
func (h *Handler) handleListTrending(c *gin.Context) {
	videos, err := h.service.ListTrending(c.Request.Context())
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to fetch videos")
		return
	}
	h.responseHandler.SuccessResponse(c, videos, "")
}

// @Summary Update synopsis
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Param request body SynopsisRequest true "Synopsis"
// @Success 200 {object} http.Response{data=Video}
// @Failure 403 {object} http.Response "Not the owner"
// @Failure 404 {object} http.Response "Video not found"
// @Router /api/videos/{id}/synopsis [post]
func (h *Handler) handleUpdateSynopsis(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "Authentication required")
		return
	}
	videoID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}

	var req SynopsisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	video, err := h.service.UpdateSynopsis(c.Request.Context(), videoID, userID, req.Synopsis)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to update synopsis")
		return
	}
	h.responseHandler.SuccessResponse(c, video, "Synopsis updated")
}
