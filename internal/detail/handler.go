package detail

import (
	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apphttp "github.com/soldout/backend/internal/http"
)

// Handler serves the video detail endpoint
type Handler struct {
	reader          DetailReader
	responseHandler ResponseHandler
}

// NewHandler creates a new detail handler
func NewHandler(reader DetailReader, responseHandler ResponseHandler) *Handler {
	return &Handler{reader: reader, responseHandler: responseHandler}
}

// RegisterRoutes registers GET /videos/:id. optionalAuth sets the identity
// when a valid token is sent and never rejects.
func (h *Handler) RegisterRoutes(router gin.IRouter, optionalAuth gin.HandlerFunc) {
	router.GET("/videos/:id", optionalAuth, h.handleGetVideo)
}

// @Summary Get video detail
// @Description Returns the video with owner, reactions, ratings, comments and trivia, and records a view
// @Tags video
// @Produce json
// @Param id path int true "Video ID"
// @Param userId query int false "Viewer ID when no token is sent"
// @Success 200 {object} http.Response{data=VideoDetail} "Video retrieved"
// @Failure 400 {object} http.Response{error=http.Error} "Invalid video ID"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /api/videos/{id} [get]
func (h *Handler) handleGetVideo(c *gin.Context) {
	videoID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}

	var viewer Viewer
	if user, ok := auth.CurrentUser(c); ok {
		id := user.ID
		viewer = Viewer{ID: &id, User: user}
	} else if id, ok := apphttp.QueryID(c, "userId"); ok {
		viewer.ID = &id
	}

	out, err := h.reader.GetVideoDetail(c.Request.Context(), videoID, viewer)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to retrieve video")
		return
	}
	h.responseHandler.SuccessResponse(c, out, "Video retrieved successfully")
}
