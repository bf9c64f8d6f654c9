package comment

import (
	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apphttp "github.com/soldout/backend/internal/http"
)

// Handler defines the HTTP handler for comment operations
type Handler struct {
	service         CommentService
	responseHandler ResponseHandler
}

// NewHandler creates a new comment handler
func NewHandler(service CommentService, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers the comment API routes. authenticate guards
// every mutation.
func (h *Handler) RegisterRoutes(router gin.IRouter, authenticate gin.HandlerFunc) {
	router.GET("/videos/:id/comments", h.handleGetComments)

	interactions := router.Group("/interactions", authenticate)
	{
		interactions.POST("/comment", h.handleCreateComment)
		interactions.POST("/reply", h.handleCreateReply)
	}
}

// @Summary Get comments for a video
// @Description Retrieves a page of comments, newest first, each with its replies
// @Tags comment
// @Produce json
// @Param id path int true "Video ID"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Comments per page (default: 20, max: 100)"
// @Success 200 {object} http.PaginatedResponse{data=[]Comment} "Comments retrieved successfully"
// @Failure 400 {object} http.Response{error=http.Error} "Invalid video ID"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /api/videos/{id}/comments [get]
func (h *Handler) handleGetComments(c *gin.Context) {
	videoID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}
	page, limit := apphttp.PageParams(c, 20)

	comments, total, err := h.service.Page(c.Request.Context(), videoID, page, limit)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to retrieve comments")
		return
	}
	h.responseHandler.PaginatedResponse(c, comments, apphttp.NewPagination(page, limit, total), "Comments retrieved successfully")
}

// @Summary Comment on a video
// @Tags comment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} http.Response{data=Comment} "Comment created"
// @Failure 400 {object} http.Response{error=http.Error} "Missing text or video"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /api/interactions/comment [post]
func (h *Handler) handleCreateComment(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "Authentication required")
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), userID, req.VideoID, req.Text)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to create comment")
		return
	}
	h.responseHandler.CreatedResponse(c, comment, "Comment created")
}

// @Summary Reply to a comment or reply
// @Description Provide commentId to answer a comment or parentReplyId to answer a reply
// @Tags comment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReplyRequest true "Reply"
// @Success 201 {object} http.Response{data=Reply} "Reply created"
// @Failure 400 {object} http.Response{error=http.Error} "Missing fields"
// @Failure 404 {object} http.Response{error=http.Error} "Video, comment or parent reply not found"
// @Failure 409 {object} http.Response{error=http.Error} "Target belongs to another video"
// @Router /api/interactions/reply [post]
func (h *Handler) handleCreateReply(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "Authentication required")
		return
	}
	var req CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	reply, err := h.service.CreateReply(c.Request.Context(), ReplyInput{
		UserID:        userID,
		VideoID:       req.VideoID,
		Text:          req.Text,
		CommentID:     req.CommentID,
		ParentReplyID: req.ParentReplyID,
	})
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to create reply")
		return
	}
	h.responseHandler.CreatedResponse(c, reply, "Reply created")
}
