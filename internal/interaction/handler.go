package interaction

import (
	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apperrors "github.com/soldout/backend/internal/errors"
	apphttp "github.com/soldout/backend/internal/http"
)

// Handler defines the HTTP handler for interaction operations
type Handler struct {
	service         InteractionService
	responseHandler ResponseHandler
}

// NewHandler creates a new interaction handler
func NewHandler(service InteractionService, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers the interaction API routes
func (h *Handler) RegisterRoutes(router gin.IRouter, authenticate gin.HandlerFunc) {
	router.GET("/videos/:id/trivia", h.handleListTrivia)

	interactions := router.Group("/interactions", authenticate)
	{
		interactions.POST("/like", h.handleToggleLike)
		interactions.POST("/subscribe", h.handleToggleSubscription)
		interactions.POST("/rate", h.handleRateVideo)
		interactions.POST("/trivia", h.handleAddTrivia)
	}
}

// @Summary Toggle a like
// @Description Likes a video, comment or reply, or removes the like when it already exists
// @Tags interaction
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LikeRequest true "Exactly one target"
// @Success 200 {object} http.Response{data=LikeResult} "Like toggled"
// @Failure 400 {object} http.Response{error=http.Error} "Missing or ambiguous target"
// @Failure 404 {object} http.Response{error=http.Error} "Target not found"
// @Router /api/interactions/like [post]
func (h *Handler) handleToggleLike(c *gin.Context) {
	userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}
	target, err := req.Target()
	if err != nil {
		h.responseHandler.HandleError(c, err, "Invalid like target")
		return
	}
	likeType, err := req.LikeType()
	if err != nil {
		h.responseHandler.HandleError(c, err, "Invalid like type")
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), userID, target, likeType)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to process like interaction")
		return
	}
	h.responseHandler.SuccessResponse(c, result, "Like "+result.Action)
}

// @Summary Toggle a subscription
// @Description Subscribes to the creator of the given video, or unsubscribes when already subscribed
// @Tags interaction
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubscribeRequest true "Video of the creator"
// @Success 200 {object} http.Response{data=SubscriptionResult} "Subscription toggled"
// @Failure 400 {object} http.Response{error=http.Error} "Self subscription"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /api/interactions/subscribe [post]
func (h *Handler) handleToggleSubscription(c *gin.Context) {
	userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	result, err := h.service.ToggleSubscription(c.Request.Context(), userID, req.VideoID)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to toggle subscription")
		return
	}
	h.responseHandler.SuccessResponse(c, result, "Subscription "+result.Action)
}

// @Summary Rate a video
// @Tags interaction
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RateRequest true "Rating from 1 to 10"
// @Success 200 {object} http.Response{data=RatingResult} "Rating saved"
// @Failure 400 {object} http.Response{error=http.Error} "Rating out of range"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /api/interactions/rate [post]
func (h *Handler) handleRateVideo(c *gin.Context) {
	userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr := apphttp.BindError(err)
		if apperrors.Field(bindErr) == "value" {
			bindErr = invalidRating()
		}
		h.responseHandler.HandleError(c, bindErr, "Invalid request format")
		return
	}

	result, err := h.service.RateVideo(c.Request.Context(), userID, req.VideoID, req.Value)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to save rating")
		return
	}
	h.responseHandler.SuccessResponse(c, result, "Rating saved")
}

// @Summary Add trivia to a video
// @Tags interaction
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TriviaRequest true "Trivia"
// @Success 201 {object} http.Response{data=Trivia} "Trivia created"
// @Failure 400 {object} http.Response{error=http.Error} "Missing text"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /api/interactions/trivia [post]
func (h *Handler) handleAddTrivia(c *gin.Context) {
	userID, ok := h.identity(c)
	if !ok {
		return
	}
	var req TriviaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	trivia, err := h.service.AddTrivia(c.Request.Context(), userID, req.VideoID, req.Text)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to create trivia")
		return
	}
	h.responseHandler.CreatedResponse(c, trivia, "Trivia created")
}

// @Summary List trivia for a video
// @Tags interaction
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} http.Response{data=[]Trivia} "Trivia retrieved"
// @Failure 404 {object} http.Response{error=http.Error} "Video not found"
// @Router /api/videos/{id}/trivia [get]
func (h *Handler) handleListTrivia(c *gin.Context) {
	videoID, ok := apphttp.ParseID(c, "id")
	if !ok {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video ID")
		return
	}
	trivia, err := h.service.ListTrivia(c.Request.Context(), videoID)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Failed to fetch trivia")
		return
	}
	h.responseHandler.SuccessResponse(c, trivia, "Trivia retrieved")
}

func (h *Handler) identity(c *gin.Context) (int64, bool) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.responseHandler.UnauthorizedResponse(c, "Authentication required")
	}
	return userID, ok
}
