package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	apphttp "github.com/soldout/backend/internal/http"
)

// Handler handles HTTP requests for auth endpoints
type Handler struct {
	service         *Service
	responseHandler ResponseHandler
}

// NewHandler creates a new auth handler instance
func NewHandler(service *Service, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers all auth routes
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.handleRegister)
		auth.POST("/login", h.handleLogin)
		auth.POST("/admin/login", h.handleAdminLogin)
	}
}

// @Summary Register new user
// @Description Register a new user account. Accepts JSON or multipart with an optional profilePicture file.
// @Tags auth
// @Accept json,mpfd
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} http.Response{data=AuthResponse} "Registration successful"
// @Failure 400 {object} http.Response "Missing or invalid fields"
// @Failure 409 {object} http.Response "Email already registered"
// @Router /api/auth/register [post]
func (h *Handler) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	in := RegisterInput{RegisterRequest: req}
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		picture, closeFn, err := apphttp.FormUpload(c, "profilePicture")
		if err != nil {
			h.responseHandler.HandleError(c, err, "Failed to read profile picture")
			return
		}
		defer closeFn()
		in.Picture = picture
	}

	response, err := h.service.Register(c.Request.Context(), in)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Registration failed")
		return
	}

	h.responseHandler.CreatedResponse(c, response, "Registration successful")
}

// @Summary Login user
// @Description Authenticate user and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} http.Response{data=AuthResponse} "Login successful"
// @Failure 400 {object} http.Response "Invalid request format"
// @Failure 401 {object} http.Response "Invalid credentials"
// @Failure 403 {object} http.Response "Account suspended"
// @Router /api/auth/login [post]
func (h *Handler) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	response, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Login failed")
		return
	}

	h.responseHandler.SuccessResponse(c, response, "Login successful")
}

// @Summary Login administrator
// @Description Authenticate an ADMIN or SUPER_ADMIN account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} http.Response{data=AuthResponse} "Login successful"
// @Failure 401 {object} http.Response "Invalid credentials"
// @Failure 403 {object} http.Response "Not an administrator or account suspended"
// @Router /api/auth/admin/login [post]
func (h *Handler) handleAdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apphttp.BindError(err), "Invalid request format")
		return
	}

	response, err := h.service.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.responseHandler.HandleError(c, err, "Admin login failed")
		return
	}

	h.responseHandler.SuccessResponse(c, response, "Login successful")
}
