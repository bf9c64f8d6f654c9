package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/http/middleware"
)

// Gin context keys set by the authentication middleware
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUser     = "user"
)

// Middleware guards routes by identity and role
type Middleware struct {
	auth            Authenticator
	responseHandler ResponseHandler
}

// NewMiddleware creates the authentication middleware set
func NewMiddleware(auth Authenticator, responseHandler ResponseHandler) *Middleware {
	return &Middleware{auth: auth, responseHandler: responseHandler}
}

// Authenticate requires a valid bearer token of a non-banned user
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			m.responseHandler.HandleError(c, apperrors.NewAuthenticationError(apperrors.CodeInvalidToken, "Authorization header is required"), "")
			c.Abort()
			return
		}

		user, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			m.responseHandler.HandleError(c, err, "Authentication failed")
			c.Abort()
			return
		}

		setIdentity(c, user)
		c.Next()
	}
}

// OptionalAuthenticate sets the identity when a usable token is present and
// never rejects the request
func (m *Middleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if user, err := m.auth.Authenticate(c.Request.Context(), token); err == nil {
				setIdentity(c, user)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after Authenticate
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return m.requireRole(Role.IsAdmin, "Admin privileges required")
}

// RequireSuperAdmin must run after Authenticate
func (m *Middleware) RequireSuperAdmin() gin.HandlerFunc {
	return m.requireRole(Role.IsSuperAdmin, "Super admin privileges required")
}

func (m *Middleware) requireRole(allowed func(Role) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			m.responseHandler.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}
		if !allowed(user.Role) {
			m.responseHandler.HandleError(c, apperrors.NewForbidden(message), "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by the middleware
func CurrentUser(c *gin.Context) (*User, bool) {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*User)
	return user, ok
}

// CurrentUserID returns the authenticated user's id
func CurrentUserID(c *gin.Context) (int64, bool) {
	id, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := id.(int64)
	return userID, ok
}

func setIdentity(c *gin.Context, user *User) {
	c.Set(ContextUserID, user.ID)
	c.Set(ContextUserRole, user.Role)
	c.Set(ContextUser, user)
	middleware.SetUserID(c, user.ID)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
