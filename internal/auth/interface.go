package auth

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenService handles JWT operations
type TokenService interface {
	IssueToken(user *User, ttl time.Duration) (string, error)
	VerifyToken(token string) (*TokenClaims, error)
}

// Authenticator resolves a bearer token to the live user record
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*User, error)
}

// UserRepository persists users
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, roles ...Role) ([]User, error)
	Count(ctx context.Context, roles ...Role) (int64, error)
}

// ResponseHandler handles HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	CreatedResponse(c *gin.Context, data interface{}, message string)
	ValidationErrorResponse(c *gin.Context, field, message string)
	UnauthorizedResponse(c *gin.Context, message string)
	HandleError(c *gin.Context, err error, message string)
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogWarn(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}
