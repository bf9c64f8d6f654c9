package admin

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/video"
)

// AuditRepository persists audit entries
type AuditRepository interface {
	Create(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, offset, limit int) ([]AuditLog, error)
	Count(ctx context.Context) (int64, error)
}

// VideoReader is the slice of the video service the admin surface reads
type VideoReader interface {
	Get(ctx context.Context, id int64) (*video.Video, error)
	ListByStatus(ctx context.Context, status video.Status) ([]video.Video, error)
	CountByStatus(ctx context.Context, status video.Status) (int64, error)
	CountByOwners(ctx context.Context, ownerIDs []int64) (map[int64]int64, error)
}

// Passwords hashes new passwords and verifies password changes
type Passwords interface {
	HashPassword(password string) (string, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}

// AdminService is the surface the HTTP handler depends on
type AdminService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Videos(ctx context.Context, status video.Status) ([]video.Video, error)
	Video(ctx context.Context, id int64) (*video.Video, error)
	Users(ctx context.Context) ([]UserSummary, error)
	Admins(ctx context.Context) ([]auth.User, error)
	UpdateUser(ctx context.Context, actor *auth.User, userID int64, req UpdateUserRequest) (*auth.User, error)
	Ban(ctx context.Context, actor *auth.User, userID int64, reason string) (*auth.User, error)
	Unban(ctx context.Context, actor *auth.User, userID int64) (*auth.User, error)
	RegisterAdmin(ctx context.Context, actor *auth.User, req RegisterAdminRequest) (*auth.User, error)
	Promote(ctx context.Context, actor *auth.User, userID int64) (*auth.User, error)
	DeleteAdmin(ctx context.Context, actor *auth.User, userID int64) error
	AuditLogs(ctx context.Context, page, limit int) ([]AuditLog, int64, error)
	ChangePassword(ctx context.Context, actor *auth.User, req ChangePasswordRequest) error
}

// ResponseHandler handles HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	CreatedResponse(c *gin.Context, data interface{}, message string)
	PaginatedResponse(c *gin.Context, data interface{}, pagination *apphttp.Pagination, message string)
	ValidationErrorResponse(c *gin.Context, field, message string)
	UnauthorizedResponse(c *gin.Context, message string)
	HandleError(c *gin.Context, err error, message string)
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}
