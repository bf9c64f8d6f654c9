package comment

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/video"
)

// Repository defines the interface for comment data access
type Repository interface {
	CreateComment(ctx context.Context, comment *Comment) error
	CreateReply(ctx context.Context, reply *Reply) error
	GetComment(ctx context.Context, id int64) (*Comment, error)
	GetReply(ctx context.Context, id int64) (*Reply, error)
	// ListComments returns comments of a video, newest first. limit <= 0 means all.
	ListComments(ctx context.Context, videoID int64, offset, limit int) ([]Comment, error)
	CountComments(ctx context.Context, videoID int64) (int64, error)
	// ListReplies returns the replies under the given root comments, oldest first.
	ListReplies(ctx context.Context, commentIDs []int64) ([]Reply, error)
}

// UserReader resolves users
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}

// VideoReader resolves videos
type VideoReader interface {
	GetByID(ctx context.Context, id int64) (*video.Video, error)
}

// CommentService is the surface the HTTP handler depends on
type CommentService interface {
	CreateComment(ctx context.Context, userID, videoID int64, text string) (*Comment, error)
	CreateReply(ctx context.Context, in ReplyInput) (*Reply, error)
	Page(ctx context.Context, videoID int64, page, limit int) ([]Comment, int64, error)
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
