package user

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/interaction"
	"github.com/soldout/backend/internal/storage"
	"github.com/soldout/backend/internal/video"
)

// VideoLister lists a user's videos
type VideoLister interface {
	ListByOwner(ctx context.Context, ownerID int64, includeHidden bool) ([]video.Video, error)
}

// StatsReader supplies reaction and subscriber counts
type StatsReader interface {
	CountLikesByTargets(ctx context.Context, kind interaction.TargetKind, ids []int64) (map[int64]interaction.LikeCounts, error)
	CountSubscribers(ctx context.Context, creatorID int64) (int64, error)
}

// ProfileService is the surface the HTTP handler depends on
type ProfileService interface {
	Profile(ctx context.Context, userID int64, viewer *auth.User) (*Profile, error)
	Update(ctx context.Context, actorID, userID int64, req UpdateRequest) (*auth.User, error)
	UpdatePicture(ctx context.Context, actorID, userID int64, upload *storage.Upload) (*auth.User, error)
}

// ResponseHandler handles HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	ValidationErrorResponse(c *gin.Context, field, message string)
	UnauthorizedResponse(c *gin.Context, message string)
	HandleError(c *gin.Context, err error, message string)
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}
