package detail

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/comment"
	"github.com/soldout/backend/internal/interaction"
	"github.com/soldout/backend/internal/video"
)

// VideoReader resolves videos with their owner
type VideoReader interface {
	GetByID(ctx context.Context, id int64) (*video.Video, error)
}

// ThreadReader returns a video's comments with their replies attached
type ThreadReader interface {
	Thread(ctx context.Context, videoID int64) ([]comment.Comment, error)
}

// InteractionReader is the read side of the interaction repository
type InteractionReader interface {
	GetLike(ctx context.Context, userID int64, target interaction.LikeTarget) (*interaction.Like, error)
	CountLikes(ctx context.Context, target interaction.LikeTarget) (interaction.LikeCounts, error)
	CountLikesByTargets(ctx context.Context, kind interaction.TargetKind, ids []int64) (map[int64]interaction.LikeCounts, error)
	UserLikes(ctx context.Context, userID int64, kind interaction.TargetKind, ids []int64) (map[int64]interaction.LikeType, error)
	IsSubscribed(ctx context.Context, subscriberID, creatorID int64) (bool, error)
	CountSubscribers(ctx context.Context, creatorID int64) (int64, error)
	GetRating(ctx context.Context, userID, videoID int64) (*interaction.Rating, error)
	RatingStats(ctx context.Context, videoID int64) (interaction.RatingStats, error)
	ListTrivia(ctx context.Context, videoID int64) ([]interaction.Trivia, error)
}

// DetailReader is the surface the HTTP handler depends on
type DetailReader interface {
	GetVideoDetail(ctx context.Context, videoID int64, viewer Viewer) (*VideoDetail, error)
}

// ResponseHandler handles HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	ValidationErrorResponse(c *gin.Context, field, message string)
	HandleError(c *gin.Context, err error, message string)
}

// Logger interface for logging operations
type Logger interface {
	LogWarn(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}
