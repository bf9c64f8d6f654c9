package interaction

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/comment"
	"github.com/soldout/backend/internal/video"
)

// Repository defines the interface for interaction data access. Inserts that
// hit a unique index return ErrDuplicate.
type Repository interface {
	CreateLike(ctx context.Context, like *Like) error
	// DeleteLike removes the user's like on target; a missing row is not an error.
	DeleteLike(ctx context.Context, userID int64, target LikeTarget) error
	GetLike(ctx context.Context, userID int64, target LikeTarget) (*Like, error)
	CountLikes(ctx context.Context, target LikeTarget) (LikeCounts, error)
	CountLikesByTargets(ctx context.Context, kind TargetKind, ids []int64) (map[int64]LikeCounts, error)
	// UserLikes returns the user's like type per target id among ids
	UserLikes(ctx context.Context, userID int64, kind TargetKind, ids []int64) (map[int64]LikeType, error)

	CreateSubscription(ctx context.Context, sub *Subscription) error
	DeleteSubscription(ctx context.Context, subscriberID, creatorID int64) error
	IsSubscribed(ctx context.Context, subscriberID, creatorID int64) (bool, error)
	CountSubscribers(ctx context.Context, creatorID int64) (int64, error)

	// UpsertRating inserts or overwrites the (user, video) rating in one statement
	UpsertRating(ctx context.Context, rating *Rating) error
	GetRating(ctx context.Context, userID, videoID int64) (*Rating, error)
	RatingStats(ctx context.Context, videoID int64) (RatingStats, error)

	CreateTrivia(ctx context.Context, trivia *Trivia) error
	ListTrivia(ctx context.Context, videoID int64) ([]Trivia, error)
}

// VideoReader resolves videos
type VideoReader interface {
	GetByID(ctx context.Context, id int64) (*video.Video, error)
}

// CommentReader resolves comments and replies for like targets
type CommentReader interface {
	GetComment(ctx context.Context, id int64) (*comment.Comment, error)
	GetReply(ctx context.Context, id int64) (*comment.Reply, error)
}

// UserReader resolves users
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}

// InteractionService is the surface the HTTP handler depends on
type InteractionService interface {
	ToggleLike(ctx context.Context, userID int64, target LikeTarget, likeType LikeType) (*LikeResult, error)
	ToggleSubscription(ctx context.Context, userID, videoID int64) (*SubscriptionResult, error)
	RateVideo(ctx context.Context, userID, videoID int64, value int) (*RatingResult, error)
	AddTrivia(ctx context.Context, userID, videoID int64, text string) (*Trivia, error)
	ListTrivia(ctx context.Context, videoID int64) ([]Trivia, error)
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
	LogError(err error, msg string) error
}
