package video

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Order selects the sort order of a listing
type Order int

const (
	// OrderNewest sorts by creation time, newest first
	OrderNewest Order = iota
	// OrderRecentlyApproved sorts by approval time, newest first
	OrderRecentlyApproved
	// OrderMostViewed sorts by view count, highest first
	OrderMostViewed
)

// ListFilter narrows a listing. Zero values mean "no constraint".
type ListFilter struct {
	Status        Status
	OwnerID       int64
	CreatedSince  time.Time
	CreatedBefore time.Time
	Order         Order
	Limit         int
}

// Repository persists videos
type Repository interface {
	Create(ctx context.Context, video *Video) error
	GetByID(ctx context.Context, id int64) (*Video, error)
	List(ctx context.Context, filter ListFilter) ([]Video, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	CountByOwners(ctx context.Context, ownerIDs []int64) (map[int64]int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	// UpdateStatus applies fields only while the row is still in status from.
	UpdateStatus(ctx context.Context, id int64, from Status, fields map[string]interface{}) error
	AddViews(ctx context.Context, counts map[int64]int64) error
}

// ViewCounter records video views
type ViewCounter interface {
	// Record counts one view and returns how many recorded views, this one
	// included, are missing from a row loaded before the call.
	Record(ctx context.Context, videoID int64) (int64, error)
}

// VideoService is the surface the HTTP handler depends on
type VideoService interface {
	Submit(ctx context.Context, ownerID int64, in SubmitInput) (*Video, error)
	ListApproved(ctx context.Context) ([]Summary, error)
	ListPremium(ctx context.Context) ([]Summary, error)
	ListTrending(ctx context.Context) ([]Summary, error)
	UpdateSynopsis(ctx context.Context, videoID, actorID int64, text string) (*Video, error)
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
