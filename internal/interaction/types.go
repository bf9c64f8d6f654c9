package interaction

import (
	apperrors "github.com/soldout/backend/internal/errors"
)

// Toggle outcomes reported in the action field
const (
	ActionCreated      = "created"
	ActionRemoved      = "removed"
	ActionSubscribed   = "subscribed"
	ActionUnsubscribed = "unsubscribed"
)

// LikeRequest names exactly one of VideoID, CommentID and ReplyID
type LikeRequest struct {
	VideoID   *int64 `json:"videoId" binding:"omitempty,min=1"`
	CommentID *int64 `json:"commentId" binding:"omitempty,min=1"`
	ReplyID   *int64 `json:"replyId" binding:"omitempty,min=1"`
	Type      string `json:"type" binding:"omitempty,oneof=LIKE DISLIKE" example:"LIKE"`
}

// Target resolves the request into a LikeTarget
func (r LikeRequest) Target() (LikeTarget, error) {
	var targets []LikeTarget
	if r.VideoID != nil {
		targets = append(targets, VideoTarget(*r.VideoID))
	}
	if r.CommentID != nil {
		targets = append(targets, CommentTarget(*r.CommentID))
	}
	if r.ReplyID != nil {
		targets = append(targets, ReplyTarget(*r.ReplyID))
	}
	if len(targets) != 1 {
		return LikeTarget{}, apperrors.NewValidationErrorCode("", apperrors.CodeMissingFields,
			"Exactly one of videoId, commentId or replyId is required")
	}
	if targets[0].ID <= 0 {
		return LikeTarget{}, apperrors.NewValidationError("", "Target ID must be positive")
	}
	return targets[0], nil
}

// LikeType returns the requested type, LIKE when omitted
func (r LikeRequest) LikeType() (LikeType, error) {
	if r.Type == "" {
		return TypeLike, nil
	}
	t := LikeType(r.Type)
	if !t.Valid() {
		return "", apperrors.NewValidationError("type", "Type must be LIKE or DISLIKE")
	}
	return t, nil
}

// SubscribeRequest subscribes to the owner of VideoID
type SubscribeRequest struct {
	VideoID int64 `json:"videoId" binding:"required,min=1"`
}

// RateRequest carries a 1 to 10 rating
type RateRequest struct {
	VideoID int64 `json:"videoId" binding:"required,min=1"`
	Value   int   `json:"value" binding:"min=1,max=10"`
}

// TriviaRequest carries a trivia note
type TriviaRequest struct {
	VideoID int64  `json:"videoId" binding:"required,min=1"`
	Text    string `json:"text" binding:"required"`
}

// LikeResult reports the state after a like toggle
type LikeResult struct {
	Action       string     `json:"action" example:"created"`
	Liked        bool       `json:"liked"`
	LikeCount    int64      `json:"likeCount"`
	DislikeCount int64      `json:"dislikeCount"`
	Type         TargetKind `json:"type" example:"VIDEO"`
}

// SubscriptionResult reports the state after a subscription toggle
type SubscriptionResult struct {
	Action          string `json:"action" example:"subscribed"`
	Subscribed      bool   `json:"subscribed"`
	CreatorID       int64  `json:"creatorId"`
	SubscriberCount int64  `json:"subscriberCount"`
}

// RatingResult reports the stored rating and the video's new average
type RatingResult struct {
	Rating  *Rating `json:"rating"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
