package detail

import (
	"time"

	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/interaction"
	"github.com/soldout/backend/internal/video"
)

// Viewer identifies who is reading. ID selects the per-viewer state; User is
// set only for a token-verified caller and is what unlocks hidden videos.
type Viewer struct {
	ID   *int64
	User *auth.User
}

// Author is the public view of a user
type Author struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

func authorOf(u *auth.User) *Author {
	if u == nil {
		return nil
	}
	return &Author{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, ProfilePicture: u.ProfilePicture}
}

// Owner is the video owner with their subscriber count
type Owner struct {
	Author
	SubscriberCount int64 `json:"subscriberCount"`
}

// ViewerState is the reading user's own relation to the video
type ViewerState struct {
	Liked      bool                 `json:"liked"`
	LikeType   interaction.LikeType `json:"likeType,omitempty"`
	Rating     *int                 `json:"rating"`
	Subscribed bool                 `json:"subscribed"`
}

// ReplyView is a reply annotated with its reactions
type ReplyView struct {
	ID            int64     `json:"id"`
	CommentID     int64     `json:"commentId"`
	ParentReplyID *int64    `json:"parentReplyId"`
	Text          string    `json:"text"`
	User          *Author   `json:"user"`
	LikeCount     int64     `json:"likeCount"`
	DislikeCount  int64     `json:"dislikeCount"`
	LikedByViewer bool      `json:"likedByViewer"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CommentView is a comment annotated with its reactions and replies
type CommentView struct {
	ID            int64       `json:"id"`
	Text          string      `json:"text"`
	User          *Author     `json:"user"`
	LikeCount     int64       `json:"likeCount"`
	DislikeCount  int64       `json:"dislikeCount"`
	LikedByViewer bool        `json:"likedByViewer"`
	Replies       []ReplyView `json:"replies"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// VideoDetail is the full view of one video
type VideoDetail struct {
	Video         *video.Video         `json:"video"`
	Owner         Owner                `json:"owner"`
	LikeCount     int64                `json:"likeCount"`
	DislikeCount  int64                `json:"dislikeCount"`
	AverageRating float64              `json:"averageRating"`
	RatingCount   int64                `json:"ratingCount"`
	Viewer        *ViewerState         `json:"viewer,omitempty"`
	Comments      []CommentView        `json:"comments"`
	Trivia        []interaction.Trivia `json:"trivia"`
}
