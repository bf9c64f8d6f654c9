package interaction

import (
	"time"

	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/video"
)

// TargetKind names the entity a like points at
type TargetKind string

const (
	TargetVideo   TargetKind = "VIDEO"
	TargetComment TargetKind = "COMMENT"
	TargetReply   TargetKind = "REPLY"
)

// LikeType distinguishes likes from dislikes
type LikeType string

const (
	TypeLike    LikeType = "LIKE"
	TypeDislike LikeType = "DISLIKE"
)

// Valid reports whether t is a known like type
func (t LikeType) Valid() bool {
	return t == TypeLike || t == TypeDislike
}

// LikeTarget identifies exactly one video, comment or reply
type LikeTarget struct {
	Kind TargetKind
	ID   int64
}

// VideoTarget targets a video
func VideoTarget(id int64) LikeTarget { return LikeTarget{Kind: TargetVideo, ID: id} }

// CommentTarget targets a comment
func CommentTarget(id int64) LikeTarget { return LikeTarget{Kind: TargetComment, ID: id} }

// ReplyTarget targets a reply
func ReplyTarget(id int64) LikeTarget { return LikeTarget{Kind: TargetReply, ID: id} }

// Like is a user's reaction to one target. A user holds at most one like per
// target, enforced by idx_likes_user_target.
type Like struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	UserID     int64      `gorm:"not null;uniqueIndex:idx_likes_user_target,priority:1" json:"userId"`
	User       *auth.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TargetKind TargetKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_likes_user_target,priority:2;index:idx_likes_target,priority:1" json:"targetKind"`
	TargetID   int64      `gorm:"not null;uniqueIndex:idx_likes_user_target,priority:3;index:idx_likes_target,priority:2" json:"targetId"`
	Type       LikeType   `gorm:"type:varchar(10);not null;default:'LIKE'" json:"type"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Target returns the like's target
func (l Like) Target() LikeTarget {
	return LikeTarget{Kind: l.TargetKind, ID: l.TargetID}
}

// Subscription follows a creator. VideoID records the video the subscription
// was made from; the edge itself is creator scoped.
type Subscription struct {
	ID           int64        `gorm:"primaryKey" json:"id"`
	SubscriberID int64        `gorm:"not null;uniqueIndex:idx_subscriptions_pair,priority:1" json:"subscriberId"`
	Subscriber   *auth.User   `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE" json:"-"`
	CreatorID    int64        `gorm:"not null;uniqueIndex:idx_subscriptions_pair,priority:2;index" json:"creatorId"`
	Creator      *auth.User   `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
	VideoID      *int64       `json:"videoId,omitempty"`
	Video        *video.Video `gorm:"foreignKey:VideoID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Rating is a user's 1 to 10 score for a video, one per user and video
type Rating struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	UserID    int64        `gorm:"not null;uniqueIndex:idx_ratings_user_video,priority:1" json:"userId"`
	User      *auth.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	VideoID   int64        `gorm:"not null;uniqueIndex:idx_ratings_user_video,priority:2;index" json:"videoId"`
	Video     *video.Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	Value     int          `gorm:"not null;check:chk_ratings_value,value BETWEEN 1 AND 10" json:"value"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Trivia is a free text note about a video
type Trivia struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	VideoID   int64        `gorm:"not null;index" json:"videoId"`
	Video     *video.Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    int64        `gorm:"not null;index" json:"userId"`
	User      *auth.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Text      string       `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time    `json:"createdAt"`
}

// TableName keeps trivia singular and plural alike
func (Trivia) TableName() string { return "trivia" }

// LikeCounts holds the reactions on one target
type LikeCounts struct {
	Likes    int64 `json:"likeCount"`
	Dislikes int64 `json:"dislikeCount"`
}

// Total counts every reaction row regardless of type
func (c LikeCounts) Total() int64 {
	return c.Likes + c.Dislikes
}

// RatingStats summarizes a video's ratings
type RatingStats struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
