package comment

import (
	"time"

	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/video"
)

// Comment is a top level comment on a video
type Comment struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	VideoID   int64        `gorm:"not null;index" json:"videoId"`
	Video     *video.Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    int64        `gorm:"not null;index" json:"userId"`
	User      *auth.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Text      string       `gorm:"type:text;not null" json:"text"`
	Replies   []Reply      `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"replies"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Reply answers a comment or another reply. CommentID always holds the
// root comment; ParentReplyID holds the immediate parent when there is one.
type Reply struct {
	ID            int64        `gorm:"primaryKey" json:"id"`
	VideoID       int64        `gorm:"not null;index" json:"videoId"`
	Video         *video.Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	CommentID     int64        `gorm:"not null;index" json:"commentId"`
	ParentReplyID *int64       `gorm:"index" json:"parentReplyId"`
	ParentReply   *Reply       `gorm:"foreignKey:ParentReplyID;constraint:OnDelete:SET NULL" json:"-"`
	UserID        int64        `gorm:"not null;index" json:"userId"`
	User          *auth.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Text          string       `gorm:"type:text;not null" json:"text"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
