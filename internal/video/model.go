package video

import (
	"time"

	"github.com/soldout/backend/internal/auth"
)

// Status is the moderation state of a video
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Video represents an uploaded video and its moderation state
type Video struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	UserID          int64      `gorm:"not null;index" json:"userId"`
	Owner           *auth.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Title           string     `gorm:"not null" json:"title"`
	Description     string     `json:"description"`
	Genre           string     `gorm:"index" json:"genre"`
	Year            int        `json:"year"`
	Synopsis        string     `json:"synopsis"`
	Thumbnail       string     `gorm:"not null" json:"thumbnail"`
	VideoURL        string     `gorm:"column:video_url;not null" json:"videoUrl"`
	Status          Status     `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectedAt      *time.Time `json:"rejectedAt"`
	RejectionReason string     `json:"rejectionReason"`
	Views           int64      `gorm:"not null;default:0" json:"views"`
	CreatedAt       time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// UploaderName returns the owner's display name when the owner is loaded
func (v *Video) UploaderName() string {
	if v.Owner == nil {
		return ""
	}
	return v.Owner.FullName()
}

// Summary is the list representation of a video
type Summary struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Genre        string    `json:"genre"`
	Year         int       `json:"year"`
	Thumbnail    string    `json:"thumbnail"`
	VideoURL     string    `json:"videoUrl"`
	Status       Status    `json:"status"`
	Views        int64     `json:"views"`
	UploaderName string    `json:"uploaderName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summarize converts videos to their list representation
func Summarize(videos []Video) []Summary {
	out := make([]Summary, 0, len(videos))
	for i := range videos {
		v := &videos[i]
		out = append(out, Summary{
			ID:           v.ID,
			UserID:       v.UserID,
			Title:        v.Title,
			Description:  v.Description,
			Genre:        v.Genre,
			Year:         v.Year,
			Thumbnail:    v.Thumbnail,
			VideoURL:     v.VideoURL,
			Status:       v.Status,
			Views:        v.Views,
			UploaderName: v.UploaderName(),
			CreatedAt:    v.CreatedAt,
		})
	}
	return out
}
