package user

import (
	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/video"
)

// UpdateRequest carries profile changes. Nil fields are left untouched.
type UpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Bio       *string `json:"bio"`
}

// Stats summarizes a user's channel
type Stats struct {
	Videos      int64 `json:"videos"`
	Views       int64 `json:"views"`
	Likes       int64 `json:"likes"`
	Subscribers int64 `json:"subscribers"`
}

// Profile is a user with their videos and channel stats
type Profile struct {
	User   *auth.User    `json:"user"`
	Videos []video.Video `json:"videos"`
	Stats  Stats         `json:"stats"`
}
