package admin

import (
	"encoding/json"

	"github.com/soldout/backend/internal/auth"
)

// Dashboard summarizes moderation backlog and user base
type Dashboard struct {
	PendingVideos  int64 `json:"pendingVideos"`
	ApprovedVideos int64 `json:"approvedVideos"`
	RejectedVideos int64 `json:"rejectedVideos"`
	TotalUsers     int64 `json:"totalUsers"`
}

// UserSummary is a user row in the admin listing
type UserSummary struct {
	auth.User
	VideoCount int64 `json:"videoCount"`
}

// MarshalJSON keeps the embedded user's isAdmin flag alongside videoCount
func (u UserSummary) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(u.User)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["videoCount"] = u.VideoCount
	return json.Marshal(fields)
}

// UpdateUserRequest carries account changes made by an admin. Nil fields are
// left untouched; Role requires SUPER_ADMIN.
type UpdateUserRequest struct {
	FirstName *string    `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string    `json:"lastName" binding:"omitempty,max=100"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Role      *auth.Role `json:"role" binding:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
}

// RegisterAdminRequest creates an ADMIN account
type RegisterAdminRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// PromoteRequest names the admin to promote to SUPER_ADMIN
type PromoteRequest struct {
	UserID int64 `json:"userId" binding:"required,min=1"`
}

// BanRequest optionally explains a ban
type BanRequest struct {
	Reason string `json:"reason"`
}

// ChangePasswordRequest replaces the calling admin's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
