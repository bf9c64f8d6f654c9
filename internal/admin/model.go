package admin

import (
	"time"

	"github.com/soldout/backend/internal/auth"
)

// Action names an audited account change
type Action string

const (
	ActionAdminCreated Action = "ADMIN_CREATED"
	ActionAdminDeleted Action = "ADMIN_DELETED"
	ActionPromoted     Action = "USER_PROMOTED"
	ActionRoleChanged  Action = "ROLE_CHANGED"
	ActionBanned       Action = "USER_BANNED"
	ActionUnbanned     Action = "USER_UNBANNED"
)

// AuditLog records who changed which account and how
type AuditLog struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	ActorID      int64      `gorm:"not null;index" json:"actorId"`
	Actor        *auth.User `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"-"`
	Action       Action     `gorm:"type:varchar(32);not null;index" json:"action"`
	TargetUserID *int64     `gorm:"index" json:"targetUserId,omitempty"`
	TargetUser   *auth.User `gorm:"foreignKey:TargetUserID;constraint:OnDelete:SET NULL" json:"-"`
	Details      string     `json:"details"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
}
