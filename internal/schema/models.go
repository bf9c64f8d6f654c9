// Package schema lists the persisted models in dependency order.
package schema

import (
	"github.com/soldout/backend/internal/admin"
	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/comment"
	"github.com/soldout/backend/internal/interaction"
	"github.com/soldout/backend/internal/video"
)

// Models returns every table the API owns. Referenced tables come first so
// AutoMigrate can create foreign keys in one pass.
func Models() []interface{} {
	return []interface{}{
		&auth.User{},
		&video.Video{},
		&comment.Comment{},
		&comment.Reply{},
		&interaction.Like{},
		&interaction.Subscription{},
		&interaction.Rating{},
		&interaction.Trivia{},
		&admin.AuditLog{},
	}
}
