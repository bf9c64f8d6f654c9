package events

import (
	"time"
)

// EventType names a domain event; it doubles as the routing key
type EventType string

const (
	VideoSubmitted   EventType = "video.submitted"
	VideoApproved    EventType = "video.approved"
	VideoRejected    EventType = "video.rejected"
	VideoUnpublished EventType = "video.unpublished"
	UserBanned       EventType = "user.banned"
	UserUnbanned     EventType = "user.unbanned"
	UserPromoted     EventType = "user.promoted"
	AdminCreated     EventType = "admin.created"
	AdminDeleted     EventType = "admin.deleted"
)

// Event is one published domain fact
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	ActorID   int64                  `json:"actorId,omitempty"`
	SubjectID int64                  `json:"subjectId"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Config holds event publishing settings
type Config struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}
