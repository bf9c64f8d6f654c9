package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/soldout/backend/internal/auth"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/events"
	"github.com/soldout/backend/internal/sanitize"
	"github.com/soldout/backend/internal/video"
)

const maxReasonLength = 1000

// ListInvalidator drops cached public listings after a status change
type ListInvalidator interface {
	InvalidateLists(ctx context.Context)
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}

// Service applies moderation decisions to videos
type Service struct {
	videos    video.Repository
	machine   *StateMachine
	lists     ListInvalidator
	publisher events.Publisher
	logger    Logger
	now       func() time.Time
}

// NewService creates a new moderation service
func NewService(videos video.Repository, machine *StateMachine, lists ListInvalidator, publisher events.Publisher, logger Logger) *Service {
	return &Service{
		videos:    videos,
		machine:   machine,
		lists:     lists,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Approve publishes a video and stamps approvedAt
func (s *Service) Approve(ctx context.Context, videoID int64, actor *auth.User) (*video.Video, error) {
	now := s.now()
	return s.apply(ctx, videoID, actor, video.StatusApproved, events.VideoApproved, map[string]interface{}{
		"status":           video.StatusApproved,
		"approved_at":      now,
		"rejected_at":      nil,
		"rejection_reason": "",
	}, nil)
}

// Reject marks a video as rejected. reason is optional.
func (s *Service) Reject(ctx context.Context, videoID int64, actor *auth.User, reason string) (*video.Video, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	reason = sanitize.Text(reason)
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, apperrors.NewValidationError("reason", fmt.Sprintf("Reason must not exceed %d characters", maxReasonLength))
	}

	now := s.now()
	return s.apply(ctx, videoID, actor, video.StatusRejected, events.VideoRejected, map[string]interface{}{
		"status":           video.StatusRejected,
		"approved_at":      nil,
		"rejected_at":      now,
		"rejection_reason": reason,
	}, map[string]interface{}{"reason": reason})
}

// Unpublish moves an approved video back to review
func (s *Service) Unpublish(ctx context.Context, videoID int64, actor *auth.User) (*video.Video, error) {
	return s.apply(ctx, videoID, actor, video.StatusPending, events.VideoUnpublished, map[string]interface{}{
		"status":      video.StatusPending,
		"approved_at": nil,
	}, nil)
}

func (s *Service) apply(ctx context.Context, videoID int64, actor *auth.User, to video.Status, eventType events.EventType, fields, data map[string]interface{}) (*video.Video, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, videoID)
	if err != nil {
		return nil, err
	}
	from := current.Status
	if !s.machine.CanTransition(from, to) {
		return nil, invalidTransition(from, to)
	}

	if err := s.videos.UpdateStatus(ctx, videoID, from, fields); err != nil {
		if errors.Is(err, video.ErrStatusChanged) {
			return nil, invalidTransition(from, to)
		}
		return nil, apperrors.NewStorageError("failed to update video status", err)
	}

	updated, err := s.load(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if s.lists != nil {
		s.lists.InvalidateLists(ctx)
	}

	s.logger.LogInfo("Video status changed", map[string]interface{}{
		"video_id": videoID,
		"actor_id": actor.ID,
		"from":     from,
		"to":       to,
	})
	if data == nil {
		data = map[string]interface{}{}
	}
	data["from"] = string(from)
	data["ownerId"] = updated.UserID
	events.Emit(ctx, s.publisher, s.logger, events.Event{
		Type:      eventType,
		ActorID:   actor.ID,
		SubjectID: videoID,
		Data:      data,
	})
	return updated, nil
}

func (s *Service) load(ctx context.Context, videoID int64) (*video.Video, error) {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeVideoNotFound, "Video not found")
		}
		return nil, apperrors.NewStorageError("failed to load video", err)
	}
	return v, nil
}

func requireAdmin(actor *auth.User) error {
	if actor == nil || !actor.Role.IsAdmin() {
		return apperrors.NewForbidden("Unauthorized to moderate videos")
	}
	return nil
}

func invalidTransition(from, to video.Status) error {
	return apperrors.NewConflictError(apperrors.CodeInvalidTransition, fmt.Sprintf("Cannot move video from %s to %s", from, to))
}
