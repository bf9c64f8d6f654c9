package interaction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/comment"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/sanitize"
	"github.com/soldout/backend/internal/video"
)

const (
	minRating       = 1
	maxRating       = 10
	maxTriviaLength = 1000
)

// Service implements likes, subscriptions, ratings and trivia. Toggles rely
// on the repository's unique indexes: an insert that conflicts means the
// edge exists and is removed instead.
type Service struct {
	repo     Repository
	videos   VideoReader
	comments CommentReader
	users    UserReader
	logger   Logger
}

// NewService creates a new interaction service
func NewService(repo Repository, videos VideoReader, comments CommentReader, users UserReader, logger Logger) *Service {
	return &Service{
		repo:     repo,
		videos:   videos,
		comments: comments,
		users:    users,
		logger:   logger,
	}
}

// ToggleLike creates the user's like on target or removes it when one exists
func (s *Service) ToggleLike(ctx context.Context, userID int64, target LikeTarget, likeType LikeType) (*LikeResult, error) {
	if likeType == "" {
		likeType = TypeLike
	}
	if !likeType.Valid() {
		return nil, apperrors.NewValidationError("type", "Type must be LIKE or DISLIKE")
	}
	if err := s.resolveTarget(ctx, target); err != nil {
		return nil, err
	}

	result := &LikeResult{Type: target.Kind}
	err := s.repo.CreateLike(ctx, &Like{
		UserID:     userID,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Type:       likeType,
	})
	switch {
	case err == nil:
		result.Action, result.Liked = ActionCreated, true
	case errors.Is(err, ErrDuplicate):
		if err := s.repo.DeleteLike(ctx, userID, target); err != nil {
			return nil, apperrors.NewStorageError("failed to remove like", err)
		}
		result.Action, result.Liked = ActionRemoved, false
	default:
		return nil, apperrors.NewStorageError("failed to create like", err)
	}

	counts, err := s.repo.CountLikes(ctx, target)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count likes", err)
	}
	// likeCount covers every reaction row on the target, dislikes included
	result.LikeCount, result.DislikeCount = counts.Total(), counts.Dislikes

	s.logger.LogInfo("Like toggled", map[string]interface{}{
		"user_id":     userID,
		"target_kind": target.Kind,
		"target_id":   target.ID,
		"action":      result.Action,
	})
	return result, nil
}

// ToggleSubscription subscribes the user to the owner of videoID, or
// unsubscribes when already subscribed through any of the owner's videos
func (s *Service) ToggleSubscription(ctx context.Context, userID, videoID int64) (*SubscriptionResult, error) {
	v, err := s.video(ctx, videoID)
	if err != nil {
		return nil, err
	}
	creatorID := v.UserID
	if creatorID == userID {
		return nil, apperrors.NewValidationError("videoId", "You cannot subscribe to yourself")
	}

	result := &SubscriptionResult{CreatorID: creatorID}
	err = s.repo.CreateSubscription(ctx, &Subscription{
		SubscriberID: userID,
		CreatorID:    creatorID,
		VideoID:      &videoID,
	})
	switch {
	case err == nil:
		result.Action, result.Subscribed = ActionSubscribed, true
	case errors.Is(err, ErrDuplicate):
		if err := s.repo.DeleteSubscription(ctx, userID, creatorID); err != nil {
			return nil, apperrors.NewStorageError("failed to remove subscription", err)
		}
		result.Action, result.Subscribed = ActionUnsubscribed, false
	default:
		return nil, apperrors.NewStorageError("failed to create subscription", err)
	}

	count, err := s.repo.CountSubscribers(ctx, creatorID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count subscribers", err)
	}
	result.SubscriberCount = count

	s.logger.LogInfo("Subscription toggled", map[string]interface{}{
		"user_id":    userID,
		"creator_id": creatorID,
		"action":     result.Action,
	})
	return result, nil
}

// RateVideo stores the user's rating, replacing any earlier one, and returns
// the video's average rounded to one decimal
func (s *Service) RateVideo(ctx context.Context, userID, videoID int64, value int) (*RatingResult, error) {
	if value < minRating || value > maxRating {
		return nil, invalidRating()
	}
	if _, err := s.video(ctx, videoID); err != nil {
		return nil, err
	}

	rating := &Rating{UserID: userID, VideoID: videoID, Value: value}
	if err := s.repo.UpsertRating(ctx, rating); err != nil {
		return nil, apperrors.NewStorageError("failed to save rating", err)
	}

	stats, err := s.repo.RatingStats(ctx, videoID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to compute rating average", err)
	}
	return &RatingResult{
		Rating:  rating,
		Average: RoundRating(stats.Average),
		Count:   stats.Count,
	}, nil
}

// AddTrivia appends a trivia note to a video
func (s *Service) AddTrivia(ctx context.Context, userID, videoID int64, text string) (*Trivia, error) {
	text = sanitize.Text(text)
	if text == "" {
		return nil, apperrors.NewValidationErrorCode("text", apperrors.CodeMissingFields, "Text is required")
	}
	if utf8.RuneCountInString(text) > maxTriviaLength {
		return nil, apperrors.NewValidationError("text", fmt.Sprintf("Text must not exceed %d characters", maxTriviaLength))
	}
	if _, err := s.video(ctx, videoID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "User not found")
		}
		return nil, apperrors.NewStorageError("failed to load user", err)
	}

	trivia := &Trivia{VideoID: videoID, UserID: userID, Text: text}
	if err := s.repo.CreateTrivia(ctx, trivia); err != nil {
		return nil, apperrors.NewStorageError("failed to create trivia", err)
	}
	trivia.User = author
	return trivia, nil
}

// ListTrivia returns a video's trivia, newest first
func (s *Service) ListTrivia(ctx context.Context, videoID int64) ([]Trivia, error) {
	if _, err := s.video(ctx, videoID); err != nil {
		return nil, err
	}
	trivia, err := s.repo.ListTrivia(ctx, videoID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list trivia", err)
	}
	if trivia == nil {
		trivia = []Trivia{}
	}
	return trivia, nil
}

// RoundRating rounds an average rating to one decimal place
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

func (s *Service) resolveTarget(ctx context.Context, target LikeTarget) error {
	var err error
	switch target.Kind {
	case TargetVideo:
		_, err = s.videos.GetByID(ctx, target.ID)
	case TargetComment:
		_, err = s.comments.GetComment(ctx, target.ID)
	case TargetReply:
		_, err = s.comments.GetReply(ctx, target.ID)
	default:
		return apperrors.NewValidationError("", "Unknown like target")
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, video.ErrVideoNotFound) || errors.Is(err, comment.ErrCommentNotFound) || errors.Is(err, comment.ErrReplyNotFound) {
		return apperrors.NewNotFoundError(apperrors.CodeTargetNotFound, "The item you are trying to like no longer exists")
	}
	return apperrors.NewStorageError("failed to resolve like target", err)
}

func (s *Service) video(ctx context.Context, id int64) (*video.Video, error) {
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeVideoNotFound, "Video not found")
		}
		return nil, apperrors.NewStorageError("failed to load video", err)
	}
	return v, nil
}

func invalidRating() error {
	return apperrors.NewValidationErrorCode("value", apperrors.CodeInvalidRating,
		fmt.Sprintf("Rating must be between %d and %d", minRating, maxRating))
}
