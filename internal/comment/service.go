package comment

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/soldout/backend/internal/auth"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/sanitize"
	"github.com/soldout/backend/internal/video"
)

const maxTextLength = 2000

// Service implements comment and threaded reply operations
type Service struct {
	comments Repository
	users    UserReader
	videos   VideoReader
	logger   Logger
}

// NewService creates a new comment service
func NewService(comments Repository, users UserReader, videos VideoReader, logger Logger) *Service {
	return &Service{
		comments: comments,
		users:    users,
		videos:   videos,
		logger:   logger,
	}
}

// CreateComment adds a top level comment to a video
func (s *Service) CreateComment(ctx context.Context, userID, videoID int64, text string) (*Comment, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}
	if videoID <= 0 {
		return nil, apperrors.NewValidationErrorCode("videoId", apperrors.CodeMissingFields, "Video ID is required")
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.videoExists(ctx, videoID); err != nil {
		return nil, err
	}

	comment := &Comment{VideoID: videoID, UserID: userID, Text: text}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, apperrors.NewStorageError("failed to create comment", err)
	}
	comment.User = user
	comment.Replies = []Reply{}

	s.logger.LogInfo("Comment created", map[string]interface{}{
		"comment_id": comment.ID,
		"video_id":   videoID,
		"user_id":    userID,
	})
	return comment, nil
}

// CreateReply adds a reply under a comment or another reply. Replying to a
// reply inherits the parent's root comment, so every reply is stored one
// level below its comment with the immediate parent kept for display.
func (s *Service) CreateReply(ctx context.Context, in ReplyInput) (*Reply, error) {
	text, err := cleanText(in.Text)
	if err != nil {
		return nil, err
	}
	if in.VideoID <= 0 {
		return nil, apperrors.NewValidationErrorCode("videoId", apperrors.CodeMissingFields, "Video ID is required")
	}
	if in.CommentID == nil && in.ParentReplyID == nil {
		return nil, apperrors.NewValidationErrorCode("", apperrors.CodeMissingFields, "Either commentId or parentReplyId is required")
	}

	user, err := s.user(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.videoExists(ctx, in.VideoID); err != nil {
		return nil, err
	}

	var rootID int64
	if in.ParentReplyID != nil {
		parent, err := s.comments.GetReply(ctx, *in.ParentReplyID)
		if err != nil {
			if errors.Is(err, ErrReplyNotFound) {
				return nil, apperrors.NewNotFoundError(apperrors.CodeParentNotFound, "Parent reply not found")
			}
			return nil, apperrors.NewStorageError("failed to load parent reply", err)
		}
		if parent.VideoID != in.VideoID {
			return nil, videoMismatch()
		}
		if in.CommentID != nil && *in.CommentID != parent.CommentID {
			return nil, videoMismatch()
		}
		rootID = parent.CommentID
	} else {
		root, err := s.comments.GetComment(ctx, *in.CommentID)
		if err != nil {
			if errors.Is(err, ErrCommentNotFound) {
				return nil, apperrors.NewNotFoundError(apperrors.CodeCommentNotFound, "Comment not found")
			}
			return nil, apperrors.NewStorageError("failed to load comment", err)
		}
		if root.VideoID != in.VideoID {
			return nil, videoMismatch()
		}
		rootID = root.ID
	}

	reply := &Reply{
		VideoID:       in.VideoID,
		CommentID:     rootID,
		ParentReplyID: in.ParentReplyID,
		UserID:        in.UserID,
		Text:          text,
	}
	if err := s.comments.CreateReply(ctx, reply); err != nil {
		return nil, apperrors.NewStorageError("failed to create reply", err)
	}
	reply.User = user

	s.logger.LogInfo("Reply created", map[string]interface{}{
		"reply_id":   reply.ID,
		"comment_id": rootID,
		"video_id":   in.VideoID,
		"user_id":    in.UserID,
	})
	return reply, nil
}

// Thread returns every comment of a video, newest first, each with its
// replies oldest first
func (s *Service) Thread(ctx context.Context, videoID int64) ([]Comment, error) {
	comments, err := s.comments.ListComments(ctx, videoID, 0, 0)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list comments", err)
	}
	return s.attachReplies(ctx, comments)
}

// Page returns one page of a video's thread and the total comment count
func (s *Service) Page(ctx context.Context, videoID int64, page, limit int) ([]Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if err := s.videoExists(ctx, videoID); err != nil {
		return nil, 0, err
	}

	total, err := s.comments.CountComments(ctx, videoID)
	if err != nil {
		return nil, 0, apperrors.NewStorageError("failed to count comments", err)
	}
	comments, err := s.comments.ListComments(ctx, videoID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, apperrors.NewStorageError("failed to list comments", err)
	}
	comments, err = s.attachReplies(ctx, comments)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *Service) attachReplies(ctx context.Context, comments []Comment) ([]Comment, error) {
	if len(comments) == 0 {
		return []Comment{}, nil
	}
	ids := make([]int64, len(comments))
	index := make(map[int64]int, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
		index[comments[i].ID] = i
		comments[i].Replies = []Reply{}
	}

	replies, err := s.comments.ListReplies(ctx, ids)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list replies", err)
	}
	for _, reply := range replies {
		if i, ok := index[reply.CommentID]; ok {
			comments[i].Replies = append(comments[i].Replies, reply)
		}
	}
	return comments, nil
}

func (s *Service) user(ctx context.Context, id int64) (*auth.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "User not found")
		}
		return nil, apperrors.NewStorageError("failed to load user", err)
	}
	return user, nil
}

func (s *Service) videoExists(ctx context.Context, id int64) error {
	if _, err := s.videos.GetByID(ctx, id); err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return apperrors.NewNotFoundError(apperrors.CodeVideoNotFound, "Video not found")
		}
		return apperrors.NewStorageError("failed to load video", err)
	}
	return nil
}

func cleanText(text string) (string, error) {
	text = sanitize.Text(text)
	if text == "" {
		return "", apperrors.NewValidationErrorCode("text", apperrors.CodeMissingFields, "Text is required")
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return "", apperrors.NewValidationError("text", fmt.Sprintf("Text must not exceed %d characters", maxTextLength))
	}
	return text, nil
}

func videoMismatch() error {
	return apperrors.NewValidationErrorCode("videoId", apperrors.CodeVideoMismatch, "Reply target does not belong to this video")
}
