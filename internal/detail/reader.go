// Package detail assembles the full view of a single video from the video,
// comment and interaction stores. The lookups are independent reads, so the
// result is a best-effort snapshot under concurrent writes.
package detail

import (
	"context"
	"errors"

	"github.com/soldout/backend/internal/comment"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/interaction"
	"github.com/soldout/backend/internal/video"
)

// Reader builds VideoDetail responses
type Reader struct {
	videos       VideoReader
	threads      ThreadReader
	interactions InteractionReader
	views        video.ViewCounter
	logger       Logger
}

// NewReader creates a new aggregate reader
func NewReader(videos VideoReader, threads ThreadReader, interactions InteractionReader, views video.ViewCounter, logger Logger) *Reader {
	return &Reader{
		videos:       videos,
		threads:      threads,
		interactions: interactions,
		views:        views,
		logger:       logger,
	}
}

// GetVideoDetail returns the video with its owner, reactions, ratings,
// comment thread and trivia, and records a view. Videos that are not
// approved are reported as missing unless the verified viewer owns the
// video or is an admin.
func (r *Reader) GetVideoDetail(ctx context.Context, videoID int64, viewer Viewer) (*VideoDetail, error) {
	v, err := r.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeVideoNotFound, "Video not found")
		}
		return nil, apperrors.NewStorageError("failed to load video", err)
	}
	if !visible(v, viewer) {
		return nil, apperrors.NewNotFoundError(apperrors.CodeVideoNotFound, "Video not found")
	}

	out := &VideoDetail{Video: v}
	if err := r.fillCounts(ctx, out); err != nil {
		return nil, err
	}
	if viewer.ID != nil {
		state, err := r.viewerState(ctx, v, *viewer.ID)
		if err != nil {
			return nil, err
		}
		out.Viewer = state
	}

	thread, err := r.threads.Thread(ctx, videoID)
	if err != nil {
		return nil, err
	}
	out.Comments, err = r.annotate(ctx, thread, viewer.ID)
	if err != nil {
		return nil, err
	}

	out.Trivia, err = r.interactions.ListTrivia(ctx, videoID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list trivia", err)
	}
	if out.Trivia == nil {
		out.Trivia = []interaction.Trivia{}
	}

	r.recordView(ctx, out.Video)
	return out, nil
}

func visible(v *video.Video, viewer Viewer) bool {
	if v.Status == video.StatusApproved {
		return true
	}
	if viewer.User == nil {
		return false
	}
	return viewer.User.ID == v.UserID || viewer.User.Role.IsAdmin()
}

func (r *Reader) fillCounts(ctx context.Context, out *VideoDetail) error {
	v := out.Video
	if owner := authorOf(v.Owner); owner != nil {
		out.Owner.Author = *owner
	} else {
		out.Owner.ID = v.UserID
	}
	// The owner record carries private fields; only the Author view is exposed.
	stripped := *v
	stripped.Owner = nil
	out.Video = &stripped

	subscribers, err := r.interactions.CountSubscribers(ctx, v.UserID)
	if err != nil {
		return apperrors.NewStorageError("failed to count subscribers", err)
	}
	out.Owner.SubscriberCount = subscribers

	likes, err := r.interactions.CountLikes(ctx, interaction.VideoTarget(v.ID))
	if err != nil {
		return apperrors.NewStorageError("failed to count likes", err)
	}
	out.LikeCount, out.DislikeCount = likes.Likes, likes.Dislikes

	stats, err := r.interactions.RatingStats(ctx, v.ID)
	if err != nil {
		return apperrors.NewStorageError("failed to compute rating average", err)
	}
	out.AverageRating = interaction.RoundRating(stats.Average)
	out.RatingCount = stats.Count
	return nil
}

func (r *Reader) viewerState(ctx context.Context, v *video.Video, viewerID int64) (*ViewerState, error) {
	state := &ViewerState{}

	like, err := r.interactions.GetLike(ctx, viewerID, interaction.VideoTarget(v.ID))
	switch {
	case err == nil:
		state.Liked = like.Type == interaction.TypeLike
		state.LikeType = like.Type
	case !errors.Is(err, interaction.ErrLikeNotFound):
		return nil, apperrors.NewStorageError("failed to load viewer like", err)
	}

	rating, err := r.interactions.GetRating(ctx, viewerID, v.ID)
	switch {
	case err == nil:
		value := rating.Value
		state.Rating = &value
	case !errors.Is(err, interaction.ErrRatingNotFound):
		return nil, apperrors.NewStorageError("failed to load viewer rating", err)
	}

	state.Subscribed, err = r.interactions.IsSubscribed(ctx, viewerID, v.UserID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to load viewer subscription", err)
	}
	return state, nil
}

func (r *Reader) annotate(ctx context.Context, thread []comment.Comment, viewerID *int64) ([]CommentView, error) {
	views := make([]CommentView, 0, len(thread))
	if len(thread) == 0 {
		return views, nil
	}

	var commentIDs, replyIDs []int64
	for _, c := range thread {
		commentIDs = append(commentIDs, c.ID)
		for _, reply := range c.Replies {
			replyIDs = append(replyIDs, reply.ID)
		}
	}

	commentCounts, err := r.interactions.CountLikesByTargets(ctx, interaction.TargetComment, commentIDs)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count comment likes", err)
	}
	replyCounts, err := r.interactions.CountLikesByTargets(ctx, interaction.TargetReply, replyIDs)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count reply likes", err)
	}

	commentLiked := map[int64]interaction.LikeType{}
	replyLiked := map[int64]interaction.LikeType{}
	if viewerID != nil {
		if commentLiked, err = r.interactions.UserLikes(ctx, *viewerID, interaction.TargetComment, commentIDs); err != nil {
			return nil, apperrors.NewStorageError("failed to load viewer comment likes", err)
		}
		if replyLiked, err = r.interactions.UserLikes(ctx, *viewerID, interaction.TargetReply, replyIDs); err != nil {
			return nil, apperrors.NewStorageError("failed to load viewer reply likes", err)
		}
	}

	for _, c := range thread {
		counts := commentCounts[c.ID]
		view := CommentView{
			ID:            c.ID,
			Text:          c.Text,
			User:          authorOf(c.User),
			LikeCount:     counts.Likes,
			DislikeCount:  counts.Dislikes,
			LikedByViewer: commentLiked[c.ID] == interaction.TypeLike,
			Replies:       make([]ReplyView, 0, len(c.Replies)),
			CreatedAt:     c.CreatedAt,
		}
		for _, reply := range c.Replies {
			rc := replyCounts[reply.ID]
			view.Replies = append(view.Replies, ReplyView{
				ID:            reply.ID,
				CommentID:     reply.CommentID,
				ParentReplyID: reply.ParentReplyID,
				Text:          reply.Text,
				User:          authorOf(reply.User),
				LikeCount:     rc.Likes,
				DislikeCount:  rc.Dislikes,
				LikedByViewer: replyLiked[reply.ID] == interaction.TypeLike,
				CreatedAt:     reply.CreatedAt,
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// recordView counts this read. Failures are logged and never fail the read.
func (r *Reader) recordView(ctx context.Context, v *video.Video) {
	unseen, err := r.views.Record(ctx, v.ID)
	if err != nil {
		r.logger.LogWarn("Failed to record view", map[string]interface{}{
			"video_id": v.ID,
			"error":    err.Error(),
		})
		return
	}
	v.Views += unseen
}
