package video

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/soldout/backend/internal/cache"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/events"
	"github.com/soldout/backend/internal/sanitize"
	"github.com/soldout/backend/internal/storage"
)

const (
	listApproved = "videos:approved"
	listPremium  = "videos:premium"
	listTrending = "videos:trending"

	minReleaseYear = 1870
)

// Service implements VideoService
type Service struct {
	videos Repository
	store  storage.FileStore
	lists  *cache.ListCache
	events events.Publisher
	config *Config
	logger Logger
	now    func() time.Time
}

// NewService creates a new video service instance. lists may be nil to
// disable list caching.
func NewService(videos Repository, store storage.FileStore, lists *cache.ListCache, publisher events.Publisher, config *Config, logger Logger) *Service {
	return &Service{
		videos: videos,
		store:  store,
		lists:  lists,
		events: publisher,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Submit validates an upload, writes both assets and records the video as PENDING
func (s *Service) Submit(ctx context.Context, ownerID int64, in SubmitInput) (*Video, error) {
	if in.Thumbnail == nil || in.Video == nil {
		return nil, apperrors.NewValidationErrorCode("", apperrors.CodeMissingAsset, "Both thumbnail and video files are required")
	}

	title := sanitize.Line(in.Title)
	description := sanitize.Text(in.Description)
	genre := sanitize.Line(in.Genre)
	if title == "" || genre == "" {
		return nil, apperrors.NewValidationErrorCode("", apperrors.CodeMissingFields, "Title and genre are required")
	}
	if n := utf8.RuneCountInString(title); n < s.config.MinTitleLength || n > s.config.MaxTitleLength {
		return nil, apperrors.NewValidationError("title", apperrors.ErrMsgTitleLength)
	}
	if utf8.RuneCountInString(description) > s.config.MaxDescLength {
		return nil, apperrors.NewValidationError("description", apperrors.ErrMsgDescLength)
	}
	if s.config.MaxGenreLength > 0 && utf8.RuneCountInString(genre) > s.config.MaxGenreLength {
		return nil, apperrors.NewValidationError("genre", fmt.Sprintf("Genre must not exceed %d characters", s.config.MaxGenreLength))
	}

	year, err := ParseReleaseYear(in.ReleaseDate, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.config.Thumbnail.Check("thumbnail", in.Thumbnail); err != nil {
		return nil, err
	}
	if err := s.config.Video.Check("video", in.Video); err != nil {
		return nil, err
	}

	batch := storage.NewBatch(s.store, s.logger)
	thumbnailRef, err := batch.Save(ctx, storage.NewKey("thumbnails", in.Thumbnail.Filename), in.Thumbnail.Reader, in.Thumbnail.Size, in.Thumbnail.ContentType)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to store thumbnail", err)
	}
	videoRef, err := batch.Save(ctx, storage.NewKey("videos", in.Video.Filename), in.Video.Reader, in.Video.Size, in.Video.ContentType)
	if err != nil {
		batch.Discard(ctx)
		return nil, apperrors.NewStorageError("failed to store video", err)
	}

	video := &Video{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Genre:       genre,
		Year:        year,
		Thumbnail:   thumbnailRef,
		VideoURL:    videoRef,
		Status:      StatusPending,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		batch.Discard(ctx)
		return nil, apperrors.NewStorageError("failed to create video", err)
	}

	s.logger.LogInfo("Video submitted for review", map[string]interface{}{
		"video_id": video.ID,
		"user_id":  ownerID,
	})
	events.Emit(ctx, s.events, s.logger, events.Event{
		Type:      events.VideoSubmitted,
		ActorID:   ownerID,
		SubjectID: video.ID,
		Data:      map[string]interface{}{"title": video.Title},
	})
	return video, nil
}

// Get loads a video with its owner
func (s *Service) Get(ctx context.Context, id int64) (*Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeVideoNotFound, "Video not found")
		}
		return nil, apperrors.NewStorageError("failed to load video", err)
	}
	return video, nil
}

// ListApproved returns approved videos, most recently approved first
func (s *Service) ListApproved(ctx context.Context) ([]Summary, error) {
	return s.cachedList(ctx, listApproved, func() ListFilter {
		return ListFilter{Status: StatusApproved, Order: OrderRecentlyApproved}
	})
}

// ListPremium returns approved videos created inside the premium window
func (s *Service) ListPremium(ctx context.Context) ([]Summary, error) {
	return s.cachedList(ctx, listPremium, func() ListFilter {
		return ListFilter{
			Status:       StatusApproved,
			CreatedSince: s.now().Add(-s.config.PremiumWindow),
			Order:        OrderNewest,
			Limit:        s.config.ListLimit,
		}
	})
}

// ListTrending returns approved videos older than the premium window, most viewed first
func (s *Service) ListTrending(ctx context.Context) ([]Summary, error) {
	return s.cachedList(ctx, listTrending, func() ListFilter {
		return ListFilter{
			Status:        StatusApproved,
			CreatedBefore: s.now().Add(-s.config.PremiumWindow),
			Order:         OrderMostViewed,
			Limit:         s.config.ListLimit,
		}
	})
}

// ListByStatus returns every video in status, newest first. It is not cached.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Video, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "Unknown video status")
	}
	videos, err := s.videos.List(ctx, ListFilter{Status: status, Order: OrderNewest})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list videos", err)
	}
	return videos, nil
}

// ListByOwner returns all videos of ownerID, newest first. Non-approved
// videos are included only when includeHidden is set.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64, includeHidden bool) ([]Video, error) {
	filter := ListFilter{OwnerID: ownerID, Order: OrderNewest}
	if !includeHidden {
		filter.Status = StatusApproved
	}
	videos, err := s.videos.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list videos", err)
	}
	return videos, nil
}

// CountByStatus counts videos in status
func (s *Service) CountByStatus(ctx context.Context, status Status) (int64, error) {
	count, err := s.videos.Count(ctx, ListFilter{Status: status})
	if err != nil {
		return 0, apperrors.NewStorageError("failed to count videos", err)
	}
	return count, nil
}

// CountByOwners returns the number of videos per owner id
func (s *Service) CountByOwners(ctx context.Context, ownerIDs []int64) (map[int64]int64, error) {
	counts, err := s.videos.CountByOwners(ctx, ownerIDs)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count videos", err)
	}
	return counts, nil
}

// UpdateSynopsis replaces the synopsis. Only the owner may change it.
func (s *Service) UpdateSynopsis(ctx context.Context, videoID, actorID int64, text string) (*Video, error) {
	video, err := s.Get(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.UserID != actorID {
		return nil, apperrors.NewForbidden("Only the owner can edit the synopsis")
	}

	synopsis := sanitize.Text(text)
	if utf8.RuneCountInString(synopsis) > s.config.MaxDescLength {
		return nil, apperrors.NewValidationError("synopsis", fmt.Sprintf("Synopsis must not exceed %d characters", s.config.MaxDescLength))
	}
	if err := s.videos.Update(ctx, videoID, map[string]interface{}{"synopsis": synopsis}); err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeVideoNotFound, "Video not found")
		}
		return nil, apperrors.NewStorageError("failed to update synopsis", err)
	}

	video.Synopsis = synopsis
	s.InvalidateLists(ctx)
	return video, nil
}

// InvalidateLists drops every cached public listing
func (s *Service) InvalidateLists(ctx context.Context) {
	if s.lists != nil {
		s.lists.Invalidate(ctx, listApproved, listPremium, listTrending)
	}
}

func (s *Service) cachedList(ctx context.Context, key string, filter func() ListFilter) ([]Summary, error) {
	if s.lists != nil {
		var cached []Summary
		if s.lists.Get(ctx, key, &cached) {
			return cached, nil
		}
	}

	videos, err := s.videos.List(ctx, filter())
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list videos", err)
	}
	summaries := Summarize(videos)
	if s.lists != nil && s.config.ListCacheTTL > 0 {
		s.lists.Set(ctx, key, summaries, s.config.ListCacheTTL)
	}
	return summaries, nil
}

// ParseReleaseYear extracts the year from an RFC 3339 timestamp, a
// YYYY-MM-DD date or a bare YYYY.
func ParseReleaseYear(value string, now time.Time) (int, error) {
	value = strings.TrimSpace(value)
	invalid := apperrors.NewValidationErrorCode("releaseDate", apperrors.CodeInvalidDate, "Invalid release date format")
	if value == "" {
		return 0, invalid
	}

	year := 0
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		year = t.Year()
	} else if t, err := time.Parse("2006-01-02", value); err == nil {
		year = t.Year()
	} else if len(value) == 4 {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, invalid
		}
		year = n
	} else {
		return 0, invalid
	}

	if year < minReleaseYear || year > now.Year()+1 {
		return 0, apperrors.NewValidationErrorCode("releaseDate", apperrors.CodeInvalidDate, "Release year is out of range")
	}
	return year, nil
}
