package user

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/soldout/backend/internal/auth"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/interaction"
	"github.com/soldout/backend/internal/sanitize"
	"github.com/soldout/backend/internal/storage"
	"github.com/soldout/backend/internal/video"
)

const (
	maxNameLength = 100
	maxBioLength  = 500
)

// Service manages user profiles
type Service struct {
	users   auth.UserRepository
	videos  VideoLister
	stats   StatsReader
	store   storage.FileStore
	picture storage.FileRules
	logger  Logger
}

// NewService creates a new profile service
func NewService(users auth.UserRepository, videos VideoLister, stats StatsReader, store storage.FileStore, picture storage.FileRules, logger Logger) *Service {
	return &Service{
		users:   users,
		videos:  videos,
		stats:   stats,
		store:   store,
		picture: picture,
		logger:  logger,
	}
}

// Profile returns the user with their videos, newest first, and channel
// stats. Videos awaiting or failing moderation are listed only for the user
// themselves and for admins.
func (s *Service) Profile(ctx context.Context, userID int64, viewer *auth.User) (*Profile, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	includeHidden := viewer != nil && (viewer.ID == userID || viewer.Role.IsAdmin())
	videos, err := s.videos.ListByOwner(ctx, userID, includeHidden)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: u, Videos: make([]video.Video, 0, len(videos))}
	ids := make([]int64, 0, len(videos))
	for _, v := range videos {
		v.Owner = nil
		profile.Videos = append(profile.Videos, v)
		profile.Stats.Views += v.Views
		ids = append(ids, v.ID)
	}
	profile.Stats.Videos = int64(len(videos))

	likes, err := s.stats.CountLikesByTargets(ctx, interaction.TargetVideo, ids)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count likes", err)
	}
	for _, c := range likes {
		profile.Stats.Likes += c.Likes
	}

	profile.Stats.Subscribers, err = s.stats.CountSubscribers(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count subscribers", err)
	}
	return profile, nil
}

// Update changes the user's own name, email or bio
func (s *Service) Update(ctx context.Context, actorID, userID int64, req UpdateRequest) (*auth.User, error) {
	if actorID != userID {
		return nil, apperrors.NewForbidden("You can only update your own profile")
	}
	if _, err := s.load(ctx, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		name, err := cleanName("firstName", *req.FirstName)
		if err != nil {
			return nil, err
		}
		fields["first_name"] = name
	}
	if req.LastName != nil {
		name, err := cleanName("lastName", *req.LastName)
		if err != nil {
			return nil, err
		}
		fields["last_name"] = name
	}
	if req.Email != nil {
		email, err := auth.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if req.Bio != nil {
		bio := sanitize.Text(*req.Bio)
		if utf8.RuneCountInString(bio) > maxBioLength {
			return nil, apperrors.NewValidationError("bio", fmt.Sprintf("Bio must not exceed %d characters", maxBioLength))
		}
		fields["bio"] = bio
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationErrorCode("", apperrors.CodeMissingFields, "Nothing to update")
	}

	if err := s.users.Update(ctx, userID, fields); err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			return nil, apperrors.NewConflictError(apperrors.CodeEmailTaken, "Email already registered")
		case errors.Is(err, auth.ErrUserNotFound):
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "User not found")
		}
		return nil, apperrors.NewStorageError("failed to update user", err)
	}

	s.logger.LogInfo("Profile updated", map[string]interface{}{"user_id": userID})
	return s.load(ctx, userID)
}

// UpdatePicture replaces the user's profile picture. The new asset is
// removed if the row update fails; the previous asset is removed after a
// successful swap.
func (s *Service) UpdatePicture(ctx context.Context, actorID, userID int64, upload *storage.Upload) (*auth.User, error) {
	if actorID != userID {
		return nil, apperrors.NewForbidden("You can only update your own profile")
	}
	if err := s.picture.Check("profilePicture", upload); err != nil {
		return nil, err
	}
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	batch := storage.NewBatch(s.store, s.logger)
	ref, err := batch.Save(ctx, storage.NewKey("profiles", upload.Filename), upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to store profile picture", err)
	}
	if err := s.users.Update(ctx, userID, map[string]interface{}{"profile_picture": ref}); err != nil {
		batch.Discard(ctx)
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "User not found")
		}
		return nil, apperrors.NewStorageError("failed to update profile picture", err)
	}

	if previous := current.ProfilePicture; previous != "" {
		if err := s.store.Delete(ctx, previous); err != nil {
			s.logger.LogError(err, "Failed to delete previous profile picture "+previous)
		}
	}

	s.logger.LogInfo("Profile picture updated", map[string]interface{}{"user_id": userID})
	current.ProfilePicture = ref
	return current, nil
}

func (s *Service) load(ctx context.Context, id int64) (*auth.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "User not found")
		}
		return nil, apperrors.NewStorageError("failed to load user", err)
	}
	return u, nil
}

func cleanName(field, name string) (string, error) {
	name = sanitize.Line(name)
	if name == "" {
		return "", apperrors.NewValidationErrorCode(field, apperrors.CodeMissingFields, "Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperrors.NewValidationError(field, fmt.Sprintf("Name must not exceed %d characters", maxNameLength))
	}
	return name, nil
}
