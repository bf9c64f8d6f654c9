package interaction

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrDuplicate is returned when an insert violates a unique index
	ErrDuplicate = errors.New("interaction already exists")
	// ErrLikeNotFound is returned when the user has no like on the target
	ErrLikeNotFound = errors.New("like not found")
	// ErrRatingNotFound is returned when the user has not rated the video
	ErrRatingNotFound = errors.New("rating not found")
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm backed Repository. The connection must be
// opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateLike(ctx context.Context, like *Like) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *gormRepository) DeleteLike(ctx context.Context, userID int64, target LikeTarget) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
		Delete(&Like{}).Error
}

func (r *gormRepository) GetLike(ctx context.Context, userID int64, target LikeTarget) (*Like, error) {
	var like Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLikeNotFound
		}
		return nil, err
	}
	return &like, nil
}

func (r *gormRepository) CountLikes(ctx context.Context, target LikeTarget) (LikeCounts, error) {
	counts, err := r.CountLikesByTargets(ctx, target.Kind, []int64{target.ID})
	if err != nil {
		return LikeCounts{}, err
	}
	return counts[target.ID], nil
}

type likeCountRow struct {
	TargetID int64
	Type     LikeType
	Total    int64
}

func (r *gormRepository) CountLikesByTargets(ctx context.Context, kind TargetKind, ids []int64) (map[int64]LikeCounts, error) {
	counts := make(map[int64]LikeCounts, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []likeCountRow
	err := r.db.WithContext(ctx).Model(&Like{}).
		Select("target_id, type, COUNT(*) AS total").
		Where("target_kind = ? AND target_id IN ?", kind, ids).
		Group("target_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		c := counts[row.TargetID]
		if row.Type == TypeDislike {
			c.Dislikes += row.Total
		} else {
			c.Likes += row.Total
		}
		counts[row.TargetID] = c
	}
	return counts, nil
}

func (r *gormRepository) UserLikes(ctx context.Context, userID int64, kind TargetKind, ids []int64) (map[int64]LikeType, error) {
	out := make(map[int64]LikeType)
	if len(ids) == 0 {
		return out, nil
	}
	var likes []Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id IN ?", userID, kind, ids).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, like := range likes {
		out[like.TargetID] = like.Type
	}
	return out, nil
}

func (r *gormRepository) CreateSubscription(ctx context.Context, sub *Subscription) error {
	if err := r.db.WithContext(ctx).Omit("Subscriber", "Creator", "Video").Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *gormRepository) DeleteSubscription(ctx context.Context, subscriberID, creatorID int64) error {
	return r.db.WithContext(ctx).
		Where("subscriber_id = ? AND creator_id = ?", subscriberID, creatorID).
		Delete(&Subscription{}).Error
}

func (r *gormRepository) IsSubscribed(ctx context.Context, subscriberID, creatorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Subscription{}).
		Where("subscriber_id = ? AND creator_id = ?", subscriberID, creatorID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) CountSubscribers(ctx context.Context, creatorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Subscription{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}

func (r *gormRepository) UpsertRating(ctx context.Context, rating *Rating) error {
	rating.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Omit("User", "Video").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(rating).Error
}

func (r *gormRepository) GetRating(ctx context.Context, userID, videoID int64) (*Rating, error) {
	var rating Rating
	err := r.db.WithContext(ctx).Where("user_id = ? AND video_id = ?", userID, videoID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *gormRepository) RatingStats(ctx context.Context, videoID int64) (RatingStats, error) {
	var stats RatingStats
	err := r.db.WithContext(ctx).Model(&Rating{}).
		Select("COALESCE(AVG(value), 0) AS average, COUNT(*) AS count").
		Where("video_id = ?", videoID).
		Scan(&stats).Error
	return stats, err
}

func (r *gormRepository) CreateTrivia(ctx context.Context, trivia *Trivia) error {
	return r.db.WithContext(ctx).Omit("User", "Video").Create(trivia).Error
}

func (r *gormRepository) ListTrivia(ctx context.Context, videoID int64) ([]Trivia, error) {
	var trivia []Trivia
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&trivia).Error
	if err != nil {
		return nil, err
	}
	return trivia, nil
}
