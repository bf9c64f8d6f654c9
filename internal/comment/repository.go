package comment

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrCommentNotFound is returned when no comment matches the lookup
	ErrCommentNotFound = errors.New("comment not found")
	// ErrReplyNotFound is returned when no reply matches the lookup
	ErrReplyNotFound = errors.New("reply not found")
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm backed Repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateComment(ctx context.Context, comment *Comment) error {
	return r.db.WithContext(ctx).Omit("Replies", "User", "Video").Create(comment).Error
}

func (r *gormRepository) CreateReply(ctx context.Context, reply *Reply) error {
	return r.db.WithContext(ctx).Omit("User", "Video", "ParentReply").Create(reply).Error
}

func (r *gormRepository) GetComment(ctx context.Context, id int64) (*Comment, error) {
	var comment Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *gormRepository) GetReply(ctx context.Context, id int64) (*Reply, error) {
	var reply Reply
	if err := r.db.WithContext(ctx).First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplyNotFound
		}
		return nil, err
	}
	return &reply, nil
}

func (r *gormRepository) ListComments(ctx context.Context, videoID int64, offset, limit int) ([]Comment, error) {
	var comments []Comment
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *gormRepository) CountComments(ctx context.Context, videoID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Comment{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

func (r *gormRepository) ListReplies(ctx context.Context, commentIDs []int64) ([]Reply, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var replies []Reply
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("comment_id IN ?", commentIDs).
		Order("created_at ASC").
		Order("id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}
