package video

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrVideoNotFound is returned when no video matches the lookup
	ErrVideoNotFound = errors.New("video not found")
	// ErrStatusChanged is returned by UpdateStatus when the row left the expected status
	ErrStatusChanged = errors.New("video status changed concurrently")
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm backed Repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, video *Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id int64) (*Video, error) {
	var video Video
	if err := r.db.WithContext(ctx).Preload("Owner").First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *gormRepository) List(ctx context.Context, filter ListFilter) ([]Video, error) {
	var videos []Video
	query := r.filtered(ctx, filter).Preload("Owner")

	switch filter.Order {
	case OrderRecentlyApproved:
		query = query.Order("approved_at DESC NULLS LAST")
	case OrderMostViewed:
		query = query.Order("views DESC")
	default:
		query = query.Order("created_at DESC")
	}
	query = query.Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *gormRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	return count, err
}

func (r *gormRepository) CountByOwners(ctx context.Context, ownerIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		UserID int64
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Video{}).
		Select("user_id, COUNT(*) AS count").
		Where("user_id IN ?", ownerIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}

func (r *gormRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Video{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id int64, from Status, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Video{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// AddViews applies accumulated increments in one transaction. Rows that no
// longer exist are skipped.
func (r *gormRepository) AddViews(ctx context.Context, counts map[int64]int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, n := range counts {
			err := tx.Model(&Video{}).
				Where("id = ?", id).
				UpdateColumn("views", gorm.Expr("views + ?", n)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormRepository) filtered(ctx context.Context, filter ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&Video{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OwnerID != 0 {
		query = query.Where("user_id = ?", filter.OwnerID)
	}
	if !filter.CreatedSince.IsZero() {
		query = query.Where("created_at >= ?", filter.CreatedSince)
	}
	if !filter.CreatedBefore.IsZero() {
		query = query.Where("created_at < ?", filter.CreatedBefore)
	}
	return query
}
