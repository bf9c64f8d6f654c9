package admin

import (
	"context"

	"gorm.io/gorm"
)

type gormAuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a gorm backed AuditRepository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &gormAuditRepository{db: db}
}

func (r *gormAuditRepository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormAuditRepository) List(ctx context.Context, offset, limit int) ([]AuditLog, error) {
	var entries []AuditLog
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormAuditRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AuditLog{}).Count(&count).Error
	return count, err
}
