package persistence

import (
	"context"

	"github.com/erp/orderhub/internal/domain/activity"
	"github.com/erp/orderhub/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityRepository appends activity log entries
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Append inserts one entry
func (r *GormActivityRepository) Append(ctx context.Context, entry *activity.Log) error {
	var model models.ActivityLogModel
	if err := model.FromDomain(entry); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

var _ activity.Repository = (*GormActivityRepository)(nil)
