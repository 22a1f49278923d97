package dispatch

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

// Repository persists notification log rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.NotificationLog) error
	List(ctx context.Context, limit int) ([]models.NotificationLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a notification-log repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, entry *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.NotificationLog{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) List(ctx context.Context, limit int) ([]models.NotificationLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []models.NotificationLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
