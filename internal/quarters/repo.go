package quarters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

// Repository exposes persistence helpers for quarters.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, quarter *models.Quarter) error
	List(ctx context.Context) ([]models.Quarter, error)
	// Active returns the active quarter, or nil when none is active.
	Active(ctx context.Context) (*models.Quarter, error)
	// NextAfter returns the earliest quarter starting strictly after the
	// given date, or nil when none exists.
	NextAfter(ctx context.Context, after time.Time) (*models.Quarter, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a quarters repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, quarter *models.Quarter) error {
	return r.db.WithContext(ctx).Create(quarter).Error
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Quarter, error) {
	var rows []models.Quarter
	err := r.db.WithContext(ctx).Order("starts_on ASC").Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) Active(ctx context.Context) (*models.Quarter, error) {
	var quarter models.Quarter
	err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&quarter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quarter, nil
}

func (r *repositoryImpl) NextAfter(ctx context.Context, after time.Time) (*models.Quarter, error) {
	var quarter models.Quarter
	err := r.db.WithContext(ctx).
		Where("starts_on > ?", after).
		Order("starts_on ASC").
		First(&quarter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quarter, nil
}

func (r *repositoryImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Quarter{}).
		Where("id = ?", id).
		UpdateColumn("is_active", active).Error
}
