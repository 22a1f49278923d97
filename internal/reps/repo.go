package reps

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

// Repository persists sales reps.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rep *models.Rep) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rep, error)
	FindByEmail(ctx context.Context, email string) (*models.Rep, error)
	List(ctx context.Context) ([]models.Rep, error)
	ListWeeklySummaryOptIns(ctx context.Context) ([]models.Rep, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a reps repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, rep *models.Rep) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Rep, error) {
	var rep models.Rep
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *repositoryImpl) FindByEmail(ctx context.Context, email string) (*models.Rep, error) {
	var rep models.Rep
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&rep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Rep, error) {
	var rows []models.Rep
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ListWeeklySummaryOptIns(ctx context.Context) ([]models.Rep, error) {
	var rows []models.Rep
	err := r.db.WithContext(ctx).
		Where("notify_weekly_summary = ?", true).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Rep{}).
		Where("id = ?", id).
		Updates(updates).Error
}
