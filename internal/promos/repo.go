package promos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

// Repository persists promos.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, promo *models.Promo) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Promo, error)
	FindByCode(ctx context.Context, code string) (*models.Promo, error)
	List(ctx context.Context, activeOnly bool) ([]models.Promo, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a promos repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, promo *models.Promo) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Promo, error) {
	var promo models.Promo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&promo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *repositoryImpl) FindByCode(ctx context.Context, code string) (*models.Promo, error) {
	var promo models.Promo
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&promo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *repositoryImpl) List(ctx context.Context, activeOnly bool) ([]models.Promo, error) {
	query := r.db.WithContext(ctx).Order("starts_on DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.Promo
	err := query.Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Promo{}).
		Where("id = ?", id).
		Updates(updates).Error
}
