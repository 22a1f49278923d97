package assignments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

// Repository persists promo assignments. Reads follow the convention that
// the row with the most recent assigned_at is the authoritative one for an
// account, which keeps concurrent inserts harmless.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, assignment *models.PromoAssignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PromoAssignment, error)
	// CurrentForAccount returns the account's authoritative assignment, or
	// nil when the account has none.
	CurrentForAccount(ctx context.Context, accountID uuid.UUID) (*models.PromoAssignment, error)
	// ListCurrent returns the authoritative assignment per account.
	ListCurrent(ctx context.Context) ([]models.PromoAssignment, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an assignments repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, assignment *models.PromoAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.PromoAssignment, error) {
	var assignment models.PromoAssignment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repositoryImpl) CurrentForAccount(ctx context.Context, accountID uuid.UUID) (*models.PromoAssignment, error) {
	var assignment models.PromoAssignment
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("assigned_at DESC, created_at DESC").
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repositoryImpl) ListCurrent(ctx context.Context) ([]models.PromoAssignment, error) {
	var rows []models.PromoAssignment
	err := r.db.WithContext(ctx).
		Order("account_id ASC, assigned_at DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// First row per account wins under the ordering above.
	current := make([]models.PromoAssignment, 0, len(rows))
	var last *uuid.UUID
	for i := range rows {
		if last != nil && rows[i].AccountID == *last {
			continue
		}
		current = append(current, rows[i])
		last = &rows[i].AccountID
	}
	return current, nil
}

func (r *repositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PromoAssignment{}).
		Where("id = ?", id).
		Updates(updates).Error
}
