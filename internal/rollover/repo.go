package rollover

import (
	"context"

	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

// Repository is the bulk archive/reset surface used only by the rollover.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CountAssignments(ctx context.Context) (int64, error)
	CountTransactions(ctx context.Context) (int64, error)
	CountAccounts(ctx context.Context) (int64, error)
	ListAssignments(ctx context.Context) ([]models.PromoAssignment, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	ArchiveAssignments(ctx context.Context, rows []models.ArchivedAssignment) error
	ArchiveTransactions(ctx context.Context, rows []models.ArchivedTransaction) error
	DeleteAllTransactions(ctx context.Context) error
	DeleteAllAssignments(ctx context.Context) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a rollover repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) CountAssignments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PromoAssignment{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) ListAssignments(ctx context.Context) ([]models.PromoAssignment, error) {
	var rows []models.PromoAssignment
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ArchiveAssignments(ctx context.Context, rows []models.ArchivedAssignment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 200).Error
}

func (r *repositoryImpl) ArchiveTransactions(ctx context.Context, rows []models.ArchivedTransaction) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 200).Error
}

func (r *repositoryImpl) DeleteAllTransactions(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Transaction{}).Error
}

func (r *repositoryImpl) DeleteAllAssignments(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.PromoAssignment{}).Error
}
