package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

// Repository persists accounts and their append-only notes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	UpdateTerritories(ctx context.Context, id uuid.UUID, territories pq.StringArray) error
	AppendLegacyNote(ctx context.Context, id uuid.UUID, notes string) error
	CreateNote(ctx context.Context, note *models.AccountNote) error
	ListNotes(ctx context.Context, accountID uuid.UUID) ([]models.AccountNote, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an accounts repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Account, error) {
	var rows []models.Account
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repositoryImpl) UpdateTerritories(ctx context.Context, id uuid.UUID, territories pq.StringArray) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("territories", territories).Error
}

func (r *repositoryImpl) AppendLegacyNote(ctx context.Context, id uuid.UUID, notes string) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("notes", notes).Error
}

func (r *repositoryImpl) CreateNote(ctx context.Context, note *models.AccountNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *repositoryImpl) ListNotes(ctx context.Context, accountID uuid.UUID) ([]models.AccountNote, error) {
	var rows []models.AccountNote
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
