package promos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/promopace/promopace-backend/pkg/db/models"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Service defines promo catalog operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Promo, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Promo, error)
	List(ctx context.Context, activeOnly bool) ([]models.Promo, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// CreateParams describe a new promo.
type CreateParams struct {
	Name         string
	Code         string
	DiscountRate decimal.Decimal
	DefaultTerms string
	StartsOn     time.Time
	EndsOn       time.Time
}

type service struct {
	repo Repository
}

// NewService wires promo dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "promos repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Promo, error) {
	promo := models.Promo{
		Name:         strings.TrimSpace(params.Name),
		Code:         strings.ToUpper(strings.TrimSpace(params.Code)),
		DiscountRate: params.DiscountRate,
		DefaultTerms: strings.TrimSpace(params.DefaultTerms),
		StartsOn:     params.StartsOn,
		EndsOn:       params.EndsOn,
	}

	if promo.Name == "" || promo.Code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo name and code are required")
	}
	if promo.DiscountRate.IsNegative() || promo.DiscountRate.GreaterThan(hundred) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount rate must be between 0 and 100")
	}
	if !promo.EndsOn.After(promo.StartsOn) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo end must be after start")
	}

	existing, err := s.repo.FindByCode(ctx, promo.Code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check promo code")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a promo with this code already exists")
	}

	promo.IsActive = true
	if err := s.repo.Create(ctx, &promo); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create promo")
	}
	return &promo, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Promo, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find promo")
	}
	if promo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promo not found")
	}
	return promo, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]models.Promo, error) {
	rows, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list promos")
	}
	return rows, nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate promo")
	}
	return nil
}
