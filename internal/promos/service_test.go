package promos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/pkg/db/models"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
)

type stubPromoRepo struct {
	Repository
	byCode  *models.Promo
	byID    *models.Promo
	created *models.Promo
	updates map[string]any
	err     error
}

func (s *stubPromoRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubPromoRepo) Create(ctx context.Context, promo *models.Promo) error {
	if s.err != nil {
		return s.err
	}
	s.created = promo
	return nil
}

func (s *stubPromoRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Promo, error) {
	return s.byID, s.err
}

func (s *stubPromoRepo) FindByCode(ctx context.Context, code string) (*models.Promo, error) {
	return s.byCode, s.err
}

func (s *stubPromoRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return s.err
}

func validParams() CreateParams {
	return CreateParams{
		Name:         "Summer Push",
		Code:         "summer26",
		DiscountRate: decimal.NewFromFloat(12.5),
		StartsOn:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndsOn:       time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateUppercasesCode(t *testing.T) {
	repo := &stubPromoRepo{}
	svc, _ := NewService(repo)

	promo, err := svc.Create(context.Background(), validParams())
	if err != nil {
		t.Fatalf("create promo: %v", err)
	}
	if promo.Code != "SUMMER26" {
		t.Fatalf("expected uppercase code, got %q", promo.Code)
	}
	if !promo.IsActive {
		t.Fatal("new promo must start active")
	}
}

func TestCreateRejectsRateOutOfRange(t *testing.T) {
	svc, _ := NewService(&stubPromoRepo{})

	params := validParams()
	params.DiscountRate = decimal.NewFromInt(101)
	_, err := svc.Create(context.Background(), params)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	params.DiscountRate = decimal.NewFromInt(-1)
	_, err = svc.Create(context.Background(), params)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := &stubPromoRepo{byCode: &models.Promo{ID: uuid.New(), Code: "SUMMER26"}}
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), validParams())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	svc, _ := NewService(&stubPromoRepo{})

	params := validParams()
	params.EndsOn = params.StartsOn
	_, err := svc.Create(context.Background(), params)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeactivate(t *testing.T) {
	repo := &stubPromoRepo{byID: &models.Promo{ID: uuid.New(), IsActive: true}}
	svc, _ := NewService(repo)

	if err := svc.Deactivate(context.Background(), repo.byID.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if repo.updates["is_active"] != false {
		t.Fatalf("expected is_active update, got %v", repo.updates)
	}
}

func TestDeactivateUnknownPromo(t *testing.T) {
	svc, _ := NewService(&stubPromoRepo{})
	err := svc.Deactivate(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
