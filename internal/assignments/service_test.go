package assignments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/internal/accounts"
	"github.com/promopace/promopace-backend/internal/dispatch"
	"github.com/promopace/promopace-backend/internal/promos"
	"github.com/promopace/promopace-backend/internal/transactions"
	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/types"
)

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubAssignRepo struct {
	Repository
	current *models.PromoAssignment
	byID    *models.PromoAssignment
	created *models.PromoAssignment
	updates map[string]any
	err     error
}

func (s *stubAssignRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubAssignRepo) Create(ctx context.Context, assignment *models.PromoAssignment) error {
	if s.err != nil {
		return s.err
	}
	assignment.ID = uuid.New()
	s.created = assignment
	return nil
}

func (s *stubAssignRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.PromoAssignment, error) {
	return s.byID, s.err
}

func (s *stubAssignRepo) CurrentForAccount(ctx context.Context, accountID uuid.UUID) (*models.PromoAssignment, error) {
	return s.current, s.err
}

func (s *stubAssignRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return s.err
}

type stubPromoSource struct {
	promos.Repository
	promo *models.Promo
	err   error
}

func (s *stubPromoSource) WithTx(tx *gorm.DB) promos.Repository { return s }

func (s *stubPromoSource) FindByID(ctx context.Context, id uuid.UUID) (*models.Promo, error) {
	return s.promo, s.err
}

type stubAccountSource struct {
	accounts.Repository
	account     *models.Account
	territories pq.StringArray
	err         error
}

func (s *stubAccountSource) WithTx(tx *gorm.DB) accounts.Repository { return s }

func (s *stubAccountSource) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return s.account, s.err
}

func (s *stubAccountSource) UpdateTerritories(ctx context.Context, id uuid.UUID, territories pq.StringArray) error {
	s.territories = territories
	return s.err
}

type stubTxnSink struct {
	transactions.Repository
	created *models.Transaction
	err     error
}

func (s *stubTxnSink) WithTx(tx *gorm.DB) transactions.Repository { return s }

func (s *stubTxnSink) Create(ctx context.Context, transaction *models.Transaction) error {
	if s.err != nil {
		return s.err
	}
	s.created = transaction
	return nil
}

type stubRecorder struct {
	actions []enums.ActivityAction
}

func (s *stubRecorder) Record(ctx context.Context, action enums.ActivityAction, repID uuid.UUID, accountID *uuid.UUID, detail string) {
	s.actions = append(s.actions, action)
}

type stubNotifier struct {
	events []dispatch.PromoAssignedEvent
	err    error
}

func (s *stubNotifier) PromoAssigned(ctx context.Context, event dispatch.PromoAssignedEvent) (int, error) {
	s.events = append(s.events, event)
	if s.err != nil {
		return 0, s.err
	}
	return 1, nil
}

type fixture struct {
	repo     *stubAssignRepo
	promos   *stubPromoSource
	accounts *stubAccountSource
	txns     *stubTxnSink
	recorder *stubRecorder
	notifier *stubNotifier
	svc      Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo: &stubAssignRepo{},
		promos: &stubPromoSource{promo: &models.Promo{
			ID:           uuid.New(),
			Name:         "Summer Push",
			DefaultTerms: "NET30",
			IsActive:     true,
		}},
		accounts: &stubAccountSource{account: &models.Account{
			ID:          uuid.New(),
			Name:        "Harbor Liquors",
			Territories: pq.StringArray{"North"},
		}},
		txns:     &stubTxnSink{},
		recorder: &stubRecorder{},
		notifier: &stubNotifier{},
	}
	svc, err := NewService(passthroughTx{}, f.repo, f.promos, f.accounts, f.txns,
		f.recorder, f.notifier, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	f.svc = svc
	return f
}

func (f *fixture) assignParams() AssignParams {
	return AssignParams{
		AccountID:   f.accounts.account.ID,
		PromoID:     f.promos.promo.ID,
		TargetUnits: 100,
	}
}

func TestAssignPromoValidatesTarget(t *testing.T) {
	f := newFixture(t)
	params := f.assignParams()
	params.TargetUnits = 0
	_, err := f.svc.AssignPromo(context.Background(), params, types.Actor{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssignPromoRejectsInactivePromo(t *testing.T) {
	f := newFixture(t)
	f.promos.promo.IsActive = false
	_, err := f.svc.AssignPromo(context.Background(), f.assignParams(), types.Actor{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssignPromoConflictOnExistingAssignment(t *testing.T) {
	f := newFixture(t)
	f.repo.current = &models.PromoAssignment{ID: uuid.New()}

	_, err := f.svc.AssignPromo(context.Background(), f.assignParams(), types.Actor{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["assignment_id"] != f.repo.current.ID {
		t.Fatalf("expected existing assignment id in details, got %v", typed.Details())
	}
}

func TestAssignPromoDefaultsPaymentTerms(t *testing.T) {
	f := newFixture(t)
	assignment, err := f.svc.AssignPromo(context.Background(), f.assignParams(), types.Actor{RepID: uuid.New()})
	if err != nil {
		t.Fatalf("assign promo: %v", err)
	}
	if assignment.PaymentTerms != "NET30" {
		t.Fatalf("expected promo default terms, got %q", assignment.PaymentTerms)
	}
	if assignment.AssignedAt.IsZero() {
		t.Fatal("expected assigned_at to be set")
	}
}

func TestAssignPromoSeedsInitialUnits(t *testing.T) {
	f := newFixture(t)
	actor := types.Actor{RepID: uuid.New()}

	params := f.assignParams()
	params.InitialUnits = 40
	if _, err := f.svc.AssignPromo(context.Background(), params, actor); err != nil {
		t.Fatalf("assign promo: %v", err)
	}
	if f.txns.created == nil {
		t.Fatal("expected seed transaction")
	}
	if f.txns.created.UnitsSold != 40 || f.txns.created.RepID != actor.RepID {
		t.Fatalf("unexpected seed transaction: %+v", f.txns.created)
	}
}

func TestAssignPromoSkipsSeedWithoutInitialUnits(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.AssignPromo(context.Background(), f.assignParams(), types.Actor{}); err != nil {
		t.Fatalf("assign promo: %v", err)
	}
	if f.txns.created != nil {
		t.Fatalf("expected no seed transaction, got %+v", f.txns.created)
	}
}

func TestAssignPromoFoldsInTerritoryEdit(t *testing.T) {
	f := newFixture(t)
	params := f.assignParams()
	params.Territories = []string{"North", "South"}

	if _, err := f.svc.AssignPromo(context.Background(), params, types.Actor{}); err != nil {
		t.Fatalf("assign promo: %v", err)
	}
	if len(f.accounts.territories) != 2 {
		t.Fatalf("expected territory update, got %v", f.accounts.territories)
	}
	if len(f.notifier.events) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.notifier.events))
	}
	if got := f.notifier.events[0].Territories; len(got) != 2 {
		t.Fatalf("expected event to carry the updated territories, got %v", got)
	}
}

func TestAssignPromoNotifierFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")

	assignment, err := f.svc.AssignPromo(context.Background(), f.assignParams(), types.Actor{})
	if err != nil {
		t.Fatalf("assignment must survive notifier failure, got %v", err)
	}
	if assignment == nil || f.repo.created == nil {
		t.Fatal("expected assignment to be persisted")
	}
	if len(f.recorder.actions) != 1 || f.recorder.actions[0] != enums.ActivityPromoAssigned {
		t.Fatalf("expected promo_assigned activity, got %v", f.recorder.actions)
	}
}

func TestEditAssignmentValidatesTarget(t *testing.T) {
	f := newFixture(t)
	f.repo.byID = &models.PromoAssignment{ID: uuid.New(), AccountID: uuid.New(), TargetUnits: 50}

	zero := 0
	_, err := f.svc.EditAssignment(context.Background(), f.repo.byID.ID, EditParams{TargetUnits: &zero}, types.Actor{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEditAssignmentUpdatesFields(t *testing.T) {
	f := newFixture(t)
	f.repo.byID = &models.PromoAssignment{ID: uuid.New(), AccountID: uuid.New(), TargetUnits: 50}

	target := 80
	terms := "NET60"
	updated, err := f.svc.EditAssignment(context.Background(), f.repo.byID.ID,
		EditParams{TargetUnits: &target, PaymentTerms: &terms}, types.Actor{RepID: uuid.New()})
	if err != nil {
		t.Fatalf("edit assignment: %v", err)
	}
	if updated.TargetUnits != 80 || updated.PaymentTerms != "NET60" {
		t.Fatalf("unexpected assignment: %+v", updated)
	}
	if f.repo.updates["target_units"] != 80 || f.repo.updates["payment_terms"] != "NET60" {
		t.Fatalf("unexpected updates: %v", f.repo.updates)
	}
	if len(f.recorder.actions) != 1 || f.recorder.actions[0] != enums.ActivityPromoChanged {
		t.Fatalf("expected promo_changed activity, got %v", f.recorder.actions)
	}
	if len(f.notifier.events) != 0 {
		t.Fatal("edits must not notify")
	}
}

func TestEditAssignmentNoOpWithoutChanges(t *testing.T) {
	f := newFixture(t)
	f.repo.byID = &models.PromoAssignment{ID: uuid.New(), TargetUnits: 50}

	if _, err := f.svc.EditAssignment(context.Background(), f.repo.byID.ID, EditParams{}, types.Actor{}); err != nil {
		t.Fatalf("edit assignment: %v", err)
	}
	if f.repo.updates != nil {
		t.Fatalf("expected no update call, got %v", f.repo.updates)
	}
	if len(f.recorder.actions) != 0 {
		t.Fatalf("expected no activity, got %v", f.recorder.actions)
	}
}

func TestEditAssignmentUnknownAssignment(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.EditAssignment(context.Background(), uuid.New(), EditParams{}, types.Actor{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
