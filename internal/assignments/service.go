package assignments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/internal/accounts"
	"github.com/promopace/promopace-backend/internal/activity"
	"github.com/promopace/promopace-backend/internal/dispatch"
	"github.com/promopace/promopace-backend/internal/promos"
	"github.com/promopace/promopace-backend/internal/transactions"
	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/types"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier dispatches the promo-assigned notification event.
type Notifier interface {
	PromoAssigned(ctx context.Context, event dispatch.PromoAssignedEvent) (int, error)
}

// Service defines assignment write operations.
type Service interface {
	AssignPromo(ctx context.Context, params AssignParams, actor types.Actor) (*models.PromoAssignment, error)
	EditAssignment(ctx context.Context, assignmentID uuid.UUID, params EditParams, actor types.Actor) (*models.PromoAssignment, error)
	CurrentForAccount(ctx context.Context, accountID uuid.UUID) (*models.PromoAssignment, error)
}

// AssignParams describe a brand-new assignment. Territories, when non-nil,
// is an account territory edit submitted together with the assignment and
// committed in the same transaction.
type AssignParams struct {
	AccountID    uuid.UUID
	PromoID      uuid.UUID
	TargetUnits  int
	PaymentTerms string
	InitialUnits int
	Territories  []string
}

// EditParams adjust an existing assignment in place.
type EditParams struct {
	PromoID      *uuid.UUID
	TargetUnits  *int
	PaymentTerms *string
}

type service struct {
	tx       TxRunner
	repo     Repository
	promos   promos.Repository
	accounts accounts.Repository
	txns     transactions.Repository
	recorder activity.Recorder
	notifier Notifier
	logg     *logger.Logger
}

// NewService wires assignment dependencies.
func NewService(
	tx TxRunner,
	repo Repository,
	promoRepo promos.Repository,
	accountRepo accounts.Repository,
	txnRepo transactions.Repository,
	recorder activity.Recorder,
	notifier Notifier,
	logg *logger.Logger,
) (Service, error) {
	switch {
	case tx == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	case repo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assignments repository required")
	case promoRepo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "promos repository required")
	case accountRepo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "accounts repository required")
	case txnRepo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transactions repository required")
	case recorder == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity recorder required")
	case notifier == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	case logg == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assignments logger required")
	}
	return &service{
		tx:       tx,
		repo:     repo,
		promos:   promoRepo,
		accounts: accountRepo,
		txns:     txnRepo,
		recorder: recorder,
		notifier: notifier,
		logg:     logg,
	}, nil
}

// AssignPromo enrolls an account in a promo. An account already holding an
// assignment is rejected with a conflict; changes go through EditAssignment.
func (s *service) AssignPromo(ctx context.Context, params AssignParams, actor types.Actor) (*models.PromoAssignment, error) {
	if params.TargetUnits <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target units must be greater than zero")
	}
	if params.InitialUnits < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial units cannot be negative")
	}

	account, err := s.accounts.FindByID(ctx, params.AccountID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find account")
	}
	if account == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}

	promo, err := s.activePromo(ctx, params.PromoID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.CurrentForAccount(ctx, params.AccountID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check current assignment")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "account already has an active promo assignment").
			WithDetails(map[string]any{"assignment_id": existing.ID})
	}

	now := time.Now().UTC()
	assignment := models.PromoAssignment{
		AccountID:    params.AccountID,
		PromoID:      promo.ID,
		TargetUnits:  params.TargetUnits,
		PaymentTerms: params.PaymentTerms,
		AssignedAt:   now,
	}
	if assignment.PaymentTerms == "" {
		assignment.PaymentTerms = promo.DefaultTerms
	}

	territories := account.Territories
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// Re-check under the transaction; a concurrent assign wins the race
		// and this one reports the conflict.
		current, err := repo.CurrentForAccount(ctx, params.AccountID)
		if err != nil {
			return err
		}
		if current != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "account already has an active promo assignment")
		}

		if err := repo.Create(ctx, &assignment); err != nil {
			return err
		}

		if params.Territories != nil {
			next := types.NormalizeTerritories(params.Territories)
			if !types.TerritoriesEqual(account.Territories, next) {
				if err := s.accounts.WithTx(tx).UpdateTerritories(ctx, account.ID, pq.StringArray(next)); err != nil {
					return err
				}
				territories = pq.StringArray(next)
			}
		}

		if params.InitialUnits > 0 {
			seed := models.Transaction{
				AccountID: params.AccountID,
				PromoID:   promo.ID,
				RepID:     actor.RepID,
				UnitsSold: params.InitialUnits,
				SoldOn:    now,
			}
			if err := s.txns.WithTx(tx).Create(ctx, &seed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign promo")
	}

	s.recorder.Record(ctx, enums.ActivityPromoAssigned, actor.RepID, &account.ID,
		fmt.Sprintf("assigned promo %q with target %d", promo.Name, params.TargetUnits))

	event := dispatch.PromoAssignedEvent{
		AccountID:    account.ID,
		AccountName:  account.Name,
		Territories:  territories,
		PromoID:      promo.ID,
		PromoName:    promo.Name,
		TargetUnits:  assignment.TargetUnits,
		PaymentTerms: assignment.PaymentTerms,
		AssignedBy:   actor.Name,
		AssignedAt:   assignment.AssignedAt,
	}
	if _, err := s.notifier.PromoAssigned(ctx, event); err != nil {
		s.logg.Warn(s.logg.WithAccountID(ctx, account.ID.String()),
			"promo-assigned notification failed: "+err.Error())
	}

	return &assignment, nil
}

// EditAssignment changes target, terms or promo on an existing assignment.
// Edits never seed transactions and never notify.
func (s *service) EditAssignment(ctx context.Context, assignmentID uuid.UUID, params EditParams, actor types.Actor) (*models.PromoAssignment, error) {
	assignment, err := s.repo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find assignment")
	}
	if assignment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
	}

	updates := map[string]any{}
	if params.TargetUnits != nil {
		if *params.TargetUnits <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "target units must be greater than zero")
		}
		updates["target_units"] = *params.TargetUnits
		assignment.TargetUnits = *params.TargetUnits
	}
	if params.PaymentTerms != nil {
		updates["payment_terms"] = *params.PaymentTerms
		assignment.PaymentTerms = *params.PaymentTerms
	}
	if params.PromoID != nil && *params.PromoID != assignment.PromoID {
		promo, err := s.activePromo(ctx, *params.PromoID)
		if err != nil {
			return nil, err
		}
		updates["promo_id"] = promo.ID
		assignment.PromoID = promo.ID
	}
	if len(updates) == 0 {
		return assignment, nil
	}

	if err := s.repo.Update(ctx, assignmentID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update assignment")
	}

	s.recorder.Record(ctx, enums.ActivityPromoChanged, actor.RepID, &assignment.AccountID,
		"assignment updated")
	return assignment, nil
}

func (s *service) CurrentForAccount(ctx context.Context, accountID uuid.UUID) (*models.PromoAssignment, error) {
	assignment, err := s.repo.CurrentForAccount(ctx, accountID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find current assignment")
	}
	return assignment, nil
}

func (s *service) activePromo(ctx context.Context, promoID uuid.UUID) (*models.Promo, error) {
	promo, err := s.promos.FindByID(ctx, promoID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find promo")
	}
	if promo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promo not found")
	}
	if !promo.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo is not active")
	}
	return promo, nil
}
