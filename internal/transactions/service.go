package transactions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promopace/promopace-backend/internal/activity"
	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/types"
)

// AssignmentSource resolves the authoritative assignment for an account.
type AssignmentSource interface {
	CurrentForAccount(ctx context.Context, accountID uuid.UUID) (*models.PromoAssignment, error)
}

// Service defines unit logging and reads over the transactions table.
type Service interface {
	LogUnits(ctx context.Context, params LogUnitsParams, actor types.Actor) (*models.Transaction, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error)
}

// LogUnitsParams describe a unit sale to record.
type LogUnitsParams struct {
	AccountID uuid.UUID
	Units     int
	SoldOn    time.Time
	Note      string
}

type service struct {
	repo        Repository
	assignments AssignmentSource
	recorder    activity.Recorder
}

// NewService wires transaction dependencies.
func NewService(repo Repository, assignments AssignmentSource, recorder activity.Recorder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transactions repository required")
	}
	if assignments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assignment source required")
	}
	if recorder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity recorder required")
	}
	return &service{repo: repo, assignments: assignments, recorder: recorder}, nil
}

// LogUnits records an immutable sale against the account's current promo.
// Accounts without an assignment have nothing to log against.
func (s *service) LogUnits(ctx context.Context, params LogUnitsParams, actor types.Actor) (*models.Transaction, error) {
	if params.Units <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "units must be greater than zero")
	}

	assignment, err := s.assignments.CurrentForAccount(ctx, params.AccountID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find current assignment")
	}
	if assignment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account has no active promo assignment")
	}

	soldOn := params.SoldOn
	if soldOn.IsZero() {
		soldOn = time.Now().UTC()
	}

	transaction := models.Transaction{
		AccountID: params.AccountID,
		PromoID:   assignment.PromoID,
		RepID:     actor.RepID,
		UnitsSold: params.Units,
		SoldOn:    soldOn,
	}
	if note := strings.TrimSpace(params.Note); note != "" {
		transaction.Note = &note
	}
	if err := s.repo.Create(ctx, &transaction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
	}

	s.recorder.Record(ctx, enums.ActivityUnitsLogged, actor.RepID, &params.AccountID,
		fmt.Sprintf("logged %d units", params.Units))
	return &transaction, nil
}

func (s *service) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	rows, err := s.repo.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return rows, nil
}
