// Package standings assembles the dashboard read model: each account's
// progress and pace plus the team rollup, evaluated against the active
// quarter.
package standings

import (
	"context"
	"strings"
	"time"

	"github.com/promopace/promopace-backend/internal/accounts"
	"github.com/promopace/promopace-backend/internal/assignments"
	"github.com/promopace/promopace-backend/internal/pace"
	"github.com/promopace/promopace-backend/internal/progress"
	"github.com/promopace/promopace-backend/internal/quarters"
	"github.com/promopace/promopace-backend/internal/transactions"
	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/types"
)

// Service produces dashboard standings. The row and overview types live in
// the progress package so leaf consumers can depend on them directly.
type Service interface {
	Overview(ctx context.Context, now time.Time) (*progress.Overview, error)
	ForTerritories(ctx context.Context, territories []string, now time.Time) (*progress.Overview, error)
}

type service struct {
	accounts    accounts.Repository
	assignments assignments.Repository
	txns        transactions.Repository
	quarters    quarters.Repository
	// fallbackElapsed is the elapsed-pct baseline used when no quarter is
	// active.
	fallbackElapsed int
}

// NewService wires standings dependencies. fallbackElapsed <= 0 falls back
// to the package default.
func NewService(
	accountRepo accounts.Repository,
	assignmentRepo assignments.Repository,
	txnRepo transactions.Repository,
	quarterRepo quarters.Repository,
	fallbackElapsed int,
) (Service, error) {
	switch {
	case accountRepo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "accounts repository required")
	case assignmentRepo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assignments repository required")
	case txnRepo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transactions repository required")
	case quarterRepo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "quarters repository required")
	}
	if fallbackElapsed <= 0 {
		fallbackElapsed = pace.FallbackElapsedPct
	}
	return &service{
		accounts:        accountRepo,
		assignments:     assignmentRepo,
		txns:            txnRepo,
		quarters:        quarterRepo,
		fallbackElapsed: fallbackElapsed,
	}, nil
}

func (s *service) Overview(ctx context.Context, now time.Time) (*progress.Overview, error) {
	return s.build(ctx, nil, now)
}

// ForTerritories keeps only accounts intersecting the given territory set.
// An empty set means no filter: reps without territories see everything.
func (s *service) ForTerritories(ctx context.Context, territories []string, now time.Time) (*progress.Overview, error) {
	filter := types.NormalizeTerritories(territories)
	if len(filter) == 0 {
		filter = nil
	}
	return s.build(ctx, filter, now)
}

func (s *service) build(ctx context.Context, territoryFilter []string, now time.Time) (*progress.Overview, error) {
	accountRows, err := s.accounts.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list accounts")
	}
	assignmentRows, err := s.assignments.ListCurrent(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assignments")
	}
	txnRows, err := s.txns.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	quarter, err := s.quarters.Active(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find active quarter")
	}

	elapsed := s.fallbackElapsed
	overview := &progress.Overview{}
	if quarter != nil {
		overview.HasActiveQuarter = true
		overview.QuarterName = quarter.Name
		elapsed = pace.ElapsedPct(*quarter, now)
		overview.DaysLeft = pace.DaysLeft(*quarter, now)
	}
	overview.ElapsedPct = elapsed

	assignmentByAccount := make(map[string]models.PromoAssignment, len(assignmentRows))
	for _, row := range assignmentRows {
		assignmentByAccount[row.AccountID.String()] = row
	}
	txnsByAccount := make(map[string][]models.Transaction)
	for _, row := range txnRows {
		key := row.AccountID.String()
		txnsByAccount[key] = append(txnsByAccount[key], row)
	}

	var inputs []progress.AccountInput
	for _, account := range accountRows {
		if territoryFilter != nil && !intersects(account.Territories, territoryFilter) {
			continue
		}

		standing := progress.Standing{Account: account, Pace: enums.PaceOnPace}
		if assignment, ok := assignmentByAccount[account.ID.String()]; ok {
			input := progress.AccountInput{
				Assignment:   assignment,
				Transactions: txnsByAccount[account.ID.String()],
			}
			inputs = append(inputs, input)

			standing.Assignment = &assignment
			standing.Progress = progress.ComputeAccount(input)
			standing.Pace = pace.Status(standing.Progress.ProgressPct, elapsed)
			standing.Behind = pace.IsBehind(standing.Progress.ProgressPct, elapsed)
		}
		overview.Standings = append(overview.Standings, standing)
	}

	overview.Team = progress.ComputeTeam(inputs)
	return overview, nil
}

func intersects(have []string, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
