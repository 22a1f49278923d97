package standings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/internal/accounts"
	"github.com/promopace/promopace-backend/internal/assignments"
	"github.com/promopace/promopace-backend/internal/dispatch"
	"github.com/promopace/promopace-backend/internal/progress"
	"github.com/promopace/promopace-backend/internal/quarters"
	"github.com/promopace/promopace-backend/internal/transactions"
	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
)

// The dispatcher consumes standings through its own narrow interface; this
// pins the signature so the two packages stay decoupled.
var _ dispatch.SummarySource = (Service)(nil)

type stubAccountList struct {
	accounts.Repository
	rows []models.Account
}

func (s *stubAccountList) WithTx(tx *gorm.DB) accounts.Repository { return s }

func (s *stubAccountList) List(ctx context.Context) ([]models.Account, error) {
	return s.rows, nil
}

type stubAssignmentList struct {
	assignments.Repository
	rows []models.PromoAssignment
}

func (s *stubAssignmentList) WithTx(tx *gorm.DB) assignments.Repository { return s }

func (s *stubAssignmentList) ListCurrent(ctx context.Context) ([]models.PromoAssignment, error) {
	return s.rows, nil
}

type stubTxnList struct {
	transactions.Repository
	rows []models.Transaction
}

func (s *stubTxnList) WithTx(tx *gorm.DB) transactions.Repository { return s }

func (s *stubTxnList) ListAll(ctx context.Context) ([]models.Transaction, error) {
	return s.rows, nil
}

type stubQuarterActive struct {
	quarters.Repository
	active *models.Quarter
}

func (s *stubQuarterActive) WithTx(tx *gorm.DB) quarters.Repository { return s }

func (s *stubQuarterActive) Active(ctx context.Context) (*models.Quarter, error) {
	return s.active, nil
}

func TestOverviewComputesProgressAndPace(t *testing.T) {
	account := models.Account{ID: uuid.New(), Name: "Harbor Liquors", Territories: pq.StringArray{"North"}}
	bare := models.Account{ID: uuid.New(), Name: "No Promo Mart"}
	assignment := models.PromoAssignment{ID: uuid.New(), AccountID: account.ID, PromoID: uuid.New(), TargetUnits: 100}
	quarter := &models.Quarter{
		ID:       uuid.New(),
		Name:     "Q3 2026",
		StartsOn: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndsOn:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	}

	svc, err := NewService(
		&stubAccountList{rows: []models.Account{account, bare}},
		&stubAssignmentList{rows: []models.PromoAssignment{assignment}},
		&stubTxnList{rows: []models.Transaction{
			{AccountID: account.ID, PromoID: assignment.PromoID, UnitsSold: 40},
			{AccountID: account.ID, PromoID: assignment.PromoID, UnitsSold: 20},
		}},
		&stubQuarterActive{active: quarter},
		0,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	// Halfway through the quarter.
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	overview, err := svc.Overview(context.Background(), now)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if !overview.HasActiveQuarter || overview.QuarterName != "Q3 2026" {
		t.Fatalf("expected active quarter, got %+v", overview)
	}
	if len(overview.Standings) != 2 {
		t.Fatalf("expected both accounts, got %d", len(overview.Standings))
	}

	var tracked, untracked *progress.Standing
	for i := range overview.Standings {
		switch overview.Standings[i].Account.ID {
		case account.ID:
			tracked = &overview.Standings[i]
		case bare.ID:
			untracked = &overview.Standings[i]
		}
	}
	if tracked == nil || untracked == nil {
		t.Fatal("missing standings rows")
	}
	if tracked.Progress.UnitsSold != 60 || tracked.Progress.ProgressPct != 60 {
		t.Fatalf("unexpected progress: %+v", tracked.Progress)
	}
	if tracked.Pace != enums.PaceAhead {
		t.Fatalf("expected AHEAD at 60%% progress vs ~50%% elapsed, got %s", tracked.Pace)
	}
	if untracked.Assignment != nil || untracked.Progress.UnitsSold != 0 {
		t.Fatalf("expected zeroed standing for unassigned account, got %+v", untracked)
	}
	if overview.Team.TotalUnits != 60 || overview.Team.TotalTarget != 100 {
		t.Fatalf("unexpected team rollup: %+v", overview.Team)
	}
}

func TestForTerritoriesFiltersAccounts(t *testing.T) {
	north := models.Account{ID: uuid.New(), Name: "North Shop", Territories: pq.StringArray{"North"}}
	south := models.Account{ID: uuid.New(), Name: "South Shop", Territories: pq.StringArray{"South"}}

	svc, err := NewService(
		&stubAccountList{rows: []models.Account{north, south}},
		&stubAssignmentList{},
		&stubTxnList{},
		&stubQuarterActive{},
		0,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	overview, err := svc.ForTerritories(context.Background(), []string{"north"}, time.Now())
	if err != nil {
		t.Fatalf("for territories: %v", err)
	}
	if len(overview.Standings) != 1 || overview.Standings[0].Account.ID != north.ID {
		t.Fatalf("expected only the north account, got %+v", overview.Standings)
	}
}

func TestForTerritoriesEmptyFilterSeesEverything(t *testing.T) {
	north := models.Account{ID: uuid.New(), Territories: pq.StringArray{"North"}}
	south := models.Account{ID: uuid.New(), Territories: pq.StringArray{"South"}}

	svc, _ := NewService(
		&stubAccountList{rows: []models.Account{north, south}},
		&stubAssignmentList{},
		&stubTxnList{},
		&stubQuarterActive{},
		0,
	)

	overview, err := svc.ForTerritories(context.Background(), nil, time.Now())
	if err != nil {
		t.Fatalf("for territories: %v", err)
	}
	if len(overview.Standings) != 2 {
		t.Fatalf("expected unfiltered view, got %d rows", len(overview.Standings))
	}
}

func TestOverviewFallbackElapsedWithoutQuarter(t *testing.T) {
	svc, _ := NewService(
		&stubAccountList{},
		&stubAssignmentList{},
		&stubTxnList{},
		&stubQuarterActive{},
		35,
	)

	overview, err := svc.Overview(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.HasActiveQuarter {
		t.Fatal("expected no active quarter")
	}
	if overview.ElapsedPct != 35 {
		t.Fatalf("expected fallback elapsed 35, got %d", overview.ElapsedPct)
	}
}
