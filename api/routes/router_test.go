package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"

	"github.com/promopace/promopace-backend/api/controllers"
	"github.com/promopace/promopace-backend/internal/accounts"
	"github.com/promopace/promopace-backend/internal/activity"
	"github.com/promopace/promopace-backend/internal/assignments"
	"github.com/promopace/promopace-backend/internal/dispatch"
	"github.com/promopace/promopace-backend/internal/promos"
	"github.com/promopace/promopace-backend/internal/quarters"
	"github.com/promopace/promopace-backend/internal/reps"
	"github.com/promopace/promopace-backend/internal/rollover"
	"github.com/promopace/promopace-backend/internal/standings"
	"github.com/promopace/promopace-backend/internal/transactions"
	"github.com/promopace/promopace-backend/pkg/config"
	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

// Zero-method stubs: route wiring and auth gates are exercised without ever
// reaching a handler body.
type stubAccountsService struct{ accounts.Service }
type stubRepsService struct{ reps.Service }
type stubPromosService struct{ promos.Service }
type stubQuartersService struct{ quarters.Service }
type stubAssignmentsService struct{ assignments.Service }
type stubTransactionsService struct{ transactions.Service }
type stubActivityService struct{ activity.Service }
type stubStandingsService struct{ standings.Service }
type stubDispatchService struct{ dispatch.Service }

type stubRepsRepo struct{ reps.Repository }
type stubPromosRepo struct{ promos.Repository }
type stubAssignRepo struct{ assignments.Repository }
type stubAccountsRepo struct{ accounts.Repository }
type stubDispatchRepo struct{ dispatch.Repository }

type stubRolloverRepo struct{ rollover.Repository }

func (stubRolloverRepo) WithTx(tx *gorm.DB) rollover.Repository { return stubRolloverRepo{} }

type stubQuarterRepo struct{ quarters.Repository }

func (stubQuarterRepo) WithTx(tx *gorm.DB) quarters.Repository { return stubQuarterRepo{} }

func (stubQuarterRepo) Active(ctx context.Context) (*models.Quarter, error) { return nil, nil }

func newTestRouter(t *testing.T, env string) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test"})

	ctl, err := rollover.NewController(stubRolloverRepo{}, stubQuarterRepo{}, "ARCHIVE AND RESET", logg)
	if err != nil {
		t.Fatalf("rollover controller: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = env
	cfg.App.Port = "8080"
	cfg.JWT = config.JWTConfig{Secret: "secret", Issuer: "promopace-test", ExpirationMinutes: 60}

	return NewRouter(Deps{
		Config:       cfg,
		Logger:       logg,
		Pingers:      map[string]controllers.Pinger{"database": stubPinger{}},
		Accounts:     stubAccountsService{},
		Reps:         stubRepsService{},
		RepsRepo:     stubRepsRepo{},
		Promos:       stubPromosService{},
		PromosRepo:   stubPromosRepo{},
		Quarters:     stubQuartersService{},
		Assignments:  stubAssignmentsService{},
		AssignRepo:   stubAssignRepo{},
		AccountsRepo: stubAccountsRepo{},
		Transactions: stubTransactionsService{},
		Activity:     stubActivityService{},
		Standings:    stubStandingsService{},
		Dispatcher:   stubDispatchService{},
		DispatchRepo: stubDispatchRepo{},
		Rollover:     ctl,
	})
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, "dev")

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestPublicPing(t *testing.T) {
	router := newTestRouter(t, "dev")

	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, "dev")

	paths := []string{"/api/v1/ping", "/api/v1/dashboard", "/api/v1/accounts", "/api/v1/rollover"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, resp.Code)
		}
	}
}

func TestTokenMintOnlyOutsideProd(t *testing.T) {
	devRouter := newTestRouter(t, "dev")
	req := httptest.NewRequest(http.MethodPost, "/api/public/token", nil)
	resp := httptest.NewRecorder()
	devRouter.ServeHTTP(resp, req)
	if resp.Code == http.StatusNotFound || resp.Code == http.StatusMethodNotAllowed {
		t.Fatalf("expected token route in dev, got %d", resp.Code)
	}

	prodRouter := newTestRouter(t, config.AppEnvProd)
	req = httptest.NewRequest(http.MethodPost, "/api/public/token", nil)
	resp = httptest.NewRecorder()
	prodRouter.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound && resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected token route absent in prod, got %d", resp.Code)
	}
}
