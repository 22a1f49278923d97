package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promopace/promopace-backend/api/controllers"
	"github.com/promopace/promopace-backend/api/middleware"
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
	"github.com/promopace/promopace-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Pingers map[string]controllers.Pinger

	Accounts     accounts.Service
	Reps         reps.Service
	RepsRepo     reps.Repository
	Promos       promos.Service
	PromosRepo   promos.Repository
	Quarters     quarters.Service
	Assignments  assignments.Service
	AssignRepo   assignments.Repository
	AccountsRepo accounts.Repository
	Transactions transactions.Service
	Activity     activity.Service
	Standings    standings.Service
	Dispatcher   dispatch.Service
	DispatchRepo dispatch.Repository
	Rollover     *rollover.Controller
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Pingers))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		if !cfg.App.IsProd() {
			r.Post("/token", controllers.RepMintToken(d.RepsRepo, cfg.JWT, logg))
		}
	})

	// Externally triggered hooks keep the legacy {success,count} shape.
	r.Route("/api/v1/hooks", func(r chi.Router) {
		r.Post("/assignment-notify", controllers.HookAssignmentNotify(d.AccountsRepo, d.AssignRepo, d.PromosRepo, d.Dispatcher, logg))
		r.Post("/weekly-summary", controllers.HookWeeklySummary(d.Dispatcher, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(cfg.JWT, d.RepsRepo, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/dashboard", controllers.Dashboard(d.Standings, logg))

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", controllers.AccountList(d.Accounts, logg))
			r.Post("/", controllers.AccountCreate(d.Accounts, logg))
			r.Route("/{accountId}", func(r chi.Router) {
				r.Get("/", controllers.AccountDetail(d.Accounts, logg))
				r.Put("/territories", controllers.AccountChangeTerritories(d.Accounts, logg))
				r.Get("/notes", controllers.AccountNotes(d.Accounts, logg))
				r.Post("/notes", controllers.AccountAddNote(d.Accounts, logg))
				r.Get("/assignment", controllers.CurrentAssignment(d.Assignments, logg))
				r.Post("/assignment", controllers.AssignPromo(d.Assignments, logg))
				r.Get("/transactions", controllers.AccountTransactions(d.Transactions, logg))
				r.Post("/transactions", controllers.LogUnits(d.Transactions, logg))
			})
		})

		r.Patch("/assignments/{assignmentId}", controllers.EditAssignment(d.Assignments, logg))

		r.Route("/promos", func(r chi.Router) {
			r.Get("/", controllers.PromoList(d.Promos, logg))
			r.Post("/", controllers.PromoCreate(d.Promos, logg))
			r.Post("/{promoId}/deactivate", controllers.PromoDeactivate(d.Promos, logg))
		})

		r.Route("/quarters", func(r chi.Router) {
			r.Get("/", controllers.QuarterList(d.Quarters, logg))
			r.Get("/active", controllers.QuarterActive(d.Quarters, logg))
			r.Post("/", controllers.QuarterCreate(d.Quarters, logg))
		})

		r.Get("/activity", controllers.ActivityList(d.Activity, logg))
		r.Get("/notifications/log", controllers.NotificationLogList(d.DispatchRepo, logg))

		r.Route("/reps", func(r chi.Router) {
			r.Get("/", controllers.RepList(d.Reps, logg))
			r.Put("/{repId}/notifications", controllers.RepSetNotificationPrefs(d.Reps, logg))
			r.With(middleware.RequireAdmin(logg)).Post("/", controllers.RepProvision(d.Reps, logg))
		})

		// The rollover is destructive; admins only.
		r.Route("/rollover", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/", controllers.RolloverState(d.Rollover))
			r.Post("/stats", controllers.RolloverStats(d.Rollover, logg))
			r.Post("/execute", controllers.RolloverExecute(d.Rollover, logg))
		})
	})

	return r
}
