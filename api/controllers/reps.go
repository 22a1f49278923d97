package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/api/validators"
	"github.com/promopace/promopace-backend/internal/reps"
	"github.com/promopace/promopace-backend/pkg/auth"
	"github.com/promopace/promopace-backend/pkg/config"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/security"
)

type provisionRepRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	IsAdmin     bool     `json:"is_admin,omitempty"`
	Territories []string `json:"territories,omitempty"`
}

type notificationPrefsRequest struct {
	TerritoryAlerts bool `json:"territory_alerts"`
	WeeklySummary   bool `json:"weekly_summary"`
}

type mintTokenRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func RepProvision(service reps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req provisionRepRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rep, err := service.Provision(r.Context(), reps.ProvisionParams{
			Name:        req.Name,
			Email:       req.Email,
			Password:    req.Password,
			IsAdmin:     req.IsAdmin,
			Territories: req.Territories,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rep.PasswordHash = ""
		responses.WriteSuccessStatus(w, http.StatusCreated, rep)
	}
}

func RepList(service reps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := service.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		for i := range rows {
			rows[i].PasswordHash = ""
		}
		responses.WriteSuccess(w, rows)
	}
}

func RepSetNotificationPrefs(service reps.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "repId"), "repId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req notificationPrefsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := service.SetNotificationPrefs(r.Context(), id, req.TerritoryAlerts, req.WeeklySummary); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// RepMintToken exchanges rep credentials for an actor token. Wired outside
// production only; deployed environments mint tokens at the identity edge.
func RepMintToken(repo reps.Repository, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mintTokenRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rep, err := repo.FindByEmail(r.Context(), req.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find rep"))
			return
		}
		if rep == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}
		ok, err := security.VerifyPassword(req.Password, rep.PasswordHash)
		if err != nil || !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}

		token, err := auth.MintActorToken(jwtCfg, time.Now().UTC(), auth.ActorTokenPayload{
			RepID:   rep.ID,
			Email:   rep.Email,
			IsAdmin: rep.IsAdmin,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"token": token})
	}
}
