package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promopace/promopace-backend/api/middleware"
	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/api/validators"
	"github.com/promopace/promopace-backend/internal/accounts"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
)

type createAccountRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	ShortCode   *int     `json:"short_code,omitempty"`
	Territories []string `json:"territories,omitempty"`
	// Legacy clients send a comma-joined string instead of the array.
	Territory string `json:"territory,omitempty"`
}

type changeTerritoriesRequest struct {
	Territories []string `json:"territories,omitempty"`
	Territory   string   `json:"territory,omitempty"`
}

type addNoteRequest struct {
	Body string `json:"body" validate:"required,min=1,max=4000"`
}

func AccountCreate(service accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor required"))
			return
		}

		var req createAccountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := service.Create(r.Context(), accounts.CreateParams{
			Name:        req.Name,
			ShortCode:   req.ShortCode,
			Territories: mergedTerritories(req.Territories, req.Territory),
		}, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, account)
	}
}

func AccountList(service accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := service.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AccountDetail(service accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "accountId"), "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		account, err := service.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

func AccountChangeTerritories(service accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor required"))
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "accountId"), "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req changeTerritoriesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := service.ChangeTerritories(r.Context(), id, mergedTerritories(req.Territories, req.Territory), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

func AccountAddNote(service accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor required"))
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "accountId"), "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req addNoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := service.AddNote(r.Context(), id, req.Body, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "added"})
	}
}

func AccountNotes(service accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "accountId"), "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := service.ListNotes(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
