package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/promopace/promopace-backend/api/middleware"
	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/api/validators"
	"github.com/promopace/promopace-backend/internal/assignments"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
)

type assignPromoRequest struct {
	PromoID      uuid.UUID `json:"promo_id" validate:"required"`
	TargetUnits  int       `json:"target_units" validate:"required,gt=0"`
	PaymentTerms string    `json:"payment_terms,omitempty" validate:"max=500"`
	InitialUnits int       `json:"initial_units,omitempty" validate:"min=0"`
	Territories  []string  `json:"territories,omitempty"`
	Territory    string    `json:"territory,omitempty"`
}

type editAssignmentRequest struct {
	PromoID      *uuid.UUID `json:"promo_id,omitempty"`
	TargetUnits  *int       `json:"target_units,omitempty"`
	PaymentTerms *string    `json:"payment_terms,omitempty"`
}

// AssignPromo enrolls the account in a promo. Accounts that already hold an
// assignment get a 409; edits go through EditAssignment.
func AssignPromo(service assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor required"))
			return
		}
		accountID, err := validators.ParsePathUUID(chi.URLParam(r, "accountId"), "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req assignPromoRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		territories := req.Territories
		if territories == nil && req.Territory != "" {
			territories = mergedTerritories(nil, req.Territory)
		}

		assignment, err := service.AssignPromo(r.Context(), assignments.AssignParams{
			AccountID:    accountID,
			PromoID:      req.PromoID,
			TargetUnits:  req.TargetUnits,
			PaymentTerms: req.PaymentTerms,
			InitialUnits: req.InitialUnits,
			Territories:  territories,
		}, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, assignment)
	}
}

func EditAssignment(service assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor required"))
			return
		}
		assignmentID, err := validators.ParsePathUUID(chi.URLParam(r, "assignmentId"), "assignmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req editAssignmentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignment, err := service.EditAssignment(r.Context(), assignmentID, assignments.EditParams{
			PromoID:      req.PromoID,
			TargetUnits:  req.TargetUnits,
			PaymentTerms: req.PaymentTerms,
		}, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignment)
	}
}

func CurrentAssignment(service assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := validators.ParsePathUUID(chi.URLParam(r, "accountId"), "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		assignment, err := service.CurrentForAccount(r.Context(), accountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignment)
	}
}
