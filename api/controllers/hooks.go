package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/api/validators"
	"github.com/promopace/promopace-backend/internal/accounts"
	"github.com/promopace/promopace-backend/internal/assignments"
	"github.com/promopace/promopace-backend/internal/dispatch"
	"github.com/promopace/promopace-backend/internal/promos"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/types"
)

type assignmentNotifyRequest struct {
	AccountID uuid.UUID `json:"account_id" validate:"required"`
}

// HookAssignmentNotify re-sends the promo-assigned notification for an
// account's current assignment. Used by external automations and for
// operator re-delivery.
func HookAssignmentNotify(
	accountRepo accounts.Repository,
	assignmentRepo assignments.Repository,
	promoRepo promos.Repository,
	dispatcher dispatch.Service,
	logg *logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignmentNotifyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := accountRepo.FindByID(r.Context(), req.AccountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find account"))
			return
		}
		if account == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "account not found"))
			return
		}

		assignment, err := assignmentRepo.CurrentForAccount(r.Context(), req.AccountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find current assignment"))
			return
		}
		if assignment == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "account has no promo assignment"))
			return
		}

		promo, err := promoRepo.FindByID(r.Context(), assignment.PromoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find promo"))
			return
		}
		if promo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "promo not found"))
			return
		}

		event := dispatch.PromoAssignedEvent{
			AccountID:    account.ID,
			AccountName:  account.Name,
			Territories:  account.Territories,
			PromoID:      promo.ID,
			PromoName:    promo.Name,
			TargetUnits:  assignment.TargetUnits,
			PaymentTerms: assignment.PaymentTerms,
			AssignedBy:   "hook",
			AssignedAt:   assignment.AssignedAt,
		}
		sent, err := dispatcher.PromoAssigned(r.Context(), event)
		if err != nil && sent == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dispatch assignment notification"))
			return
		}
		responses.WriteSuccess(w, types.HookResult{Success: true, Count: sent})
	}
}

// HookWeeklySummary runs the weekly summary fan-out once. Invoked by the
// external scheduler trigger; the cron worker calls the same service.
func HookWeeklySummary(dispatcher dispatch.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sent, err := dispatcher.WeeklySummary(r.Context())
		if err != nil && sent == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "weekly summary dispatch"))
			return
		}
		responses.WriteSuccess(w, types.HookResult{Success: true, Count: sent})
	}
}
