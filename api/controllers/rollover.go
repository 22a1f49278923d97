package controllers

import (
	"net/http"

	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/api/validators"
	"github.com/promopace/promopace-backend/internal/rollover"
	"github.com/promopace/promopace-backend/pkg/logger"
)

type rolloverExecuteRequest struct {
	Confirm string `json:"confirm" validate:"required"`
}

func RolloverState(controller *rollover.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, failedStep := controller.State()
		payload := map[string]any{"state": state}
		if failedStep != "" {
			payload["failed_step"] = failedStep
		}
		responses.WriteSuccess(w, payload)
	}
}

func RolloverStats(controller *rollover.Controller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := controller.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

func RolloverExecute(controller *rollover.Controller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rolloverExecuteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := controller.Execute(r.Context(), req.Confirm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
