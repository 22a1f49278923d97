package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/api/validators"
	"github.com/promopace/promopace-backend/internal/promos"
	"github.com/promopace/promopace-backend/pkg/logger"
)

type createPromoRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Code         string          `json:"code" validate:"required,min=1,max=50"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	DefaultTerms string          `json:"default_terms,omitempty" validate:"max=500"`
	StartsOn     time.Time       `json:"starts_on" validate:"required"`
	EndsOn       time.Time       `json:"ends_on" validate:"required"`
}

func PromoCreate(service promos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPromoRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promo, err := service.Create(r.Context(), promos.CreateParams{
			Name:         req.Name,
			Code:         req.Code,
			DiscountRate: req.DiscountRate,
			DefaultTerms: req.DefaultTerms,
			StartsOn:     req.StartsOn,
			EndsOn:       req.EndsOn,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, promo)
	}
}

func PromoList(service promos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := validators.ParseQueryBool(r, "active")
		rows, err := service.List(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func PromoDeactivate(service promos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "promoId"), "promoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := service.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
