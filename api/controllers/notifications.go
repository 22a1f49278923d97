package controllers

import (
	"net/http"

	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/api/validators"
	"github.com/promopace/promopace-backend/internal/dispatch"
	"github.com/promopace/promopace-backend/pkg/logger"
)

func NotificationLogList(repo dispatch.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := repo.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
