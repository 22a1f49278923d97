package controllers

import (
	"net/http"

	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/api/validators"
	"github.com/promopace/promopace-backend/internal/activity"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/pagination"
)

func ActivityList(service activity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor, err := pagination.ParseCursor(r.URL.Query().Get("cursor"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}

		rows, next, err := service.List(r.Context(), activity.ListParams{Limit: limit, Cursor: cursor})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := map[string]any{"entries": rows}
		if next != nil {
			payload["next_cursor"] = pagination.EncodeCursor(*next)
		}
		responses.WriteSuccess(w, payload)
	}
}
