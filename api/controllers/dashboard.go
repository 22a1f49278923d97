package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/internal/progress"
	"github.com/promopace/promopace-backend/internal/standings"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/types"
)

// Dashboard returns per-account progress/pace standings and the team rollup.
// An optional ?territories=a,b filter narrows the rows.
func Dashboard(service standings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()

		var overview *progress.Overview
		var err error
		if raw := strings.TrimSpace(r.URL.Query().Get("territories")); raw != "" {
			overview, err = service.ForTerritories(r.Context(), types.ParseTerritoryList(raw), now)
		} else {
			overview, err = service.Overview(r.Context(), now)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}
