package progress

import (
	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
)

// Standing is one account's row on the dashboard. Accounts without an
// assignment appear with a nil Assignment and zeroed progress.
type Standing struct {
	Account    models.Account          `json:"account"`
	Assignment *models.PromoAssignment `json:"assignment,omitempty"`
	Progress   AccountProgress         `json:"progress"`
	Pace       enums.PaceStatus        `json:"pace"`
	Behind     bool                    `json:"behind"`
}

// Overview is the full dashboard payload.
type Overview struct {
	Standings        []Standing   `json:"standings"`
	Team             TeamProgress `json:"team"`
	QuarterName      string       `json:"quarter_name,omitempty"`
	HasActiveQuarter bool         `json:"has_active_quarter"`
	ElapsedPct       int          `json:"elapsed_pct"`
	DaysLeft         int          `json:"days_left"`
}
