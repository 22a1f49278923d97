// Package progress computes per-account and team-wide unit progress against
// promo targets. Everything here is a pure function of its inputs so callers
// can aggregate fetched rows without touching the store.
package progress

import (
	"math"

	"github.com/promopace/promopace-backend/pkg/db/models"
)

// AccountInput pairs an account's authoritative assignment with the
// transactions fetched for that account.
type AccountInput struct {
	Assignment   models.PromoAssignment
	Transactions []models.Transaction
}

// AccountProgress is the per-account rollup.
type AccountProgress struct {
	UnitsSold   int  `json:"units_sold"`
	ProgressPct int  `json:"progress_pct"`
	MetTarget   bool `json:"met_target"`
}

// TeamProgress is the team-wide rollup across all enrolled accounts.
type TeamProgress struct {
	TotalUnits  int `json:"total_units"`
	TotalTarget int `json:"total_target"`
	TeamGoalPct int `json:"team_goal_pct"`
}

// ComputeAccount sums units sold against the assignment's promo. Transactions
// logged against a stale, replaced promo do not count.
func ComputeAccount(in AccountInput) AccountProgress {
	units := 0
	for _, tx := range in.Transactions {
		if tx.AccountID != in.Assignment.AccountID {
			continue
		}
		if tx.PromoID != in.Assignment.PromoID {
			continue
		}
		units += tx.UnitsSold
	}

	pct := percentOf(units, in.Assignment.TargetUnits)
	return AccountProgress{
		UnitsSold:   units,
		ProgressPct: pct,
		MetTarget:   pct >= 100,
	}
}

// ComputeTeam sums units and targets across accounts, then applies the same
// percentage formula. A zero total target yields zero, never an error.
func ComputeTeam(inputs []AccountInput) TeamProgress {
	team := TeamProgress{}
	for _, in := range inputs {
		team.TotalUnits += ComputeAccount(in).UnitsSold
		team.TotalTarget += in.Assignment.TargetUnits
	}
	team.TeamGoalPct = percentOf(team.TotalUnits, team.TotalTarget)
	return team
}

// percentOf rounds half-up to the nearest integer percentage.
func percentOf(units, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(units) / float64(target) * 100))
}
