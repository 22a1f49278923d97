// Package pace classifies progress against elapsed quarter time. The
// thresholds are fixed design constants, not configuration.
package pace

import (
	"math"
	"time"

	"github.com/promopace/promopace-backend/pkg/db/models"
	"github.com/promopace/promopace-backend/pkg/enums"
)

const (
	// AheadThreshold is the minimum progress-minus-elapsed difference that
	// counts as ahead of pace.
	AheadThreshold = 10
	// BehindThreshold is the difference below which an account is behind.
	BehindThreshold = -10
	// FallbackElapsedPct is the documented baseline used when no quarter is
	// active.
	FallbackElapsedPct = 50
)

// ElapsedPct returns how far through the quarter we are, rounded to the
// nearest integer and clamped to [0,100].
func ElapsedPct(quarter models.Quarter, now time.Time) int {
	total := quarter.EndsOn.Sub(quarter.StartsOn)
	if total <= 0 {
		if now.Before(quarter.StartsOn) {
			return 0
		}
		return 100
	}

	elapsed := now.Sub(quarter.StartsOn)
	pct := int(math.Round(float64(elapsed) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Status classifies progress relative to elapsed quarter time.
func Status(progressPct, elapsedPct int) enums.PaceStatus {
	if progressPct >= 100 {
		return enums.PaceMet
	}
	diff := progressPct - elapsedPct
	switch {
	case diff >= AheadThreshold:
		return enums.PaceAhead
	case diff >= BehindThreshold:
		return enums.PaceOnPace
	default:
		return enums.PaceBehind
	}
}

// IsBehind is the summary/notification flag: strictly below the behind
// threshold and target not yet met.
func IsBehind(progressPct, elapsedPct int) bool {
	return progressPct < 100 && progressPct-elapsedPct < BehindThreshold
}

// DaysLeft returns the whole days remaining in the quarter, never negative.
func DaysLeft(quarter models.Quarter, now time.Time) int {
	remaining := quarter.EndsOn.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}
