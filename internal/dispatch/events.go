package dispatch

import (
	"time"

	"github.com/google/uuid"
)

// PromoAssignedEvent is the structured payload behind a "promo assigned"
// notification. It is serialized verbatim into the notification log.
type PromoAssignedEvent struct {
	AccountID    uuid.UUID `json:"account_id"`
	AccountName  string    `json:"account_name"`
	Territories  []string  `json:"territories"`
	PromoID      uuid.UUID `json:"promo_id"`
	PromoName    string    `json:"promo_name"`
	TargetUnits  int       `json:"target_units"`
	PaymentTerms string    `json:"payment_terms"`
	AssignedBy   string    `json:"assigned_by"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// SummaryRow is one account line inside a rep's weekly summary.
type SummaryRow struct {
	AccountName string `json:"account_name"`
	PromoName   string `json:"promo_name"`
	UnitsSold   int    `json:"units_sold"`
	TargetUnits int    `json:"target_units"`
	ProgressPct int    `json:"progress_pct"`
	Pace        string `json:"pace"`
	Behind      bool   `json:"behind"`
}

// WeeklySummaryEvent is the payload behind one rep's weekly summary email.
type WeeklySummaryEvent struct {
	RepID       uuid.UUID    `json:"rep_id"`
	RepName     string       `json:"rep_name"`
	QuarterName string       `json:"quarter_name"`
	ElapsedPct  int          `json:"elapsed_pct"`
	DaysLeft    int          `json:"days_left"`
	Rows        []SummaryRow `json:"rows"`
}
