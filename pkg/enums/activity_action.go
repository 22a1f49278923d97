package enums

import "fmt"

// ActivityAction maps to the activity_action enum in Postgres.
type ActivityAction string

const (
	ActivityUnitsLogged    ActivityAction = "units_logged"
	ActivityPromoAssigned  ActivityAction = "promo_assigned"
	ActivityPromoChanged   ActivityAction = "promo_changed"
	ActivityNoteAdded      ActivityAction = "note_added"
	ActivityAccountCreated ActivityAction = "account_created"
	ActivityTerritoryChanged ActivityAction = "territory_changed"
)

var validActivityActions = []ActivityAction{
	ActivityUnitsLogged,
	ActivityPromoAssigned,
	ActivityPromoChanged,
	ActivityNoteAdded,
	ActivityAccountCreated,
	ActivityTerritoryChanged,
}

// IsValid checks whether the given action matches the canonical enum.
func (a ActivityAction) IsValid() bool {
	for _, candidate := range validActivityActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActivityAction converts raw strings into ActivityAction.
func ParseActivityAction(value string) (ActivityAction, error) {
	for _, candidate := range validActivityActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid activity action %q", value)
}
