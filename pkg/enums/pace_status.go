package enums

import "fmt"

// PaceStatus classifies progress against elapsed quarter time.
type PaceStatus string

const (
	PaceAhead  PaceStatus = "ahead"
	PaceOnPace PaceStatus = "on_pace"
	PaceBehind PaceStatus = "behind"
	PaceMet    PaceStatus = "met"
)

var validPaceStatuses = []PaceStatus{PaceAhead, PaceOnPace, PaceBehind, PaceMet}

// IsValid checks whether the given status matches the canonical enum.
func (p PaceStatus) IsValid() bool {
	for _, candidate := range validPaceStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaceStatus converts raw strings into PaceStatus.
func ParsePaceStatus(value string) (PaceStatus, error) {
	for _, candidate := range validPaceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pace status %q", value)
}
