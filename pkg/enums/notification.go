package enums

import "fmt"

// NotificationKind identifies the structured event behind an email send.
type NotificationKind string

const (
	NotificationPromoAssigned NotificationKind = "promo_assigned"
	NotificationWeeklySummary NotificationKind = "weekly_summary"
)

var validNotificationKinds = []NotificationKind{
	NotificationPromoAssigned,
	NotificationWeeklySummary,
}

// IsValid checks whether the given kind matches the canonical enum.
func (n NotificationKind) IsValid() bool {
	for _, candidate := range validNotificationKinds {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationKind converts raw strings into NotificationKind.
func ParseNotificationKind(value string) (NotificationKind, error) {
	for _, candidate := range validNotificationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification kind %q", value)
}

// DeliveryStatus records the outcome of a notification send.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)
