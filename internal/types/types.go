// Package types provides common type definitions for the event monitor service.
package types

import "strings"

// DistanceUnit represents the unit used to display event distances
type DistanceUnit string

const (
	// UnitKilometers displays distances in kilometers
	UnitKilometers DistanceUnit = "km"
	// UnitMiles displays distances in miles
	UnitMiles DistanceUnit = "miles"
)

// Valid reports whether the unit is a known distance unit
func (u DistanceUnit) Valid() bool {
	return u == UnitKilometers || u == UnitMiles
}

// NotificationMethod represents the channel(s) used to notify a user
type NotificationMethod string

const (
	// NotifyEmail sends notifications by email only
	NotifyEmail NotificationMethod = "email"
	// NotifySMS sends notifications by SMS only
	NotifySMS NotificationMethod = "sms"
	// NotifyBoth sends notifications by email and SMS
	NotifyBoth NotificationMethod = "both"
)

// Valid reports whether the method is a known notification method
func (m NotificationMethod) Valid() bool {
	switch m {
	case NotifyEmail, NotifySMS, NotifyBoth:
		return true
	default:
		return false
	}
}

// UsesEmail reports whether email notifications are enabled by the method
func (m NotificationMethod) UsesEmail() bool {
	return m == NotifyEmail || m == NotifyBoth
}

// UsesSMS reports whether SMS notifications are enabled by the method
func (m NotificationMethod) UsesSMS() bool {
	return m == NotifySMS || m == NotifyBoth
}

// DateWindow is a named date-range shorthand used to narrow the live events view
type DateWindow string

const (
	WindowAll         DateWindow = "all"
	WindowWeek        DateWindow = "7d"
	WindowMonth       DateWindow = "1mo"
	WindowThreeMonths DateWindow = "3mo"
	WindowSixMonths   DateWindow = "6mo"
	WindowYear        DateWindow = "1y"
)

// ParseDateWindow parses a window name. The dashboard's long names
// (week, month, 3months, 6months, year) are accepted as aliases.
func ParseDateWindow(s string) (DateWindow, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return WindowAll, true
	case "7d", "week":
		return WindowWeek, true
	case "1mo", "month":
		return WindowMonth, true
	case "3mo", "3months":
		return WindowThreeMonths, true
	case "6mo", "6months":
		return WindowSixMonths, true
	case "1y", "year":
		return WindowYear, true
	default:
		return "", false
	}
}

// OperationKind identifies a persistence operation recorded in save history
type OperationKind string

const (
	OpSettingsUpdate OperationKind = "settings_update"
	OpWishListUpdate OperationKind = "wishlist_update"
	OpHideEvent      OperationKind = "hide_event"
	OpUnhideEvent    OperationKind = "unhide_event"
	OpClearAll       OperationKind = "clear_all"
)

// SaveStatus represents the outcome of a persistence operation
type SaveStatus string

const (
	// SaveSuccess means the durable write completed
	SaveSuccess SaveStatus = "success"
	// SaveFailure means the durable write failed and only in-memory state changed
	SaveFailure SaveStatus = "failure"
)

// ServiceError represents a structured error response
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}
