package models

import (
	"encoding/json"

	"github.com/event-monitor/internal/types"
)

// DefaultSearchRadius is the radius used when none has been saved
const DefaultSearchRadius = 10

// DefaultTags is the fixed interest tag set offered to every user.
// Custom categories are unioned with it.
var DefaultTags = []string{
	"technology", "music", "food", "sports", "art", "business",
	"health", "education", "travel", "fashion", "gaming", "science",
	"ai", "policy", "regulation", "israel",
}

// MonitorURL is a website the user wants monitored for events
type MonitorURL struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// UnmarshalJSON accepts both the {id,url} object form and the bare
// string form written by older snapshot exports.
func (m *MonitorURL) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*m = MonitorURL{URL: url}
		return nil
	}

	type plain MonitorURL
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = MonitorURL(p)
	return nil
}

// UserSettings holds a user's monitoring preferences
type UserSettings struct {
	HomeAddress        string                   `json:"homeAddress"`
	SearchRadius       float64                  `json:"searchRadius"`
	DistanceUnit       types.DistanceUnit       `json:"distanceUnit"`
	InterestTags       []string                 `json:"interestTags"`
	CustomCategories   []string                 `json:"customCategories"`
	MonitorURLs        []MonitorURL             `json:"monitorUrls"`
	EmailAddress       string                   `json:"emailAddress"`
	PhoneNumber        string                   `json:"phoneNumber"`
	NotificationMethod types.NotificationMethod `json:"notificationMethod"`

	EmailDailyDigest       bool `json:"emailDailyDigest"`
	EmailInstantAlerts     bool `json:"emailInstantAlerts"`
	EmailWeeklyReport      bool `json:"emailWeeklyReport"`
	SMSForAllEvents        bool `json:"smsForAllEvents"`
	SMSForWishListOnly     bool `json:"smsForWishListOnly"`
	UrgentSMSNotifications bool `json:"urgentSmsNotifications"`

	FreeTextSearch string `json:"freeTextSearch"`
}

// DefaultUserSettings returns the settings a user starts with
func DefaultUserSettings() UserSettings {
	return UserSettings{
		SearchRadius:           DefaultSearchRadius,
		DistanceUnit:           types.UnitKilometers,
		InterestTags:           []string{},
		CustomCategories:       []string{},
		MonitorURLs:            []MonitorURL{},
		NotificationMethod:     types.NotifyBoth,
		EmailDailyDigest:       false,
		EmailInstantAlerts:     true,
		EmailWeeklyReport:      false,
		SMSForAllEvents:        false,
		SMSForWishListOnly:     true,
		UrgentSMSNotifications: true,
	}
}

// Clone returns a deep copy so callers can't alias the store's slices
func (s UserSettings) Clone() UserSettings {
	out := s
	out.InterestTags = append([]string{}, s.InterestTags...)
	out.CustomCategories = append([]string{}, s.CustomCategories...)
	out.MonitorURLs = append([]MonitorURL{}, s.MonitorURLs...)
	return out
}
