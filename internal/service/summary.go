package service

import (
	"context"

	"github.com/event-monitor/internal/models"
	"github.com/event-monitor/internal/types"
)

// PreferenceSummary is the saved-data overview shown to the user
type PreferenceSummary struct {
	User                    string              `json:"user"`
	Settings                models.UserSettings `json:"settings"`
	NotificationMethodLabel string              `json:"notificationMethodLabel"`
	ActiveNotifications     []string            `json:"activeNotifications"`
	AllTags                 []string            `json:"allTags"`
	WishListKeywords        []string            `json:"wishListKeywords"`
	HiddenEventCount        int                 `json:"hiddenEventCount"`
}

// NotificationMethodLabel returns the display label of a notification method
func NotificationMethodLabel(m types.NotificationMethod) string {
	switch m {
	case types.NotifyEmail:
		return "Email Only"
	case types.NotifySMS:
		return "SMS Only"
	case types.NotifyBoth:
		return "Both Email & SMS"
	default:
		return "Not set"
	}
}

// ActiveNotifications lists the enabled toggles. SMS toggles only count
// when the method includes SMS, email toggles only when it includes email.
func ActiveNotifications(s models.UserSettings) []string {
	active := make([]string, 0, 6)

	if s.NotificationMethod.UsesSMS() {
		if s.SMSForAllEvents {
			active = append(active, "SMS for all events")
		}
		if s.SMSForWishListOnly {
			active = append(active, "SMS for wish list")
		}
		if s.UrgentSMSNotifications {
			active = append(active, "Urgent SMS alerts")
		}
	}

	if s.NotificationMethod.UsesEmail() {
		if s.EmailDailyDigest {
			active = append(active, "Daily email digest")
		}
		if s.EmailInstantAlerts {
			active = append(active, "Instant email alerts")
		}
		if s.EmailWeeklyReport {
			active = append(active, "Weekly email report")
		}
	}

	return active
}

// Summary builds the saved-data overview for a user
func (s *PreferenceStore) Summary(ctx context.Context, sess models.Session) PreferenceSummary {
	view := s.Current(ctx, sess)

	return PreferenceSummary{
		User:                    sess.UserID,
		Settings:                view.Settings,
		NotificationMethodLabel: NotificationMethodLabel(view.Settings.NotificationMethod),
		ActiveNotifications:     ActiveNotifications(view.Settings),
		AllTags:                 AllTags(view.Settings),
		WishListKeywords:        view.WishListKeywords,
		HiddenEventCount:        len(view.HiddenEvents),
	}
}
