package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/event-monitor/internal/models"
	"github.com/event-monitor/internal/types"
)

// KmToMiles is the conversion factor used when displaying miles
const KmToMiles = 0.621371

// FutureVisible returns catalog events dated strictly after now that are not
// hidden, in catalog order
func FutureVisible(catalog []models.Event, hidden []int64, now time.Time) []models.Event {
	hiddenSet := make(map[int64]struct{}, len(hidden))
	for _, id := range hidden {
		hiddenSet[id] = struct{}{}
	}

	out := make([]models.Event, 0, len(catalog))
	for _, e := range catalog {
		if !e.EventDate.After(now) {
			continue
		}
		if _, ok := hiddenSet[e.ID]; ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// WindowCutoff returns now advanced by window. ok is false for WindowAll
// and unknown windows.
func WindowCutoff(now time.Time, window types.DateWindow) (cutoff time.Time, ok bool) {
	switch window {
	case types.WindowWeek:
		return now.AddDate(0, 0, 7), true
	case types.WindowMonth:
		return addMonthsClamped(now, 1), true
	case types.WindowThreeMonths:
		return addMonthsClamped(now, 3), true
	case types.WindowSixMonths:
		return addMonthsClamped(now, 6), true
	case types.WindowYear:
		return addMonthsClamped(now, 12), true
	default:
		return time.Time{}, false
	}
}

// WithinWindow keeps events with now <= eventDate <= cutoff. Both bounds
// are inclusive. WindowAll returns the input unchanged.
func WithinWindow(events []models.Event, now time.Time, window types.DateWindow) []models.Event {
	cutoff, ok := WindowCutoff(now, window)
	if !ok {
		return events
	}

	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.EventDate.Before(now) || e.EventDate.After(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// addMonthsClamped adds months keeping the day of month, clamped to the
// last day of the target month (Jan 31 + 1 month = Feb 28/29).
// time.AddDate would normalize Jan 31 + 1 month to early March.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); d > last {
		d = last
	}

	return time.Date(target.Year(), target.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// MatchWishList keeps events with at least one tag containing at least one
// keyword, case-insensitively, in input order
func MatchWishList(events []models.Event, keywords []string) []models.Event {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}

	out := make([]models.Event, 0)
	for _, e := range events {
		if tagsMatch(e.Tags, lowered) {
			out = append(out, e)
		}
	}
	return out
}

func tagsMatch(tags []string, keywords []string) bool {
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		for _, k := range keywords {
			if strings.Contains(tag, k) {
				return true
			}
		}
	}
	return false
}

// FormatDistance renders a distance for display. Miles are rounded to one
// decimal place; kilometers are shown as stored.
func FormatDistance(km float64, unit types.DistanceUnit) string {
	if unit == types.UnitMiles {
		return fmt.Sprintf("%.1f miles", km*KmToMiles)
	}
	return strconv.FormatFloat(km, 'f', -1, 64) + " KM"
}

// EventSource supplies the ordered event catalog
type EventSource interface {
	Events() []models.Event
}

// EventFilterService derives a user's event views from the catalog and the
// user's preferences
type EventFilterService struct {
	source EventSource
	prefs  *PreferenceStore
}

// NewEventFilterService creates a new event filter service
func NewEventFilterService(source EventSource, prefs *PreferenceStore) *EventFilterService {
	return &EventFilterService{
		source: source,
		prefs:  prefs,
	}
}

// VisibleEvents returns the user's future, non-hidden events narrowed to window
func (s *EventFilterService) VisibleEvents(ctx context.Context, sess models.Session, window types.DateWindow, now time.Time) []models.Event {
	return s.visible(s.prefs.Current(ctx, sess), window, now)
}

func (s *EventFilterService) visible(view PreferenceView, window types.DateWindow, now time.Time) []models.Event {
	return WithinWindow(FutureVisible(s.source.Events(), view.HiddenEvents, now), now, window)
}

// LiveEvents returns the Live Events view with distances in the user's unit
func (s *EventFilterService) LiveEvents(ctx context.Context, sess models.Session, window types.DateWindow, now time.Time) []models.EventView {
	view := s.prefs.Current(ctx, sess)
	return toViews(s.visible(view, window, now), view.Settings.DistanceUnit)
}

// WishListEvents returns future, non-hidden events matching the user's keywords
func (s *EventFilterService) WishListEvents(ctx context.Context, sess models.Session, now time.Time) []models.EventView {
	view := s.prefs.Current(ctx, sess)
	events := MatchWishList(FutureVisible(s.source.Events(), view.HiddenEvents, now), view.WishListKeywords)
	return toViews(events, view.Settings.DistanceUnit)
}

func toViews(events []models.Event, unit types.DistanceUnit) []models.EventView {
	out := make([]models.EventView, 0, len(events))
	for _, e := range events {
		out = append(out, models.EventView{
			Event:    e,
			Distance: FormatDistance(e.DistanceKm, unit),
		})
	}
	return out
}
