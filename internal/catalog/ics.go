package catalog

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/event-monitor/internal/models"
)

// DefaultEventDuration is used for DTEND since catalog events carry only a start
const DefaultEventDuration = 2 * time.Hour

// ExportICS renders events as an iCalendar document, preserving their order
func ExportICS(events []models.Event, now time.Time) string {
	cal := ical.NewCalendarFor("event-monitor")
	cal.SetMethod(ical.MethodPublish)

	for _, e := range events {
		ev := cal.AddEvent(fmt.Sprintf("event-%d@event-monitor", e.ID))
		ev.SetDtStampTime(now.UTC())
		ev.SetStartAt(e.EventDate.UTC())
		ev.SetEndAt(e.EventDate.UTC().Add(DefaultEventDuration))
		ev.SetSummary(e.Name)
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.RegisterURL != "" {
			ev.SetURL(e.RegisterURL)
		}
	}

	return cal.Serialize()
}
