// Package catalog holds the ordered list of events that preference filters
// are applied to.
package catalog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/event-monitor/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is a concurrency-safe, ordered event list. Readers always get a
// copy; the catalog itself is only changed by Replace.
type Catalog struct {
	mu     sync.RWMutex
	events []models.Event
}

// New creates a catalog holding events in the given order
func New(events []models.Event) *Catalog {
	c := &Catalog{}
	c.Replace(events)
	return c
}

// Events returns a copy of the catalog in order
func (c *Catalog) Events() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Event, len(c.events))
	for i, e := range c.events {
		out[i] = copyEvent(e)
	}
	return out
}

// Len returns the number of events
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}

// Replace swaps the catalog contents
func (c *Catalog) Replace(events []models.Event) {
	next := make([]models.Event, len(events))
	for i, e := range events {
		next[i] = copyEvent(e)
	}

	c.mu.Lock()
	c.events = next
	c.mu.Unlock()
}

func copyEvent(e models.Event) models.Event {
	e.Tags = append([]string(nil), e.Tags...)
	return e
}

type catalogFile struct {
	Events []models.Event `yaml:"events"`
}

// LoadFile reads a YAML catalog of the form:
//
//	events:
//	  - id: 1
//	    name: Tech Conference
//	    eventDate: 2026-02-15T10:00:00Z
//	    tags: [technology, ai]
func LoadFile(path string) ([]models.Event, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog and checks that event IDs are positive and unique
func Parse(data []byte) ([]models.Event, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[int64]struct{}, len(f.Events))
	for i, e := range f.Events {
		if e.ID <= 0 {
			return nil, fmt.Errorf("catalog event %d: id must be positive", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("catalog event %d: duplicate id %d", i, e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.Tags == nil {
			f.Events[i].Tags = []string{}
		}
	}

	return f.Events, nil
}

// Static returns the built-in sample catalog
func Static() []models.Event {
	date := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}

	return []models.Event{
		{
			ID:          1,
			Name:        "Tech Conference 2026",
			SourceSite:  "Eventbrite",
			EventDate:   date("2026-02-15T10:00:00Z"),
			DistanceKm:  5.2,
			Price:       "$299",
			Tags:        []string{"technology", "ai", "business"},
			Description: "Two days of talks on applied AI, cloud infrastructure and developer tooling.",
			Location:    "Convention Center",
			RegisterURL: "https://www.eventbrite.com",
		},
		{
			ID:          2,
			Name:        "Music Festival",
			SourceSite:  "Ticketmaster",
			EventDate:   date("2026-07-20T18:00:00Z"),
			DistanceKm:  12.8,
			Price:       "Free",
			Tags:        []string{"music", "art", "food"},
			Description: "Open-air stages with local bands and food trucks.",
			Location:    "City Park",
			RegisterURL: "https://www.ticketmaster.com",
		},
		{
			ID:          3,
			Name:        "Startup Policy Forum",
			SourceSite:  "Meetup",
			EventDate:   date("2026-11-05T17:30:00Z"),
			DistanceKm:  3.4,
			Price:       "$25",
			Tags:        []string{"policy", "regulation", "business"},
			Description: "Founders and regulators discuss upcoming rules for AI products.",
			Location:    "Innovation Hub",
			RegisterURL: "https://www.meetup.com",
		},
		{
			ID:          4,
			Name:        "City Marathon",
			SourceSite:  "RaceEntry",
			EventDate:   date("2026-12-13T07:00:00Z"),
			DistanceKm:  8.9,
			Price:       "$80",
			Tags:        []string{"sports", "health"},
			Description: "Full and half marathon through the old town.",
			Location:    "Harbor Front",
			RegisterURL: "https://www.raceentry.com",
		},
		{
			ID:          5,
			Name:        "Game Developers Summit",
			SourceSite:  "Eventbrite",
			EventDate:   date("2027-03-18T09:00:00Z"),
			DistanceKm:  21.5,
			Price:       "$149",
			Tags:        []string{"gaming", "technology", "education"},
			Description: "Workshops on engines, shaders and indie publishing.",
			Location:    "Expo Hall B",
			RegisterURL: "https://www.eventbrite.com",
		},
		{
			ID:          6,
			Name:        "Science Night at the Museum",
			SourceSite:  "Meetup",
			EventDate:   date("2027-05-02T19:00:00Z"),
			DistanceKm:  1.7,
			Price:       "Free",
			Tags:        []string{"science", "education"},
			Description: "Hands-on demos and short lectures for all ages.",
			Location:    "Natural History Museum",
			RegisterURL: "https://www.meetup.com",
		},
	}
}
