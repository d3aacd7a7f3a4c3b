package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/event-monitor/internal/logging"
	"github.com/event-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
events:
  - id: 10
    name: Rust Meetup
    sourceSite: Meetup
    eventDate: 2026-11-20T18:00:00Z
    distanceKm: 2.5
    price: Free
    tags: [technology, education]
    location: Library
    registerUrl: https://www.meetup.com
  - id: 11
    name: Jazz Night
    eventDate: 2026-12-01T20:00:00Z
`

func TestParse(t *testing.T) {
	events, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, int64(10), events[0].ID)
	assert.Equal(t, "Rust Meetup", events[0].Name)
	assert.Equal(t, 2.5, events[0].DistanceKm)
	assert.Equal(t, []string{"technology", "education"}, events[0].Tags)
	assert.True(t, events[0].EventDate.Equal(time.Date(2026, 11, 20, 18, 0, 0, 0, time.UTC)))

	assert.NotNil(t, events[1].Tags)
	assert.Empty(t, events[1].Tags)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "events: [unterminated"},
		{"zero id", "events:\n  - id: 0\n    name: x\n"},
		{"duplicate id", "events:\n  - id: 1\n  - id: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	events, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalog_EventsReturnsCopy(t *testing.T) {
	c := New(Static())
	require.Equal(t, len(Static()), c.Len())

	events := c.Events()
	events[0].Name = "changed"
	events[0].Tags[0] = "changed"

	fresh := c.Events()
	assert.Equal(t, "Tech Conference 2026", fresh[0].Name)
	assert.Equal(t, "technology", fresh[0].Tags[0])
}

func TestCatalog_Replace(t *testing.T) {
	c := New(Static())
	c.Replace([]models.Event{{ID: 99, Name: "only"}})

	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, int64(99), events[0].ID)
}

func TestStatic_UniqueIDsAndTags(t *testing.T) {
	seen := map[int64]bool{}
	for _, e := range Static() {
		assert.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
		assert.NotEmpty(t, e.Tags)
		assert.False(t, e.EventDate.IsZero())
	}
}

func TestRefresher_Reload(t *testing.T) {
	logger := logging.NewLogger(logging.LevelError, logging.FormatJSON)
	path := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	c := New(Static())
	r, err := NewRefresher(c, path, "@every 1h", logger)
	require.NoError(t, err)

	r.Reload()
	assert.Equal(t, 2, c.Len())

	// a broken file keeps the previous contents
	require.NoError(t, os.WriteFile(path, []byte("events: [oops"), 0o600))
	r.Reload()
	assert.Equal(t, 2, c.Len())

	r.Start()
	r.Stop()
}

func TestNewRefresher_InvalidSchedule(t *testing.T) {
	_, err := NewRefresher(New(nil), "unused.yaml", "not a schedule", nil)
	assert.Error(t, err)
}

func TestExportICS(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	out := ExportICS(Static()[:2], now)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "UID:event-1@event-monitor")
	assert.Contains(t, out, "SUMMARY:Tech Conference 2026")
	assert.Contains(t, out, "DTSTART:20260215T100000Z")
	assert.Contains(t, out, "DTEND:20260215T120000Z")
	assert.Contains(t, out, "LOCATION:City Park")

	empty := ExportICS(nil, now)
	assert.Contains(t, empty, "END:VCALENDAR")
	assert.NotContains(t, empty, "BEGIN:VEVENT")
}
