package service

import (
	"context"
	"testing"
	"time"

	"github.com/event-monitor/internal/catalog"
	"github.com/event-monitor/internal/models"
	"github.com/event-monitor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(id int64, date time.Time, tags ...string) models.Event {
	return models.Event{ID: id, Name: "event", EventDate: date, Tags: tags, DistanceKm: 10}
}

func ids(events []models.Event) []int64 {
	out := make([]int64, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFutureVisible_HiddenExclusion(t *testing.T) {
	future := testNow.Add(48 * time.Hour)
	events := []models.Event{eventAt(1, future), eventAt(2, future), eventAt(3, future)}

	got := FutureVisible(events, []int64{2}, testNow)
	assert.Equal(t, []int64{1, 3}, ids(got))
}

func TestFutureVisible_StrictlyFuture(t *testing.T) {
	events := []models.Event{
		eventAt(1, testNow.Add(-time.Second)),
		eventAt(2, testNow),
		eventAt(3, testNow.Add(time.Second)),
	}

	assert.Equal(t, []int64{3}, ids(FutureVisible(events, nil, testNow)))
}

func TestFutureVisible_DoesNotMutateInput(t *testing.T) {
	events := []models.Event{eventAt(1, testNow.Add(time.Hour), "music")}
	before := append([]models.Event{}, events...)

	_ = FutureVisible(events, []int64{1}, testNow)
	_ = MatchWishList(events, []string{"mus"})

	assert.Equal(t, before, events)
}

func TestWithinWindow_Inclusive(t *testing.T) {
	events := []models.Event{
		eventAt(1, testNow),
		eventAt(2, testNow.Add(7*24*time.Hour)),
		eventAt(3, testNow.Add(7*24*time.Hour+time.Second)),
		eventAt(4, testNow.Add(-time.Second)),
	}

	assert.Equal(t, []int64{1, 2}, ids(WithinWindow(events, testNow, types.WindowWeek)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(WithinWindow(events, testNow, types.WindowAll)))
}

func TestWindowCutoff_CalendarArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		window types.DateWindow
		want   time.Time
	}{
		{"week", date(2026, 1, 28), types.WindowWeek, date(2026, 2, 4)},
		{"month same day", date(2026, 3, 15), types.WindowMonth, date(2026, 4, 15)},
		{"month clamps to february", date(2026, 1, 31), types.WindowMonth, date(2026, 2, 28)},
		{"month clamps in leap year", date(2028, 1, 31), types.WindowMonth, date(2028, 2, 29)},
		{"three months clamps", date(2026, 11, 30), types.WindowThreeMonths, date(2027, 2, 28)},
		{"six months across year", date(2026, 8, 31), types.WindowSixMonths, date(2027, 2, 28)},
		{"year from leap day", date(2028, 2, 29), types.WindowYear, date(2029, 2, 28)},
		{"year", date(2026, 10, 1), types.WindowYear, date(2027, 10, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WindowCutoff(tt.now, tt.window)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}

	_, ok := WindowCutoff(testNow, types.WindowAll)
	assert.False(t, ok)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestWithinWindow_MonthBoundary(t *testing.T) {
	now := date(2026, 1, 31)
	events := []models.Event{
		eventAt(1, date(2026, 2, 28)),
		eventAt(2, date(2026, 2, 28).Add(time.Second)),
		eventAt(3, date(2026, 3, 2)),
	}

	assert.Equal(t, []int64{1}, ids(WithinWindow(events, now, types.WindowMonth)))
}

func TestMatchWishList(t *testing.T) {
	e := eventAt(1, testNow.Add(time.Hour), "Technology", "Music")

	assert.Equal(t, []int64{1}, ids(MatchWishList([]models.Event{e}, []string{"tech"})))
	assert.Equal(t, []int64{1}, ids(MatchWishList([]models.Event{e}, []string{"MUS"})))
	assert.Empty(t, MatchWishList([]models.Event{e}, []string{"xyz"}))
	assert.Empty(t, MatchWishList([]models.Event{e}, nil))
	assert.Empty(t, MatchWishList([]models.Event{e}, []string{"", "  "}))
}

func TestMatchWishList_PreservesOrder(t *testing.T) {
	events := []models.Event{
		eventAt(3, testNow, "ai"),
		eventAt(1, testNow, "sports"),
		eventAt(2, testNow, "air travel"),
	}

	assert.Equal(t, []int64{3, 2}, ids(MatchWishList(events, []string{"ai"})))
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km   float64
		unit types.DistanceUnit
		want string
	}{
		{10, types.UnitMiles, "6.2 miles"},
		{10, types.UnitKilometers, "10 KM"},
		{5.2, types.UnitKilometers, "5.2 KM"},
		{12.8, types.UnitMiles, "8.0 miles"},
		{0, types.UnitMiles, "0.0 miles"},
		{3.45, "", "3.45 KM"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.km, tt.unit))
	}
}

func TestEventFilterService(t *testing.T) {
	store, _ := newTestStore(t, PreferenceStoreConfig{})
	ctx := context.Background()

	cat := catalog.New([]models.Event{
		eventAt(1, testNow.Add(24*time.Hour), "technology"),
		eventAt(2, testNow.Add(24*time.Hour), "music"),
		eventAt(3, testNow.Add(60*24*time.Hour), "technology", "ai"),
		eventAt(4, testNow.Add(-24*time.Hour), "technology"),
	})
	filter := NewEventFilterService(cat, store)

	live := filter.LiveEvents(ctx, alice, types.WindowAll, testNow)
	require.Len(t, live, 3)
	assert.Equal(t, "10 KM", live[0].Distance)

	week := filter.LiveEvents(ctx, alice, types.WindowWeek, testNow)
	assert.Len(t, week, 2)

	// default keyword seed is "technology"
	wish := filter.WishListEvents(ctx, alice, testNow)
	require.Len(t, wish, 2)
	assert.Equal(t, int64(1), wish[0].ID)
	assert.Equal(t, int64(3), wish[1].ID)

	_, err := store.HideEvent(ctx, alice, 1)
	require.NoError(t, err)
	s := store.Current(ctx, alice).Settings
	s.DistanceUnit = types.UnitMiles
	_, err = store.Update(ctx, alice, s)
	require.NoError(t, err)

	wish = filter.WishListEvents(ctx, alice, testNow)
	require.Len(t, wish, 1)
	assert.Equal(t, int64(3), wish[0].ID)
	assert.Equal(t, "6.2 miles", wish[0].Distance)

	visible := filter.VisibleEvents(ctx, alice, types.WindowAll, testNow)
	assert.Equal(t, []int64{2, 3}, ids(visible))
}
