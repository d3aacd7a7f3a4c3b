package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/event-monitor/internal/models"
	"github.com/event-monitor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMonitor_RecordSave(t *testing.T) {
	m := NewSaveMonitor()
	failedAt := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return failedAt }

	m.RecordSave(types.OpSettingsUpdate, nil)
	m.RecordSave(types.OpSettingsUpdate, nil)
	m.RecordSave(types.OpHideEvent, nil)
	m.RecordSave(types.OpWishListUpdate, stderrors.New("down"))

	stats := m.GetStats()
	assert.Equal(t, int64(4), stats.TotalSaves)
	assert.Equal(t, int64(2), stats.SavesByOperation[types.OpSettingsUpdate])
	assert.Equal(t, int64(1), stats.FailedSaves)
	assert.Equal(t, 75.0, stats.SaveSuccessRate)
	require.NotNil(t, stats.LastFailure)
	assert.True(t, failedAt.Equal(*stats.LastFailure))
}

func TestSaveMonitor_RecordMirror(t *testing.T) {
	m := NewSaveMonitor()

	m.RecordMirror(100*time.Millisecond, nil)
	m.RecordMirror(200*time.Millisecond, nil)
	m.RecordMirror(3*time.Second, stderrors.New("timeout"))

	stats := m.GetStats()
	assert.Equal(t, int64(3), stats.MirrorPushes)
	assert.Equal(t, int64(1), stats.MirrorFailures)
	assert.Equal(t, int64(1), stats.SlowMirrors)
	assert.InDelta(t, 1100, stats.AvgMirrorMs, 0.5)
	assert.Equal(t, float64(3000), stats.P95MirrorMs)
}

func TestSaveMonitor_SampleWindow(t *testing.T) {
	m := NewSaveMonitor()
	m.maxSamples = 5

	for i := 0; i < 10; i++ {
		m.RecordMirror(time.Duration(i)*time.Millisecond, nil)
	}

	assert.Len(t, m.mirrorTimes, 5)
	assert.Equal(t, int64(10), m.GetStats().MirrorPushes)
}

func TestSaveMonitor_Check(t *testing.T) {
	m := NewSaveMonitor()
	assert.True(t, m.Check().Passed)

	for i := 0; i < 10; i++ {
		m.RecordSave(types.OpSettingsUpdate, stderrors.New("down"))
	}
	check := m.Check()
	assert.False(t, check.Passed)
	assert.Len(t, check.Issues, 1)

	m.Reset()
	for i := 0; i < 10; i++ {
		m.RecordMirror(time.Millisecond, stderrors.New("refused"))
	}
	check = m.Check()
	assert.True(t, check.Passed, "mirror failures never fail the check")
	assert.Len(t, check.Issues, 1)
}

func TestPreferenceStore_StatsTrackSavesAndMirrors(t *testing.T) {
	mirror := MirrorFunc(func(context.Context, models.PersistedPreferences) error { return nil })
	store, _ := newTestStore(t, PreferenceStoreConfig{Mirror: mirror})
	ctx := context.Background()

	_, err := store.SetWishListKeywords(ctx, alice, []string{"ai"})
	require.NoError(t, err)
	_, err = store.HideEvent(ctx, alice, 3)
	require.NoError(t, err)
	store.WaitForMirrors()

	stats := store.Stats()
	assert.Equal(t, int64(2), stats.TotalSaves)
	assert.Equal(t, int64(1), stats.SavesByOperation[types.OpWishListUpdate])
	assert.Equal(t, int64(1), stats.SavesByOperation[types.OpHideEvent])
	assert.Equal(t, int64(1), stats.MirrorPushes)
	assert.Zero(t, stats.MirrorFailures)
}
