package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/event-monitor/internal/types"
)

// SlowMirrorThreshold marks a mirror push as slow
const SlowMirrorThreshold = 2 * time.Second

// SaveMonitor tracks durable write and mirror push outcomes
type SaveMonitor struct {
	mu             sync.RWMutex
	saves          map[types.OperationKind]int64
	failedSaves    int64
	lastFailure    time.Time
	mirrorTimes    []time.Duration
	mirrorPushes   int64
	mirrorFailures int64
	slowMirrors    int64
	maxSamples     int
	now            func() time.Time
}

// NewSaveMonitor creates a new save monitor
func NewSaveMonitor() *SaveMonitor {
	return &SaveMonitor{
		saves:       make(map[types.OperationKind]int64),
		mirrorTimes: make([]time.Duration, 0, 256),
		maxSamples:  1000, // Keep last 1000 samples
		now:         time.Now,
	}
}

// RecordSave records the outcome of one durable write
func (m *SaveMonitor) RecordSave(op types.OperationKind, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves[op]++
	if err != nil {
		m.failedSaves++
		m.lastFailure = m.now()
	}
}

// RecordMirror records how long a mirror push took and whether it failed
func (m *SaveMonitor) RecordMirror(duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mirrorPushes++
	if err != nil {
		m.mirrorFailures++
	}
	if duration > SlowMirrorThreshold {
		m.slowMirrors++
	}

	m.mirrorTimes = append(m.mirrorTimes, duration)
	if len(m.mirrorTimes) > m.maxSamples {
		m.mirrorTimes = m.mirrorTimes[len(m.mirrorTimes)-m.maxSamples:]
	}
}

// GetStats returns current statistics
func (m *SaveMonitor) GetStats() *SaveStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &SaveStats{
		SavesByOperation: make(map[types.OperationKind]int64, len(m.saves)),
		FailedSaves:      m.failedSaves,
		MirrorPushes:     m.mirrorPushes,
		MirrorFailures:   m.mirrorFailures,
		SlowMirrors:      m.slowMirrors,
	}
	for op, n := range m.saves {
		stats.SavesByOperation[op] = n
		stats.TotalSaves += n
	}
	if !m.lastFailure.IsZero() {
		last := m.lastFailure
		stats.LastFailure = &last
	}

	if stats.TotalSaves > 0 {
		stats.SaveSuccessRate = float64(stats.TotalSaves-m.failedSaves) / float64(stats.TotalSaves) * 100
	}

	if len(m.mirrorTimes) > 0 {
		sorted := make([]time.Duration, len(m.mirrorTimes))
		copy(sorted, m.mirrorTimes)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var total time.Duration
		for _, d := range sorted {
			total += d
		}
		stats.AvgMirrorMs = float64(total.Milliseconds()) / float64(len(sorted))

		p95Index := int(float64(len(sorted)) * 0.95)
		if p95Index >= len(sorted) {
			p95Index = len(sorted) - 1
		}
		stats.P95MirrorMs = float64(sorted[p95Index].Milliseconds())
	}

	return stats
}

// Reset resets all metrics
func (m *SaveMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves = make(map[types.OperationKind]int64)
	m.failedSaves = 0
	m.lastFailure = time.Time{}
	m.mirrorTimes = make([]time.Duration, 0, 256)
	m.mirrorPushes = 0
	m.mirrorFailures = 0
	m.slowMirrors = 0
}

// Check reports whether storage and the mirror look healthy. Storage
// failures fail the check; mirror problems are only reported.
func (m *SaveMonitor) Check() *SaveCheck {
	stats := m.GetStats()

	check := &SaveCheck{
		Passed: true,
		Issues: make([]string, 0),
	}

	if stats.TotalSaves >= 10 && stats.SaveSuccessRate < 90 {
		check.Passed = false
		check.Issues = append(check.Issues,
			fmt.Sprintf("Save success rate (%.2f%%) is below 90%%", stats.SaveSuccessRate))
	}

	if stats.MirrorPushes >= 10 && stats.MirrorFailures*2 > stats.MirrorPushes {
		check.Issues = append(check.Issues,
			fmt.Sprintf("%d of %d mirror pushes failed", stats.MirrorFailures, stats.MirrorPushes))
	}

	if stats.P95MirrorMs > float64(SlowMirrorThreshold.Milliseconds()) {
		check.Issues = append(check.Issues,
			fmt.Sprintf("P95 mirror push time (%.0fms) exceeds %s", stats.P95MirrorMs, SlowMirrorThreshold))
	}

	return check
}

// SaveStats contains save and mirror statistics
type SaveStats struct {
	TotalSaves       int64                         `json:"totalSaves"`
	SavesByOperation map[types.OperationKind]int64 `json:"savesByOperation"`
	FailedSaves      int64                         `json:"failedSaves"`
	SaveSuccessRate  float64                       `json:"saveSuccessRate"` // Percentage
	LastFailure      *time.Time                    `json:"lastFailure,omitempty"`
	MirrorPushes     int64                         `json:"mirrorPushes"`
	MirrorFailures   int64                         `json:"mirrorFailures"`
	SlowMirrors      int64                         `json:"slowMirrors"`
	AvgMirrorMs      float64                       `json:"avgMirrorMs"`
	P95MirrorMs      float64                       `json:"p95MirrorMs"`
}

// SaveCheck contains health check results
type SaveCheck struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
}
