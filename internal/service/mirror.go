package service

import (
	"context"

	"github.com/event-monitor/internal/models"
)

// Mirror receives a copy of every snapshot after it has been written
// locally. Its outcome never affects the local write.
type Mirror interface {
	Push(ctx context.Context, snapshot models.PersistedPreferences) error
}

// NoopMirror discards snapshots
type NoopMirror struct{}

// Push implements Mirror
func (NoopMirror) Push(context.Context, models.PersistedPreferences) error {
	return nil
}

// MirrorFunc adapts a function to the Mirror interface
type MirrorFunc func(ctx context.Context, snapshot models.PersistedPreferences) error

// Push implements Mirror
func (f MirrorFunc) Push(ctx context.Context, snapshot models.PersistedPreferences) error {
	return f(ctx, snapshot)
}
