// Package storage provides the durable key/value backends and archives used
// to persist per-user preferences.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get when no value is stored under the key
var ErrKeyNotFound = errors.New("storage: key not found")

// KeyValueStore is the durable, string-keyed, string-valued store that
// preferences, hidden events and credentials are written to.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// Keys builds the namespaced keys of the storage layout:
//
//	<ns>-<user>-preferences
//	<ns>-<user>-hidden-events
//	<ns>-users
type Keys struct {
	Namespace string
}

// NewKeys creates a key builder for a namespace
func NewKeys(namespace string) Keys {
	return Keys{Namespace: namespace}
}

// Preferences returns the key holding a user's preference snapshot
func (k Keys) Preferences(userID string) string {
	return fmt.Sprintf("%s-%s-preferences", k.Namespace, userID)
}

// HiddenEvents returns the key holding a user's hidden event IDs
func (k Keys) HiddenEvents(userID string) string {
	return fmt.Sprintf("%s-%s-hidden-events", k.Namespace, userID)
}

// Users returns the key holding the credential table
func (k Keys) Users() string {
	return k.Namespace + "-users"
}
