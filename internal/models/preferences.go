package models

import (
	"encoding/json"
	"time"

	"github.com/event-monitor/internal/types"
)

// PersistedPreferences is the snapshot written to durable storage and
// pushed to the mirror after every update.
type PersistedPreferences struct {
	LastUpdated time.Time `json:"lastUpdated"`
	UserSettings
	WishListKeywords []string `json:"wishListKeywords"`
	User             string   `json:"user"`
}

// SaveHistoryEntry records one persistence operation
type SaveHistoryEntry struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user"`
	Timestamp time.Time           `json:"timestamp"`
	Operation types.OperationKind `json:"operation"`
	Snapshot  json.RawMessage     `json:"snapshot,omitempty"`
	Status    types.SaveStatus    `json:"status"`
	Error     string              `json:"error,omitempty"`
}
