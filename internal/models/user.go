// Package models provides data models for the event monitor service.
package models

import (
	"time"
)

// Account represents a registered user in the credential table
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session identifies the user on whose behalf an operation runs.
// It is passed explicitly to every store and filter call.
type Session struct {
	UserID string `json:"user"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
}
