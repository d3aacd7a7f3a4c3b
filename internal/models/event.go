package models

import "time"

// Event is a catalog entry. Filtering never mutates events.
type Event struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	SourceSite  string    `json:"sourceSite" yaml:"sourceSite"`
	EventDate   time.Time `json:"eventDate" yaml:"eventDate"`
	DistanceKm  float64   `json:"distanceKm" yaml:"distanceKm"`
	Price       string    `json:"price" yaml:"price"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Description string    `json:"description" yaml:"description"`
	Location    string    `json:"location" yaml:"location"`
	RegisterURL string    `json:"registerUrl" yaml:"registerUrl"`
}

// EventView is an event prepared for display with the user's distance unit
type EventView struct {
	Event
	Distance string `json:"distance"`
}
