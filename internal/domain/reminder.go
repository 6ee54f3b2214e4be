package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ErrMissingID is returned when a reminder without an identifier is persisted
var ErrMissingID = errors.New("reminder id is required")

// Reminder is a location-bound note persisted by the reminder store
type Reminder struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Location    string  `json:"location" yaml:"location"`
	Latitude    float64 `json:"latitude" yaml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude"`
}

// NewReminder creates a reminder with a freshly generated ID.
// The ID never changes after this point.
func NewReminder(title, description, location string, latitude, longitude float64) *Reminder {
	return &Reminder{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Location:    location,
		Latitude:    latitude,
		Longitude:   longitude,
	}
}

// Validate checks the only invariant stores enforce: ID presence.
// Text and coordinates are stored as given.
func (r *Reminder) Validate() error {
	if r == nil || r.ID == "" {
		return ErrMissingID
	}
	return nil
}

// Coordinates returns the reminder's position
func (r *Reminder) Coordinates() Coordinates {
	return Coordinates{Latitude: r.Latitude, Longitude: r.Longitude}
}

// SetCoordinates overwrites latitude and longitude
func (r *Reminder) SetCoordinates(c Coordinates) {
	r.Latitude = c.Latitude
	r.Longitude = c.Longitude
}
