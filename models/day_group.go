package models

import "time"

// DayGroup is one date bucket of the grouped view.
type DayGroup struct {
	Date         string        `json:"date"`         // "YYYY-MM-DD"
	Label        string        `json:"label"`        // Long Romanian date, e.g. "sâmbătă, 1 iunie 2024"
	Appointments []Appointment `json:"appointments"` // Sorted ascending by Time
}

// Confirmation is a transient banner shown after a successful create or delete.
type Confirmation struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Active reports whether the banner should still be shown at now.
func (c Confirmation) Active(now time.Time) bool {
	return c.Message != "" && now.Before(c.ExpiresAt)
}
