package models

import "encoding/json"

// Appointment is a single booking record as stored by the backend.
type Appointment struct {
	ID      string `json:"_id,omitempty"` // Assigned by the backend; empty before creation
	Name    string `json:"name"`          // Client name
	Date    string `json:"date"`          // "YYYY-MM-DD"
	Time    string `json:"time"`          // "HH:MM", zero-padded
	Service string `json:"service"`       // One of the configured ServiceOption values
}

// UnmarshalJSON accepts both "_id" and "id" for the identifier.
func (a *Appointment) UnmarshalJSON(data []byte) error {
	type plain Appointment
	var raw struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Appointment(raw.plain)
	if a.ID == "" {
		a.ID = raw.AltID
	}
	return nil
}

// AppointmentInput is the four-field create payload, also used as the form draft.
type AppointmentInput struct {
	Name    string `json:"name" form:"name"`
	Date    string `json:"date" form:"date"`
	Time    string `json:"time" form:"time"`
	Service string `json:"service" form:"service"`
}

// Complete reports whether every field is non-empty. No format checks are made.
func (in AppointmentInput) Complete() bool {
	return in.Name != "" && in.Date != "" && in.Time != "" && in.Service != ""
}
