package backend

import (
	"context"

	"nataliestudio/models"
)

// Client is the booking backend as seen by the console.
type Client interface {
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	KeepAlive(ctx context.Context) error
}
