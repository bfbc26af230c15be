package appointments

import (
	"context"

	"nataliestudio/models"
)

// ViewModel is the state behind the booking page: the appointment list, the
// form draft and the confirmation banner.
type ViewModel interface {
	Activate(ctx context.Context) error
	Refresh(ctx context.Context) error
	Loaded() bool
	Appointments() []models.Appointment

	SetField(field, value string) error
	SetForm(in models.AppointmentInput)
	Form() models.AppointmentInput
	IsFormComplete() bool

	Submit(ctx context.Context) (*models.Appointment, error)
	Create(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error

	Grouped(filterDate string) []models.DayGroup
	Confirmation() string
	Services() []models.ServiceOption
	ErrorPolicy() ErrorPolicy
}
