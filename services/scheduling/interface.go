package scheduling

import (
	"context"

	"petclinic/models"
)

// CreateAppointmentRequest carries the inputs of the create transition.
type CreateAppointmentRequest struct {
	PetID          string
	OwnerID        string
	VeterinarianID string
	ClinicID       string
	Category       models.AppointmentCategory
	Date           string // "2006-01-02"
	Start          int    // minutes from midnight
	End            int
	Urgency        models.AppointmentUrgency
	Reason         string
	Notes          string
}

// RescheduleRequest carries the new interval for a reschedule transition.
type RescheduleRequest struct {
	NewDate  string
	NewStart int
	NewEnd   int
}

// SchedulingService defines the engine's surface toward API collaborators.
type SchedulingService interface {
	// GetAvailableSlots computes the bookable slots for a veterinarian, date
	// and category. slotDuration 0 falls back to each template's own duration.
	// "No availability" is an empty list, not an error.
	GetAvailableSlots(ctx context.Context, veterinarianID, date string, category models.AppointmentCategory, slotDuration int) ([]models.AvailableSlot, error)

	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error)
	GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
	AppointmentsForDay(ctx context.Context, veterinarianID, date string) ([]models.Appointment, error)

	Confirm(ctx context.Context, appointmentID string) (*models.Appointment, error)
	Start(ctx context.Context, appointmentID string) (*models.Appointment, error)
	Complete(ctx context.Context, appointmentID string, actualCost *float64) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID, reason string) (*models.Appointment, error)
	MarkNoShow(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// Reschedule moves the appointment to a new interval: the old record is
	// terminally marked rescheduled and a replacement carrying its status is
	// created. The conflict check excludes the old record's own interval.
	Reschedule(ctx context.Context, appointmentID string, req RescheduleRequest) (*models.Appointment, error)
}
