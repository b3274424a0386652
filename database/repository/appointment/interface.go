package appointmentRepo

import (
	"context"
	"errors"

	"petclinic/models"
)

var (
	// ErrAppointmentNotFound is returned when no appointment matches the id.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrAppointmentConflict is returned when a conflict-checked write finds
	// an overlapping occupying appointment for the same veterinarian and date.
	ErrAppointmentConflict = errors.New("appointment interval conflict")
)

// AppointmentRepository defines methods to interact with the appointment
// ledger. Records are never physically deleted; lifecycle exits are status
// changes so audit history survives.
type AppointmentRepository interface {
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// ForVeterinarianOnDate returns the veterinarian's appointments on one
	// civil date, skipping any whose status is in excludeStatuses.
	ForVeterinarianOnDate(ctx context.Context, veterinarianID, date string, excludeStatuses []models.AppointmentStatus) ([]models.Appointment, error)
	// InsertConflictFree atomically re-validates that the appointment's
	// interval overlaps no occupying appointment for the same veterinarian
	// and date (excluding excludeID, if set) and inserts it. Returns
	// ErrAppointmentConflict when the precondition fails.
	InsertConflictFree(ctx context.Context, appointment *models.Appointment, excludeID string) error
	// CommitReschedule atomically performs the same conflict-checked insert
	// of the replacement and terminally marks the old record rescheduled.
	CommitReschedule(ctx context.Context, old *models.Appointment, replacement *models.Appointment) error
	Update(ctx context.Context, appointment *models.Appointment) error
}
