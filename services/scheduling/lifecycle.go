package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "petclinic/database/repository/appointment"
	"petclinic/models"
	"petclinic/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateAppointment performs the create transition: the appointment enters
// the ledger in SCHEDULED, but only after the non-overlap precondition is
// re-validated atomically with the insert. Of two racing creates for the same
// slot, exactly one succeeds; the other receives a ConflictError and should
// re-query available slots.
func (se *DefaultSchedulingEngine) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	appointment := &models.Appointment{
		ID:             uuid.New().String(),
		PetID:          req.PetID,
		OwnerID:        req.OwnerID,
		VeterinarianID: req.VeterinarianID,
		ClinicID:       req.ClinicID,
		Category:       req.Category,
		Date:           req.Date,
		Start:          req.Start,
		End:            req.End,
		Urgency:        req.Urgency,
		Status:         models.StatusScheduled,
		Reason:         strings.TrimSpace(req.Reason),
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if appointment.Urgency == "" {
		appointment.Urgency = models.UrgencyMedium
	}

	unlock, err := se.lockDay(ctx, req.VeterinarianID, req.Date)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := se.Appointments.InsertConflictFree(ctx, appointment, ""); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentConflict) {
			return nil, NewConflictError("interval %s on %s is no longer free for veterinarian %s",
				appointment.Interval(), appointment.Date, appointment.VeterinarianID)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	utils.GetLogger().Info("appointment created",
		zap.String("appointmentId", appointment.ID),
		zap.String("veterinarianId", appointment.VeterinarianID),
		zap.String("date", appointment.Date),
		zap.String("interval", appointment.Interval().String()))
	return appointment, nil
}

func validateCreate(req CreateAppointmentRequest) error {
	if req.PetID == "" || req.OwnerID == "" || req.VeterinarianID == "" {
		return NewValidationError("petId, ownerId and veterinarianId are required")
	}
	if !models.ValidCategory(req.Category) {
		return NewValidationError("unknown appointment category %q", req.Category)
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return NewValidationError("invalid date %q: expected YYYY-MM-DD", req.Date)
	}
	if req.Start >= req.End {
		return NewValidationError("start time must be before end time")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return NewValidationError("reason must not be blank")
	}
	return nil
}

// GetAppointment returns one appointment by id.
func (se *DefaultSchedulingEngine) GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return se.loadAppointment(ctx, appointmentID)
}

// AppointmentsForDay returns all of a veterinarian's appointments on one date,
// regardless of status.
func (se *DefaultSchedulingEngine) AppointmentsForDay(ctx context.Context, veterinarianID, date string) ([]models.Appointment, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, NewValidationError("invalid date %q: expected YYYY-MM-DD", date)
	}
	appointments, err := se.Appointments.ForVeterinarianOnDate(ctx, veterinarianID, date, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	return appointments, nil
}

// Confirm transitions SCHEDULED -> CONFIRMED. The interval does not change.
func (se *DefaultSchedulingEngine) Confirm(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return se.transition(ctx, appointmentID, "confirm",
		[]models.AppointmentStatus{models.StatusScheduled},
		func(a *models.Appointment) { a.Status = models.StatusConfirmed })
}

// Start transitions CONFIRMED -> IN_PROGRESS.
func (se *DefaultSchedulingEngine) Start(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return se.transition(ctx, appointmentID, "start",
		[]models.AppointmentStatus{models.StatusConfirmed},
		func(a *models.Appointment) { a.Status = models.StatusInProgress })
}

// Complete transitions IN_PROGRESS -> COMPLETED, optionally recording the
// actual cost of the visit. COMPLETED is terminal.
func (se *DefaultSchedulingEngine) Complete(ctx context.Context, appointmentID string, actualCost *float64) (*models.Appointment, error) {
	return se.transition(ctx, appointmentID, "complete",
		[]models.AppointmentStatus{models.StatusInProgress},
		func(a *models.Appointment) {
			a.Status = models.StatusCompleted
			if actualCost != nil {
				a.ActualCost = actualCost
			}
		})
}

// Cancel transitions SCHEDULED|CONFIRMED -> CANCELLED. A non-blank reason is
// required; the interval immediately stops occupying the calendar.
func (se *DefaultSchedulingEngine) Cancel(ctx context.Context, appointmentID, reason string) (*models.Appointment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, NewValidationError("cancellation reason must not be blank")
	}
	return se.transition(ctx, appointmentID, "cancel",
		[]models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed},
		func(a *models.Appointment) {
			a.Status = models.StatusCancelled
			a.CancellationReason = strings.TrimSpace(reason)
		})
}

// MarkNoShow transitions SCHEDULED|CONFIRMED -> NO_SHOW. Same occupancy
// effect as cancel, distinct status for reporting.
func (se *DefaultSchedulingEngine) MarkNoShow(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return se.transition(ctx, appointmentID, "no-show",
		[]models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed},
		func(a *models.Appointment) { a.Status = models.StatusNoShow })
}

// Reschedule moves a non-terminal appointment to a new interval. The old
// record is terminally marked RESCHEDULED and a replacement carrying the old
// status is created; the conflict check for the new interval excludes the old
// record's own interval, so a same-interval reschedule is a valid no-op move.
func (se *DefaultSchedulingEngine) Reschedule(ctx context.Context, appointmentID string, req RescheduleRequest) (*models.Appointment, error) {
	if _, err := time.Parse(dateLayout, req.NewDate); err != nil {
		return nil, NewValidationError("invalid date %q: expected YYYY-MM-DD", req.NewDate)
	}
	if req.NewStart >= req.NewEnd {
		return nil, NewValidationError("start time must be before end time")
	}

	old, err := se.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if old.Status.Terminal() {
		return nil, NewInvalidStateError("cannot reschedule appointment %s in terminal status %s", old.ID, old.Status)
	}

	replacement := *old
	replacement.ID = uuid.New().String()
	replacement.Date = req.NewDate
	replacement.Start = req.NewStart
	replacement.End = req.NewEnd
	replacement.RescheduledTo = ""

	unlock, err := se.lockDay(ctx, old.VeterinarianID, req.NewDate)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := se.Appointments.CommitReschedule(ctx, old, &replacement); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentConflict) {
			return nil, NewConflictError("interval %s on %s is not free for veterinarian %s",
				replacement.Interval(), replacement.Date, replacement.VeterinarianID)
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, NewNotFoundError("appointment %s", appointmentID)
		}
		return nil, fmt.Errorf("failed to reschedule appointment %s: %w", appointmentID, err)
	}

	utils.GetLogger().Info("appointment rescheduled",
		zap.String("appointmentId", old.ID),
		zap.String("replacementId", replacement.ID),
		zap.String("priorInterval", old.Interval().String()),
		zap.String("priorDate", old.Date),
		zap.String("newInterval", replacement.Interval().String()),
		zap.String("newDate", replacement.Date))
	return &replacement, nil
}

func (se *DefaultSchedulingEngine) loadAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := se.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, NewNotFoundError("appointment %s", appointmentID)
		}
		return nil, fmt.Errorf("failed to load appointment %s: %w", appointmentID, err)
	}
	return appointment, nil
}

// transition loads the appointment, enforces the legal source statuses,
// applies the mutation and persists it.
func (se *DefaultSchedulingEngine) transition(ctx context.Context, appointmentID, action string, from []models.AppointmentStatus, apply func(*models.Appointment)) (*models.Appointment, error) {
	appointment, err := se.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, s := range from {
		if appointment.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, NewInvalidStateError("cannot %s appointment %s in status %s", action, appointmentID, appointment.Status)
	}

	apply(appointment)
	if err := se.Appointments.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to %s appointment %s: %w", action, appointmentID, err)
	}

	utils.GetLogger().Info("appointment transition",
		zap.String("appointmentId", appointmentID),
		zap.String("action", action),
		zap.String("status", string(appointment.Status)))
	return appointment, nil
}
