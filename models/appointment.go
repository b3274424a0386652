package models

import "time"

// AppointmentCategory is the closed set of visit types a clinic offers.
type AppointmentCategory string

const (
	CategoryRoutineCheckup AppointmentCategory = "routine_checkup"
	CategoryVaccination    AppointmentCategory = "vaccination"
	CategorySurgery        AppointmentCategory = "surgery"
	CategoryEmergency      AppointmentCategory = "emergency"
	CategoryConsultation   AppointmentCategory = "consultation"
	CategoryFollowUp       AppointmentCategory = "follow_up"
	CategoryDental         AppointmentCategory = "dental"
	CategoryGrooming       AppointmentCategory = "grooming"
	CategoryWellnessExam   AppointmentCategory = "wellness_exam"
	CategoryDiagnostic     AppointmentCategory = "diagnostic"
)

// ValidCategory reports whether c is one of the known appointment categories.
func ValidCategory(c AppointmentCategory) bool {
	switch c {
	case CategoryRoutineCheckup, CategoryVaccination, CategorySurgery,
		CategoryEmergency, CategoryConsultation, CategoryFollowUp,
		CategoryDental, CategoryGrooming, CategoryWellnessExam, CategoryDiagnostic:
		return true
	}
	return false
}

// AppointmentUrgency ranks how soon the pet needs to be seen.
type AppointmentUrgency string

const (
	UrgencyLow       AppointmentUrgency = "low"
	UrgencyMedium    AppointmentUrgency = "medium"
	UrgencyHigh      AppointmentUrgency = "high"
	UrgencyEmergency AppointmentUrgency = "emergency"
)

// AppointmentStatus is the lifecycle state of an appointment. Appointments
// are never hard-deleted; cancellation and no-show are status changes.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusInProgress  AppointmentStatus = "in_progress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no_show"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// Terminal reports whether no further transition may leave this status.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// OccupancyExcludedStatuses lists the statuses whose intervals no longer
// occupy the veterinarian's calendar.
func OccupancyExcludedStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusCancelled, StatusNoShow, StatusRescheduled}
}

// Appointment is one booked visit occupying a concrete interval on one date.
type Appointment struct {
	ID                 string              `bson:"id" json:"id"`
	PetID              string              `bson:"petId" json:"petId"`
	OwnerID            string              `bson:"ownerId" json:"ownerId"`
	VeterinarianID     string              `bson:"veterinarianId" json:"veterinarianId"`
	ClinicID           string              `bson:"clinicId" json:"clinicId"`
	Category           AppointmentCategory `bson:"category" json:"category"`
	Date               string              `bson:"date" json:"date"` // civil date, "2006-01-02"
	Start              int                 `bson:"start" json:"start"`
	End                int                 `bson:"end" json:"end"`
	Urgency            AppointmentUrgency  `bson:"urgency" json:"urgency"`
	Status             AppointmentStatus   `bson:"status" json:"status"`
	Reason             string              `bson:"reason" json:"reason"`
	Notes              string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CancellationReason string              `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	ActualCost         *float64            `bson:"actualCost,omitempty" json:"actualCost,omitempty"`
	// RescheduledTo links a terminally rescheduled appointment to its replacement.
	RescheduledTo string    `bson:"rescheduledTo,omitempty" json:"rescheduledTo,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Interval returns the appointment's time-of-day interval on its date.
func (a *Appointment) Interval() TimeInterval {
	return TimeInterval{Start: a.Start, End: a.End}
}
