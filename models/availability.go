package models

import "time"

// DefaultSlotDurationMinutes is used when a template does not set its own.
const DefaultSlotDurationMinutes = 30

// AvailabilityTemplate is a veterinarian's recurring weekly open window for
// one day of the week. Templates are soft-deleted by flipping IsActive so
// history stays intact for appointments booked against them.
type AvailabilityTemplate struct {
	ID                 string                `bson:"id" json:"id"`
	VeterinarianID     string                `bson:"veterinarianId" json:"veterinarianId"`
	ClinicID           string                `bson:"clinicId" json:"clinicId"`
	DayOfWeek          time.Weekday          `bson:"dayOfWeek" json:"dayOfWeek"`
	Start              int                   `bson:"start" json:"start"` // minutes from midnight
	End                int                   `bson:"end" json:"end"`
	SlotDuration       int                   `bson:"slotDuration" json:"slotDuration"` // minutes
	AcceptedCategories []AppointmentCategory `bson:"acceptedCategories" json:"acceptedCategories"`
	IsActive           bool                  `bson:"isActive" json:"isActive"`
	EffectiveFrom      time.Time             `bson:"effectiveFrom" json:"effectiveFrom"`
	EffectiveUntil     *time.Time            `bson:"effectiveUntil,omitempty" json:"effectiveUntil,omitempty"`
	CreatedAt          time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// Window returns the template's open interval.
func (t *AvailabilityTemplate) Window() TimeInterval {
	return TimeInterval{Start: t.Start, End: t.End}
}

// Accepts reports whether the template takes bookings of the given category.
func (t *AvailabilityTemplate) Accepts(category AppointmentCategory) bool {
	for _, c := range t.AcceptedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// EffectiveAt reports whether the template's validity window covers asOf.
func (t *AvailabilityTemplate) EffectiveAt(asOf time.Time) bool {
	if asOf.Before(t.EffectiveFrom) {
		return false
	}
	if t.EffectiveUntil != nil && !asOf.Before(*t.EffectiveUntil) {
		return false
	}
	return true
}
