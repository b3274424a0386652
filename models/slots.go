package models

// AvailableSlot is one fixed-length candidate booking interval produced by
// the slot generator. It is derived output, recomputed on every query and
// never persisted or cached.
type AvailableSlot struct {
	Start          int                 `json:"start"` // minutes from midnight
	End            int                 `json:"end"`
	VeterinarianID string              `json:"veterinarianId"`
	Category       AppointmentCategory `json:"category"`
	Date           string              `json:"date"`
	IsBooked       bool                `json:"isBooked"`
}

// Interval returns the slot's half-open time-of-day interval.
func (s AvailableSlot) Interval() TimeInterval {
	return TimeInterval{Start: s.Start, End: s.End}
}
