package models

import "time"

// RecurrencePattern is the closed set of repeat rules for blocked intervals.
type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "DAILY"
	RecurWeekly  RecurrencePattern = "WEEKLY"
	RecurMonthly RecurrencePattern = "MONTHLY"
	RecurYearly  RecurrencePattern = "YEARLY"
)

// ValidRecurrencePattern reports whether p is a known pattern.
func ValidRecurrencePattern(p RecurrencePattern) bool {
	switch p {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// BlockedInterval is an explicit closure of a veterinarian's calendar
// (vacation, meeting, lunch). Start/End are concrete instants. When
// IsRecurring is set, the stored interval is the first occurrence and the
// engine projects it onto later dates.
type BlockedInterval struct {
	ID               string            `bson:"id" json:"id"`
	VeterinarianID   string            `bson:"veterinarianId" json:"veterinarianId"`
	StartDateTime    time.Time         `bson:"startDateTime" json:"startDateTime"`
	EndDateTime      time.Time         `bson:"endDateTime" json:"endDateTime"`
	Reason           string            `bson:"reason" json:"reason"`
	IsRecurring      bool              `bson:"isRecurring" json:"isRecurring"`
	RecurringPattern RecurrencePattern `bson:"recurringPattern,omitempty" json:"recurringPattern,omitempty"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
}

// Valid reports whether the stored interval is well-formed.
func (b *BlockedInterval) Valid() bool {
	return b.StartDateTime.Before(b.EndDateTime)
}
