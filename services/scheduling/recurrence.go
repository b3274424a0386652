package scheduling

import (
	"time"

	"petclinic/models"
)

const minutesPerDay = 24 * 60

// ProjectOntoDate resolves a stored blocked interval against one civil date
// and returns the concrete time-of-day interval closing that date, if any.
//
// Non-recurring intervals are clipped to the target date, so a multi-day
// closure (a vacation) covers every day it spans. Recurring intervals store
// their first occurrence; the pattern decides whether the target date is hit
// (DAILY: always; WEEKLY: same weekday; MONTHLY: same day-of-month; YEARLY:
// same month and day), and the stored time-of-day is projected onto the date.
func ProjectOntoDate(block *models.BlockedInterval, date time.Time) (models.TimeInterval, bool) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	if !block.IsRecurring {
		if !block.StartDateTime.Before(dayEnd) || !block.EndDateTime.After(dayStart) {
			return models.TimeInterval{}, false
		}
		interval := models.TimeInterval{Start: 0, End: minutesPerDay}
		if block.StartDateTime.After(dayStart) {
			interval.Start = minuteOfDay(block.StartDateTime)
		}
		if block.EndDateTime.Before(dayEnd) {
			interval.End = minuteOfDay(block.EndDateTime)
		}
		return interval, interval.Valid()
	}

	first := block.StartDateTime
	firstDay := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	// A recurring block never projects onto dates before its first occurrence.
	if dayStart.Before(firstDay) {
		return models.TimeInterval{}, false
	}

	var matches bool
	switch block.RecurringPattern {
	case models.RecurDaily:
		matches = true
	case models.RecurWeekly:
		matches = dayStart.Weekday() == firstDay.Weekday()
	case models.RecurMonthly:
		matches = dayStart.Day() == firstDay.Day()
	case models.RecurYearly:
		matches = dayStart.Month() == firstDay.Month() && dayStart.Day() == firstDay.Day()
	default:
		return models.TimeInterval{}, false
	}
	if !matches {
		return models.TimeInterval{}, false
	}

	interval := models.TimeInterval{Start: minuteOfDay(first), End: minuteOfDay(block.EndDateTime)}
	// A first occurrence running past midnight closes out the rest of the day.
	if !sameCivilDay(first, block.EndDateTime) {
		interval.End = minutesPerDay
	}
	return interval, interval.Valid()
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func sameCivilDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
