package models

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeInterval is a half-open interval [Start, End) of civil time-of-day,
// expressed in minutes from midnight (e.g., 540 for 9:00 AM).
type TimeInterval struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Valid reports whether the interval is well-formed (start strictly before end).
func (ti TimeInterval) Valid() bool {
	return ti.Start < ti.End
}

// Overlaps reports whether two half-open intervals overlap. An interval
// ending exactly when another begins does not overlap it.
func (ti TimeInterval) Overlaps(other TimeInterval) bool {
	return ti.Start < other.End && other.Start < ti.End
}

// Contains reports whether the given minute-of-day falls inside the interval.
func (ti TimeInterval) Contains(minute int) bool {
	return minute >= ti.Start && minute < ti.End
}

// Duration returns the interval length in minutes.
func (ti TimeInterval) Duration() int {
	return ti.End - ti.Start
}

func (ti TimeInterval) String() string {
	return fmt.Sprintf("[%s, %s)", FormatMinuteOfDay(ti.Start), FormatMinuteOfDay(ti.End))
}

// ParseMinuteOfDay converts an "HH:MM" wall-clock string into minutes from
// midnight. Times are parsed once at the API boundary and compared as ints
// internally, never as strings.
func ParseMinuteOfDay(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return hour*60 + minute, nil
}

// FormatMinuteOfDay renders minutes from midnight as "HH:MM".
func FormatMinuteOfDay(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
