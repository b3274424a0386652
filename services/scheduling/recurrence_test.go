package scheduling

import (
	"context"
	"testing"
	"time"

	"petclinic/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestProjectOntoDate_NonRecurringSingleDay(t *testing.T) {
	block := &models.BlockedInterval{
		StartDateTime: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		EndDateTime:   time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
		Reason:        "lunch",
	}

	iv, ok := ProjectOntoDate(block, civilDate(2026, 3, 2))
	require.True(t, ok)
	assert.Equal(t, models.TimeInterval{Start: 720, End: 780}, iv)

	_, ok = ProjectOntoDate(block, civilDate(2026, 3, 3))
	assert.False(t, ok, "a single-day block projects onto no other date")
}

func TestProjectOntoDate_MultiDayClipping(t *testing.T) {
	// Vacation from Mar 2 14:00 through Mar 5 09:30.
	block := &models.BlockedInterval{
		StartDateTime: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		EndDateTime:   time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC),
		Reason:        "vacation",
	}

	iv, ok := ProjectOntoDate(block, civilDate(2026, 3, 2))
	require.True(t, ok)
	assert.Equal(t, models.TimeInterval{Start: 840, End: 1440}, iv, "first day runs to midnight")

	iv, ok = ProjectOntoDate(block, civilDate(2026, 3, 3))
	require.True(t, ok)
	assert.Equal(t, models.TimeInterval{Start: 0, End: 1440}, iv, "middle days are fully covered")

	iv, ok = ProjectOntoDate(block, civilDate(2026, 3, 5))
	require.True(t, ok)
	assert.Equal(t, models.TimeInterval{Start: 0, End: 570}, iv, "last day ends at the stored end")

	_, ok = ProjectOntoDate(block, civilDate(2026, 3, 6))
	assert.False(t, ok)
	_, ok = ProjectOntoDate(block, civilDate(2026, 3, 1))
	assert.False(t, ok)
}

func TestProjectOntoDate_Daily(t *testing.T) {
	block := &models.BlockedInterval{
		StartDateTime:    time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		EndDateTime:      time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
		IsRecurring:      true,
		RecurringPattern: models.RecurDaily,
	}

	for _, d := range []time.Time{civilDate(2026, 3, 2), civilDate(2026, 3, 3), civilDate(2026, 7, 19)} {
		iv, ok := ProjectOntoDate(block, d)
		require.True(t, ok, "daily block fires on %s", d.Format("2006-01-02"))
		assert.Equal(t, models.TimeInterval{Start: 720, End: 780}, iv)
	}

	_, ok := ProjectOntoDate(block, civilDate(2026, 3, 1))
	assert.False(t, ok, "no occurrence before the first one")
}

func TestProjectOntoDate_Weekly(t *testing.T) {
	// First occurrence on a Monday.
	block := &models.BlockedInterval{
		StartDateTime:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndDateTime:      time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		IsRecurring:      true,
		RecurringPattern: models.RecurWeekly,
	}

	iv, ok := ProjectOntoDate(block, civilDate(2026, 3, 9))
	require.True(t, ok, "next Monday")
	assert.Equal(t, models.TimeInterval{Start: 540, End: 570}, iv)

	_, ok = ProjectOntoDate(block, civilDate(2026, 3, 10))
	assert.False(t, ok, "Tuesday does not match")
}

func TestProjectOntoDate_Monthly(t *testing.T) {
	block := &models.BlockedInterval{
		StartDateTime:    time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC),
		EndDateTime:      time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC),
		IsRecurring:      true,
		RecurringPattern: models.RecurMonthly,
	}

	iv, ok := ProjectOntoDate(block, civilDate(2026, 3, 31))
	require.True(t, ok)
	assert.Equal(t, models.TimeInterval{Start: 480, End: 600}, iv)

	_, ok = ProjectOntoDate(block, civilDate(2026, 4, 30))
	assert.False(t, ok, "a day-31 block never fires in a 30-day month")

	_, ok = ProjectOntoDate(block, civilDate(2026, 3, 30))
	assert.False(t, ok)
}

func TestProjectOntoDate_Yearly(t *testing.T) {
	block := &models.BlockedInterval{
		StartDateTime:    time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
		EndDateTime:      time.Date(2025, 12, 24, 23, 59, 0, 0, time.UTC),
		IsRecurring:      true,
		RecurringPattern: models.RecurYearly,
	}

	iv, ok := ProjectOntoDate(block, civilDate(2026, 12, 24))
	require.True(t, ok)
	assert.Equal(t, models.TimeInterval{Start: 0, End: 1439}, iv)

	_, ok = ProjectOntoDate(block, civilDate(2026, 12, 25))
	assert.False(t, ok)
	_, ok = ProjectOntoDate(block, civilDate(2026, 11, 24))
	assert.False(t, ok)
}

func TestProjectOntoDate_RecurringCrossMidnight(t *testing.T) {
	// First occurrence runs 22:00 to 02:00 the next day; each projected
	// occurrence closes out the rest of its day.
	block := &models.BlockedInterval{
		StartDateTime:    time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC),
		EndDateTime:      time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC),
		IsRecurring:      true,
		RecurringPattern: models.RecurDaily,
	}

	iv, ok := ProjectOntoDate(block, civilDate(2026, 3, 4))
	require.True(t, ok)
	assert.Equal(t, models.TimeInterval{Start: 1320, End: 1440}, iv)
}

func TestProjectOntoDate_UnknownPattern(t *testing.T) {
	block := &models.BlockedInterval{
		StartDateTime:    time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		EndDateTime:      time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
		IsRecurring:      true,
		RecurringPattern: "FORTNIGHTLY",
	}

	_, ok := ProjectOntoDate(block, civilDate(2026, 3, 2))
	assert.False(t, ok)
}

func TestGetAvailableSlots_RecurringWeeklyBlock(t *testing.T) {
	engine, templates, blocked, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-1", 9*60, 10*60, 30))))
	// Weekly staff meeting, first held the Monday before the queried date.
	require.NoError(t, blocked.Add(ctx, &models.BlockedInterval{
		ID:               "blk-meeting",
		VeterinarianID:   testVetID,
		StartDateTime:    time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC),
		EndDateTime:      time.Date(2026, 2, 23, 9, 30, 0, 0, time.UTC),
		Reason:           "staff meeting",
		IsRecurring:      true,
		RecurringPattern: models.RecurWeekly,
	}))

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].IsBooked, "the projected weekly block covers 09:00-09:30")
	assert.False(t, slots[1].IsBooked)
}
