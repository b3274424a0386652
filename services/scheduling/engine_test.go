package scheduling

import (
	"context"
	"testing"
	"time"

	"petclinic/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
const (
	testMonday = "2026-03-02"
	testVetID  = "vet-1"
)

func mondayTemplate(id string, start, end, slotDuration int, categories ...models.AppointmentCategory) models.AvailabilityTemplate {
	if len(categories) == 0 {
		categories = []models.AppointmentCategory{models.CategoryRoutineCheckup}
	}
	return models.AvailabilityTemplate{
		ID:                 id,
		VeterinarianID:     testVetID,
		ClinicID:           "clinic-1",
		DayOfWeek:          time.Monday,
		Start:              start,
		End:                end,
		SlotDuration:       slotDuration,
		AcceptedCategories: categories,
		IsActive:           true,
		EffectiveFrom:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func checkupRequest(start, end int) CreateAppointmentRequest {
	return CreateAppointmentRequest{
		PetID:          "pet-1",
		OwnerID:        "owner-1",
		VeterinarianID: testVetID,
		ClinicID:       "clinic-1",
		Category:       models.CategoryRoutineCheckup,
		Date:           testMonday,
		Start:          start,
		End:            end,
		Reason:         "annual checkup",
	}
}

func TestGetAvailableSlots_ExpandsTemplate(t *testing.T) {
	engine, templates, _, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-1", 9*60, 10*60, 30))))

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 540, slots[0].Start)
	assert.Equal(t, 570, slots[0].End)
	assert.Equal(t, 570, slots[1].Start)
	assert.Equal(t, 600, slots[1].End)
	assert.False(t, slots[0].IsBooked)
	assert.False(t, slots[1].IsBooked)
}

func TestGetAvailableSlots_BookingMarksSlot(t *testing.T) {
	engine, templates, _, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-1", 9*60, 10*60, 30))))
	_, err := engine.CreateAppointment(ctx, checkupRequest(540, 570))
	require.NoError(t, err)

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].IsBooked)
	assert.False(t, slots[1].IsBooked)
}

func TestGetAvailableSlots_BlockedIntervalMarksSlot(t *testing.T) {
	engine, templates, blocked, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-1", 9*60, 10*60, 30))))
	require.NoError(t, blocked.Add(ctx, &models.BlockedInterval{
		ID:             "blk-1",
		VeterinarianID: testVetID,
		StartDateTime:  time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		EndDateTime:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Reason:         "lunch",
	}))

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.False(t, slots[0].IsBooked)
	assert.True(t, slots[1].IsBooked)
}

func TestGetAvailableSlots_PartialOverlapMarksWholeSlot(t *testing.T) {
	engine, templates, _, appointments := newTestEngine()
	ctx := context.Background()

	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-1", 9*60, 10*60, 30))))
	// 09:15-09:45 straddles both candidates.
	require.NoError(t, appointments.InsertConflictFree(ctx, &models.Appointment{
		ID:             "apt-straddle",
		VeterinarianID: testVetID,
		Date:           testMonday,
		Start:          555,
		End:            585,
		Status:         models.StatusScheduled,
	}, ""))

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].IsBooked)
	assert.True(t, slots[1].IsBooked)
}

func TestGetAvailableSlots_NoPartialSlots(t *testing.T) {
	engine, templates, _, _ := newTestEngine()
	ctx := context.Background()

	// 75-minute window: a third 30-minute slot would spill past 10:15.
	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-1", 9*60, 10*60+15, 30))))

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.Equal(t, 30, s.Interval().Duration())
		assert.LessOrEqual(t, s.End, 10*60+15)
	}
}

func TestGetAvailableSlots_OverlappingTemplatesDeduplicated(t *testing.T) {
	engine, templates, _, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-1", 9*60, 10*60, 30))))
	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-2", 9*60+30, 10*60+30, 30))))

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	starts := []int{slots[0].Start, slots[1].Start, slots[2].Start}
	assert.Equal(t, []int{540, 570, 600}, starts)
}

func TestGetAvailableSlots_CategoryFiltered(t *testing.T) {
	engine, templates, _, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, templates.Upsert(ctx, ptrTemplate(
		mondayTemplate("tpl-1", 9*60, 10*60, 30, models.CategoryVaccination))))

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategorySurgery, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_ExplicitDurationOverride(t *testing.T) {
	engine, templates, _, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-1", 9*60, 10*60, 30))))

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 20)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, 540, slots[0].Start)
	assert.Equal(t, 560, slots[1].Start)
	assert.Equal(t, 580, slots[2].Start)
}

func TestGetAvailableSlots_IgnoresInactiveAndExpiredTemplates(t *testing.T) {
	engine, templates, _, _ := newTestEngine()
	ctx := context.Background()

	inactive := mondayTemplate("tpl-inactive", 9*60, 10*60, 30)
	inactive.IsActive = false
	require.NoError(t, templates.Upsert(ctx, &inactive))

	expired := mondayTemplate("tpl-expired", 11*60, 12*60, 30)
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	expired.EffectiveUntil = &until
	require.NoError(t, templates.Upsert(ctx, &expired))

	slots, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_NoTemplatesIsEmptyNotError(t *testing.T) {
	engine, _, _, _ := newTestEngine()

	slots, err := engine.GetAvailableSlots(context.Background(), testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_Deterministic(t *testing.T) {
	engine, templates, blocked, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, templates.Upsert(ctx, ptrTemplate(mondayTemplate("tpl-1", 9*60, 12*60, 30))))
	require.NoError(t, blocked.Add(ctx, &models.BlockedInterval{
		ID:             "blk-1",
		VeterinarianID: testVetID,
		StartDateTime:  time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EndDateTime:    time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
		Reason:         "meeting",
	}))

	first, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	second, err := engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetAvailableSlots_InvalidInputs(t *testing.T) {
	engine, _, _, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.GetAvailableSlots(ctx, testVetID, "02-03-2026", models.CategoryRoutineCheckup, 0)
	assertValidationError(t, err)

	_, err = engine.GetAvailableSlots(ctx, testVetID, testMonday, "haircut", 0)
	assertValidationError(t, err)

	_, err = engine.GetAvailableSlots(ctx, testVetID, testMonday, models.CategoryRoutineCheckup, -15)
	assertValidationError(t, err)
}

func ptrTemplate(tpl models.AvailabilityTemplate) *models.AvailabilityTemplate {
	return &tpl
}
