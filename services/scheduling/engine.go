package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	appointmentRepo "petclinic/database/repository/appointment"
	availabilityRepo "petclinic/database/repository/availability"
	blockedRepo "petclinic/database/repository/blocked"
	"petclinic/models"
	"petclinic/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DefaultSchedulingEngine is the production implementation of
// SchedulingService. Its persistence collaborators are injected by the
// caller, which owns their lifecycle.
type DefaultSchedulingEngine struct {
	Templates    availabilityRepo.TemplateRepository
	Blocked      blockedRepo.BlockedRepository
	Appointments appointmentRepo.AppointmentRepository
	// Locker optionally extends the per-(veterinarian, date) commit
	// serialization across instances. Nil means in-process locking only.
	Locker CommitLocker

	dayLocks dayLockStore
}

// NewSchedulingEngine wires a scheduling engine with its repositories.
func NewSchedulingEngine(
	templates availabilityRepo.TemplateRepository,
	blocked blockedRepo.BlockedRepository,
	appointments appointmentRepo.AppointmentRepository,
	locker CommitLocker,
) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Templates:    templates,
		Blocked:      blocked,
		Appointments: appointments,
		Locker:       locker,
	}
}

// GetAvailableSlots computes the annotated candidate slots for one
// veterinarian, date and category. It is a pure read over a single snapshot
// of the ledger and blocked-interval store; it takes no locks and its output
// is never cached.
func (se *DefaultSchedulingEngine) GetAvailableSlots(ctx context.Context, veterinarianID, date string, category models.AppointmentCategory, slotDuration int) ([]models.AvailableSlot, error) {
	logger := utils.GetLogger()

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, NewValidationError("invalid date %q: expected YYYY-MM-DD", date)
	}
	if !models.ValidCategory(category) {
		return nil, NewValidationError("unknown appointment category %q", category)
	}
	if slotDuration < 0 {
		return nil, NewValidationError("slot duration must not be negative")
	}

	templates, err := se.Templates.ActiveForDay(ctx, veterinarianID, day.Weekday(), day)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability templates: %w", err)
	}

	// Expand each accepting template into fixed-width candidates. A slot that
	// would spill past the template's closing time is dropped, never
	// truncated. Overlapping templates are tolerated: identical wall-clock
	// slots are de-duplicated by interval identity, keeping insertion order.
	slots := []models.AvailableSlot{}
	seen := make(map[models.TimeInterval]bool)
	for _, tpl := range templates {
		if !tpl.Accepts(category) {
			continue
		}
		duration := slotDuration
		if duration == 0 {
			duration = tpl.SlotDuration
		}
		if duration <= 0 {
			duration = models.DefaultSlotDurationMinutes
		}
		for t := tpl.Start; t+duration <= tpl.End; t += duration {
			interval := models.TimeInterval{Start: t, End: t + duration}
			if seen[interval] {
				continue
			}
			seen[interval] = true
			slots = append(slots, models.AvailableSlot{
				Start:          interval.Start,
				End:            interval.End,
				VeterinarianID: veterinarianID,
				Category:       category,
				Date:           date,
			})
		}
	}
	// Zero accepting templates is a normal outcome, not an error.
	if len(slots) == 0 {
		return slots, nil
	}

	occupancy, err := se.occupancyForDay(ctx, veterinarianID, date, day)
	if err != nil {
		return nil, err
	}

	// A candidate even partially covered by an occupying interval is marked
	// fully booked; booking granularity equals the slot duration.
	for i := range slots {
		for _, busy := range occupancy {
			if slots[i].Interval().Overlaps(busy) {
				slots[i].IsBooked = true
				break
			}
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})

	logger.Debug("computed available slots",
		zap.String("veterinarianId", veterinarianID),
		zap.String("date", date),
		zap.String("category", string(category)),
		zap.Int("candidates", len(slots)),
		zap.Int("busyIntervals", len(occupancy)))
	return slots, nil
}

// occupancyForDay gathers the intervals that render candidate slots
// unavailable: occupying appointments plus blocked intervals projected onto
// the date.
func (se *DefaultSchedulingEngine) occupancyForDay(ctx context.Context, veterinarianID, date string, day time.Time) ([]models.TimeInterval, error) {
	appointments, err := se.Appointments.ForVeterinarianOnDate(ctx, veterinarianID, date, models.OccupancyExcludedStatuses())
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)
	blocks, err := se.Blocked.ForVeterinarianInRange(ctx, veterinarianID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked intervals: %w", err)
	}

	occupancy := make([]models.TimeInterval, 0, len(appointments)+len(blocks))
	for _, apt := range appointments {
		occupancy = append(occupancy, apt.Interval())
	}
	for i := range blocks {
		if interval, ok := ProjectOntoDate(&blocks[i], day); ok {
			occupancy = append(occupancy, interval)
		}
	}
	return occupancy, nil
}

// lockDay serializes the check-then-insert step for one (veterinarian, date)
// pair: in-process first, then cluster-wide when a Locker is configured.
func (se *DefaultSchedulingEngine) lockDay(ctx context.Context, veterinarianID, date string) (func(), error) {
	key := veterinarianID + "|" + date
	local := se.dayLocks.get(key)
	local.Lock()

	if se.Locker == nil {
		return local.Unlock, nil
	}
	release, err := se.Locker.Lock(ctx, veterinarianID, date)
	if err != nil {
		local.Unlock()
		return nil, fmt.Errorf("failed to lock bookings for %s on %s: %w", veterinarianID, date, err)
	}
	return func() {
		release(ctx)
		local.Unlock()
	}, nil
}
