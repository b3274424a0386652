package scheduling

import (
	"context"
	"sync"
	"time"

	appointmentRepo "petclinic/database/repository/appointment"
	availabilityRepo "petclinic/database/repository/availability"
	blockedRepo "petclinic/database/repository/blocked"
	"petclinic/models"
)

// In-memory repository fakes. They mirror the query and conflict semantics of
// the Mongo implementations so the engine can be exercised without a database.

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates []models.AvailabilityTemplate
}

var _ availabilityRepo.TemplateRepository = (*fakeTemplateRepo)(nil)

func (f *fakeTemplateRepo) Upsert(ctx context.Context, template *models.AvailabilityTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.templates {
		if f.templates[i].ID == template.ID {
			f.templates[i] = *template
			return nil
		}
	}
	f.templates = append(f.templates, *template)
	return nil
}

func (f *fakeTemplateRepo) Deactivate(ctx context.Context, templateID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.templates {
		if f.templates[i].ID == templateID {
			f.templates[i].IsActive = false
			return nil
		}
	}
	return availabilityRepo.ErrTemplateNotFound
}

func (f *fakeTemplateRepo) GetByID(ctx context.Context, templateID string) (*models.AvailabilityTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.templates {
		if f.templates[i].ID == templateID {
			tpl := f.templates[i]
			return &tpl, nil
		}
	}
	return nil, availabilityRepo.ErrTemplateNotFound
}

func (f *fakeTemplateRepo) ActiveForDay(ctx context.Context, veterinarianID string, day time.Weekday, asOf time.Time) ([]models.AvailabilityTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.AvailabilityTemplate{}
	for i := range f.templates {
		tpl := f.templates[i]
		if tpl.VeterinarianID != veterinarianID || tpl.DayOfWeek != day || !tpl.IsActive {
			continue
		}
		if !tpl.EffectiveAt(asOf) {
			continue
		}
		out = append(out, tpl)
	}
	return out, nil
}

func (f *fakeTemplateRepo) ForVeterinarian(ctx context.Context, veterinarianID string) ([]models.AvailabilityTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.AvailabilityTemplate{}
	for i := range f.templates {
		if f.templates[i].VeterinarianID == veterinarianID {
			out = append(out, f.templates[i])
		}
	}
	return out, nil
}

type fakeBlockedRepo struct {
	mu     sync.Mutex
	blocks []models.BlockedInterval
}

var _ blockedRepo.BlockedRepository = (*fakeBlockedRepo)(nil)

func (f *fakeBlockedRepo) Add(ctx context.Context, block *models.BlockedInterval) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks = append(f.blocks, *block)
	return nil
}

func (f *fakeBlockedRepo) Remove(ctx context.Context, blockID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.blocks {
		if f.blocks[i].ID == blockID {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			return nil
		}
	}
	return blockedRepo.ErrBlockedNotFound
}

func (f *fakeBlockedRepo) GetByID(ctx context.Context, blockID string) (*models.BlockedInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.blocks {
		if f.blocks[i].ID == blockID {
			b := f.blocks[i]
			return &b, nil
		}
	}
	return nil, blockedRepo.ErrBlockedNotFound
}

func (f *fakeBlockedRepo) ForVeterinarianInRange(ctx context.Context, veterinarianID string, rangeStart, rangeEnd time.Time) ([]models.BlockedInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.BlockedInterval{}
	for i := range f.blocks {
		b := f.blocks[i]
		if b.VeterinarianID != veterinarianID {
			continue
		}
		if b.IsRecurring || (b.StartDateTime.Before(rangeEnd) && b.EndDateTime.After(rangeStart)) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]models.Appointment
}

var _ appointmentRepo.AppointmentRepository = (*fakeAppointmentRepo)(nil)

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[string]models.Appointment)}
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apt, ok := f.appointments[appointmentID]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &apt, nil
}

func (f *fakeAppointmentRepo) ForVeterinarianOnDate(ctx context.Context, veterinarianID, date string, excludeStatuses []models.AppointmentStatus) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, apt := range f.appointments {
		if apt.VeterinarianID != veterinarianID || apt.Date != date {
			continue
		}
		excluded := false
		for _, s := range excludeStatuses {
			if apt.Status == s {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, apt)
		}
	}
	return out, nil
}

// hasConflictLocked reports whether an occupying appointment overlaps the
// candidate's interval on the same veterinarian and date. Caller holds f.mu.
func (f *fakeAppointmentRepo) hasConflictLocked(candidate *models.Appointment, excludeID string) bool {
	for _, apt := range f.appointments {
		if apt.VeterinarianID != candidate.VeterinarianID || apt.Date != candidate.Date {
			continue
		}
		if excludeID != "" && apt.ID == excludeID {
			continue
		}
		occupying := true
		for _, s := range models.OccupancyExcludedStatuses() {
			if apt.Status == s {
				occupying = false
				break
			}
		}
		if !occupying {
			continue
		}
		if apt.Interval().Overlaps(candidate.Interval()) {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) InsertConflictFree(ctx context.Context, appointment *models.Appointment, excludeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hasConflictLocked(appointment, excludeID) {
		return appointmentRepo.ErrAppointmentConflict
	}
	f.appointments[appointment.ID] = *appointment
	return nil
}

func (f *fakeAppointmentRepo) CommitReschedule(ctx context.Context, old *models.Appointment, replacement *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.appointments[old.ID]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	if f.hasConflictLocked(replacement, old.ID) {
		return appointmentRepo.ErrAppointmentConflict
	}
	f.appointments[replacement.ID] = *replacement
	stored.Status = models.StatusRescheduled
	stored.RescheduledTo = replacement.ID
	f.appointments[old.ID] = stored
	return nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, appointment *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[appointment.ID]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.appointments[appointment.ID] = *appointment
	return nil
}

// newTestEngine wires an engine over fresh fakes. The nil locker keeps
// commit serialization in-process.
func newTestEngine() (*DefaultSchedulingEngine, *fakeTemplateRepo, *fakeBlockedRepo, *fakeAppointmentRepo) {
	templates := &fakeTemplateRepo{}
	blocked := &fakeBlockedRepo{}
	appointments := newFakeAppointmentRepo()
	return NewSchedulingEngine(templates, blocked, appointments, nil), templates, blocked, appointments
}
