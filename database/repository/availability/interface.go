package availabilityRepo

import (
	"context"
	"time"

	"petclinic/models"
)

// TemplateRepository defines methods to interact with availability templates.
// Templates are never hard-deleted; Deactivate flips IsActive so history
// survives for appointments booked against them.
type TemplateRepository interface {
	Upsert(ctx context.Context, template *models.AvailabilityTemplate) error
	Deactivate(ctx context.Context, templateID string) error
	GetByID(ctx context.Context, templateID string) (*models.AvailabilityTemplate, error)
	// ActiveForDay returns the active templates for a veterinarian on one
	// weekday whose validity window covers asOf. Overlapping templates are
	// returned as stored; overlap resolution happens at read time in the
	// slot generator.
	ActiveForDay(ctx context.Context, veterinarianID string, day time.Weekday, asOf time.Time) ([]models.AvailabilityTemplate, error)
	ForVeterinarian(ctx context.Context, veterinarianID string) ([]models.AvailabilityTemplate, error)
}
