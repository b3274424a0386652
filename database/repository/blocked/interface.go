package blockedRepo

import (
	"context"
	"time"

	"petclinic/models"
)

// BlockedRepository defines methods to interact with blocked intervals.
type BlockedRepository interface {
	Add(ctx context.Context, block *models.BlockedInterval) error
	Remove(ctx context.Context, blockID string) error
	GetByID(ctx context.Context, blockID string) (*models.BlockedInterval, error)
	// ForVeterinarianInRange returns the raw stored intervals overlapping
	// [rangeStart, rangeEnd), plus every recurring interval regardless of its
	// stored first occurrence — recurrence is expanded by the engine, not here.
	ForVeterinarianInRange(ctx context.Context, veterinarianID string, rangeStart, rangeEnd time.Time) ([]models.BlockedInterval, error)
}
