package booking

import (
	"context"

	"matchpoint/internal/schedule"
)

// Repository is the authoritative booking store. The in-memory slot index is
// always rebuilt from it, never the other way around.
type Repository interface {
	Create(ctx context.Context, ownerID string, slot schedule.Slot) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	SetCanceled(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Booking, error)
	ListByDate(ctx context.Context, date string) ([]Booking, error)
	ListConfirmedFrom(ctx context.Context, date string) ([]Booking, error)
}
