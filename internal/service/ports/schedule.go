package ports

import (
	"context"

	"github.com/deccantrails/tourbooker/internal/domain"
)

// ScheduleRepo owns the booked intervals of guide schedules. Reserve and
// Swap re-check the no-overlap invariant atomically with the write (single
// transaction over the guide's rows), so two racing reservations can never
// both land.
type ScheduleRepo interface {
	Booked(ctx context.Context, guideID string) ([]domain.BookedInterval, error)
	Reserve(ctx context.Context, guideID, bookingID string, iv domain.Interval) error
	Release(ctx context.Context, bookingID string) error
	Swap(ctx context.Context, guideID, bookingID string, newIv domain.Interval) error
}
