package ports

import (
	"context"
	"time"

	"github.com/deccantrails/tourbooker/internal/domain"
)

// BookingQuery narrows List results.
type BookingQuery struct {
	UserID string
	State  domain.BookingState
	After  time.Time // only bookings starting after this instant
}

// BookingRepo persists bookings. Update is a compare-and-swap: it writes
// the booking only if the stored state still equals from, and fails with a
// ConflictError otherwise, so a transition never clobbers a concurrent one.
type BookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking, from domain.BookingState) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q BookingQuery) ([]*domain.Booking, error)
	CancelStalePending(ctx context.Context, olderThan time.Duration) ([]*domain.Booking, error)
	CompleteElapsed(ctx context.Context, now time.Time) ([]*domain.Booking, error)
}
