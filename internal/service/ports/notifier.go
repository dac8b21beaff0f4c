package ports

import (
	"context"

	"github.com/deccantrails/tourbooker/internal/domain"
)

type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking, e *domain.Entity)
	NotifyBookingConfirmed(ctx context.Context, b *domain.Booking, e *domain.Entity)
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking, e *domain.Entity)
}
