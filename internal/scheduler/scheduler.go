package scheduler

import (
	"context"
	"time"

	"github.com/wb-go/wbf/logger"

	"github.com/deccantrails/tourbooker/internal/domain"
)

type bookingMaintainer interface {
	ExpireStalePending(ctx context.Context) ([]*domain.Booking, error)
	CompleteElapsed(ctx context.Context) ([]*domain.Booking, error)
}

// Scheduler drives the time-based booking transitions: stale pending
// bookings get cancelled, elapsed confirmed bookings get completed.
type Scheduler struct {
	bookingService bookingMaintainer
	interval       time.Duration
	logger         logger.Logger
}

func New(
	bookingService bookingMaintainer,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		interval:       interval,
		logger:         logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	expired, err := s.bookingService.ExpireStalePending(ctx)
	if err != nil {
		s.logger.Error("failed to expire pending bookings",
			logger.String("error", err.Error()),
		)
	}
	for _, b := range expired {
		s.logger.Info("pending booking expired",
			logger.String("booking_id", b.ID),
			logger.String("user_id", b.UserID),
			logger.String("entity_id", b.EntityRef.ID),
		)
	}

	completed, err := s.bookingService.CompleteElapsed(ctx)
	if err != nil {
		s.logger.Error("failed to complete elapsed bookings",
			logger.String("error", err.Error()),
		)
	}
	for _, b := range completed {
		s.logger.Info("booking completed",
			logger.String("booking_id", b.ID),
			logger.String("entity_id", b.EntityRef.ID),
		)
	}
}
