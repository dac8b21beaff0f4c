package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"

	"github.com/deccantrails/tourbooker/internal/availability"
	"github.com/deccantrails/tourbooker/internal/domain"
	"github.com/deccantrails/tourbooker/internal/guard"
	"github.com/deccantrails/tourbooker/internal/service/ports"
)

// SystemClock is the production clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// CreateBookingInput carries everything a booking creation needs.
type CreateBookingInput struct {
	UserID    string
	EntityRef domain.EntityRef
	Interval  domain.Interval
	GroupSize int
	Note      string
}

// BookingService owns the booking lifecycle. Every mutation is one of the
// named transitions; schedule-touching transitions serialize per guide
// through the keyed limiter, with the repository's transactional overlap
// re-check as the storage-level backstop.
type BookingService struct {
	bookings   ports.BookingRepo
	schedule   ports.ScheduleRepo
	catalog    ports.Catalog
	locks      *guard.KeyedLimiter
	notifier   ports.BookingNotifier
	clock      ports.Clock
	refund     domain.RefundPolicy
	pendingTTL time.Duration
	logger     logger.Logger
}

func NewBookingService(
	bookings ports.BookingRepo,
	schedule ports.ScheduleRepo,
	catalog ports.Catalog,
	locks *guard.KeyedLimiter,
	notifier ports.BookingNotifier,
	clock ports.Clock,
	refund domain.RefundPolicy,
	pendingTTL time.Duration,
	logger logger.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		schedule:   schedule,
		catalog:    catalog,
		locks:      locks,
		notifier:   notifier,
		clock:      clock,
		refund:     refund,
		pendingTTL: pendingTTL,
		logger:     logger,
	}
}

// Create validates the request against the entity and, for guides, the
// availability engine, then stores a Pending booking. The interval is not
// reserved yet; reservation happens at Confirm.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID == "" {
		return nil, &domain.ValidationError{Field: "userId", Reason: "required"}
	}
	if input.GroupSize < 1 {
		return nil, &domain.ValidationError{Field: "groupSize", Reason: "must be at least 1"}
	}

	entity, err := s.resolveEntity(input.EntityRef)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := validateInterval(input.Interval, now); err != nil {
		return nil, err
	}
	if !entity.GroupSize.Accepts(input.GroupSize) {
		return nil, &domain.ValidationError{
			Field:  "groupSize",
			Reason: fmt.Sprintf("%d outside the accepted range [%d, %d]", input.GroupSize, entity.GroupSize.Min, entity.GroupSize.Max),
		}
	}

	if entity.Kind == domain.KindGuide {
		release, err := s.locks.Acquire(ctx, entity.ID)
		if err != nil {
			return nil, err
		}
		defer release()

		if err := s.checkGuideFree(ctx, entity, input.Interval, ""); err != nil {
			return nil, err
		}
	}

	booking := &domain.Booking{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		EntityRef: input.EntityRef,
		Interval:  input.Interval,
		GroupSize: input.GroupSize,
		State:     domain.BookingStatePending,
		Pricing:   price(entity, input.Interval, input.GroupSize),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Note != "" {
		booking.Messages = []domain.Message{{From: input.UserID, Content: input.Note, SentAt: now}}
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("booking created",
		logger.String("booking_id", booking.ID),
		logger.String("entity_id", entity.ID),
		logger.String("user_id", input.UserID),
	)

	go s.notifier.NotifyBookingCreated(context.WithoutCancel(ctx), booking, entity)

	return booking, nil
}

// Confirm moves Pending to Confirmed. For guide bookings the interval is
// reserved on the schedule in the same step; if persisting the state then
// fails, the reservation is rolled back before returning.
func (s *BookingService) Confirm(ctx context.Context, id string, paid bool) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if b.State != domain.BookingStatePending {
		return nil, &domain.InvalidStateError{Current: b.State, Requested: "confirm"}
	}

	entity, err := s.resolveEntity(b.EntityRef)
	if err != nil {
		return nil, err
	}

	reserved := false
	if entity.Kind == domain.KindGuide {
		release, err := s.locks.Acquire(ctx, entity.ID)
		if err != nil {
			return nil, err
		}
		defer release()

		if err := s.checkGuideFree(ctx, entity, b.Interval, ""); err != nil {
			return nil, err
		}
		if err := s.schedule.Reserve(ctx, entity.ID, b.ID, b.Interval); err != nil {
			return nil, fmt.Errorf("reserve interval: %w", err)
		}
		reserved = true
	}

	b.State = domain.BookingStateConfirmed
	if paid {
		b.Pricing.PaymentStatus = domain.PaymentPaid
	}
	b.UpdatedAt = s.clock.Now()

	if err := s.bookings.Update(ctx, b, domain.BookingStatePending); err != nil {
		if reserved {
			if relErr := s.schedule.Release(ctx, b.ID); relErr != nil {
				s.logger.Error("failed to roll back reservation",
					logger.String("booking_id", b.ID),
					logger.String("error", relErr.Error()),
				)
			}
		}
		return nil, fmt.Errorf("confirm booking: %w", err)
	}

	s.logger.Info("booking confirmed",
		logger.String("booking_id", b.ID),
		logger.String("entity_id", entity.ID),
	)

	go s.notifier.NotifyBookingConfirmed(context.WithoutCancel(ctx), b, entity)

	return b, nil
}

// Cancel moves Pending or Confirmed to Cancelled, releases any reserved
// interval and quotes the refund per policy. PaymentStatus moves to
// Refunded only when the caller confirms the refund went through.
func (s *BookingService) Cancel(ctx context.Context, id string, refundConfirmed bool) (*domain.Booking, *domain.RefundQuote, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get booking: %w", err)
	}
	if b.State == domain.BookingStateCancelled || b.State == domain.BookingStateCompleted {
		return nil, nil, &domain.InvalidStateError{Current: b.State, Requested: "cancel"}
	}

	released := false
	if b.HoldsReservation() {
		release, err := s.locks.Acquire(ctx, b.EntityRef.ID)
		if err != nil {
			return nil, nil, err
		}
		defer release()

		// Release before the state flip: a flip that then fails can put the
		// reservation back, while a cancelled booking with an orphaned
		// reservation has no transition left to release it.
		if err := s.schedule.Release(ctx, b.ID); err != nil {
			return nil, nil, fmt.Errorf("release interval: %w", err)
		}
		released = true
	}

	percent := s.refund.Percent(b.Interval.Start.Sub(s.clock.Now()))
	quote := &domain.RefundQuote{
		Amount:   b.Pricing.TotalPrice * float64(percent) / 100,
		Percent:  percent,
		Currency: b.Pricing.Currency,
	}

	prev := b.State
	b.State = domain.BookingStateCancelled
	if refundConfirmed && b.Pricing.PaymentStatus == domain.PaymentPaid {
		b.Pricing.PaymentStatus = domain.PaymentRefunded
	}
	b.UpdatedAt = s.clock.Now()

	if err := s.bookings.Update(ctx, b, prev); err != nil {
		if released {
			if resErr := s.schedule.Reserve(ctx, b.EntityRef.ID, b.ID, b.Interval); resErr != nil {
				s.logger.Error("failed to restore reservation",
					logger.String("booking_id", b.ID),
					logger.String("error", resErr.Error()),
				)
			}
		}
		return nil, nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.logger.Info("booking cancelled",
		logger.String("booking_id", b.ID),
		logger.Int("refund_percent", percent),
	)

	if entity, ok := s.catalog.Get(b.EntityRef.ID); ok {
		go s.notifier.NotifyBookingCancelled(context.WithoutCancel(ctx), b, entity)
	}

	return b, quote, nil
}

// Reschedule moves a Confirmed booking to a new interval. The booking is
// first claimed through the ReschedulePending sub-state, so of two
// concurrent reschedules exactly one wins the compare-and-swap and the
// other fails with a ConflictError instead of silently overwriting it. The
// old interval is released and the new one reserved in a single schedule
// transaction; the booking's own interval is excluded from the conflict
// check.
func (s *BookingService) Reschedule(ctx context.Context, id string, newIv domain.Interval) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	switch b.State {
	case domain.BookingStateConfirmed:
	case domain.BookingStateReschedulePending:
		return nil, &domain.ConflictError{Resource: "booking " + b.ID}
	default:
		return nil, &domain.InvalidStateError{Current: b.State, Requested: "reschedule"}
	}

	now := s.clock.Now()
	if err := validateInterval(newIv, now); err != nil {
		return nil, err
	}

	entity, err := s.resolveEntity(b.EntityRef)
	if err != nil {
		return nil, err
	}

	b.State = domain.BookingStateReschedulePending
	b.UpdatedAt = now
	if err := s.bookings.Update(ctx, b, domain.BookingStateConfirmed); err != nil {
		return nil, fmt.Errorf("claim booking for reschedule: %w", err)
	}

	oldIv := b.Interval
	swapped := false
	if entity.Kind == domain.KindGuide {
		release, err := s.locks.Acquire(ctx, entity.ID)
		if err != nil {
			s.unclaimReschedule(ctx, b)
			return nil, err
		}
		defer release()

		if err := s.checkGuideFree(ctx, entity, newIv, b.ID); err != nil {
			s.unclaimReschedule(ctx, b)
			return nil, err
		}
		if err := s.schedule.Swap(ctx, entity.ID, b.ID, newIv); err != nil {
			s.unclaimReschedule(ctx, b)
			return nil, fmt.Errorf("swap interval: %w", err)
		}
		swapped = true
	}

	b.Interval = newIv
	b.Pricing = reprice(b.Pricing, entity, newIv, b.GroupSize)
	b.State = domain.BookingStateConfirmed
	b.UpdatedAt = s.clock.Now()

	if err := s.bookings.Update(ctx, b, domain.BookingStateReschedulePending); err != nil {
		if swapped {
			if revErr := s.schedule.Swap(ctx, entity.ID, b.ID, oldIv); revErr != nil {
				s.logger.Error("failed to revert interval swap",
					logger.String("booking_id", b.ID),
					logger.String("error", revErr.Error()),
				)
			}
		}
		return nil, fmt.Errorf("reschedule booking: %w", err)
	}

	s.logger.Info("booking rescheduled",
		logger.String("booking_id", b.ID),
		logger.String("new_interval", newIv.String()),
	)

	return b, nil
}

// unclaimReschedule returns a claimed booking to Confirmed after a failed
// reschedule attempt. Must be called before the interval is mutated.
func (s *BookingService) unclaimReschedule(ctx context.Context, b *domain.Booking) {
	b.State = domain.BookingStateConfirmed
	b.UpdatedAt = s.clock.Now()
	if err := s.bookings.Update(ctx, b, domain.BookingStateReschedulePending); err != nil {
		s.logger.Error("failed to unclaim booking after reschedule",
			logger.String("booking_id", b.ID),
			logger.String("error", err.Error()),
		)
	}
}

// Complete is pure bookkeeping once the interval has elapsed; the
// reservation stays consumed.
func (s *BookingService) Complete(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if b.State != domain.BookingStateConfirmed {
		return nil, &domain.InvalidStateError{Current: b.State, Requested: "complete"}
	}
	if s.clock.Now().Before(b.Interval.End) {
		return nil, &domain.InvalidStateError{Current: b.State, Requested: "complete", Hint: "interval has not ended"}
	}

	b.State = domain.BookingStateCompleted
	b.UpdatedAt = s.clock.Now()
	if err := s.bookings.Update(ctx, b, domain.BookingStateConfirmed); err != nil {
		return nil, fmt.Errorf("complete booking: %w", err)
	}
	return b, nil
}

// Delete removes a booking physically. Only Pending and Cancelled bookings
// may be deleted; anything further along must be cancelled first.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}
	if b.State != domain.BookingStatePending && b.State != domain.BookingStateCancelled {
		return &domain.InvalidStateError{Current: b.State, Requested: "delete", Hint: "cancel instead"}
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// AddMessage appends to the booking's communication log. The log is
// append-only; entries are never edited or removed.
func (s *BookingService) AddMessage(ctx context.Context, id, from, content string) (*domain.Booking, error) {
	if from == "" {
		return nil, &domain.ValidationError{Field: "from", Reason: "required"}
	}
	if content == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "required"}
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b.Messages = append(b.Messages, domain.Message{From: from, Content: content, SentAt: s.clock.Now()})
	b.UpdatedAt = s.clock.Now()
	if err := s.bookings.Update(ctx, b, b.State); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context, q ports.BookingQuery) ([]*domain.Booking, error) {
	return s.bookings.List(ctx, q)
}

// ExpireStalePending cancels pending bookings older than the pending TTL.
// Pending bookings hold no reservation, so this is a bulk state flip.
func (s *BookingService) ExpireStalePending(ctx context.Context) ([]*domain.Booking, error) {
	expired, err := s.bookings.CancelStalePending(ctx, s.pendingTTL)
	if err != nil {
		return nil, fmt.Errorf("expire pending: %w", err)
	}
	if len(expired) > 0 {
		s.logger.Info("stale pending bookings cancelled", logger.Int("count", len(expired)))
	}
	return expired, nil
}

// CompleteElapsed flips confirmed bookings whose interval has passed.
func (s *BookingService) CompleteElapsed(ctx context.Context) ([]*domain.Booking, error) {
	completed, err := s.bookings.CompleteElapsed(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("complete elapsed: %w", err)
	}
	if len(completed) > 0 {
		s.logger.Info("elapsed bookings completed", logger.Int("count", len(completed)))
	}
	return completed, nil
}

func (s *BookingService) resolveEntity(ref domain.EntityRef) (*domain.Entity, error) {
	entity, ok := s.catalog.Get(ref.ID)
	if !ok || entity.Kind != ref.Kind {
		return nil, &domain.NotFoundError{EntityType: string(ref.Kind), ID: ref.ID}
	}
	return entity, nil
}

// checkGuideFree evaluates the availability engine over the guide's weekly
// template and the live reservation set. Must be called under the guide's
// lock.
func (s *BookingService) checkGuideFree(ctx context.Context, guide *domain.Entity, iv domain.Interval, excludeBookingID string) error {
	booked, err := s.schedule.Booked(ctx, guide.ID)
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}

	sched := *guide.Schedule
	sched.Booked = booked

	chk := availability.IsFree(&sched, iv, excludeBookingID)
	switch {
	case chk.Free:
		return nil
	case chk.Conflict != nil:
		conflicting := chk.Conflict.Interval()
		return &domain.ConflictError{Resource: "guide " + guide.ID, ConflictingInterval: &conflicting}
	default:
		return &domain.ConflictError{Resource: "guide " + guide.ID + " schedule"}
	}
}

func validateInterval(iv domain.Interval, now time.Time) error {
	if iv.Start.IsZero() || iv.End.IsZero() {
		return &domain.ValidationError{Field: "interval", Reason: "start and end are required"}
	}
	if !iv.Start.Before(iv.End) {
		return &domain.ValidationError{Field: "interval", Reason: "end must be after start"}
	}
	if !iv.Start.After(now) {
		return &domain.ValidationError{Field: "interval", Reason: "start must be in the future"}
	}
	return nil
}

// price computes the initial pricing: guides bill by the hour, everything
// else by base price per person.
func price(e *domain.Entity, iv domain.Interval, groupSize int) domain.Pricing {
	p := domain.Pricing{
		BasePrice:     e.BasePrice,
		Currency:      e.Currency,
		PaymentStatus: domain.PaymentUnpaid,
	}
	if e.Kind == domain.KindGuide && e.Schedule != nil {
		p.BasePrice = e.Schedule.HourlyRate
		p.Currency = e.Schedule.Currency
		p.TotalPrice = e.Schedule.HourlyRate * iv.Duration().Hours()
		return p
	}
	p.TotalPrice = e.BasePrice * float64(groupSize)
	return p
}

// reprice keeps the payment status while recomputing totals for a new
// interval.
func reprice(old domain.Pricing, e *domain.Entity, iv domain.Interval, groupSize int) domain.Pricing {
	p := price(e, iv, groupSize)
	p.PaymentStatus = old.PaymentStatus
	return p
}
