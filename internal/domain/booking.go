package domain

import "time"

type BookingState string

const (
	BookingStatePending           BookingState = "pending"
	BookingStateConfirmed         BookingState = "confirmed"
	BookingStateReschedulePending BookingState = "reschedule_pending"
	BookingStateCancelled         BookingState = "cancelled"
	BookingStateCompleted         BookingState = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Pricing is owned exclusively by its booking.
type Pricing struct {
	BasePrice     float64       `json:"base_price"`
	TotalPrice    float64       `json:"total_price"`
	Currency      string        `json:"currency"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// Message is one entry of a booking's append-only communication log.
type Message struct {
	From    string    `json:"from"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// Booking is one reservation of a bookable entity. It is mutated only
// through the named state machine transitions; there is no field-level
// update path.
type Booking struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	EntityRef EntityRef    `json:"entity_ref"`
	Interval  Interval     `json:"interval"`
	GroupSize int          `json:"group_size"`
	State     BookingState `json:"state"`
	Pricing   Pricing      `json:"pricing"`
	Messages  []Message    `json:"messages,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// HoldsReservation reports whether this booking currently owns a reserved
// interval on a guide schedule.
func (b *Booking) HoldsReservation() bool {
	return b.EntityRef.Kind == KindGuide &&
		(b.State == BookingStateConfirmed || b.State == BookingStateReschedulePending)
}

// RefundPolicy maps time-until-start to a refund percentage.
type RefundPolicy struct {
	Cutoff        time.Duration
	BeforePercent int
	AfterPercent  int
}

func (p RefundPolicy) Percent(untilStart time.Duration) int {
	if untilStart >= p.Cutoff {
		return p.BeforePercent
	}
	return p.AfterPercent
}

// RefundQuote reports what a cancellation returns to the user.
type RefundQuote struct {
	Amount   float64 `json:"amount"`
	Percent  int     `json:"percent"`
	Currency string  `json:"currency"`
}
