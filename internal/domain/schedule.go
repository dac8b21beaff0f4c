package domain

import (
	"fmt"
	"time"
)

// Interval is a half-open time span [Start, End): back-to-back bookings
// touching at the boundary do not conflict.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) IsZero() bool {
	return i.Start.IsZero() && i.End.IsZero()
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// BookedInterval is one reserved span on a guide's schedule. The owning
// booking id lets a reschedule exclude its own reservation from conflict
// checks.
type BookedInterval struct {
	BookingID string    `json:"booking_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

func (b BookedInterval) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// DayWindow is the published open hours for one weekday, minutes from
// midnight UTC. A weekday absent from the template means unavailable.
type DayWindow struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// ParseDayWindow reads the "09:00-18:00" form the catalog seeds use.
func ParseDayWindow(s string) (DayWindow, error) {
	var sh, sm, eh, em int
	if _, err := fmt.Sscanf(s, "%d:%d-%d:%d", &sh, &sm, &eh, &em); err != nil {
		return DayWindow{}, fmt.Errorf("parse day window %q: %w", s, err)
	}
	w := DayWindow{StartMinute: sh*60 + sm, EndMinute: eh*60 + em}
	if w.StartMinute < 0 || w.EndMinute > 24*60 || w.StartMinute >= w.EndMinute {
		return DayWindow{}, fmt.Errorf("day window %q out of range", s)
	}
	return w, nil
}

// WeeklyTemplate maps weekdays to open hours.
type WeeklyTemplate map[time.Weekday]DayWindow

// AvailabilitySchedule is owned by exactly one guide. BookedIntervals are
// kept non-overlapping by the booking state machine, never by the schedule
// itself.
type AvailabilitySchedule struct {
	Weekly     WeeklyTemplate   `json:"weekly"`
	Booked     []BookedInterval `json:"booked,omitempty"`
	HourlyRate float64          `json:"hourly_rate"`
	Currency   string           `json:"currency"`
}
