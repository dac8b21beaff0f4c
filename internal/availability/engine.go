// Package availability evaluates a guide's recurring weekly schedule
// against already-booked intervals.
package availability

import (
	"time"

	"github.com/deccantrails/tourbooker/internal/domain"
)

// Check is the result of a free/busy query. When Free is false exactly one
// of Conflict or OutsideHours explains why.
type Check struct {
	Free         bool
	OutsideHours bool
	Conflict     *domain.BookedInterval
}

// IsFree reports whether the schedule can take iv: every day-segment of the
// interval must fit inside that weekday's published window, and iv must not
// overlap any booked interval. Overlap is half-open, so a booking starting
// exactly where another ends does not conflict. excludeBookingID removes a
// booking's own reservation from the check (used by reschedule).
func IsFree(s *domain.AvailabilitySchedule, iv domain.Interval, excludeBookingID string) Check {
	if !coveredByTemplate(s.Weekly, iv) {
		return Check{OutsideHours: true}
	}
	for i := range s.Booked {
		b := s.Booked[i]
		if b.BookingID == excludeBookingID && excludeBookingID != "" {
			continue
		}
		if iv.Overlaps(b.Interval()) {
			return Check{Conflict: &b}
		}
	}
	return Check{Free: true}
}

// coveredByTemplate walks the interval day by day; each day's segment must
// lie inside that weekday's window.
func coveredByTemplate(tpl domain.WeeklyTemplate, iv domain.Interval) bool {
	if !iv.Start.Before(iv.End) {
		return false
	}
	start := iv.Start.UTC()
	end := iv.End.UTC()

	for day := startOfDay(start); day.Before(end); day = day.AddDate(0, 0, 1) {
		window, ok := tpl[day.Weekday()]
		if !ok {
			return false
		}
		segStart := maxTime(start, day)
		segEnd := minTime(end, day.AddDate(0, 0, 1))

		open := day.Add(time.Duration(window.StartMinute) * time.Minute)
		close := day.Add(time.Duration(window.EndMinute) * time.Minute)
		if segStart.Before(open) || segEnd.After(close) {
			return false
		}
	}
	return true
}

// NextFreeSlot scans forward day by day up to horizonDays and returns the
// first free instant inside a published window that is not fully consumed
// by booked intervals. The returned instant is never before from, so a
// mid-day query does not point at time already gone. The second return is
// false when the horizon is exhausted.
func NextFreeSlot(s *domain.AvailabilitySchedule, from time.Time, horizonDays int) (time.Time, bool) {
	from = from.UTC()
	day := startOfDay(from)
	for i := 0; i < horizonDays; i++ {
		window, ok := s.Weekly[day.Weekday()]
		if ok {
			if at, free := firstFreeTime(s.Booked, day, window, from); free {
				return at, true
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// AvailableOn reports whether the guide has any free time within the
// published hours of the given day.
func AvailableOn(s *domain.AvailabilitySchedule, day time.Time) bool {
	d := startOfDay(day.UTC())
	window, ok := s.Weekly[d.Weekday()]
	if !ok {
		return false
	}
	_, free := firstFreeTime(s.Booked, d, window, d)
	return free
}

// firstFreeTime sweeps the day's window past booked intervals and returns
// the first uncovered instant, or false when bookings cover the window.
// The sweep starts no earlier than notBefore.
func firstFreeTime(booked []domain.BookedInterval, day time.Time, w domain.DayWindow, notBefore time.Time) (time.Time, bool) {
	open := day.Add(time.Duration(w.StartMinute) * time.Minute)
	close := day.Add(time.Duration(w.EndMinute) * time.Minute)

	cursor := maxTime(open, notBefore)
	for cursor.Before(close) {
		advanced := false
		for _, b := range booked {
			if !b.Start.After(cursor) && b.End.After(cursor) {
				cursor = b.End
				advanced = true
			}
		}
		if !advanced {
			return cursor, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
