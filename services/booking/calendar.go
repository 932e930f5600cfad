package booking

import (
	"time"

	"barberly/models"
)

// CalendarResolver enumerates the structurally legal appointment start times
// for one professional on one day. It is deliberately booking-agnostic: the
// conflict guard filters out already-reserved intervals afterwards.
type CalendarResolver struct {
	GranularityMinutes int
}

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// ResolveSlots returns candidate start times as minutes from midnight, stepped
// at the configured granularity. A closed weekday, a holiday, or a duration
// longer than the open window all yield an empty set, not an error.
func (r CalendarResolver) ResolveSlots(
	date time.Time,
	hours *models.BusinessHours,
	holiday *models.Holiday,
	totalDurationMinutes int,
	now time.Time,
) ([]int, error) {
	if totalDurationMinutes <= 0 {
		return nil, NewInvalidDuration(totalDurationMinutes)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, NewInvalidDateTime("date is in the past")
	}

	if hours == nil || !hours.Active || holiday != nil {
		return nil, nil
	}

	step := r.GranularityMinutes
	if step <= 0 {
		step = 15
	}

	var slots []int
	for start := hours.OpensAt; start+totalDurationMinutes <= hours.ClosesAt; start += step {
		end := start + totalDurationMinutes

		if hours.HasBreak() && intervalsOverlap(start, end, hours.BreakStart, hours.BreakEnd) {
			continue
		}

		// For today, skip slots whose start has already passed.
		if day.Equal(today) && !day.Add(time.Duration(start)*time.Minute).After(now) {
			continue
		}

		slots = append(slots, start)
	}
	return slots, nil
}

// ContainsSlot reports whether startMinutes is one of the resolved slots.
func ContainsSlot(slots []int, startMinutes int) bool {
	for _, s := range slots {
		if s == startMinutes {
			return true
		}
	}
	return false
}

// MinutesFromMidnight converts an absolute time to the minute offset within
// its own day.
func MinutesFromMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
