package booking

import (
	"fmt"
	"time"
)

// Two bookings for the same professional conflict iff their intervals overlap
// and neither is canceled. Touching intervals (a.end == b.start) do not
// conflict.
func intervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// TimesOverlap is the absolute-time form of the overlap rule.
func TimesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// SlotKeys splits a [start, end) interval into one reservation key per
// granularity step, walking from the actual start rather than an absolute
// grid. Every valid booking for a professional starts on the same
// opening-time grid, so overlapping intervals still collide on a key while
// touching ones never do, even when the business opens off the hour. Each key
// is unique per (professional, step) under the reservations collection's
// unique index, so two concurrent bookings touching the same step cannot both
// commit: the loser gets a duplicate-key error and is reported as a slot
// conflict.
func SlotKeys(start, end time.Time, granularityMinutes int) []string {
	if granularityMinutes <= 0 {
		granularityMinutes = 15
	}
	step := time.Duration(granularityMinutes) * time.Minute

	var keys []string
	for t := start; t.Before(end); t = t.Add(step) {
		keys = append(keys, fmt.Sprintf("%s#%04d", t.UTC().Format(DateLayout), t.UTC().Hour()*60+t.UTC().Minute()))
	}
	return keys
}
