package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical", 600, 630, 600, 630, true},
		{"partial overlap", 600, 630, 615, 645, true},
		{"containment", 600, 660, 615, 630, true},
		{"touching end to start", 600, 630, 630, 660, false},
		{"touching start to end", 630, 660, 600, 630, false},
		{"disjoint", 600, 630, 700, 730, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, intervalsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestSlotKeys(t *testing.T) {
	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	keys := SlotKeys(start, end, 15)
	assert.Equal(t, []string{
		"2026-09-07#0600",
		"2026-09-07#0615",
		"2026-09-07#0630",
	}, keys)
}

func TestSlotKeysOffGridStart(t *testing.T) {
	// A business opening at 09:10 books on a 09:10 + k*15min grid. Keys must
	// follow that grid, not the absolute quarter-hour one.
	start := time.Date(2026, 9, 7, 9, 10, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	keys := SlotKeys(start, end, 15)
	assert.Equal(t, []string{
		"2026-09-07#0550",
		"2026-09-07#0565",
	}, keys)

	// The back-to-back appointment claims a disjoint key set.
	next := SlotKeys(end, end.Add(30*time.Minute), 15)
	assert.Equal(t, []string{
		"2026-09-07#0580",
		"2026-09-07#0595",
	}, next)
	for _, k := range keys {
		assert.NotContains(t, next, k)
	}
}

func TestSlotKeysAdjacentBookingsShareNoKeys(t *testing.T) {
	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	mid := start.Add(30 * time.Minute)
	end := mid.Add(30 * time.Minute)

	first := SlotKeys(start, mid, 15)
	second := SlotKeys(mid, end, 15)

	seen := map[string]bool{}
	for _, k := range first {
		seen[k] = true
	}
	for _, k := range second {
		assert.False(t, seen[k], "key %s claimed by both adjacent bookings", k)
	}
}
