package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barberly/models"
)

func futureBooking(status models.BookingStatus) *models.Booking {
	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.Local)
	return &models.Booking{
		ID:             "bkg-1",
		ClientID:       "user-1",
		ProfessionalID: "pro-1",
		Start:          start,
		End:            start.Add(45 * time.Minute),
		Status:         status,
		Subtotal:       40.00,
		TotalAmount:    40.00,
	}
}

func TestTransitionTable(t *testing.T) {
	lc := Lifecycle{PointsRate: 1.0}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		from, to models.BookingStatus
		ok       bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCanceled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingCompleted, true},
		{models.BookingConfirmed, models.BookingCanceled, true},
		{models.BookingConfirmed, models.BookingPending, false},
		{models.BookingCompleted, models.BookingCanceled, false},
		{models.BookingCanceled, models.BookingPending, false},
		{models.BookingPending, models.BookingPending, false},
	}
	for _, tt := range tests {
		b := futureBooking(tt.from)
		_, err := lc.Apply(b, tt.to, now)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
		} else {
			require.Error(t, err, "%s -> %s", tt.from, tt.to)
			assert.Equal(t, "invalidTransition", errCode(err))
		}
	}
}

func TestConfirmStampsTimestamp(t *testing.T) {
	lc := Lifecycle{}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	b := futureBooking(models.BookingPending)

	effects, err := lc.Apply(b, models.BookingConfirmed, now)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	require.NotNil(t, b.ConfirmedAt)
	assert.Equal(t, now, *b.ConfirmedAt)
	assert.Zero(t, *effects)
}

func TestCancelReleasesEverything(t *testing.T) {
	lc := Lifecycle{}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	b := futureBooking(models.BookingConfirmed)
	b.DiscountSource = string(models.DiscountSourceCoupon)
	b.CouponCode = "CORTE20"

	effects, err := lc.Apply(b, models.BookingCanceled, now)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCanceled, b.Status)
	require.NotNil(t, b.CanceledAt)
	assert.True(t, effects.ReleaseReservation)
	assert.Equal(t, "CORTE20", effects.ReleaseCouponCode)
	assert.Zero(t, effects.RefundPoints)
}

func TestCancelRefundsConsumedPoints(t *testing.T) {
	lc := Lifecycle{}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	b := futureBooking(models.BookingPending)
	b.DiscountSource = string(models.DiscountSourcePoints)
	b.PointsConsumed = 150

	effects, err := lc.Apply(b, models.BookingCanceled, now)
	require.NoError(t, err)
	assert.Equal(t, 150, effects.RefundPoints)
	assert.Empty(t, effects.ReleaseCouponCode)
}

func TestCancelAfterStartBlockedByDefault(t *testing.T) {
	b := futureBooking(models.BookingConfirmed)
	now := b.Start.Add(time.Minute)

	_, err := Lifecycle{}.Apply(b, models.BookingCanceled, now)
	require.Error(t, err)
	assert.Equal(t, "invalidTransition", errCode(err))
	assert.Equal(t, models.BookingConfirmed, b.Status)

	// With the override on, the same cancellation goes through.
	b = futureBooking(models.BookingConfirmed)
	_, err = Lifecycle{AllowPastCancel: true}.Apply(b, models.BookingCanceled, now)
	assert.NoError(t, err)
}

func TestCompleteAwardsFlooredPoints(t *testing.T) {
	lc := Lifecycle{PointsRate: 1.0}
	now := time.Date(2026, 9, 7, 11, 0, 0, 0, time.Local)

	b := futureBooking(models.BookingConfirmed)
	b.TotalAmount = 32.70

	effects, err := lc.Apply(b, models.BookingCompleted, now)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, b.Status)
	assert.Equal(t, 32, effects.AwardPoints)
	assert.False(t, effects.ReleaseReservation)
}
