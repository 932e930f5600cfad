package booking

import (
	"math"
	"time"

	"barberly/models"
)

// transitions is the closed set of legal status changes. Anything absent from
// this table is rejected, including self-transitions and moves out of the
// terminal states COMPLETED and CANCELED.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCanceled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCanceled},
}

func canTransition(from, to models.BookingStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// LifecycleEffects describe the monetary side effects a status change must
// apply atomically with the status write.
type LifecycleEffects struct {
	RefundPoints       int    // points returned to the client on cancellation
	ReleaseCouponCode  string // coupon whose use counter is decremented on cancellation
	AwardPoints        int    // booking points granted to the client on completion
	ReleaseReservation bool   // free the reserved slot keys on cancellation
}

// Lifecycle validates and applies booking status transitions.
type Lifecycle struct {
	// AllowPastCancel permits canceling a booking whose start time has
	// already elapsed. Shops that bill no-shows keep this off.
	AllowPastCancel bool
	// PointsRate is how many booking points one unit of currency earns on
	// completion; the grant is floored to whole points.
	PointsRate float64
}

// Apply mutates b to the requested status, stamping timestamps, and returns
// the side effects the store must commit together with the update.
func (l Lifecycle) Apply(b *models.Booking, to models.BookingStatus, now time.Time) (*LifecycleEffects, error) {
	if !canTransition(b.Status, to) {
		return nil, NewInvalidTransition(string(b.Status), string(to))
	}

	effects := &LifecycleEffects{}

	switch to {
	case models.BookingConfirmed:
		b.ConfirmedAt = &now

	case models.BookingCanceled:
		if !l.AllowPastCancel && b.Start.Before(now) {
			return nil, NewInvalidTransition(string(b.Status), string(to))
		}
		b.CanceledAt = &now
		effects.ReleaseReservation = true
		effects.RefundPoints = b.PointsConsumed
		if b.DiscountSource == string(models.DiscountSourceCoupon) && b.CouponCode != "" {
			effects.ReleaseCouponCode = b.CouponCode
		}

	case models.BookingCompleted:
		effects.AwardPoints = int(math.Floor(b.TotalAmount * l.PointsRate))
	}

	b.Status = to
	b.UpdatedAt = now
	return effects, nil
}
