package booking

import (
	"errors"
	"fmt"

	"barberly/utils"
)

// DomainError is the booking engine's error currency. Every rejection carries
// a machine-distinguishable code plus a human-readable message.
type DomainError = utils.ServiceError

func newError(kind, code, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewProfessionalNotFound(id string) error {
	return newError(utils.KindNotFound, "professionalNotFound", "professional %s not found or inactive", id)
}

func NewServiceNotFound(id string) error {
	return newError(utils.KindNotFound, "serviceNotFound", "service %s is not offered by this professional", id)
}

func NewBookingNotFound(id string) error {
	return newError(utils.KindNotFound, "bookingNotFound", "booking %s not found", id)
}

func NewInvalidDuration(minutes int) error {
	return newError(utils.KindInvalidInput, "invalidDuration", "total duration must be positive, got %d minutes", minutes)
}

func NewInvalidDateTime(reason string) error {
	return newError(utils.KindInvalidInput, "invalidDateTime", "requested time is not bookable: %s", reason)
}

func NewTimeSlotAlreadyBooked() error {
	return newError(utils.KindConflict, "timeSlotAlreadyBooked", "the requested time slot is no longer available")
}

func NewInvalidCoupon(code, reason string) error {
	return newError(utils.KindInvalidInput, "invalidCoupon", "coupon %q cannot be used: %s", code, reason)
}

func NewCouponNotApplicable(code, reason string) error {
	return newError(utils.KindInvalidInput, "couponNotApplicable", "coupon %q does not apply to this booking: %s", code, reason)
}

func NewCouponBonusConflict() error {
	return newError(utils.KindInvalidInput, "couponBonusConflict", "a coupon and bonus points cannot be combined in one booking")
}

func NewInsufficientBonusPoints(balance, min int) error {
	return newError(utils.KindInvalidInput, "insufficientBonusPoints", "balance of %d points is below the redemption minimum of %d", balance, min)
}

func NewInvalidBonusRedemption(reason string) error {
	return newError(utils.KindInvalidInput, "invalidBonusRedemption", "bonus points cannot be redeemed: %s", reason)
}

func NewInvalidTransition(from, to string) error {
	return newError(utils.KindStateError, "invalidTransition", "booking status cannot change from %s to %s", from, to)
}

func NewForbidden(reason string) error {
	return newError(utils.KindForbidden, "forbidden", "%s", reason)
}

// ErrKind extracts the domain error kind, or "" for unexpected failures.
func ErrKind(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsConflict reports whether err is the retryable slot-conflict kind.
func IsConflict(err error) bool {
	return ErrKind(err) == utils.KindConflict
}
