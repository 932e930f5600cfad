package handlers

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Booking      *BookingHandler
	Professional *ProfessionalHandler
	Coupon       *CouponHandler
	Bonus        *BonusHandler
	User         *UserHandler
}
