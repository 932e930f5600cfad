package models

// DiscountSource tags which discount path priced a booking.
type DiscountSource string

const (
	DiscountSourceNone   DiscountSource = ""
	DiscountSourceCoupon DiscountSource = "coupon"
	DiscountSourcePoints DiscountSource = "bonus_points"
)

// DiscountRequest is the tagged variant selecting at most one discount path.
// Exactly one of Coupon / UseBonusPoints may be set; both set is a hard
// business-rule violation rejected before any lookup.
type DiscountRequest struct {
	CouponCode     string `json:"coupon_code,omitempty"`
	UseBonusPoints bool   `json:"use_bonus_points,omitempty"`
}

// None reports whether no discount was requested.
func (r DiscountRequest) None() bool {
	return r.CouponCode == "" && !r.UseBonusPoints
}

// PriceBreakdown is the priced result of a booking request.
type PriceBreakdown struct {
	Subtotal       float64        `json:"subtotal"`
	Discount       float64        `json:"discount"`
	FinalAmount    float64        `json:"final_amount"`
	DiscountSource DiscountSource `json:"discount_source,omitempty"`
	CouponCode     string         `json:"coupon_code,omitempty"`
	PointsConsumed int            `json:"points_consumed,omitempty"`
}
