package models

import (
	"strings"
	"time"
)

// NormalizeCouponCode canonicalizes a code for lookup and storage.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountType enumerates how a coupon's value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
	DiscountFree       DiscountType = "FREE"
)

// CouponScope restricts which bookings a coupon applies to.
type CouponScope string

const (
	ScopeGlobal       CouponScope = "GLOBAL"
	ScopeService      CouponScope = "SERVICE"
	ScopeProfessional CouponScope = "PROFESSIONAL"
)

// Coupon is an admin-managed discount code.
type Coupon struct {
	ID              string       `bson:"id" json:"id"`
	Code            string       `bson:"code" json:"code"` // stored upper-cased
	Type            DiscountType `bson:"type" json:"type"`
	Scope           CouponScope  `bson:"scope" json:"scope"`
	ScopeTargetID   string       `bson:"scope_target_id,omitempty" json:"scope_target_id,omitempty"` // service or professional ID
	Value           float64      `bson:"value" json:"value"`                                         // percent for PERCENTAGE, amount for FIXED, ignored for FREE
	MaxUses         int          `bson:"max_uses,omitempty" json:"max_uses,omitempty"`               // 0 = unlimited
	Uses            int          `bson:"uses" json:"uses"`
	StartDate       time.Time    `bson:"start_date" json:"start_date"`
	EndDate         *time.Time   `bson:"end_date,omitempty" json:"end_date,omitempty"`
	MinBookingValue float64      `bson:"min_booking_value,omitempty" json:"min_booking_value,omitempty"`
	Active          bool         `bson:"active" json:"active"`
	CreatedAt       time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `bson:"updated_at" json:"updated_at"`
}

// CouponRedemption links a coupon use to a booking, for cap accounting and
// reversal on cancellation.
type CouponRedemption struct {
	ID        string    `bson:"id" json:"id"`
	CouponID  string    `bson:"coupon_id" json:"coupon_id"`
	BookingID string    `bson:"booking_id" json:"booking_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Amount    float64   `bson:"amount" json:"amount"`
	Reversed  bool      `bson:"reversed" json:"reversed"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
