package models

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCanceled  BookingStatus = "CANCELED"
)

// Booking is the aggregate root for a client appointment with a professional.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	ClientID       string        `bson:"client_id" json:"client_id"`
	ProfessionalID string        `bson:"professional_id" json:"professional_id"`
	Start          time.Time     `bson:"start" json:"start"`
	End            time.Time     `bson:"end" json:"end"` // start + sum of item durations
	Status         BookingStatus `bson:"status" json:"status"`
	Items          []BookingItem `bson:"items" json:"items"`
	Subtotal       float64       `bson:"subtotal" json:"subtotal"`
	Discount       float64       `bson:"discount" json:"discount"`
	TotalAmount    float64       `bson:"total_amount" json:"total_amount"`
	DiscountSource string        `bson:"discount_source,omitempty" json:"discount_source,omitempty"` // "", "coupon", "bonus_points"
	CouponCode     string        `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	PointsConsumed int           `bson:"points_consumed,omitempty" json:"points_consumed,omitempty"`
	Notes          string        `bson:"notes,omitempty" json:"notes,omitempty"`
	ConfirmedAt    *time.Time    `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	CanceledAt     *time.Time    `bson:"canceled_at,omitempty" json:"canceled_at,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}

// BookingItem snapshots one service offering at booking time. Prices and
// durations are copied so historical totals stay stable when the professional
// later changes their offerings.
type BookingItem struct {
	ServiceID       string  `bson:"service_id" json:"service_id"`
	OfferingID      string  `bson:"offering_id" json:"offering_id"`
	UnitPrice       float64 `bson:"unit_price" json:"unit_price"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
}
