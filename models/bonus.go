package models

import "time"

// BonusType enumerates the bonus buckets a user accumulates points in.
type BonusType string

const (
	BonusBookingPoints BonusType = "BOOKING_POINTS"
	BonusLoyalty       BonusType = "LOYALTY"
)

// UserBonus is the accumulating point balance of one user for one bonus type.
type UserBonus struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Type      BonusType `bson:"type" json:"type"`
	Points    int       `bson:"points" json:"points"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BonusTransaction records a point grant, spend or refund tied to a booking,
// for auditability and reversal.
type BonusTransaction struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Type      BonusType `bson:"type" json:"type"`
	Points    int       `bson:"points" json:"points"` // positive = credit, negative = debit
	Kind      string    `bson:"kind" json:"kind"`     // "award", "redeem", "refund", "assign"
	BookingID string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
