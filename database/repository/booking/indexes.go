package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing the booking collections. The
// unique (professional_id, slot_key) index on slot_reservations is the
// conflict guard's correctness anchor: without it concurrent bookings for the
// same interval could both commit.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("professional_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "start", Value: -1}},
			Options: options.Index().SetName("client_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "end", Value: 1}},
			Options: options.Index().SetName("status_end_idx"),
		},
	}
	if _, err := r.bookings.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	reservationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "slot_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_professional_slot"),
		},
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetName("booking_idx"),
		},
	}
	if _, err := r.reservations.Indexes().CreateMany(ctx, reservationIndexes); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}

	redemptionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_booking"),
		},
		{
			Keys:    bson.D{{Key: "coupon_id", Value: 1}},
			Options: options.Index().SetName("coupon_idx"),
		},
	}
	if _, err := r.redemptions.Indexes().CreateMany(ctx, redemptionIndexes); err != nil {
		return fmt.Errorf("failed to create redemption indexes: %w", err)
	}

	return nil
}
