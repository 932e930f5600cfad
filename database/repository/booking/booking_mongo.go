package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"barberly/models"
)

type reservationDoc struct {
	ProfessionalID string `bson:"professional_id"`
	SlotKey        string `bson:"slot_key"`
	BookingID      string `bson:"booking_id"`
}

func (r *mongoBookingRepo) CreateWithReservation(
	ctx context.Context,
	booking *models.Booking,
	slotKeys []string,
	effects *CreateEffects,
) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		docs := make([]interface{}, len(slotKeys))
		for i, key := range slotKeys {
			docs[i] = reservationDoc{
				ProfessionalID: booking.ProfessionalID,
				SlotKey:        key,
				BookingID:      booking.ID,
			}
		}
		if _, err := r.reservations.InsertMany(sc, docs, options.InsertMany().SetOrdered(true)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert reservations failed: %w", err)
		}

		if _, err := r.bookings.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		if effects != nil {
			if err := r.applyCreateEffects(sc, booking, effects); err != nil {
				return err
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}

// applyCreateEffects increments the coupon counter or debits bonus points with
// filter-guarded updates, so the shared counters are re-validated at commit
// time instead of trusting the earlier read.
func (r *mongoBookingRepo) applyCreateEffects(sc mongo.SessionContext, booking *models.Booking, effects *CreateEffects) error {
	now := time.Now()

	if effects.CouponID != "" {
		filter := bson.M{
			"id":     effects.CouponID,
			"active": true,
			"$or": bson.A{
				bson.M{"max_uses": bson.M{"$lte": 0}},
				bson.M{"$expr": bson.M{"$lt": bson.A{"$uses", "$max_uses"}}},
			},
		}
		res, err := r.coupons.UpdateOne(sc, filter, bson.M{
			"$inc": bson.M{"uses": 1},
			"$set": bson.M{"updated_at": now},
		})
		if err != nil {
			return fmt.Errorf("increment coupon uses failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrCouponExhausted
		}

		redemption := models.CouponRedemption{
			ID:        uuid.New().String(),
			CouponID:  effects.CouponID,
			BookingID: booking.ID,
			UserID:    booking.ClientID,
			Amount:    effects.DiscountAmount,
			CreatedAt: now,
		}
		if _, err := r.redemptions.InsertOne(sc, redemption); err != nil {
			return fmt.Errorf("insert coupon redemption failed: %w", err)
		}
	}

	if effects.PointsDebit > 0 {
		filter := bson.M{
			"user_id": booking.ClientID,
			"type":    models.BonusBookingPoints,
			"points":  bson.M{"$gte": effects.PointsDebit},
		}
		res, err := r.bonuses.UpdateOne(sc, filter, bson.M{
			"$inc": bson.M{"points": -effects.PointsDebit},
			"$set": bson.M{"updated_at": now},
		})
		if err != nil {
			return fmt.Errorf("debit bonus points failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrInsufficientPoints
		}

		txn := models.BonusTransaction{
			ID:        uuid.New().String(),
			UserID:    booking.ClientID,
			Type:      models.BonusBookingPoints,
			Points:    -effects.PointsDebit,
			Kind:      "redeem",
			BookingID: booking.ID,
			CreatedAt: now,
		}
		if _, err := r.bonusTxns.InsertOne(sc, txn); err != nil {
			return fmt.Errorf("insert bonus transaction failed: %w", err)
		}
	}

	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.bookings.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, booking *models.Booking, from models.BookingStatus, effects *StatusEffects) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// The stored status must still match the one the transition was
		// validated against. Same guard as the coupon cap and point debit:
		// the shared state is re-checked at commit time, so two racing
		// transitions cannot both apply their side effects.
		filter := bson.M{"id": booking.ID, "status": from}
		update := bson.M{"$set": bson.M{
			"status":       booking.Status,
			"confirmed_at": booking.ConfirmedAt,
			"canceled_at":  booking.CanceledAt,
			"updated_at":   booking.UpdatedAt,
		}}
		res, err := r.bookings.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("update booking status failed: %w", err)
		}
		if res.MatchedCount == 0 {
			if err := r.bookings.FindOne(sc, bson.M{"id": booking.ID}).Err(); err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return ErrStaleStatus
		}

		if effects == nil {
			return nil
		}
		return r.applyStatusEffects(sc, booking, effects)
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

func (r *mongoBookingRepo) applyStatusEffects(sc mongo.SessionContext, booking *models.Booking, effects *StatusEffects) error {
	now := time.Now()

	if effects.ReleaseReservation {
		if _, err := r.reservations.DeleteMany(sc, bson.M{"booking_id": booking.ID}); err != nil {
			return fmt.Errorf("release reservations failed: %w", err)
		}
	}

	if effects.ReleaseCouponCode != "" {
		// Give the use back so cancellation does not permanently consume
		// cap-limited inventory.
		filter := bson.M{"code": effects.ReleaseCouponCode, "uses": bson.M{"$gt": 0}}
		if _, err := r.coupons.UpdateOne(sc, filter, bson.M{
			"$inc": bson.M{"uses": -1},
			"$set": bson.M{"updated_at": now},
		}); err != nil {
			return fmt.Errorf("decrement coupon uses failed: %w", err)
		}
		if _, err := r.redemptions.UpdateOne(sc,
			bson.M{"booking_id": booking.ID, "reversed": false},
			bson.M{"$set": bson.M{"reversed": true}},
		); err != nil {
			return fmt.Errorf("reverse coupon redemption failed: %w", err)
		}
	}

	if effects.RefundPoints > 0 {
		if err := r.creditPoints(sc, booking.ClientID, effects.RefundPoints, "refund", booking.ID, now); err != nil {
			return err
		}
	}

	if effects.AwardPoints > 0 {
		if err := r.creditPoints(sc, booking.ClientID, effects.AwardPoints, "award", booking.ID, now); err != nil {
			return err
		}
	}

	return nil
}

func (r *mongoBookingRepo) creditPoints(sc mongo.SessionContext, userID string, points int, kind, bookingID string, now time.Time) error {
	filter := bson.M{"user_id": userID, "type": models.BonusBookingPoints}
	update := bson.M{
		"$inc": bson.M{"points": points},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"id":      uuid.New().String(),
			"user_id": userID,
			"type":    models.BonusBookingPoints,
		},
	}
	if _, err := r.bonuses.UpdateOne(sc, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("credit bonus points failed: %w", err)
	}

	txn := models.BonusTransaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      models.BonusBookingPoints,
		Points:    points,
		Kind:      kind,
		BookingID: bookingID,
		CreatedAt: now,
	}
	if _, err := r.bonusTxns.InsertOne(sc, txn); err != nil {
		return fmt.Errorf("insert bonus transaction failed: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) ListOverlapping(ctx context.Context, professionalID string, start, end time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"status":          bson.M{"$ne": models.BookingCanceled},
		"start":           bson.M{"$lt": end},
		"end":             bson.M{"$gt": start},
	}
	cursor, err := r.bookings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListByClient(ctx context.Context, clientID string, page, pageSize int) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := bson.M{"client_id": clientID}
	total, err := r.bookings.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *mongoBookingRepo) ListByProfessionalRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"start":           bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.bookings.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) EarningsByRange(ctx context.Context, professionalID string, from, to time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"professional_id": professionalID,
			"status":          bson.M{"$ne": models.BookingCanceled},
			"start":           bson.M{"$gte": from, "$lt": to},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_amount"},
		}}},
	}
	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (r *mongoBookingRepo) ListExpiredConfirmed(ctx context.Context, cutoff time.Time, limit int) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status": models.BookingConfirmed,
		"end":    bson.M{"$lt": cutoff},
	}
	cursor, err := r.bookings.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
