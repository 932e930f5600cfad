package bonusRepo

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

func (r *mongoBonusRepo) GetBalance(ctx context.Context, userID string, bonusType models.BonusType) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bonus models.UserBonus
	err := r.bonuses.FindOne(ctx, bson.M{"user_id": userID, "type": bonusType}).Decode(&bonus)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return bonus.Points, nil
}

func (r *mongoBonusRepo) Credit(ctx context.Context, userID string, bonusType models.BonusType, points int, kind, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"user_id": userID, "type": bonusType}
	update := bson.M{
		"$inc": bson.M{"points": points},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"id":      uuid.New().String(),
			"user_id": userID,
			"type":    bonusType,
		},
	}
	if _, err := r.bonuses.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("credit bonus points failed: %w", err)
	}

	txn := models.BonusTransaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      bonusType,
		Points:    points,
		Kind:      kind,
		BookingID: bookingID,
		CreatedAt: now,
	}
	if _, err := r.txns.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("insert bonus transaction failed: %w", err)
	}
	return nil
}

func (r *mongoBonusRepo) ListTransactions(ctx context.Context, userID string, limit int) ([]models.BonusTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.txns.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txns []models.BonusTransaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// EnsureIndexes creates indexes for bonus balances and transactions.
func (r *mongoBonusRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.bonuses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_type"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create bonus indexes: %w", err)
	}

	if _, err := r.txns.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetName("booking_idx"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create bonus transaction indexes: %w", err)
	}
	return nil
}
