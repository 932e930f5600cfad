package bonusRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"barberly/database"
	"barberly/models"
)

// BonusRepository is the data access contract for bonus balances and their
// audit trail. Point debits during a booking live in the booking repository so
// they commit inside the booking transaction; this interface covers balance
// reads, admin grants and history.
type BonusRepository interface {
	// GetBalance returns the current point balance, zero when no bucket exists.
	GetBalance(ctx context.Context, userID string, bonusType models.BonusType) (int, error)
	// Credit adds points and records a transaction of the given kind.
	Credit(ctx context.Context, userID string, bonusType models.BonusType, points int, kind, bookingID string) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]models.BonusTransaction, error)
	EnsureIndexes() error
}

type mongoBonusRepo struct {
	bonuses *mongo.Collection
	txns    *mongo.Collection
}

// NewMongoBonusRepo constructs a new MongoDB BonusRepository.
func NewMongoBonusRepo() BonusRepository {
	db := database.DB()
	return &mongoBonusRepo{
		bonuses: db.Collection("user_bonuses"),
		txns:    db.Collection("bonus_transactions"),
	}
}
