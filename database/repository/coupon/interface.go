package couponRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"barberly/database"
	"barberly/models"
)

var (
	ErrNotFound      = errors.New("coupon not found")
	ErrDuplicateCode = errors.New("coupon code already exists")
)

// CouponRepository is the data access contract for coupons. Usage-counter
// mutation during a booking lives in the booking repository so it commits
// inside the booking transaction; this interface covers admin CRUD and reads.
type CouponRepository interface {
	Create(ctx context.Context, c *models.Coupon) error
	Update(ctx context.Context, c *models.Coupon) error
	SetActive(ctx context.Context, id string, active bool) error
	// GetByCode resolves a normalized code; returns (nil, nil) when absent.
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	GetByID(ctx context.Context, id string) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	EnsureIndexes() error
}

type mongoCouponRepo struct {
	coll *mongo.Collection
}

// NewMongoCouponRepo constructs a new MongoDB CouponRepository.
func NewMongoCouponRepo() CouponRepository {
	return &mongoCouponRepo{coll: database.DB().Collection("coupons")}
}
