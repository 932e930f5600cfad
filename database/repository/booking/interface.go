package bookingRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"barberly/database"
	"barberly/models"
)

// Sentinel failures surfaced from the booking transaction. The service layer
// maps them to its own error taxonomy.
var (
	ErrSlotTaken          = errors.New("slot already reserved")
	ErrCouponExhausted    = errors.New("coupon usage cap reached")
	ErrInsufficientPoints = errors.New("insufficient bonus points")
	ErrNotFound           = errors.New("booking not found")
	ErrStaleStatus        = errors.New("booking status changed concurrently")
)

// CreateEffects are discount side effects committed atomically with the
// booking insert. Guards re-check shared counters inside the transaction, so
// two concurrent bookings cannot both take the last coupon use or spend the
// same points twice.
type CreateEffects struct {
	CouponID       string
	CouponCode     string
	DiscountAmount float64
	PointsDebit    int
}

// StatusEffects are side effects committed atomically with a status update.
type StatusEffects struct {
	RefundPoints       int
	ReleaseCouponCode  string
	AwardPoints        int
	ReleaseReservation bool
}

// BookingRepository defines the data access contract for bookings.
type BookingRepository interface {
	// CreateWithReservation inserts the booking, claims its slot reservation
	// keys and applies discount effects as one transaction. Returns
	// ErrSlotTaken when any key is already claimed.
	CreateWithReservation(ctx context.Context, booking *models.Booking, slotKeys []string, effects *CreateEffects) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatus persists the already-transitioned booking together with its
	// lifecycle side effects as one transaction. The update filter requires the
	// stored status to still equal from, so a transition racing against a
	// concurrent one fails with ErrStaleStatus instead of committing its side
	// effects twice.
	UpdateStatus(ctx context.Context, booking *models.Booking, from models.BookingStatus, effects *StatusEffects) error
	// ListOverlapping returns non-canceled bookings of the professional whose
	// intervals intersect [start, end).
	ListOverlapping(ctx context.Context, professionalID string, start, end time.Time) ([]models.Booking, error)
	ListByClient(ctx context.Context, clientID string, page, pageSize int) ([]models.Booking, int64, error)
	ListByProfessionalRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error)
	// EarningsByRange sums total amounts of non-canceled bookings in the range.
	EarningsByRange(ctx context.Context, professionalID string, from, to time.Time) (float64, error)
	// ListExpiredConfirmed returns CONFIRMED bookings whose end time passed
	// before the cutoff, for the auto-completion sweeper.
	ListExpiredConfirmed(ctx context.Context, cutoff time.Time, limit int) ([]models.Booking, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	client       *mongo.Client
	bookings     *mongo.Collection
	reservations *mongo.Collection
	coupons      *mongo.Collection
	redemptions  *mongo.Collection
	bonuses      *mongo.Collection
	bonusTxns    *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &mongoBookingRepo{
		client:       database.MongoClient,
		bookings:     db.Collection("bookings"),
		reservations: db.Collection("slot_reservations"),
		coupons:      db.Collection("coupons"),
		redemptions:  db.Collection("coupon_redemptions"),
		bonuses:      db.Collection("user_bonuses"),
		bonusTxns:    db.Collection("bonus_transactions"),
	}
}
