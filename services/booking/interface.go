package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	bookingRepo "barberly/database/repository/booking"
	professionalRepo "barberly/database/repository/professional"
	userRepo "barberly/database/repository/user"
	"barberly/models"
)

// CreateBookingRequest carries everything needed to price and book an
// appointment.
type CreateBookingRequest struct {
	ClientID       string
	ProfessionalID string
	ServiceIDs     []string
	Start          time.Time
	Discount       models.DiscountRequest
	Notes          string
}

// Actor identifies who is asking for a lifecycle transition.
type Actor struct {
	UserID string
	Role   string // "client", "professional", "admin"
}

// SlotInfo is one bookable start time, formatted for clients.
type SlotInfo struct {
	Start string `json:"start"` // "09:15"
	End   string `json:"end"`   // "09:45"
}

// Availability is the bookable schedule of a professional for one day and
// service selection: the calendar resolver's output minus reserved intervals.
type Availability struct {
	ProfessionalID  string     `json:"professional_id"`
	Date            string     `json:"date"`
	DurationMinutes int        `json:"duration_minutes"`
	Slots           []SlotInfo `json:"slots"`
}

// BookingService is the public surface of the booking engine.
type BookingService interface {
	// PreviewBooking prices a booking without reserving or committing any
	// discount side effects.
	PreviewBooking(ctx context.Context, req CreateBookingRequest) (*models.PriceBreakdown, error)
	// CreateBooking validates the slot, reserves it, prices the booking and
	// persists everything as one unit. Initial status is PENDING.
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, to models.BookingStatus, actor Actor) (*models.Booking, error)
	GetAvailability(ctx context.Context, professionalID, date string, serviceIDs []string) (*Availability, error)
	ListClientBookings(ctx context.Context, clientID string, page, pageSize int) ([]models.Booking, int64, error)
	GetBooking(ctx context.Context, bookingID string, actor Actor) (*models.Booking, error)
	ProfessionalAgenda(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error)
	ProfessionalEarnings(ctx context.Context, professionalID string, from, to time.Time) (float64, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Professionals professionalRepo.ProfessionalRepository
	Bookings      bookingRepo.BookingRepository
	Users         userRepo.UserRepository
	Pricing       *PricingEngine
	Resolver      CalendarResolver
	Lifecycle     Lifecycle
	Cache         *redis.Client // availability cache, may be nil

	// Clock is swappable in tests; defaults to time.Now.
	Clock func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
