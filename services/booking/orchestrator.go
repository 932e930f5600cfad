package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "barberly/database/repository/booking"
	professionalRepo "barberly/database/repository/professional"
	userRepo "barberly/database/repository/user"
	"barberly/models"
	"barberly/utils"
)

// loadOfferings resolves the requested services against the professional's
// active offerings and reports the first missing one.
func (s *DefaultBookingService) loadOfferings(ctx context.Context, professionalID string, serviceIDs []string) ([]models.ServiceOffering, error) {
	if len(serviceIDs) == 0 {
		return nil, NewInvalidDuration(0)
	}

	offerings, err := s.Professionals.GetOfferings(ctx, professionalID, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load service offerings: %w", err)
	}

	byService := make(map[string]models.ServiceOffering, len(offerings))
	for _, off := range offerings {
		byService[off.ServiceID] = off
	}

	ordered := make([]models.ServiceOffering, 0, len(serviceIDs))
	seen := make(map[string]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		off, ok := byService[id]
		if !ok {
			return nil, NewServiceNotFound(id)
		}
		ordered = append(ordered, off)
	}
	return ordered, nil
}

func (s *DefaultBookingService) loadProfessional(ctx context.Context, id string) (*models.Professional, error) {
	prof, err := s.Professionals.GetByID(ctx, id)
	if err == professionalRepo.ErrNotFound {
		return nil, NewProfessionalNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load professional: %w", err)
	}
	if !prof.Active {
		return nil, NewProfessionalNotFound(id)
	}
	return prof, nil
}

// validateSlot checks that the requested start lands on a slot the calendar
// resolver produces for that date and duration.
func (s *DefaultBookingService) validateSlot(ctx context.Context, professionalID string, start time.Time, durationMinutes int, now time.Time) error {
	if start.Before(now) {
		return NewInvalidDateTime("start time is in the past")
	}

	hours, err := s.Professionals.GetBusinessHours(ctx, professionalID, int(start.Weekday()))
	if err != nil {
		return fmt.Errorf("failed to load business hours: %w", err)
	}
	holiday, err := s.Professionals.GetHoliday(ctx, professionalID, start.Format(DateLayout))
	if err != nil {
		return fmt.Errorf("failed to load holiday: %w", err)
	}

	slots, err := s.Resolver.ResolveSlots(start, hours, holiday, durationMinutes, now)
	if err != nil {
		return err
	}
	if !ContainsSlot(slots, MinutesFromMidnight(start)) {
		return NewInvalidDateTime("outside business hours, on a holiday, or overlapping a break")
	}
	return nil
}

// PreviewBooking prices a booking without committing anything: the pricing
// engine's effects are computed and discarded.
func (s *DefaultBookingService) PreviewBooking(ctx context.Context, req CreateBookingRequest) (*models.PriceBreakdown, error) {
	if _, err := s.loadProfessional(ctx, req.ProfessionalID); err != nil {
		return nil, err
	}
	offerings, err := s.loadOfferings(ctx, req.ProfessionalID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	breakdown, _, err := s.Pricing.Quote(ctx, req.ProfessionalID, offerings, req.Discount, req.ClientID, s.now())
	return breakdown, err
}

// CreateBooking runs the full pipeline: offerings, duration, slot legality,
// pricing, then one transactional write that reserves the slot and applies
// discount effects together with the booking insert.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()
	now := s.now()

	if _, err := s.loadProfessional(ctx, req.ProfessionalID); err != nil {
		return nil, err
	}
	if _, err := s.Users.GetByID(ctx, req.ClientID); err != nil {
		if err == userRepo.ErrNotFound {
			return nil, NewForbidden("unknown client account")
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	offerings, err := s.loadOfferings(ctx, req.ProfessionalID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	totalDuration := 0
	items := make([]models.BookingItem, 0, len(offerings))
	for _, off := range offerings {
		totalDuration += off.DurationMinutes
		items = append(items, models.BookingItem{
			ServiceID:       off.ServiceID,
			OfferingID:      off.ID,
			UnitPrice:       off.Price,
			DurationMinutes: off.DurationMinutes,
		})
	}
	if totalDuration <= 0 {
		return nil, NewInvalidDuration(totalDuration)
	}
	end := req.Start.Add(time.Duration(totalDuration) * time.Minute)

	if err := s.validateSlot(ctx, req.ProfessionalID, req.Start, totalDuration, now); err != nil {
		return nil, err
	}

	breakdown, effects, err := s.Pricing.Quote(ctx, req.ProfessionalID, offerings, req.Discount, req.ClientID, now)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:             uuid.New().String(),
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		Start:          req.Start,
		End:            end,
		Status:         models.BookingPending,
		Items:          items,
		Subtotal:       breakdown.Subtotal,
		Discount:       breakdown.Discount,
		TotalAmount:    breakdown.FinalAmount,
		DiscountSource: string(breakdown.DiscountSource),
		CouponCode:     breakdown.CouponCode,
		PointsConsumed: breakdown.PointsConsumed,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var createEffects *bookingRepo.CreateEffects
	if !effects.None() {
		createEffects = &bookingRepo.CreateEffects{
			CouponID:       effects.CouponID,
			CouponCode:     effects.CouponCode,
			DiscountAmount: effects.DiscountAmount,
			PointsDebit:    effects.PointsConsumed,
		}
	}

	slotKeys := SlotKeys(req.Start, end, s.Resolver.GranularityMinutes)
	if err := s.Bookings.CreateWithReservation(ctx, booking, slotKeys, createEffects); err != nil {
		switch err {
		case bookingRepo.ErrSlotTaken:
			return nil, NewTimeSlotAlreadyBooked()
		case bookingRepo.ErrCouponExhausted:
			return nil, NewInvalidCoupon(booking.CouponCode, "usage cap exhausted")
		case bookingRepo.ErrInsufficientPoints:
			return nil, NewInvalidBonusRedemption("balance changed while booking, please retry")
		default:
			return nil, fmt.Errorf("failed to persist booking: %w", err)
		}
	}

	s.invalidateAvailability(ctx, booking.ProfessionalID, booking.Start.Format(DateLayout))
	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("professionalID", booking.ProfessionalID),
		zap.Float64("total", booking.TotalAmount),
	)
	return booking, nil
}

// UpdateBookingStatus drives the lifecycle state machine and commits its side
// effects atomically with the status write.
func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, bookingID string, to models.BookingStatus, actor Actor) (*models.Booking, error) {
	booking, err := s.loadAuthorized(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}

	// Clients may only cancel; confirming and completing is the
	// professional's (or admin's) call.
	if actor.Role == "client" && to != models.BookingCanceled {
		return nil, NewForbidden("clients can only cancel their bookings")
	}

	from := booking.Status
	effects, err := s.Lifecycle.Apply(booking, to, s.now())
	if err != nil {
		return nil, err
	}

	statusEffects := &bookingRepo.StatusEffects{
		RefundPoints:       effects.RefundPoints,
		ReleaseCouponCode:  effects.ReleaseCouponCode,
		AwardPoints:        effects.AwardPoints,
		ReleaseReservation: effects.ReleaseReservation,
	}
	if err := s.Bookings.UpdateStatus(ctx, booking, from, statusEffects); err != nil {
		switch err {
		case bookingRepo.ErrNotFound:
			return nil, NewBookingNotFound(bookingID)
		case bookingRepo.ErrStaleStatus:
			// Another transition won the race; the one we validated against
			// is gone.
			return nil, NewInvalidTransition(string(from), string(to))
		default:
			return nil, fmt.Errorf("failed to update booking status: %w", err)
		}
	}

	if effects.ReleaseReservation {
		s.invalidateAvailability(ctx, booking.ProfessionalID, booking.Start.Format(DateLayout))
	}
	return booking, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string, actor Actor) (*models.Booking, error) {
	return s.loadAuthorized(ctx, bookingID, actor)
}

func (s *DefaultBookingService) loadAuthorized(ctx context.Context, bookingID string, actor Actor) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err == bookingRepo.ErrNotFound {
		return nil, NewBookingNotFound(bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	switch actor.Role {
	case "admin":
	case "professional":
		if booking.ProfessionalID != actor.UserID {
			return nil, NewForbidden("booking belongs to another professional")
		}
	default:
		if booking.ClientID != actor.UserID {
			return nil, NewForbidden("booking belongs to another client")
		}
	}
	return booking, nil
}

// GetAvailability returns the calendar resolver's slots minus intervals that
// collide with existing non-canceled bookings. Responses are cached briefly.
func (s *DefaultBookingService) GetAvailability(ctx context.Context, professionalID, date string, serviceIDs []string) (*Availability, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return nil, NewInvalidDateTime("date must be formatted YYYY-MM-DD")
	}

	if _, err := s.loadProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	offerings, err := s.loadOfferings(ctx, professionalID, serviceIDs)
	if err != nil {
		return nil, err
	}
	totalDuration := 0
	for _, off := range offerings {
		totalDuration += off.DurationMinutes
	}

	cacheKey := fmt.Sprintf("%s%s:%s:%d", utils.AvailabilityCachePrefix, professionalID, date, totalDuration)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var av Availability
			if err := json.Unmarshal([]byte(cached), &av); err == nil {
				return &av, nil
			}
		}
	}

	now := s.now()
	hours, err := s.Professionals.GetBusinessHours(ctx, professionalID, int(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("failed to load business hours: %w", err)
	}
	holiday, err := s.Professionals.GetHoliday(ctx, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load holiday: %w", err)
	}

	starts, err := s.Resolver.ResolveSlots(day, hours, holiday, totalDuration, now)
	if err != nil {
		return nil, err
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)
	booked, err := s.Bookings.ListOverlapping(ctx, professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing bookings: %w", err)
	}

	av := &Availability{
		ProfessionalID:  professionalID,
		Date:            date,
		DurationMinutes: totalDuration,
		Slots:           []SlotInfo{},
	}
	for _, startMin := range starts {
		slotStart := day.Add(time.Duration(startMin) * time.Minute)
		slotEnd := slotStart.Add(time.Duration(totalDuration) * time.Minute)

		conflict := false
		for _, b := range booked {
			if TimesOverlap(slotStart, slotEnd, b.Start, b.End) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		av.Slots = append(av.Slots, SlotInfo{
			Start: slotStart.Format("15:04"),
			End:   slotEnd.Format("15:04"),
		})
	}

	if s.Cache != nil {
		if data, err := json.Marshal(av); err == nil {
			s.Cache.Set(ctx, cacheKey, data, utils.AvailabilityCacheTTL)
		}
	}
	return av, nil
}

func (s *DefaultBookingService) ListClientBookings(ctx context.Context, clientID string, page, pageSize int) ([]models.Booking, int64, error) {
	return s.Bookings.ListByClient(ctx, clientID, page, pageSize)
}

func (s *DefaultBookingService) ProfessionalAgenda(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error) {
	return s.Bookings.ListByProfessionalRange(ctx, professionalID, from, to)
}

func (s *DefaultBookingService) ProfessionalEarnings(ctx context.Context, professionalID string, from, to time.Time) (float64, error) {
	return s.Bookings.EarningsByRange(ctx, professionalID, from, to)
}

func (s *DefaultBookingService) invalidateAvailability(ctx context.Context, professionalID, date string) {
	if s.Cache == nil {
		return
	}
	pattern := fmt.Sprintf("%s%s:%s:*", utils.AvailabilityCachePrefix, professionalID, date)
	keys, err := s.Cache.Keys(ctx, pattern).Result()
	if err != nil {
		return
	}
	if len(keys) > 0 {
		s.Cache.Del(ctx, keys...)
	}
}
