package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "barberly/database/repository/booking"
	professionalRepo "barberly/database/repository/professional"
	userRepo "barberly/database/repository/user"
	"barberly/models"
)

// errCode extracts the domain error code, or "" for unexpected failures.
func errCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// fakeCouponRepo serves coupons from a map keyed by normalized code.
type fakeCouponRepo struct {
	coupons map[string]*models.Coupon
}

func (f *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	c, ok := f.coupons[code]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCouponRepo) Create(ctx context.Context, c *models.Coupon) error { return nil }
func (f *fakeCouponRepo) Update(ctx context.Context, c *models.Coupon) error { return nil }
func (f *fakeCouponRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}
func (f *fakeCouponRepo) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	return nil, nil
}
func (f *fakeCouponRepo) List(ctx context.Context) ([]models.Coupon, error) { return nil, nil }
func (f *fakeCouponRepo) EnsureIndexes() error                              { return nil }

// fakeBonusRepo serves balances from a map keyed by userID.
type fakeBonusRepo struct {
	balances map[string]int
	credits  []int
}

func (f *fakeBonusRepo) GetBalance(ctx context.Context, userID string, bonusType models.BonusType) (int, error) {
	return f.balances[userID], nil
}

func (f *fakeBonusRepo) Credit(ctx context.Context, userID string, bonusType models.BonusType, points int, kind, bookingID string) error {
	f.balances[userID] += points
	f.credits = append(f.credits, points)
	return nil
}

func (f *fakeBonusRepo) ListTransactions(ctx context.Context, userID string, limit int) ([]models.BonusTransaction, error) {
	return nil, nil
}
func (f *fakeBonusRepo) EnsureIndexes() error { return nil }

// fakeProfessionalRepo holds one professional with hours, holidays and
// offerings.
type fakeProfessionalRepo struct {
	professional *models.Professional
	hours        map[int]*models.BusinessHours // weekday -> row
	holidays     map[string]*models.Holiday    // date -> row
	offerings    []models.ServiceOffering
}

func (f *fakeProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	if f.professional == nil || f.professional.ID != id {
		return nil, professionalRepo.ErrNotFound
	}
	return f.professional, nil
}

func (f *fakeProfessionalRepo) GetBusinessHours(ctx context.Context, professionalID string, weekday int) (*models.BusinessHours, error) {
	return f.hours[weekday], nil
}

func (f *fakeProfessionalRepo) GetHoliday(ctx context.Context, professionalID, date string) (*models.Holiday, error) {
	return f.holidays[date], nil
}

func (f *fakeProfessionalRepo) GetOfferings(ctx context.Context, professionalID string, serviceIDs []string) ([]models.ServiceOffering, error) {
	var out []models.ServiceOffering
	for _, off := range f.offerings {
		if off.ProfessionalID != professionalID || !off.Active {
			continue
		}
		for _, id := range serviceIDs {
			if off.ServiceID == id {
				out = append(out, off)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeProfessionalRepo) Create(ctx context.Context, p *models.Professional) error { return nil }
func (f *fakeProfessionalRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}
func (f *fakeProfessionalRepo) List(ctx context.Context, activeOnly bool) ([]models.Professional, error) {
	return nil, nil
}
func (f *fakeProfessionalRepo) UpsertBusinessHours(ctx context.Context, bh *models.BusinessHours) error {
	return nil
}
func (f *fakeProfessionalRepo) ListBusinessHours(ctx context.Context, professionalID string) ([]models.BusinessHours, error) {
	return nil, nil
}
func (f *fakeProfessionalRepo) AddHoliday(ctx context.Context, h *models.Holiday) error { return nil }
func (f *fakeProfessionalRepo) DeleteHoliday(ctx context.Context, professionalID, holidayID string) error {
	return nil
}
func (f *fakeProfessionalRepo) ListHolidays(ctx context.Context, professionalID string) ([]models.Holiday, error) {
	return nil, nil
}
func (f *fakeProfessionalRepo) CreateService(ctx context.Context, s *models.Service) error {
	return nil
}
func (f *fakeProfessionalRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	return nil, nil
}
func (f *fakeProfessionalRepo) CreateOffering(ctx context.Context, o *models.ServiceOffering) error {
	return nil
}
func (f *fakeProfessionalRepo) UpdateOffering(ctx context.Context, o *models.ServiceOffering) error {
	return nil
}
func (f *fakeProfessionalRepo) ListOfferings(ctx context.Context, professionalID string) ([]models.ServiceOffering, error) {
	return f.offerings, nil
}
func (f *fakeProfessionalRepo) EnsureIndexes() error { return nil }

// fakeBookingRepo stores bookings in memory and claims reservation keys like
// the unique index would.
type fakeBookingRepo struct {
	bookings      map[string]*models.Booking
	claimedKeys   map[string]bool
	createEffects []*bookingRepo.CreateEffects
	statusEffects []*bookingRepo.StatusEffects
	createErr     error
	// beforeUpdate runs at the top of UpdateStatus, letting tests interleave
	// a competing transition between the caller's read and its write.
	beforeUpdate func()
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:    map[string]*models.Booking{},
		claimedKeys: map[string]bool{},
	}
}

func (f *fakeBookingRepo) CreateWithReservation(ctx context.Context, b *models.Booking, slotKeys []string, effects *bookingRepo.CreateEffects) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, k := range slotKeys {
		if f.claimedKeys[b.ProfessionalID+"|"+k] {
			return bookingRepo.ErrSlotTaken
		}
	}
	for _, k := range slotKeys {
		f.claimedKeys[b.ProfessionalID+"|"+k] = true
	}
	cp := *b
	f.bookings[b.ID] = &cp
	f.createEffects = append(f.createEffects, effects)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, b *models.Booking, from models.BookingStatus, effects *bookingRepo.StatusEffects) error {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	stored, ok := f.bookings[b.ID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if stored.Status != from {
		return bookingRepo.ErrStaleStatus
	}
	cp := *b
	f.bookings[b.ID] = &cp
	f.statusEffects = append(f.statusEffects, effects)
	return nil
}

func (f *fakeBookingRepo) ListOverlapping(ctx context.Context, professionalID string, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProfessionalID != professionalID || b.Status == models.BookingCanceled {
			continue
		}
		if TimesOverlap(b.Start, b.End, start, end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByClient(ctx context.Context, clientID string, page, pageSize int) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) ListByProfessionalRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) EarningsByRange(ctx context.Context, professionalID string, from, to time.Time) (float64, error) {
	return 0, nil
}

func (f *fakeBookingRepo) ListExpiredConfirmed(ctx context.Context, cutoff time.Time, limit int) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == models.BookingConfirmed && b.End.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

// fakeUserRepo holds registered users keyed by ID.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, userRepo.ErrNotFound
}

func (f *fakeUserRepo) EnsureIndexes() error { return nil }
