package professional

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	professionalRepo "barberly/database/repository/professional"
	"barberly/models"
	"barberly/utils"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)

// memRepo is an in-memory ProfessionalRepository for service tests.
type memRepo struct {
	professionals map[string]*models.Professional
	hours         []models.BusinessHours
	holidays      []models.Holiday
	offerings     []models.ServiceOffering
}

func newMemRepo() *memRepo {
	return &memRepo{professionals: map[string]*models.Professional{}}
}

func (m *memRepo) Create(ctx context.Context, p *models.Professional) error {
	for _, existing := range m.professionals {
		if existing.Email == p.Email {
			return professionalRepo.ErrDuplicate
		}
	}
	m.professionals[p.ID] = p
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	p, ok := m.professionals[id]
	if !ok {
		return nil, professionalRepo.ErrNotFound
	}
	return p, nil
}

func (m *memRepo) SetActive(ctx context.Context, id string, active bool) error {
	p, ok := m.professionals[id]
	if !ok {
		return professionalRepo.ErrNotFound
	}
	p.Active = active
	return nil
}

func (m *memRepo) List(ctx context.Context, activeOnly bool) ([]models.Professional, error) {
	return nil, nil
}

func (m *memRepo) UpsertBusinessHours(ctx context.Context, bh *models.BusinessHours) error {
	m.hours = append(m.hours, *bh)
	return nil
}

func (m *memRepo) GetBusinessHours(ctx context.Context, professionalID string, weekday int) (*models.BusinessHours, error) {
	return nil, nil
}

func (m *memRepo) ListBusinessHours(ctx context.Context, professionalID string) ([]models.BusinessHours, error) {
	return m.hours, nil
}

func (m *memRepo) AddHoliday(ctx context.Context, h *models.Holiday) error {
	for _, existing := range m.holidays {
		if existing.ProfessionalID == h.ProfessionalID && existing.Date == h.Date {
			return professionalRepo.ErrDuplicate
		}
	}
	m.holidays = append(m.holidays, *h)
	return nil
}

func (m *memRepo) GetHoliday(ctx context.Context, professionalID, date string) (*models.Holiday, error) {
	return nil, nil
}

func (m *memRepo) DeleteHoliday(ctx context.Context, professionalID, holidayID string) error {
	for i, h := range m.holidays {
		if h.ID == holidayID {
			m.holidays = append(m.holidays[:i], m.holidays[i+1:]...)
			return nil
		}
	}
	return professionalRepo.ErrNotFound
}

func (m *memRepo) ListHolidays(ctx context.Context, professionalID string) ([]models.Holiday, error) {
	return m.holidays, nil
}

func (m *memRepo) CreateService(ctx context.Context, s *models.Service) error { return nil }
func (m *memRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	return nil, nil
}

func (m *memRepo) CreateOffering(ctx context.Context, o *models.ServiceOffering) error {
	m.offerings = append(m.offerings, *o)
	return nil
}

func (m *memRepo) UpdateOffering(ctx context.Context, o *models.ServiceOffering) error {
	return nil
}

func (m *memRepo) GetOfferings(ctx context.Context, professionalID string, serviceIDs []string) ([]models.ServiceOffering, error) {
	return nil, nil
}

func (m *memRepo) ListOfferings(ctx context.Context, professionalID string) ([]models.ServiceOffering, error) {
	return m.offerings, nil
}

func (m *memRepo) EnsureIndexes() error { return nil }

func newService(repo *memRepo) *DefaultProfessionalService {
	return &DefaultProfessionalService{
		Repo:               repo,
		GranularityMinutes: 15,
		Clock:              func() time.Time { return testNow },
	}
}

func errCode(err error) string {
	if se, ok := err.(*utils.ServiceError); ok {
		return se.Code
	}
	return ""
}

func TestCreateProfessionalDuplicateEmail(t *testing.T) {
	svc := newService(newMemRepo())

	_, err := svc.Create(context.Background(), "Marco", "marco@shop.test", "cuts")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Other", "marco@shop.test", "beard")
	require.Error(t, err)
	assert.Equal(t, "duplicateProfessional", errCode(err))
}

func TestSetBusinessHoursValidation(t *testing.T) {
	svc := newService(newMemRepo())

	base := models.BusinessHours{
		ProfessionalID: "pro-1",
		Weekday:        1,
		OpensAt:        9 * 60,
		ClosesAt:       17 * 60,
		Active:         true,
	}

	tests := []struct {
		name   string
		mutate func(*models.BusinessHours)
	}{
		{"bad weekday", func(bh *models.BusinessHours) { bh.Weekday = 7 }},
		{"closes before opens", func(bh *models.BusinessHours) { bh.ClosesAt = 8 * 60 }},
		{"closes past midnight", func(bh *models.BusinessHours) { bh.ClosesAt = 25 * 60 }},
		{"inverted break", func(bh *models.BusinessHours) {
			bh.BreakStart = 13 * 60
			bh.BreakEnd = 12 * 60
		}},
		{"break outside window", func(bh *models.BusinessHours) {
			bh.BreakStart = 8 * 60
			bh.BreakEnd = 10 * 60
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bh := base
			tt.mutate(&bh)
			_, err := svc.SetBusinessHours(context.Background(), "pro-1", bh)
			require.Error(t, err)
			assert.Equal(t, "invalidBusinessHours", errCode(err))
		})
	}

	saved, err := svc.SetBusinessHours(context.Background(), "pro-1", base)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestSetBusinessHoursOwnerOnly(t *testing.T) {
	svc := newService(newMemRepo())

	bh := models.BusinessHours{ProfessionalID: "pro-1", Weekday: 1, OpensAt: 540, ClosesAt: 1020}
	_, err := svc.SetBusinessHours(context.Background(), "pro-2", bh)
	require.Error(t, err)
	assert.Equal(t, "notOwner", errCode(err))
}

func TestAddHolidayGuards(t *testing.T) {
	svc := newService(newMemRepo())

	_, err := svc.AddHoliday(context.Background(), "pro-1", "pro-1", "2026/12/25", "")
	assert.Equal(t, "invalidHoliday", errCode(err))

	_, err = svc.AddHoliday(context.Background(), "pro-1", "pro-1", "2026-08-30", "")
	assert.Equal(t, "invalidHoliday", errCode(err))

	_, err = svc.AddHoliday(context.Background(), "pro-1", "pro-1", "2026-12-25", "natale")
	require.NoError(t, err)

	_, err = svc.AddHoliday(context.Background(), "pro-1", "pro-1", "2026-12-25", "again")
	assert.Equal(t, "duplicateHoliday", errCode(err))
}

func TestRemoveHolidayPastGuard(t *testing.T) {
	repo := newMemRepo()
	repo.holidays = append(repo.holidays, models.Holiday{
		ID: "hol-past", ProfessionalID: "pro-1", Date: "2026-08-15",
	})
	svc := newService(repo)

	err := svc.RemoveHoliday(context.Background(), "pro-1", "pro-1", "hol-past")
	require.Error(t, err)
	assert.Equal(t, "invalidHoliday", errCode(err))
	assert.Len(t, repo.holidays, 1)
}

func TestSetOfferingValidation(t *testing.T) {
	svc := newService(newMemRepo())

	base := models.ServiceOffering{
		ProfessionalID:  "pro-1",
		ServiceID:       "svc-cut",
		Price:           25.00,
		DurationMinutes: 30,
	}

	bad := base
	bad.Price = 0
	_, err := svc.SetOffering(context.Background(), "pro-1", bad)
	assert.Equal(t, "invalidOffering", errCode(err))

	bad = base
	bad.DurationMinutes = 20 // not a multiple of the 15-minute granularity
	_, err = svc.SetOffering(context.Background(), "pro-1", bad)
	assert.Equal(t, "invalidOffering", errCode(err))

	saved, err := svc.SetOffering(context.Background(), "pro-1", base)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.True(t, saved.Active)
}
