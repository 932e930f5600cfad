package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	couponRepo "barberly/database/repository/coupon"
	"barberly/models"
	"barberly/utils"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

type memCouponRepo struct {
	byCode map[string]*models.Coupon
	byID   map[string]*models.Coupon
}

func newMemCouponRepo() *memCouponRepo {
	return &memCouponRepo{byCode: map[string]*models.Coupon{}, byID: map[string]*models.Coupon{}}
}

func (m *memCouponRepo) Create(ctx context.Context, c *models.Coupon) error {
	if _, ok := m.byCode[c.Code]; ok {
		return couponRepo.ErrDuplicateCode
	}
	m.byCode[c.Code] = c
	m.byID[c.ID] = c
	return nil
}

func (m *memCouponRepo) Update(ctx context.Context, c *models.Coupon) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCouponRepo) SetActive(ctx context.Context, id string, active bool) error {
	c, ok := m.byID[id]
	if !ok {
		return couponRepo.ErrNotFound
	}
	c.Active = active
	return nil
}

func (m *memCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return m.byCode[code], nil
}

func (m *memCouponRepo) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, couponRepo.ErrNotFound
	}
	return c, nil
}

func (m *memCouponRepo) List(ctx context.Context) ([]models.Coupon, error) { return nil, nil }
func (m *memCouponRepo) EnsureIndexes() error                              { return nil }

func newSvc() (*DefaultCouponService, *memCouponRepo) {
	repo := newMemCouponRepo()
	return &DefaultCouponService{Repo: repo, Clock: func() time.Time { return testNow }}, repo
}

func validInput() CreateCouponInput {
	return CreateCouponInput{
		Code:      "corte20",
		Type:      models.DiscountPercentage,
		Scope:     models.ScopeGlobal,
		Value:     20,
		StartDate: testNow,
	}
}

func errCode(err error) string {
	if se, ok := err.(*utils.ServiceError); ok {
		return se.Code
	}
	return ""
}

func TestCreateCouponNormalizesCode(t *testing.T) {
	svc, repo := newSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "CORTE20", created.Code)
	assert.True(t, created.Active)
	assert.NotNil(t, repo.byCode["CORTE20"])
}

func TestCreateCouponDuplicateCode(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Code = " CORTE20 "
	_, err = svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "duplicateCouponCode", errCode(err))
}

func TestCreateCouponValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateCouponInput)
	}{
		{"empty code", func(in *CreateCouponInput) { in.Code = "  " }},
		{"percentage over 100", func(in *CreateCouponInput) { in.Value = 120 }},
		{"percentage zero", func(in *CreateCouponInput) { in.Value = 0 }},
		{"fixed non-positive", func(in *CreateCouponInput) {
			in.Type = models.DiscountFixed
			in.Value = -5
		}},
		{"unknown type", func(in *CreateCouponInput) { in.Type = "BOGOF" }},
		{"scoped without target", func(in *CreateCouponInput) { in.Scope = models.ScopeService }},
		{"unknown scope", func(in *CreateCouponInput) { in.Scope = "REGIONAL" }},
		{"end before start", func(in *CreateCouponInput) {
			end := in.StartDate.Add(-time.Hour)
			in.EndDate = &end
		}},
		{"negative max uses", func(in *CreateCouponInput) { in.MaxUses = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newSvc()
			input := validInput()
			tt.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, utils.KindInvalidInput, err.(*utils.ServiceError).Kind)
		})
	}
}

func TestDeactivateCoupon(t *testing.T) {
	svc, repo := newSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))
	assert.False(t, repo.byID[created.ID].Active)

	err = svc.Deactivate(context.Background(), "missing")
	assert.Equal(t, "couponNotFound", errCode(err))
}
