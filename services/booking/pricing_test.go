package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barberly/models"
)

var quoteNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testOfferings() []models.ServiceOffering {
	return []models.ServiceOffering{
		{ID: "off-1", ProfessionalID: "pro-1", ServiceID: "svc-cut", Price: 25.00, DurationMinutes: 30, Active: true},
		{ID: "off-2", ProfessionalID: "pro-1", ServiceID: "svc-beard", Price: 15.00, DurationMinutes: 15, Active: true},
	}
}

func newPricingEngine(coupons map[string]*models.Coupon, balances map[string]int) *PricingEngine {
	if coupons == nil {
		coupons = map[string]*models.Coupon{}
	}
	if balances == nil {
		balances = map[string]int{}
	}
	return &PricingEngine{
		Coupons:         &fakeCouponRepo{coupons: coupons},
		Bonuses:         &fakeBonusRepo{balances: balances},
		PointValue:      0.10,
		MinRedeemPoints: 100,
	}
}

func percentCoupon() *models.Coupon {
	return &models.Coupon{
		ID:        "cpn-1",
		Code:      "CORTE20",
		Type:      models.DiscountPercentage,
		Scope:     models.ScopeGlobal,
		Value:     20,
		StartDate: quoteNow.Add(-24 * time.Hour),
		Active:    true,
	}
}

func TestQuoteNoDiscount(t *testing.T) {
	engine := newPricingEngine(nil, nil)

	breakdown, effects, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{}, "user-1", quoteNow)
	require.NoError(t, err)
	assert.Equal(t, 40.00, breakdown.Subtotal)
	assert.Equal(t, 0.00, breakdown.Discount)
	assert.Equal(t, 40.00, breakdown.FinalAmount)
	assert.True(t, effects.None())
}

func TestQuoteCouponAndPointsAreExclusive(t *testing.T) {
	engine := newPricingEngine(map[string]*models.Coupon{"CORTE20": percentCoupon()}, map[string]int{"user-1": 500})

	req := models.DiscountRequest{CouponCode: "CORTE20", UseBonusPoints: true}
	_, _, err := engine.Quote(context.Background(), "pro-1", testOfferings(), req, "user-1", quoteNow)
	require.Error(t, err)
	assert.Equal(t, "couponBonusConflict", errCode(err))
}

func TestQuotePercentageCoupon(t *testing.T) {
	engine := newPricingEngine(map[string]*models.Coupon{"CORTE20": percentCoupon()}, nil)

	// Codes are normalized before lookup.
	req := models.DiscountRequest{CouponCode: "  corte20 "}
	breakdown, effects, err := engine.Quote(context.Background(), "pro-1", testOfferings(), req, "user-1", quoteNow)
	require.NoError(t, err)
	assert.Equal(t, 40.00, breakdown.Subtotal)
	assert.Equal(t, 8.00, breakdown.Discount)
	assert.Equal(t, 32.00, breakdown.FinalAmount)
	assert.Equal(t, models.DiscountSourceCoupon, breakdown.DiscountSource)
	assert.Equal(t, "CORTE20", breakdown.CouponCode)

	require.False(t, effects.None())
	assert.Equal(t, "cpn-1", effects.CouponID)
	assert.Equal(t, 8.00, effects.DiscountAmount)
	assert.Zero(t, effects.PointsConsumed)
}

func TestQuoteFixedCouponClampedToSubtotal(t *testing.T) {
	c := percentCoupon()
	c.Type = models.DiscountFixed
	c.Value = 100.00
	engine := newPricingEngine(map[string]*models.Coupon{"CORTE20": c}, nil)

	breakdown, _, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{CouponCode: "CORTE20"}, "user-1", quoteNow)
	require.NoError(t, err)
	assert.Equal(t, 40.00, breakdown.Discount)
	assert.Equal(t, 0.00, breakdown.FinalAmount)
}

func TestQuoteFreeCoupon(t *testing.T) {
	c := percentCoupon()
	c.Type = models.DiscountFree
	engine := newPricingEngine(map[string]*models.Coupon{"CORTE20": c}, nil)

	breakdown, _, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{CouponCode: "CORTE20"}, "user-1", quoteNow)
	require.NoError(t, err)
	assert.Equal(t, 0.00, breakdown.FinalAmount)
}

func TestQuoteCouponRejections(t *testing.T) {
	expired := percentCoupon()
	past := quoteNow.Add(-time.Hour)
	expired.EndDate = &past

	notYet := percentCoupon()
	notYet.StartDate = quoteNow.Add(time.Hour)

	inactive := percentCoupon()
	inactive.Active = false

	exhausted := percentCoupon()
	exhausted.MaxUses = 3
	exhausted.Uses = 3

	tests := []struct {
		name     string
		coupon   *models.Coupon
		wantCode string
	}{
		{"unknown code", nil, "invalidCoupon"},
		{"expired", expired, "invalidCoupon"},
		{"not yet valid", notYet, "invalidCoupon"},
		{"inactive", inactive, "invalidCoupon"},
		{"cap exhausted", exhausted, "invalidCoupon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupons := map[string]*models.Coupon{}
			if tt.coupon != nil {
				coupons["CORTE20"] = tt.coupon
			}
			engine := newPricingEngine(coupons, nil)

			_, _, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{CouponCode: "CORTE20"}, "user-1", quoteNow)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errCode(err))
		})
	}
}

func TestQuoteCouponScopeRestrictions(t *testing.T) {
	serviceScoped := percentCoupon()
	serviceScoped.Scope = models.ScopeService
	serviceScoped.ScopeTargetID = "svc-coloring"

	proScoped := percentCoupon()
	proScoped.Scope = models.ScopeProfessional
	proScoped.ScopeTargetID = "pro-other"

	for name, c := range map[string]*models.Coupon{"service scope": serviceScoped, "professional scope": proScoped} {
		t.Run(name, func(t *testing.T) {
			engine := newPricingEngine(map[string]*models.Coupon{"CORTE20": c}, nil)

			_, _, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{CouponCode: "CORTE20"}, "user-1", quoteNow)
			require.Error(t, err)
			assert.Equal(t, "couponNotApplicable", errCode(err))
		})
	}

	// Matching service scope applies.
	matching := percentCoupon()
	matching.Scope = models.ScopeService
	matching.ScopeTargetID = "svc-cut"
	engine := newPricingEngine(map[string]*models.Coupon{"CORTE20": matching}, nil)
	breakdown, _, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{CouponCode: "CORTE20"}, "user-1", quoteNow)
	require.NoError(t, err)
	assert.Equal(t, 8.00, breakdown.Discount)
}

func TestQuoteCouponMinBookingValue(t *testing.T) {
	c := percentCoupon()
	c.MinBookingValue = 50.00
	engine := newPricingEngine(map[string]*models.Coupon{"CORTE20": c}, nil)

	_, _, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{CouponCode: "CORTE20"}, "user-1", quoteNow)
	require.Error(t, err)
	assert.Equal(t, "couponNotApplicable", errCode(err))
}

func TestQuoteBonusPointsPartialCover(t *testing.T) {
	// 150 points at 0.10 each cover 15.00 of a 40.00 subtotal.
	engine := newPricingEngine(nil, map[string]int{"user-1": 150})

	breakdown, effects, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{UseBonusPoints: true}, "user-1", quoteNow)
	require.NoError(t, err)
	assert.Equal(t, 15.00, breakdown.Discount)
	assert.Equal(t, 25.00, breakdown.FinalAmount)
	assert.Equal(t, models.DiscountSourcePoints, breakdown.DiscountSource)
	assert.Equal(t, 150, breakdown.PointsConsumed)

	require.False(t, effects.None())
	assert.Equal(t, 150, effects.PointsConsumed)
}

func TestQuoteBonusPointsConsumesOnlyWhatCovers(t *testing.T) {
	// A large balance only spends enough points to cover the subtotal.
	engine := newPricingEngine(nil, map[string]int{"user-1": 1000})

	breakdown, effects, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{UseBonusPoints: true}, "user-1", quoteNow)
	require.NoError(t, err)
	assert.Equal(t, 400, effects.PointsConsumed)
	assert.Equal(t, 40.00, breakdown.Discount)
	assert.Equal(t, 0.00, breakdown.FinalAmount)
}

func TestQuoteBonusPointsBelowMinimum(t *testing.T) {
	engine := newPricingEngine(nil, map[string]int{"user-1": 99})

	_, _, err := engine.Quote(context.Background(), "pro-1", testOfferings(), models.DiscountRequest{UseBonusPoints: true}, "user-1", quoteNow)
	require.Error(t, err)
	assert.Equal(t, "insufficientBonusPoints", errCode(err))
}

func TestQuoteRejectsForeignOffering(t *testing.T) {
	offerings := testOfferings()
	offerings[1].ProfessionalID = "pro-other"
	engine := newPricingEngine(nil, nil)

	_, _, err := engine.Quote(context.Background(), "pro-1", offerings, models.DiscountRequest{}, "user-1", quoteNow)
	require.Error(t, err)
	assert.Equal(t, "serviceNotFound", errCode(err))
}
