package booking

import (
	"context"
	"math"
	"time"

	bonusRepo "barberly/database/repository/bonus"
	couponRepo "barberly/database/repository/coupon"
	"barberly/models"
)

// DiscountEffects are the side effects a committed booking must apply
// atomically with its own write: a coupon-use increment or a bonus-point
// debit. A preview computes them and throws them away.
type DiscountEffects struct {
	CouponID       string
	CouponCode     string
	DiscountAmount float64
	PointsConsumed int
}

// None reports whether there is nothing to commit.
func (e *DiscountEffects) None() bool {
	return e == nil || (e.CouponID == "" && e.PointsConsumed == 0)
}

// PricingEngine computes a priced breakdown for a set of offerings and at most
// one discount source. It performs reads only; the orchestrator applies the
// returned effects inside the booking transaction.
type PricingEngine struct {
	Coupons         couponRepo.CouponRepository
	Bonuses         bonusRepo.BonusRepository
	PointValue      float64 // currency value of one bonus point
	MinRedeemPoints int     // minimum balance required to redeem at all
}

// Quote prices a booking for professionalID composed of the given offerings.
// The coupon-vs-points exclusivity rule is enforced here, before any lookup,
// so no caller can bypass it.
func (p *PricingEngine) Quote(
	ctx context.Context,
	professionalID string,
	offerings []models.ServiceOffering,
	req models.DiscountRequest,
	userID string,
	now time.Time,
) (*models.PriceBreakdown, *DiscountEffects, error) {
	if req.CouponCode != "" && req.UseBonusPoints {
		return nil, nil, NewCouponBonusConflict()
	}
	if len(offerings) == 0 {
		return nil, nil, NewInvalidDuration(0)
	}

	subtotal := 0.0
	for _, off := range offerings {
		if off.ProfessionalID != professionalID {
			return nil, nil, NewServiceNotFound(off.ServiceID)
		}
		subtotal += off.Price
	}
	subtotal = round2(subtotal)

	breakdown := &models.PriceBreakdown{
		Subtotal:    subtotal,
		FinalAmount: subtotal,
	}

	switch {
	case req.CouponCode != "":
		coupon, discount, err := p.applyCoupon(ctx, req.CouponCode, professionalID, offerings, subtotal, now)
		if err != nil {
			return nil, nil, err
		}
		breakdown.Discount = discount
		breakdown.FinalAmount = round2(subtotal - discount)
		breakdown.DiscountSource = models.DiscountSourceCoupon
		breakdown.CouponCode = coupon.Code
		return breakdown, &DiscountEffects{
			CouponID:       coupon.ID,
			CouponCode:     coupon.Code,
			DiscountAmount: discount,
		}, nil

	case req.UseBonusPoints:
		consumed, discount, err := p.applyBonusPoints(ctx, userID, subtotal)
		if err != nil {
			return nil, nil, err
		}
		if consumed == 0 {
			return breakdown, nil, nil
		}
		breakdown.Discount = discount
		breakdown.FinalAmount = round2(subtotal - discount)
		breakdown.DiscountSource = models.DiscountSourcePoints
		breakdown.PointsConsumed = consumed
		return breakdown, &DiscountEffects{
			DiscountAmount: discount,
			PointsConsumed: consumed,
		}, nil
	}

	return breakdown, nil, nil
}

func (p *PricingEngine) applyCoupon(
	ctx context.Context,
	code, professionalID string,
	offerings []models.ServiceOffering,
	subtotal float64,
	now time.Time,
) (*models.Coupon, float64, error) {
	normalized := models.NormalizeCouponCode(code)

	coupon, err := p.Coupons.GetByCode(ctx, normalized)
	if err != nil {
		return nil, 0, err
	}
	if coupon == nil {
		return nil, 0, NewInvalidCoupon(normalized, "unknown code")
	}
	if !coupon.Active {
		return nil, 0, NewInvalidCoupon(normalized, "coupon is inactive")
	}
	if now.Before(coupon.StartDate) {
		return nil, 0, NewInvalidCoupon(normalized, "coupon is not valid yet")
	}
	if coupon.EndDate != nil && now.After(*coupon.EndDate) {
		return nil, 0, NewInvalidCoupon(normalized, "coupon has expired")
	}
	if coupon.MaxUses > 0 && coupon.Uses >= coupon.MaxUses {
		return nil, 0, NewInvalidCoupon(normalized, "usage cap exhausted")
	}

	switch coupon.Scope {
	case models.ScopeService:
		matched := false
		for _, off := range offerings {
			if off.ServiceID == coupon.ScopeTargetID {
				matched = true
				break
			}
		}
		if !matched {
			return nil, 0, NewCouponNotApplicable(normalized, "none of the selected services qualify")
		}
	case models.ScopeProfessional:
		if coupon.ScopeTargetID != professionalID {
			return nil, 0, NewCouponNotApplicable(normalized, "coupon is restricted to a different professional")
		}
	}

	if coupon.MinBookingValue > 0 && subtotal < coupon.MinBookingValue {
		return nil, 0, NewCouponNotApplicable(normalized, "booking value is below the coupon minimum")
	}

	var discount float64
	switch coupon.Type {
	case models.DiscountPercentage:
		discount = subtotal * coupon.Value / 100
	case models.DiscountFixed:
		discount = math.Min(coupon.Value, subtotal)
	case models.DiscountFree:
		discount = subtotal
	default:
		return nil, 0, NewInvalidCoupon(normalized, "unknown discount type")
	}
	discount = clamp(round2(discount), 0, subtotal)

	return coupon, discount, nil
}

func (p *PricingEngine) applyBonusPoints(ctx context.Context, userID string, subtotal float64) (int, float64, error) {
	if p.PointValue <= 0 {
		return 0, 0, NewInvalidBonusRedemption("point redemption is disabled")
	}

	balance, err := p.Bonuses.GetBalance(ctx, userID, models.BonusBookingPoints)
	if err != nil {
		return 0, 0, err
	}
	if balance < p.MinRedeemPoints {
		return 0, 0, NewInsufficientBonusPoints(balance, p.MinRedeemPoints)
	}
	if subtotal <= 0 {
		return 0, 0, nil
	}

	// Consume only enough points to cover the subtotal, never the whole
	// balance. Cover count rounds up; the monetary discount is clamped to the
	// subtotal, so the final point can never push the total negative.
	pointsToCover := int(math.Ceil(subtotal / p.PointValue))
	consumed := balance
	if pointsToCover < consumed {
		consumed = pointsToCover
	}

	discount := clamp(round2(float64(consumed)*p.PointValue), 0, subtotal)
	return consumed, discount, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
