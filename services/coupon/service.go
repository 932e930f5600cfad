package coupon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	couponRepo "barberly/database/repository/coupon"
	"barberly/models"
	"barberly/utils"
)

// CreateCouponInput is the admin-facing shape for creating a coupon.
type CreateCouponInput struct {
	Code            string              `json:"code"`
	Type            models.DiscountType `json:"type"`
	Scope           models.CouponScope  `json:"scope"`
	ScopeTargetID   string              `json:"scope_target_id,omitempty"`
	Value           float64             `json:"value"`
	MaxUses         int                 `json:"max_uses,omitempty"`
	StartDate       time.Time           `json:"start_date"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
	MinBookingValue float64             `json:"min_booking_value,omitempty"`
}

// CouponService is the admin surface for coupon management.
type CouponService interface {
	Create(ctx context.Context, input CreateCouponInput) (*models.Coupon, error)
	Update(ctx context.Context, id string, input CreateCouponInput) (*models.Coupon, error)
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Coupon, error)
}

// DefaultCouponService implements CouponService.
type DefaultCouponService struct {
	Repo couponRepo.CouponRepository

	Clock func() time.Time
}

func (s *DefaultCouponService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func validateInput(input CreateCouponInput) error {
	switch input.Type {
	case models.DiscountPercentage:
		if input.Value <= 0 || input.Value > 100 {
			return newError(utils.KindInvalidInput, "invalidCoupon", "percentage value must be in (0, 100]")
		}
	case models.DiscountFixed:
		if input.Value <= 0 {
			return newError(utils.KindInvalidInput, "invalidCoupon", "fixed value must be positive")
		}
	case models.DiscountFree:
	default:
		return newError(utils.KindInvalidInput, "invalidCoupon", "unknown discount type %q", input.Type)
	}

	switch input.Scope {
	case models.ScopeGlobal:
	case models.ScopeService, models.ScopeProfessional:
		if input.ScopeTargetID == "" {
			return newError(utils.KindInvalidInput, "invalidCoupon", "scope %s requires a target", input.Scope)
		}
	default:
		return newError(utils.KindInvalidInput, "invalidCoupon", "unknown scope %q", input.Scope)
	}

	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return newError(utils.KindInvalidInput, "invalidCoupon", "end date must be after start date")
	}
	if input.MaxUses < 0 || input.MinBookingValue < 0 {
		return newError(utils.KindInvalidInput, "invalidCoupon", "negative limits are not allowed")
	}
	return nil
}

func (s *DefaultCouponService) Create(ctx context.Context, input CreateCouponInput) (*models.Coupon, error) {
	code := models.NormalizeCouponCode(input.Code)
	if code == "" {
		return nil, newError(utils.KindInvalidInput, "invalidCoupon", "code is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	c := &models.Coupon{
		ID:              uuid.New().String(),
		Code:            code,
		Type:            input.Type,
		Scope:           input.Scope,
		ScopeTargetID:   input.ScopeTargetID,
		Value:           input.Value,
		MaxUses:         input.MaxUses,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		MinBookingValue: input.MinBookingValue,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		if err == couponRepo.ErrDuplicateCode {
			return nil, newError(utils.KindConflict, "duplicateCouponCode", "coupon code %s already exists", code)
		}
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return c, nil
}

func (s *DefaultCouponService) Update(ctx context.Context, id string, input CreateCouponInput) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err == couponRepo.ErrNotFound {
		return nil, newError(utils.KindNotFound, "couponNotFound", "coupon %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon: %w", err)
	}

	existing.Type = input.Type
	existing.Scope = input.Scope
	existing.ScopeTargetID = input.ScopeTargetID
	existing.Value = input.Value
	existing.MaxUses = input.MaxUses
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.MinBookingValue = input.MinBookingValue
	existing.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	return existing, nil
}

func (s *DefaultCouponService) Deactivate(ctx context.Context, id string) error {
	if err := s.Repo.SetActive(ctx, id, false); err != nil {
		if err == couponRepo.ErrNotFound {
			return newError(utils.KindNotFound, "couponNotFound", "coupon %s not found", id)
		}
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}
	return nil
}

func (s *DefaultCouponService) List(ctx context.Context) ([]models.Coupon, error) {
	return s.Repo.List(ctx)
}

func newError(kind, code, format string, args ...interface{}) *utils.ServiceError {
	return &utils.ServiceError{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}
