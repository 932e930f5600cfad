package bonus

import (
	"context"
	"fmt"
	"time"

	bonusRepo "barberly/database/repository/bonus"
	"barberly/models"
	"barberly/utils"
)

// Balance is a user's point balance for one bonus type.
type Balance struct {
	UserID string           `json:"user_id"`
	Type   models.BonusType `json:"type"`
	Points int              `json:"points"`
}

// BonusService covers admin point grants and balance/history reads.
type BonusService interface {
	Assign(ctx context.Context, userID string, bonusType models.BonusType, points int) error
	GetBalance(ctx context.Context, userID string, bonusType models.BonusType) (*Balance, error)
	History(ctx context.Context, userID string, limit int) ([]models.BonusTransaction, error)
}

// DefaultBonusService implements BonusService.
type DefaultBonusService struct {
	Repo bonusRepo.BonusRepository

	Clock func() time.Time
}

func (s *DefaultBonusService) Assign(ctx context.Context, userID string, bonusType models.BonusType, points int) error {
	if points <= 0 {
		return &utils.ServiceError{
			Kind: utils.KindInvalidInput, Code: "invalidBonusAssignment",
			Message: "points must be positive",
		}
	}
	switch bonusType {
	case models.BonusBookingPoints, models.BonusLoyalty:
	default:
		return &utils.ServiceError{
			Kind: utils.KindInvalidInput, Code: "invalidBonusAssignment",
			Message: fmt.Sprintf("unknown bonus type %q", bonusType),
		}
	}
	if err := s.Repo.Credit(ctx, userID, bonusType, points, "assign", ""); err != nil {
		return fmt.Errorf("failed to assign bonus points: %w", err)
	}
	return nil
}

func (s *DefaultBonusService) GetBalance(ctx context.Context, userID string, bonusType models.BonusType) (*Balance, error) {
	points, err := s.Repo.GetBalance(ctx, userID, bonusType)
	if err != nil {
		return nil, fmt.Errorf("failed to load bonus balance: %w", err)
	}
	return &Balance{UserID: userID, Type: bonusType, Points: points}, nil
}

func (s *DefaultBonusService) History(ctx context.Context, userID string, limit int) ([]models.BonusTransaction, error) {
	return s.Repo.ListTransactions(ctx, userID, limit)
}
