package professionalRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes for professional-owned collections.
func (r *mongoProfessionalRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.professionals.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create professional indexes: %w", err)
	}

	// One business-hours row per professional and weekday.
	if _, err := r.hours.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "weekday", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_professional_weekday"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create business hours indexes: %w", err)
	}

	// No duplicate holiday per professional and date.
	if _, err := r.holidays.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_professional_date"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create holiday indexes: %w", err)
	}

	if _, err := r.offerings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "service_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_professional_service"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create offering indexes: %w", err)
	}

	return nil
}
