package professionalRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"barberly/models"
)

func (r *mongoProfessionalRepo) Create(ctx context.Context, p *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.professionals.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Professional
	err := r.professionals.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProfessionalRepo) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.professionals.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"active": active, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProfessionalRepo) List(ctx context.Context, activeOnly bool) ([]models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.professionals.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pros []models.Professional
	if err := cursor.All(ctx, &pros); err != nil {
		return nil, err
	}
	return pros, nil
}

func (r *mongoProfessionalRepo) UpsertBusinessHours(ctx context.Context, bh *models.BusinessHours) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professional_id": bh.ProfessionalID, "weekday": bh.Weekday}
	update := bson.M{
		"$set": bson.M{
			"opens_at":    bh.OpensAt,
			"closes_at":   bh.ClosesAt,
			"break_start": bh.BreakStart,
			"break_end":   bh.BreakEnd,
			"active":      bh.Active,
			"updated_at":  bh.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id":              bh.ID,
			"professional_id": bh.ProfessionalID,
			"weekday":         bh.Weekday,
		},
	}
	_, err := r.hours.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *mongoProfessionalRepo) GetBusinessHours(ctx context.Context, professionalID string, weekday int) (*models.BusinessHours, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bh models.BusinessHours
	err := r.hours.FindOne(ctx, bson.M{
		"professional_id": professionalID,
		"weekday":         weekday,
		"active":          true,
	}).Decode(&bh)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bh, nil
}

func (r *mongoProfessionalRepo) ListBusinessHours(ctx context.Context, professionalID string) ([]models.BusinessHours, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.hours.Find(ctx, bson.M{"professional_id": professionalID},
		options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var hours []models.BusinessHours
	if err := cursor.All(ctx, &hours); err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *mongoProfessionalRepo) AddHoliday(ctx context.Context, h *models.Holiday) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.holidays.InsertOne(ctx, h)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoProfessionalRepo) GetHoliday(ctx context.Context, professionalID, date string) (*models.Holiday, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var h models.Holiday
	err := r.holidays.FindOne(ctx, bson.M{"professional_id": professionalID, "date": date}).Decode(&h)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *mongoProfessionalRepo) DeleteHoliday(ctx context.Context, professionalID, holidayID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.holidays.DeleteOne(ctx, bson.M{"id": holidayID, "professional_id": professionalID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProfessionalRepo) ListHolidays(ctx context.Context, professionalID string) ([]models.Holiday, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.holidays.Find(ctx, bson.M{"professional_id": professionalID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var holidays []models.Holiday
	if err := cursor.All(ctx, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *mongoProfessionalRepo) CreateService(ctx context.Context, s *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.services.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoProfessionalRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{"active": true},
		options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *mongoProfessionalRepo) CreateOffering(ctx context.Context, o *models.ServiceOffering) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.offerings.InsertOne(ctx, o)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoProfessionalRepo) UpdateOffering(ctx context.Context, o *models.ServiceOffering) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.offerings.UpdateOne(ctx,
		bson.M{"id": o.ID, "professional_id": o.ProfessionalID},
		bson.M{"$set": bson.M{
			"price":            o.Price,
			"duration_minutes": o.DurationMinutes,
			"active":           o.Active,
			"updated_at":       o.UpdatedAt,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProfessionalRepo) GetOfferings(ctx context.Context, professionalID string, serviceIDs []string) ([]models.ServiceOffering, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"service_id":      bson.M{"$in": serviceIDs},
		"active":          true,
	}
	cursor, err := r.offerings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offerings []models.ServiceOffering
	if err := cursor.All(ctx, &offerings); err != nil {
		return nil, err
	}
	return offerings, nil
}

func (r *mongoProfessionalRepo) ListOfferings(ctx context.Context, professionalID string) ([]models.ServiceOffering, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.offerings.Find(ctx, bson.M{"professional_id": professionalID, "active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offerings []models.ServiceOffering
	if err := cursor.All(ctx, &offerings); err != nil {
		return nil, err
	}
	return offerings, nil
}
