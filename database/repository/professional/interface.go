package professionalRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"barberly/database"
	"barberly/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// ProfessionalRepository is the data access contract for professionals and the
// entities they own: business hours, holidays and service offerings.
type ProfessionalRepository interface {
	Create(ctx context.Context, p *models.Professional) error
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, activeOnly bool) ([]models.Professional, error)

	UpsertBusinessHours(ctx context.Context, bh *models.BusinessHours) error
	// GetBusinessHours returns the active row for the weekday, or nil when the
	// professional is closed that day.
	GetBusinessHours(ctx context.Context, professionalID string, weekday int) (*models.BusinessHours, error)
	ListBusinessHours(ctx context.Context, professionalID string) ([]models.BusinessHours, error)

	AddHoliday(ctx context.Context, h *models.Holiday) error
	// GetHoliday returns nil when the date is not a holiday.
	GetHoliday(ctx context.Context, professionalID, date string) (*models.Holiday, error)
	DeleteHoliday(ctx context.Context, professionalID, holidayID string) error
	ListHolidays(ctx context.Context, professionalID string) ([]models.Holiday, error)

	CreateService(ctx context.Context, s *models.Service) error
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateOffering(ctx context.Context, o *models.ServiceOffering) error
	UpdateOffering(ctx context.Context, o *models.ServiceOffering) error
	// GetOfferings returns the professional's active offerings for the given
	// service IDs; absent or inactive services are simply missing from the
	// result, callers detect them by comparing lengths.
	GetOfferings(ctx context.Context, professionalID string, serviceIDs []string) ([]models.ServiceOffering, error)
	ListOfferings(ctx context.Context, professionalID string) ([]models.ServiceOffering, error)

	EnsureIndexes() error
}

type mongoProfessionalRepo struct {
	professionals *mongo.Collection
	hours         *mongo.Collection
	holidays      *mongo.Collection
	services      *mongo.Collection
	offerings     *mongo.Collection
}

// NewMongoProfessionalRepo constructs a new MongoDB ProfessionalRepository.
func NewMongoProfessionalRepo() ProfessionalRepository {
	db := database.DB()
	return &mongoProfessionalRepo{
		professionals: db.Collection("professionals"),
		hours:         db.Collection("business_hours"),
		holidays:      db.Collection("holidays"),
		services:      db.Collection("services"),
		offerings:     db.Collection("service_offerings"),
	}
}
