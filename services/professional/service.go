package professional

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	professionalRepo "barberly/database/repository/professional"
	"barberly/models"
)

const minutesPerDay = 24 * 60

// ProfessionalService manages professionals and the schedule-shaping entities
// they own: business hours, holidays and service offerings.
type ProfessionalService interface {
	Create(ctx context.Context, name, email, specialty string) (*models.Professional, error)
	Deactivate(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Professional, error)
	List(ctx context.Context) ([]models.Professional, error)

	SetBusinessHours(ctx context.Context, actorID string, bh models.BusinessHours) (*models.BusinessHours, error)
	ListBusinessHours(ctx context.Context, professionalID string) ([]models.BusinessHours, error)
	AddHoliday(ctx context.Context, actorID, professionalID, date, reason string) (*models.Holiday, error)
	RemoveHoliday(ctx context.Context, actorID, professionalID, holidayID string) error
	ListHolidays(ctx context.Context, professionalID string) ([]models.Holiday, error)

	CreateService(ctx context.Context, name, category string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	SetOffering(ctx context.Context, actorID string, offering models.ServiceOffering) (*models.ServiceOffering, error)
	ListOfferings(ctx context.Context, professionalID string) ([]models.ServiceOffering, error)
}

// DefaultProfessionalService implements ProfessionalService.
type DefaultProfessionalService struct {
	Repo               professionalRepo.ProfessionalRepository
	GranularityMinutes int

	Clock func() time.Time
}

func (s *DefaultProfessionalService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultProfessionalService) Create(ctx context.Context, name, email, specialty string) (*models.Professional, error) {
	if name == "" || email == "" {
		return nil, NewInvalidProfessional("name and email are required")
	}
	now := s.now()
	p := &models.Professional{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Specialty: specialty,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if err == professionalRepo.ErrDuplicate {
			return nil, NewDuplicateProfessional(email)
		}
		return nil, fmt.Errorf("failed to create professional: %w", err)
	}
	return p, nil
}

// Deactivate soft-disables the professional; bookings keep referencing it.
func (s *DefaultProfessionalService) Deactivate(ctx context.Context, id string) error {
	if err := s.Repo.SetActive(ctx, id, false); err != nil {
		if err == professionalRepo.ErrNotFound {
			return NewProfessionalNotFound(id)
		}
		return fmt.Errorf("failed to deactivate professional: %w", err)
	}
	return nil
}

func (s *DefaultProfessionalService) Get(ctx context.Context, id string) (*models.Professional, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err == professionalRepo.ErrNotFound {
		return nil, NewProfessionalNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load professional: %w", err)
	}
	return p, nil
}

func (s *DefaultProfessionalService) List(ctx context.Context) ([]models.Professional, error) {
	return s.Repo.List(ctx, true)
}

// SetBusinessHours validates the window invariants and upserts the weekday
// row. Only the owning professional may change their own hours.
func (s *DefaultProfessionalService) SetBusinessHours(ctx context.Context, actorID string, bh models.BusinessHours) (*models.BusinessHours, error) {
	if actorID != bh.ProfessionalID {
		return nil, NewNotOwner()
	}
	if bh.Weekday < 0 || bh.Weekday > 6 {
		return nil, NewInvalidBusinessHours("weekday must be between 0 and 6")
	}
	if bh.OpensAt < 0 || bh.ClosesAt > minutesPerDay {
		return nil, NewInvalidBusinessHours("times must fall within the day")
	}
	if bh.ClosesAt <= bh.OpensAt {
		return nil, NewInvalidBusinessHours("closing time must be after opening time")
	}
	if bh.BreakStart != 0 || bh.BreakEnd != 0 {
		if bh.BreakEnd <= bh.BreakStart {
			return nil, NewInvalidBusinessHours("break end must be after break start")
		}
		if bh.BreakStart < bh.OpensAt || bh.BreakEnd > bh.ClosesAt {
			return nil, NewInvalidBusinessHours("break must fall within the open window")
		}
	}

	bh.ID = uuid.New().String()
	bh.UpdatedAt = s.now()
	if err := s.Repo.UpsertBusinessHours(ctx, &bh); err != nil {
		return nil, fmt.Errorf("failed to save business hours: %w", err)
	}
	return &bh, nil
}

func (s *DefaultProfessionalService) ListBusinessHours(ctx context.Context, professionalID string) ([]models.BusinessHours, error) {
	return s.Repo.ListBusinessHours(ctx, professionalID)
}

// AddHoliday rejects past dates and duplicates.
func (s *DefaultProfessionalService) AddHoliday(ctx context.Context, actorID, professionalID, date, reason string) (*models.Holiday, error) {
	if actorID != professionalID {
		return nil, NewNotOwner()
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, NewInvalidHoliday("date must be formatted YYYY-MM-DD")
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, NewInvalidHoliday("date must not be in the past")
	}

	h := &models.Holiday{
		ID:             uuid.New().String(),
		ProfessionalID: professionalID,
		Date:           date,
		Reason:         reason,
		CreatedAt:      now,
	}
	if err := s.Repo.AddHoliday(ctx, h); err != nil {
		if err == professionalRepo.ErrDuplicate {
			return nil, NewDuplicateHoliday(date)
		}
		return nil, fmt.Errorf("failed to add holiday: %w", err)
	}
	return h, nil
}

// RemoveHoliday refuses to delete holidays already in the past, so the
// schedule history stays intact.
func (s *DefaultProfessionalService) RemoveHoliday(ctx context.Context, actorID, professionalID, holidayID string) error {
	if actorID != professionalID {
		return NewNotOwner()
	}

	holidays, err := s.Repo.ListHolidays(ctx, professionalID)
	if err != nil {
		return fmt.Errorf("failed to list holidays: %w", err)
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, h := range holidays {
		if h.ID != holidayID {
			continue
		}
		day, err := time.ParseInLocation("2006-01-02", h.Date, time.Local)
		if err == nil && day.Before(today) {
			return NewInvalidHoliday("past holidays cannot be removed")
		}
	}

	if err := s.Repo.DeleteHoliday(ctx, professionalID, holidayID); err != nil {
		if err == professionalRepo.ErrNotFound {
			return NewHolidayNotFound(holidayID)
		}
		return fmt.Errorf("failed to remove holiday: %w", err)
	}
	return nil
}

func (s *DefaultProfessionalService) ListHolidays(ctx context.Context, professionalID string) ([]models.Holiday, error) {
	return s.Repo.ListHolidays(ctx, professionalID)
}

func (s *DefaultProfessionalService) CreateService(ctx context.Context, name, category string) (*models.Service, error) {
	if name == "" {
		return nil, NewInvalidService("name is required")
	}
	svc := &models.Service{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Active:    true,
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateService(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *DefaultProfessionalService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.Repo.ListServices(ctx)
}

// SetOffering creates or updates a professional's price and duration for a
// service. Durations must align with the slot granularity or the calendar
// could never place them.
func (s *DefaultProfessionalService) SetOffering(ctx context.Context, actorID string, offering models.ServiceOffering) (*models.ServiceOffering, error) {
	if actorID != offering.ProfessionalID {
		return nil, NewNotOwner()
	}
	if offering.Price <= 0 {
		return nil, NewInvalidOffering("price must be positive")
	}
	granularity := s.GranularityMinutes
	if granularity <= 0 {
		granularity = 15
	}
	if offering.DurationMinutes <= 0 || offering.DurationMinutes%granularity != 0 {
		return nil, NewInvalidOffering(fmt.Sprintf("duration must be a positive multiple of %d minutes", granularity))
	}

	offering.UpdatedAt = s.now()
	if offering.ID == "" {
		offering.ID = uuid.New().String()
		offering.Active = true
		if err := s.Repo.CreateOffering(ctx, &offering); err != nil {
			if err == professionalRepo.ErrDuplicate {
				return nil, NewDuplicateOffering(offering.ServiceID)
			}
			return nil, fmt.Errorf("failed to create offering: %w", err)
		}
		return &offering, nil
	}

	if err := s.Repo.UpdateOffering(ctx, &offering); err != nil {
		if err == professionalRepo.ErrNotFound {
			return nil, NewOfferingNotFound(offering.ID)
		}
		return nil, fmt.Errorf("failed to update offering: %w", err)
	}
	return &offering, nil
}

func (s *DefaultProfessionalService) ListOfferings(ctx context.Context, professionalID string) ([]models.ServiceOffering, error) {
	return s.Repo.ListOfferings(ctx, professionalID)
}
