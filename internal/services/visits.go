package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/virtualflux/mht-backend/internal/apperr"
	"github.com/virtualflux/mht-backend/internal/models"
	"github.com/virtualflux/mht-backend/internal/storage"
)

// reminderLookahead is the window the "upcoming reminders" queries cover.
const reminderLookahead = 7 * 24 * time.Hour

// VisitService manages antenatal visit records.
type VisitService struct {
	store storage.Store
}

func NewVisitService(store storage.Store) *VisitService {
	return &VisitService{store: store}
}

func (s *VisitService) Create(in *models.VisitInput) (*models.Visit, error) {
	if in.VisitDate.IsZero() {
		return nil, apperr.BadRequest("visitDate is required")
	}
	if in.DoctorName == "" {
		return nil, apperr.BadRequest("doctorName is required")
	}

	visit, err := s.store.CreateVisit(&models.Visit{
		VisitDate:         in.VisitDate,
		DoctorName:        in.DoctorName,
		Notes:             in.Notes,
		PregnancyWeek:     in.PregnancyWeek,
		Weight:            in.Weight,
		BloodPressure:     in.BloodPressure,
		NextVisitReminder: in.NextVisitReminder,
	})
	if err != nil {
		return nil, fmt.Errorf("create visit: %w", err)
	}
	return visit, nil
}

func (s *VisitService) FindAll() ([]*models.Visit, error) {
	return s.store.GetAllVisits()
}

func (s *VisitService) FindByDateRange(start, end time.Time) ([]*models.Visit, error) {
	return s.store.GetVisitsInRange(start, end)
}

func (s *VisitService) FindOne(id string) (*models.Visit, error) {
	visit, err := s.store.GetVisit(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Visit with ID %s not found", id))
		}
		return nil, fmt.Errorf("lookup visit: %w", err)
	}
	return visit, nil
}

func (s *VisitService) Update(id string, in *models.VisitUpdate) (*models.Visit, error) {
	visit, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if in.VisitDate != nil {
		visit.VisitDate = *in.VisitDate
	}
	if in.DoctorName != nil {
		visit.DoctorName = *in.DoctorName
	}
	if in.Notes != nil {
		visit.Notes = *in.Notes
	}
	if in.PregnancyWeek != nil {
		visit.PregnancyWeek = in.PregnancyWeek
	}
	if in.Weight != nil {
		visit.Weight = in.Weight
	}
	if in.BloodPressure != nil {
		visit.BloodPressure = *in.BloodPressure
	}
	if in.NextVisitReminder != nil {
		visit.NextVisitReminder = in.NextVisitReminder
	}

	if err := s.store.UpdateVisit(visit); err != nil {
		return nil, fmt.Errorf("update visit: %w", err)
	}
	return visit, nil
}

func (s *VisitService) Delete(id string) error {
	err := s.store.DeleteVisit(id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(fmt.Sprintf("Visit with ID %s not found", id))
	}
	return err
}

// UpcomingReminders returns visits whose reminder falls within the next week.
func (s *VisitService) UpcomingReminders() ([]*models.Visit, error) {
	now := time.Now()
	return s.store.GetVisitsWithReminderBetween(now, now.Add(reminderLookahead))
}

func (s *VisitService) Stats() (*models.VisitStats, error) {
	total, err := s.store.CountVisits()
	if err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth, err := s.store.CountVisitsInRange(monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("count month visits: %w", err)
	}

	reminders, err := s.UpcomingReminders()
	if err != nil {
		return nil, fmt.Errorf("count reminders: %w", err)
	}

	return &models.VisitStats{
		TotalVisits:       total,
		ThisMonthVisits:   thisMonth,
		UpcomingReminders: len(reminders),
	}, nil
}
