package schedule

import (
	"context"
	"database/sql"
	"errors"

	"event-manager/internal/models"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrNotOwner         = errors.New("caller does not own this schedule's event")
)

type DBLayer interface {
	CreateSchedule(ctx context.Context, schedule *models.Schedule) error
	ListSchedules(ctx context.Context) ([]models.Schedule, error)
	DeleteScheduleCascade(ctx context.Context, id int64) error
	GetScheduleOwner(ctx context.Context, id int64) (int64, error)
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

// CreateSchedule validates that every required field of a session is
// present before inserting.
func (s *Service) CreateSchedule(ctx context.Context, req models.CreateScheduleRequest) (int64, error) {
	if req.SessionName == "" || req.SessionDate == "" || req.StartTime == "" ||
		req.EndTime == "" || req.VenueID == 0 || req.EventID == 0 {
		return 0, ErrMissingFields
	}

	schedule := &models.Schedule{
		SessionName:      req.SessionName,
		SessionDate:      req.SessionDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		VenueID:          req.VenueID,
		EventID:          req.EventID,
		SessionOrganizer: req.SessionOrganizer,
	}
	if err := s.DB.CreateSchedule(ctx, schedule); err != nil {
		return 0, err
	}
	return schedule.ID, nil
}

func (s *Service) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	return s.DB.ListSchedules(ctx)
}

// DeleteSchedule removes a session and its registrations on behalf of
// callerID, who must own the enclosing event.
func (s *Service) DeleteSchedule(ctx context.Context, id, callerID int64) error {
	owner, err := s.DB.GetScheduleOwner(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrScheduleNotFound
		}
		return err
	}
	if owner != callerID {
		return ErrNotOwner
	}

	if err := s.DB.DeleteScheduleCascade(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrScheduleNotFound
		}
		return err
	}
	return nil
}
