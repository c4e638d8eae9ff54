package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"event-manager/internal/config"
	"event-manager/internal/database"
	"event-manager/internal/logger"
	"event-manager/internal/models"
)

var (
	ErrMissingFields        = errors.New("missing required fields")
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrAlreadyRegistered    = errors.New("already registered for this session")
	ErrRegistrationNotFound = errors.New("registration not found")
)

type DBLayer interface {
	CreateRegistration(ctx context.Context, reg *models.Registration) error
	GetRegistrationByID(ctx context.Context, id int64) (*models.Registration, error)
	DeleteBySchedule(ctx context.Context, attendeeID, scheduleID int64) (int64, error)
	DeleteByEvent(ctx context.Context, attendeeID, eventID int64) (int64, error)
	GetScheduleEventID(ctx context.Context, scheduleID int64) (int64, error)
}

type Publisher interface {
	Publish(topic, key string, payload interface{}) error
}

// PassRenderer turns a registration into a scannable check-in pass.
type PassRenderer interface {
	GeneratePass(reg models.Registration) ([]byte, error)
}

type Service struct {
	DB     DBLayer
	Kafka  Publisher
	Passes PassRenderer
	Topics config.TopicConfig
	Logger *logger.Logger
}

func NewService(db DBLayer, kafka Publisher, passes PassRenderer, topics config.TopicConfig, log *logger.Logger) *Service {
	return &Service{DB: db, Kafka: kafka, Passes: passes, Topics: topics, Logger: log}
}

// Register enrolls an attendee into one session. The session must
// exist, and a second registration for the same pair is rejected as a
// conflict, never duplicated.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.Registration, error) {
	if req.AttendeeID == 0 || req.ScheduleID == 0 {
		return nil, ErrMissingFields
	}

	eventID, err := s.DB.GetScheduleEventID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	reg := &models.Registration{
		AttendeeID:       req.AttendeeID,
		ScheduleID:       req.ScheduleID,
		RegistrationDate: time.Now().Format("2006-01-02"),
	}

	if err := s.DB.CreateRegistration(ctx, reg); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	s.publish(s.Topics.RegistrationCreated, reg.ID, map[string]interface{}{
		"registration_id":   reg.ID,
		"attendee_id":       reg.AttendeeID,
		"schedule_id":       reg.ScheduleID,
		"event_id":          eventID,
		"registration_date": reg.RegistrationDate,
	})
	return reg, nil
}

// Unregister removes the attendee's registration for one session when
// scheduleID is non-nil, or across every session of the event otherwise.
// Deleting nothing is not an error.
func (s *Service) Unregister(ctx context.Context, eventID, attendeeID int64, scheduleID *int64) error {
	var (
		removed int64
		err     error
	)

	if scheduleID != nil {
		removed, err = s.DB.DeleteBySchedule(ctx, attendeeID, *scheduleID)
	} else {
		removed, err = s.DB.DeleteByEvent(ctx, attendeeID, eventID)
	}
	if err != nil {
		return err
	}

	if removed > 0 {
		s.publish(s.Topics.RegistrationCancelled, attendeeID, map[string]interface{}{
			"attendee_id": attendeeID,
			"event_id":    eventID,
			"removed":     removed,
		})
	}
	return nil
}

// Pass returns the encrypted check-in QR for a registration owned by
// callerID.
func (s *Service) Pass(ctx context.Context, id, callerID int64) ([]byte, error) {
	reg, err := s.DB.GetRegistrationByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	if reg.AttendeeID != callerID {
		return nil, ErrRegistrationNotFound
	}
	return s.Passes.GeneratePass(*reg)
}

func (s *Service) publish(topic string, key int64, payload interface{}) {
	if s.Kafka == nil {
		return
	}
	if err := s.Kafka.Publish(topic, fmt.Sprintf("%d", key), payload); err != nil && s.Logger != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish to %s: %v", topic, err))
	}
}
