package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"event-manager/internal/config"
	"event-manager/internal/logger"
	"event-manager/internal/models"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrMissingFields = errors.New("missing required fields")
	ErrEmptyPatch    = errors.New("no fields to update")
	ErrNotOwner      = errors.New("caller does not own this event")
)

type DBLayer interface {
	ListEvents(ctx context.Context, hasSessions bool) ([]models.EventSummary, error)
	ListRegisteredEvents(ctx context.Context, attendeeID int64) ([]models.EventSummary, error)
	GetEventWithOrganizer(ctx context.Context, id int64) (*models.EventDetail, error)
	GetEventOwner(ctx context.Context, id int64) (int64, error)
	ListEventSchedules(ctx context.Context, eventID, attendeeID int64) ([]models.ScheduleWithStats, error)
	ListEventAttendees(ctx context.Context, eventID int64) ([]models.AttendeeSummary, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, id int64, patch models.EventPatch) (int64, error)
	DeleteEventCascade(ctx context.Context, id int64) error
}

type Publisher interface {
	Publish(topic, key string, payload interface{}) error
}

type Service struct {
	DB     DBLayer
	Kafka  Publisher
	Topics config.TopicConfig
	Logger *logger.Logger
}

func NewService(db DBLayer, kafka Publisher, topics config.TopicConfig, log *logger.Logger) *Service {
	return &Service{DB: db, Kafka: kafka, Topics: topics, Logger: log}
}

func (s *Service) ListEvents(ctx context.Context, hasSessions bool) ([]models.EventSummary, error) {
	return s.DB.ListEvents(ctx, hasSessions)
}

func (s *Service) ListRegisteredEvents(ctx context.Context, attendeeID int64) ([]models.EventSummary, error) {
	return s.DB.ListRegisteredEvents(ctx, attendeeID)
}

func (s *Service) GetEvent(ctx context.Context, id int64) (*models.EventDetail, error) {
	detail, err := s.DB.GetEventWithOrganizer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return detail, nil
}

func (s *Service) ListSchedules(ctx context.Context, eventID, attendeeID int64) ([]models.ScheduleWithStats, error) {
	return s.DB.ListEventSchedules(ctx, eventID, attendeeID)
}

func (s *Service) ListAttendees(ctx context.Context, eventID int64) ([]models.AttendeeSummary, error) {
	return s.DB.ListEventAttendees(ctx, eventID)
}

func (s *Service) CreateEvent(ctx context.Context, req models.CreateEventRequest) (int64, error) {
	if req.EventName == "" || req.EventDescription == "" || req.OrganizerID == 0 {
		return 0, ErrMissingFields
	}

	event := &models.Event{
		EventName:        req.EventName,
		EventDescription: req.EventDescription,
		OrganizerID:      req.OrganizerID,
		CreatedAt:        time.Now(),
	}
	if err := s.DB.CreateEvent(ctx, event); err != nil {
		return 0, err
	}

	s.publish(s.Topics.EventCreated, event.ID, event)
	return event.ID, nil
}

// UpdateEvent applies a partial update on behalf of callerID, who must
// own the event.
func (s *Service) UpdateEvent(ctx context.Context, id, callerID int64, patch models.EventPatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}

	if err := s.checkOwner(ctx, id, callerID); err != nil {
		return err
	}

	affected, err := s.DB.UpdateEvent(ctx, id, patch)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes the event and every dependent row in one
// transaction on behalf of callerID, who must own the event.
func (s *Service) DeleteEvent(ctx context.Context, id, callerID int64) error {
	if err := s.checkOwner(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.DB.DeleteEventCascade(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}

	s.publish(s.Topics.EventDeleted, id, map[string]int64{"event_id": id})
	return nil
}

func (s *Service) checkOwner(ctx context.Context, id, callerID int64) error {
	owner, err := s.DB.GetEventOwner(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	if owner != callerID {
		return ErrNotOwner
	}
	return nil
}

func (s *Service) publish(topic string, key int64, payload interface{}) {
	if s.Kafka == nil {
		return
	}
	if err := s.Kafka.Publish(topic, fmt.Sprintf("%d", key), payload); err != nil && s.Logger != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish to %s: %v", topic, err))
	}
}
