package analytics

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotOwner      = errors.New("caller does not own this event")
)

type DBLayer interface {
	GetOrganizerTotals(ctx context.Context, organizerID int64) (*OrganizerTotals, error)
	GetEventTotals(ctx context.Context, eventID int64) (*EventTotals, error)
	GetEventOwner(ctx context.Context, eventID int64) (int64, error)
}

// OrganizerSummary is the dashboard payload for one organizer.
type OrganizerSummary struct {
	OrganizerID int64 `json:"organizer_id"`
	OrganizerTotals
}

// EventSummary is the dashboard payload for one event.
type EventSummary struct {
	EventID int64 `json:"event_id"`
	EventTotals
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

func (s *Service) OrganizerSummary(ctx context.Context, organizerID int64) (*OrganizerSummary, error) {
	totals, err := s.DB.GetOrganizerTotals(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	return &OrganizerSummary{OrganizerID: organizerID, OrganizerTotals: *totals}, nil
}

func (s *Service) EventSummary(ctx context.Context, eventID, callerID int64) (*EventSummary, error) {
	owner, err := s.DB.GetEventOwner(ctx, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if owner != callerID {
		return nil, ErrNotOwner
	}

	totals, err := s.DB.GetEventTotals(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &EventSummary{EventID: eventID, EventTotals: *totals}, nil
}
