package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID               int64     `bun:"id,pk,autoincrement" json:"id"`
	EventName        string    `bun:"event_name,notnull" json:"event_name"`
	EventDescription string    `bun:"event_description" json:"event_description"`
	EventDate        string    `bun:"event_date,nullzero" json:"event_date,omitempty"`
	EventTime        string    `bun:"event_time,nullzero" json:"event_time,omitempty"`
	VenueID          *int64    `bun:"venue_id,nullzero" json:"venue_id,omitempty"`
	VendorID         *int64    `bun:"vendor_id,nullzero" json:"vendor_id,omitempty"`
	OrganizerID      int64     `bun:"organizer_id,notnull" json:"organizer_id"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// EventSummary is the list view: the event plus its distinct registered
// attendee count across all sessions.
type EventSummary struct {
	ID               int64  `bun:"id" json:"id"`
	EventName        string `bun:"event_name" json:"event_name"`
	EventDescription string `bun:"event_description" json:"event_description"`
	OrganizerID      int64  `bun:"organizer_id" json:"organizer_id"`
	Participants     int    `bun:"participants" json:"participants"`
}

// EventDetail is the single-event view with the owning organizer's name
// resolved via a left join.
type EventDetail struct {
	Event
	OrganizerName string `bun:"organizer_name" json:"organizer_name"`
}

type CreateEventRequest struct {
	EventName        string `json:"event_name"`
	EventDescription string `json:"event_description"`
	OrganizerID      int64  `json:"organizer_id"`
}

// EventPatch carries the optional updatable fields of an event. Only
// fields present in the request body are touched by the UPDATE.
type EventPatch struct {
	EventName        *string `json:"event_name"`
	EventDescription *string `json:"event_description"`
	EventDate        *string `json:"event_date"`
	EventTime        *string `json:"event_time"`
	VenueID          *int64  `json:"venue_id"`
	VendorID         *int64  `json:"vendor_id"`
	OrganizerID      *int64  `json:"organizer_id"`
}

func (p EventPatch) IsEmpty() bool {
	return p.EventName == nil &&
		p.EventDescription == nil &&
		p.EventDate == nil &&
		p.EventTime == nil &&
		p.VenueID == nil &&
		p.VendorID == nil &&
		p.OrganizerID == nil
}
