package models

import "github.com/uptrace/bun"

type Schedule struct {
	bun.BaseModel `bun:"table:schedules"`

	ID               int64  `bun:"id,pk,autoincrement" json:"id"`
	SessionName      string `bun:"session_name,notnull" json:"session_name"`
	SessionDate      string `bun:"session_date,notnull" json:"session_date"`
	StartTime        string `bun:"start_time,notnull" json:"start_time"`
	EndTime          string `bun:"end_time,notnull" json:"end_time"`
	VenueID          int64  `bun:"venue_id,notnull" json:"venue_id"`
	EventID          int64  `bun:"event_id,notnull" json:"event_id"`
	SessionOrganizer string `bun:"session_organizer" json:"session_organizer,omitempty"`
}

// ScheduleWithStats is the per-event session view: the session, its
// venue, how many attendees registered, and whether a given attendee is
// among them.
type ScheduleWithStats struct {
	ID               int64  `bun:"id" json:"id"`
	SessionName      string `bun:"session_name" json:"session_name"`
	SessionDate      string `bun:"session_date" json:"session_date"`
	StartTime        string `bun:"start_time" json:"start_time"`
	EndTime          string `bun:"end_time" json:"end_time"`
	VenueID          int64  `bun:"venue_id" json:"venue_id"`
	SessionOrganizer string `bun:"session_organizer" json:"session_organizer,omitempty"`
	VenueName        string `bun:"venue_name" json:"venue_name"`
	VenueLocation    string `bun:"venue_location" json:"venue_location"`
	RegisteredCount  int    `bun:"registered_count" json:"registered_count"`
	IsRegistered     bool   `bun:"is_registered" json:"is_registered"`
}

type CreateScheduleRequest struct {
	SessionName      string `json:"session_name"`
	SessionDate      string `json:"session_date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	VenueID          int64  `json:"venue_id"`
	EventID          int64  `json:"event_id"`
	SessionOrganizer string `json:"session_organizer"`
}
