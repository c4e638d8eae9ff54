package models

import "github.com/uptrace/bun"

// Registration links an attendee to one session. The attendee/schedule
// pair is unique: registering twice for the same session is a conflict.
type Registration struct {
	bun.BaseModel `bun:"table:registrations"`

	ID               int64  `bun:"id,pk,autoincrement" json:"id"`
	AttendeeID       int64  `bun:"attendee_id,notnull,unique:uq_attendee_schedule" json:"attendee_id"`
	ScheduleID       int64  `bun:"schedule_id,notnull,unique:uq_attendee_schedule" json:"schedule_id"`
	RegistrationDate string `bun:"registration_date,nullzero" json:"registration_date"`
}

type RegisterRequest struct {
	AttendeeID int64 `json:"attendee_id"`
	ScheduleID int64 `json:"schedule_id"`
	// EventID is accepted for older clients but carries no meaning;
	// registration is always session-scoped.
	EventID int64 `json:"event_id,omitempty"`
}

type RegisterResponse struct {
	Message        string `json:"message"`
	RegistrationID int64  `json:"registration_id"`
	ScheduleID     int64  `json:"schedule_id"`
}
