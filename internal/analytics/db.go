package analytics

import (
	"context"

	"github.com/uptrace/bun"
)

// DB runs the aggregate queries behind the organizer dashboard.
type DB struct {
	Bun *bun.DB
}

func NewDB(db *bun.DB) *DB {
	return &DB{Bun: db}
}

// OrganizerTotals holds portfolio-wide counters for one organizer.
type OrganizerTotals struct {
	EventCount        int     `bun:"event_count" json:"event_count"`
	SessionCount      int     `bun:"session_count" json:"session_count"`
	RegistrationCount int     `bun:"registration_count" json:"registration_count"`
	AttendeeCount     int     `bun:"attendee_count" json:"attendee_count"`
	BudgetAllocated   float64 `bun:"budget_allocated" json:"budget_allocated"`
	BudgetSpent       float64 `bun:"budget_spent" json:"budget_spent"`
}

// EventTotals holds the same counters scoped to a single event.
type EventTotals struct {
	SessionCount      int     `bun:"session_count" json:"session_count"`
	RegistrationCount int     `bun:"registration_count" json:"registration_count"`
	AttendeeCount     int     `bun:"attendee_count" json:"attendee_count"`
	BudgetAllocated   float64 `bun:"budget_allocated" json:"budget_allocated"`
	BudgetSpent       float64 `bun:"budget_spent" json:"budget_spent"`
}

func (d *DB) GetOrganizerTotals(ctx context.Context, organizerID int64) (*OrganizerTotals, error) {
	totals := new(OrganizerTotals)
	err := d.Bun.NewRaw(`
		SELECT
			(SELECT COUNT(*) FROM events e
				WHERE e.organizer_id = ?) AS event_count,
			(SELECT COUNT(*) FROM schedules s
				JOIN events e ON e.id = s.event_id
				WHERE e.organizer_id = ?) AS session_count,
			(SELECT COUNT(*) FROM registrations r
				JOIN schedules s ON s.id = r.schedule_id
				JOIN events e ON e.id = s.event_id
				WHERE e.organizer_id = ?) AS registration_count,
			(SELECT COUNT(DISTINCT r.attendee_id) FROM registrations r
				JOIN schedules s ON s.id = r.schedule_id
				JOIN events e ON e.id = s.event_id
				WHERE e.organizer_id = ?) AS attendee_count,
			COALESCE((SELECT SUM(b.allocated_amount) FROM budget_items b
				JOIN tasks t ON t.id = b.task_id
				JOIN events e ON e.id = t.event_id
				WHERE e.organizer_id = ?), 0) AS budget_allocated,
			COALESCE((SELECT SUM(b.actual_amount_spent) FROM budget_items b
				JOIN tasks t ON t.id = b.task_id
				JOIN events e ON e.id = t.event_id
				WHERE e.organizer_id = ?), 0) AS budget_spent`,
		organizerID, organizerID, organizerID, organizerID, organizerID, organizerID).
		Scan(ctx, totals)
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (d *DB) GetEventTotals(ctx context.Context, eventID int64) (*EventTotals, error) {
	totals := new(EventTotals)
	err := d.Bun.NewRaw(`
		SELECT
			(SELECT COUNT(*) FROM schedules s
				WHERE s.event_id = ?) AS session_count,
			(SELECT COUNT(*) FROM registrations r
				JOIN schedules s ON s.id = r.schedule_id
				WHERE s.event_id = ?) AS registration_count,
			(SELECT COUNT(DISTINCT r.attendee_id) FROM registrations r
				JOIN schedules s ON s.id = r.schedule_id
				WHERE s.event_id = ?) AS attendee_count,
			COALESCE((SELECT SUM(b.allocated_amount) FROM budget_items b
				JOIN tasks t ON t.id = b.task_id
				WHERE t.event_id = ?), 0) AS budget_allocated,
			COALESCE((SELECT SUM(b.actual_amount_spent) FROM budget_items b
				JOIN tasks t ON t.id = b.task_id
				WHERE t.event_id = ?), 0) AS budget_spent`,
		eventID, eventID, eventID, eventID, eventID).
		Scan(ctx, totals)
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (d *DB) GetEventOwner(ctx context.Context, eventID int64) (int64, error) {
	var organizerID int64
	err := d.Bun.NewRaw(`SELECT organizer_id FROM events WHERE id = ?`, eventID).
		Scan(ctx, &organizerID)
	if err != nil {
		return 0, err
	}
	return organizerID, nil
}
