package db

import (
	"context"
	"database/sql"

	"event-manager/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// ListEvents returns every event with its distinct participant count.
// With hasSessions set, events without any schedule are skipped.
func (d *DB) ListEvents(ctx context.Context, hasSessions bool) ([]models.EventSummary, error) {
	query := `
		SELECT
			e.id, e.event_name, e.event_description, e.organizer_id,
			(
				SELECT COUNT(DISTINCT r.attendee_id)
				FROM registrations r
				JOIN schedules s ON r.schedule_id = s.id
				WHERE s.event_id = e.id
			) AS participants
		FROM events e`
	if hasSessions {
		query += `
		WHERE EXISTS (SELECT 1 FROM schedules s WHERE s.event_id = e.id)`
	}
	query += `
		ORDER BY e.id`

	events := make([]models.EventSummary, 0)
	if err := d.Bun.NewRaw(query).Scan(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListRegisteredEvents returns the events reachable through the given
// attendee's session registrations, with participant counts.
func (d *DB) ListRegisteredEvents(ctx context.Context, attendeeID int64) ([]models.EventSummary, error) {
	query := `
		SELECT
			e.id, e.event_name, e.event_description, e.organizer_id,
			(
				SELECT COUNT(DISTINCT r2.attendee_id)
				FROM registrations r2
				JOIN schedules s2 ON r2.schedule_id = s2.id
				WHERE s2.event_id = e.id
			) AS participants
		FROM events e
		WHERE e.id IN (
			SELECT s.event_id
			FROM schedules s
			JOIN registrations r ON r.schedule_id = s.id
			WHERE r.attendee_id = ?
		)
		ORDER BY e.id`

	events := make([]models.EventSummary, 0)
	if err := d.Bun.NewRaw(query, attendeeID).Scan(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventWithOrganizer fetches one event with the owning organizer's
// name resolved. Returns sql.ErrNoRows when the event does not exist.
func (d *DB) GetEventWithOrganizer(ctx context.Context, id int64) (*models.EventDetail, error) {
	var detail models.EventDetail
	err := d.Bun.NewRaw(`
		SELECT e.*, o.name AS organizer_name
		FROM events e
		LEFT JOIN organizers o ON e.organizer_id = o.id
		WHERE e.id = ?`, id).Scan(ctx, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetEventOwner returns the organizer id of an event.
func (d *DB) GetEventOwner(ctx context.Context, id int64) (int64, error) {
	var organizerID int64
	err := d.Bun.NewSelect().
		Model((*models.Event)(nil)).
		Column("organizer_id").
		Where("id = ?", id).
		Scan(ctx, &organizerID)
	if err != nil {
		return 0, err
	}
	return organizerID, nil
}

// ListEventSchedules returns the sessions of an event annotated with
// venue details, per-session registration counts, and whether the given
// attendee is registered. attendeeID zero means "no attendee".
func (d *DB) ListEventSchedules(ctx context.Context, eventID, attendeeID int64) ([]models.ScheduleWithStats, error) {
	query := `
		SELECT
			s.id, s.session_name, s.session_date, s.start_time, s.end_time,
			s.venue_id, s.session_organizer,
			v.name AS venue_name, v.location AS venue_location,
			(SELECT COUNT(*) FROM registrations r WHERE r.schedule_id = s.id) AS registered_count,
			(SELECT COUNT(*) FROM registrations r WHERE r.schedule_id = s.id AND r.attendee_id = ?) > 0 AS is_registered
		FROM schedules s
		JOIN venues v ON s.venue_id = v.id
		WHERE s.event_id = ?
		ORDER BY s.session_date, s.start_time`

	schedules := make([]models.ScheduleWithStats, 0)
	if err := d.Bun.NewRaw(query, attendeeID, eventID).Scan(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListEventAttendees returns the distinct attendees registered to any
// session of the event.
func (d *DB) ListEventAttendees(ctx context.Context, eventID int64) ([]models.AttendeeSummary, error) {
	query := `
		SELECT DISTINCT a.id, a.name, a.email
		FROM attendees a
		JOIN registrations r ON a.id = r.attendee_id
		JOIN schedules s ON s.id = r.schedule_id
		WHERE s.event_id = ?
		ORDER BY a.id`

	attendees := make([]models.AttendeeSummary, 0)
	if err := d.Bun.NewRaw(query, eventID).Scan(ctx, &attendees); err != nil {
		return nil, err
	}
	return attendees, nil
}

func (d *DB) CreateEvent(ctx context.Context, event *models.Event) error {
	_, err := d.Bun.NewInsert().Model(event).Exec(ctx)
	return err
}

// UpdateEvent applies the patch to exactly the fields present in it and
// returns the number of rows touched.
func (d *DB) UpdateEvent(ctx context.Context, id int64, patch models.EventPatch) (int64, error) {
	q := d.Bun.NewUpdate().
		Model((*models.Event)(nil)).
		Where("id = ?", id)

	if patch.EventName != nil {
		q = q.Set("event_name = ?", *patch.EventName)
	}
	if patch.EventDescription != nil {
		q = q.Set("event_description = ?", *patch.EventDescription)
	}
	if patch.EventDate != nil {
		q = q.Set("event_date = ?", *patch.EventDate)
	}
	if patch.EventTime != nil {
		q = q.Set("event_time = ?", *patch.EventTime)
	}
	if patch.VenueID != nil {
		q = q.Set("venue_id = ?", *patch.VenueID)
	}
	if patch.VendorID != nil {
		q = q.Set("vendor_id = ?", *patch.VendorID)
	}
	if patch.OrganizerID != nil {
		q = q.Set("organizer_id = ?", *patch.OrganizerID)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteEventCascade removes the event together with its registrations,
// budget items, tasks, and schedules inside one transaction. Any step
// failing rolls the whole operation back. Returns sql.ErrNoRows when
// the event itself does not exist.
func (d *DB) DeleteEventCascade(ctx context.Context, id int64) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.Registration)(nil)).
			Where("schedule_id IN (SELECT id FROM schedules WHERE event_id = ?)", id).
			Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewDelete().
			Model((*models.BudgetItem)(nil)).
			Where("task_id IN (SELECT id FROM tasks WHERE event_id = ?)", id).
			Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewDelete().
			Model((*models.Task)(nil)).
			Where("event_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewDelete().
			Model((*models.Schedule)(nil)).
			Where("event_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Event)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}
