package db

import (
	"context"

	"event-manager/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateRegistration(ctx context.Context, reg *models.Registration) error {
	_, err := d.Bun.NewInsert().Model(reg).Exec(ctx)
	return err
}

func (d *DB) GetRegistrationByID(ctx context.Context, id int64) (*models.Registration, error) {
	var reg models.Registration
	err := d.Bun.NewSelect().
		Model(&reg).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// DeleteBySchedule removes the registration linking one attendee to one
// session and returns how many rows went away.
func (d *DB) DeleteBySchedule(ctx context.Context, attendeeID, scheduleID int64) (int64, error) {
	res, err := d.Bun.NewDelete().
		Model((*models.Registration)(nil)).
		Where("attendee_id = ?", attendeeID).
		Where("schedule_id = ?", scheduleID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByEvent removes every registration the attendee holds across
// all schedules of the event.
func (d *DB) DeleteByEvent(ctx context.Context, attendeeID, eventID int64) (int64, error) {
	res, err := d.Bun.NewDelete().
		Model((*models.Registration)(nil)).
		Where("attendee_id = ?", attendeeID).
		Where("schedule_id IN (SELECT id FROM schedules WHERE event_id = ?)", eventID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetScheduleEventID resolves the event a schedule belongs to.
func (d *DB) GetScheduleEventID(ctx context.Context, scheduleID int64) (int64, error) {
	var eventID int64
	err := d.Bun.NewSelect().
		Model((*models.Schedule)(nil)).
		Column("event_id").
		Where("id = ?", scheduleID).
		Scan(ctx, &eventID)
	if err != nil {
		return 0, err
	}
	return eventID, nil
}
