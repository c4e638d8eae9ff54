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

func (d *DB) CreateSchedule(ctx context.Context, schedule *models.Schedule) error {
	_, err := d.Bun.NewInsert().Model(schedule).Exec(ctx)
	return err
}

func (d *DB) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	schedules := make([]models.Schedule, 0)
	err := d.Bun.NewSelect().
		Model(&schedules).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// DeleteScheduleCascade removes the session and its registrations in
// one transaction. Returns sql.ErrNoRows when the session is absent.
func (d *DB) DeleteScheduleCascade(ctx context.Context, id int64) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.Registration)(nil)).
			Where("schedule_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Schedule)(nil)).
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

// GetScheduleOwner resolves the organizer owning the event the session
// belongs to.
func (d *DB) GetScheduleOwner(ctx context.Context, id int64) (int64, error) {
	var organizerID int64
	err := d.Bun.NewRaw(`
		SELECT e.organizer_id
		FROM schedules s
		JOIN events e ON s.event_id = e.id
		WHERE s.id = ?`, id).Scan(ctx, &organizerID)
	if err != nil {
		return 0, err
	}
	return organizerID, nil
}
