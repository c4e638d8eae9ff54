package db

import (
	"context"

	"event-manager/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateOrganizer(ctx context.Context, organizer *models.Organizer) error {
	_, err := d.Bun.NewInsert().Model(organizer).Exec(ctx)
	return err
}

func (d *DB) GetOrganizerByEmail(ctx context.Context, email string) (*models.Organizer, error) {
	var organizer models.Organizer
	err := d.Bun.NewSelect().
		Model(&organizer).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &organizer, nil
}

func (d *DB) CreateAttendee(ctx context.Context, attendee *models.Attendee) error {
	_, err := d.Bun.NewInsert().Model(attendee).Exec(ctx)
	return err
}

func (d *DB) GetAttendeeByEmail(ctx context.Context, email string) (*models.Attendee, error) {
	var attendee models.Attendee
	err := d.Bun.NewSelect().
		Model(&attendee).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &attendee, nil
}
