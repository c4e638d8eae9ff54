package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"event-manager/internal/database"
	"event-manager/internal/models"
	"event-manager/internal/registration/db"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to open SQLite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	err = bunDB.ResetModel(ctx,
		(*models.Organizer)(nil),
		(*models.Attendee)(nil),
		(*models.Venue)(nil),
		(*models.Event)(nil),
		(*models.Schedule)(nil),
		(*models.Registration)(nil),
	)
	if err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}

	seed(t, bunDB)
	return &db.DB{Bun: bunDB}, bunDB
}

// seed inserts one event with two sessions and a second event with one.
func seed(t *testing.T, bunDB *bun.DB) {
	ctx := context.Background()

	organizer := &models.Organizer{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	if _, err := bunDB.NewInsert().Model(organizer).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert organizer: %v", err)
	}
	venue := &models.Venue{Name: "Main Hall"}
	if _, err := bunDB.NewInsert().Model(venue).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert venue: %v", err)
	}
	attendee := &models.Attendee{Name: "Bob", Email: "bob@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	if _, err := bunDB.NewInsert().Model(attendee).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert attendee: %v", err)
	}

	events := []models.Event{
		{EventName: "DevCon", EventDescription: "d", OrganizerID: organizer.ID, CreatedAt: time.Now()},
		{EventName: "Workshop", EventDescription: "d", OrganizerID: organizer.ID, CreatedAt: time.Now()},
	}
	if _, err := bunDB.NewInsert().Model(&events).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert events: %v", err)
	}

	schedules := []models.Schedule{
		{SessionName: "Opening", SessionDate: "2025-09-01", StartTime: "09:00", EndTime: "10:00", VenueID: venue.ID, EventID: events[0].ID},
		{SessionName: "Closing", SessionDate: "2025-09-01", StartTime: "16:00", EndTime: "17:00", VenueID: venue.ID, EventID: events[0].ID},
		{SessionName: "Intro", SessionDate: "2025-10-01", StartTime: "09:00", EndTime: "10:00", VenueID: venue.ID, EventID: events[1].ID},
	}
	if _, err := bunDB.NewInsert().Model(&schedules).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert schedules: %v", err)
	}
}

func TestCreateRegistrationUniquePair(t *testing.T) {
	regDB, _ := setupTestDB(t)
	ctx := context.Background()

	first := &models.Registration{AttendeeID: 1, ScheduleID: 1, RegistrationDate: "2025-08-01"}
	err := regDB.CreateRegistration(ctx, first)
	assert.NoError(t, err)
	assert.NotZero(t, first.ID)

	// Same attendee, same session: the unique pair rejects it.
	dup := &models.Registration{AttendeeID: 1, ScheduleID: 1, RegistrationDate: "2025-08-02"}
	err = regDB.CreateRegistration(ctx, dup)
	assert.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	// Same attendee, different session is fine.
	other := &models.Registration{AttendeeID: 1, ScheduleID: 2, RegistrationDate: "2025-08-02"}
	err = regDB.CreateRegistration(ctx, other)
	assert.NoError(t, err)
}

func TestGetRegistrationByID(t *testing.T) {
	regDB, _ := setupTestDB(t)
	ctx := context.Background()

	reg := &models.Registration{AttendeeID: 1, ScheduleID: 1, RegistrationDate: "2025-08-01"}
	err := regDB.CreateRegistration(ctx, reg)
	assert.NoError(t, err)

	got, err := regDB.GetRegistrationByID(ctx, reg.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), got.AttendeeID)
	assert.Equal(t, int64(1), got.ScheduleID)

	_, err = regDB.GetRegistrationByID(ctx, 999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteBySchedule(t *testing.T) {
	regDB, _ := setupTestDB(t)
	ctx := context.Background()

	reg := &models.Registration{AttendeeID: 1, ScheduleID: 1, RegistrationDate: "2025-08-01"}
	err := regDB.CreateRegistration(ctx, reg)
	assert.NoError(t, err)

	removed, err := regDB.DeleteBySchedule(ctx, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// Deleting again removes nothing.
	removed, err = regDB.DeleteBySchedule(ctx, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestDeleteByEvent(t *testing.T) {
	regDB, _ := setupTestDB(t)
	ctx := context.Background()

	// Attendee 1 on both sessions of event 1 and one session of event 2.
	for _, scheduleID := range []int64{1, 2, 3} {
		err := regDB.CreateRegistration(ctx, &models.Registration{
			AttendeeID: 1, ScheduleID: scheduleID, RegistrationDate: "2025-08-01",
		})
		assert.NoError(t, err)
	}

	removed, err := regDB.DeleteByEvent(ctx, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	// The registration on event 2 survives.
	got, err := regDB.GetRegistrationByID(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), got.ScheduleID)
}

func TestGetScheduleEventID(t *testing.T) {
	regDB, _ := setupTestDB(t)
	ctx := context.Background()

	eventID, err := regDB.GetScheduleEventID(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), eventID)

	_, err = regDB.GetScheduleEventID(ctx, 999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
