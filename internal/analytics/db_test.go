package analytics_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"event-manager/internal/analytics"
	"event-manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *analytics.DB {
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
		(*models.Task)(nil),
		(*models.BudgetItem)(nil),
	)
	if err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}

	seed(t, bunDB)
	return analytics.NewDB(bunDB)
}

// seed builds one organizer owning one event with two sessions, two
// attendees with three registrations between them, and a task carrying
// two budget lines. A second organizer owns nothing.
func seed(t *testing.T, bunDB *bun.DB) {
	ctx := context.Background()

	organizers := []models.Organizer{
		{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", CreatedAt: time.Now()},
		{Name: "Eve", Email: "eve@example.com", PasswordHash: "x", CreatedAt: time.Now()},
	}
	if _, err := bunDB.NewInsert().Model(&organizers).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert organizers: %v", err)
	}

	venue := &models.Venue{Name: "Main Hall"}
	if _, err := bunDB.NewInsert().Model(venue).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert venue: %v", err)
	}

	event := &models.Event{EventName: "DevCon", EventDescription: "d", OrganizerID: 1, CreatedAt: time.Now()}
	if _, err := bunDB.NewInsert().Model(event).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert event: %v", err)
	}

	schedules := []models.Schedule{
		{SessionName: "Opening", SessionDate: "2025-09-01", StartTime: "09:00", EndTime: "10:00", VenueID: 1, EventID: event.ID},
		{SessionName: "Closing", SessionDate: "2025-09-01", StartTime: "16:00", EndTime: "17:00", VenueID: 1, EventID: event.ID},
	}
	if _, err := bunDB.NewInsert().Model(&schedules).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert schedules: %v", err)
	}

	attendees := []models.Attendee{
		{Name: "Bob", Email: "bob@example.com", PasswordHash: "x", CreatedAt: time.Now()},
		{Name: "Carol", Email: "carol@example.com", PasswordHash: "x", CreatedAt: time.Now()},
	}
	if _, err := bunDB.NewInsert().Model(&attendees).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert attendees: %v", err)
	}

	registrations := []models.Registration{
		{AttendeeID: 1, ScheduleID: 1, RegistrationDate: "2025-08-01"},
		{AttendeeID: 1, ScheduleID: 2, RegistrationDate: "2025-08-01"},
		{AttendeeID: 2, ScheduleID: 1, RegistrationDate: "2025-08-02"},
	}
	if _, err := bunDB.NewInsert().Model(&registrations).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert registrations: %v", err)
	}

	task := &models.Task{Name: "Book caterer", Status: "pending", EventID: event.ID}
	if _, err := bunDB.NewInsert().Model(task).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert task: %v", err)
	}

	items := []models.BudgetItem{
		{TaskID: task.ID, Name: "Catering", AllocatedAmount: 1500, ActualAmountSpent: 1200},
		{TaskID: task.ID, Name: "Decor", AllocatedAmount: 500, ActualAmountSpent: 650},
	}
	if _, err := bunDB.NewInsert().Model(&items).Exec(ctx); err != nil {
		t.Fatalf("Failed to insert budget items: %v", err)
	}
}

func TestGetOrganizerTotals(t *testing.T) {
	db := setupTestDB(t)

	totals, err := db.GetOrganizerTotals(context.Background(), 1)
	assert.NoError(t, err)

	assert.Equal(t, 1, totals.EventCount)
	assert.Equal(t, 2, totals.SessionCount)
	assert.Equal(t, 3, totals.RegistrationCount)
	assert.Equal(t, 2, totals.AttendeeCount)
	assert.Equal(t, 2000.0, totals.BudgetAllocated)
	assert.Equal(t, 1850.0, totals.BudgetSpent)
}

func TestGetOrganizerTotalsEmptyPortfolio(t *testing.T) {
	db := setupTestDB(t)

	totals, err := db.GetOrganizerTotals(context.Background(), 2)
	assert.NoError(t, err)

	assert.Equal(t, 0, totals.EventCount)
	assert.Equal(t, 0, totals.RegistrationCount)
	assert.Equal(t, 0.0, totals.BudgetAllocated)
}

func TestGetEventTotals(t *testing.T) {
	db := setupTestDB(t)

	totals, err := db.GetEventTotals(context.Background(), 1)
	assert.NoError(t, err)

	assert.Equal(t, 2, totals.SessionCount)
	assert.Equal(t, 3, totals.RegistrationCount)
	assert.Equal(t, 2, totals.AttendeeCount)
	assert.Equal(t, 2000.0, totals.BudgetAllocated)
	assert.Equal(t, 1850.0, totals.BudgetSpent)
}

func TestGetEventOwner(t *testing.T) {
	db := setupTestDB(t)

	owner, err := db.GetEventOwner(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), owner)

	_, err = db.GetEventOwner(context.Background(), 999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
