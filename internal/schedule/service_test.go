package schedule_test

import (
	"context"
	"database/sql"
	"testing"

	"event-manager/internal/models"
	"event-manager/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockScheduleDB is a mock implementation of the schedule DBLayer interface
type MockScheduleDB struct {
	mock.Mock
}

func (m *MockScheduleDB) CreateSchedule(ctx context.Context, s *models.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleDB) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Schedule), args.Error(1)
}

func (m *MockScheduleDB) DeleteScheduleCascade(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleDB) GetScheduleOwner(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func validRequest() models.CreateScheduleRequest {
	return models.CreateScheduleRequest{
		SessionName: "Opening",
		SessionDate: "2025-09-01",
		StartTime:   "09:00",
		EndTime:     "10:00",
		VenueID:     1,
		EventID:     1,
	}
}

func TestCreateSchedule(t *testing.T) {
	db := new(MockScheduleDB)
	service := schedule.NewService(db)

	db.On("CreateSchedule", mock.Anything, mock.MatchedBy(func(s *models.Schedule) bool {
		return s.SessionName == "Opening" && s.EventID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Schedule).ID = 4
	}).Return(nil)

	id, err := service.CreateSchedule(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(4), id)
	db.AssertExpectations(t)
}

func TestCreateScheduleMissingFields(t *testing.T) {
	service := schedule.NewService(new(MockScheduleDB))

	for _, mutate := range []func(*models.CreateScheduleRequest){
		func(r *models.CreateScheduleRequest) { r.SessionName = "" },
		func(r *models.CreateScheduleRequest) { r.SessionDate = "" },
		func(r *models.CreateScheduleRequest) { r.StartTime = "" },
		func(r *models.CreateScheduleRequest) { r.EndTime = "" },
		func(r *models.CreateScheduleRequest) { r.VenueID = 0 },
		func(r *models.CreateScheduleRequest) { r.EventID = 0 },
	} {
		req := validRequest()
		mutate(&req)
		_, err := service.CreateSchedule(context.Background(), req)
		assert.ErrorIs(t, err, schedule.ErrMissingFields)
	}
}

func TestDeleteSchedule(t *testing.T) {
	db := new(MockScheduleDB)
	service := schedule.NewService(db)

	db.On("GetScheduleOwner", mock.Anything, int64(4)).Return(int64(1), nil)
	db.On("DeleteScheduleCascade", mock.Anything, int64(4)).Return(nil)

	err := service.DeleteSchedule(context.Background(), 4, 1)

	assert.NoError(t, err)
	db.AssertExpectations(t)
}

func TestDeleteScheduleNotOwner(t *testing.T) {
	db := new(MockScheduleDB)
	service := schedule.NewService(db)

	db.On("GetScheduleOwner", mock.Anything, int64(4)).Return(int64(2), nil)

	err := service.DeleteSchedule(context.Background(), 4, 1)

	assert.ErrorIs(t, err, schedule.ErrNotOwner)
	db.AssertNotCalled(t, "DeleteScheduleCascade", mock.Anything, mock.Anything)
}

func TestDeleteScheduleNotFound(t *testing.T) {
	db := new(MockScheduleDB)
	service := schedule.NewService(db)

	db.On("GetScheduleOwner", mock.Anything, int64(99)).Return(int64(0), sql.ErrNoRows)

	err := service.DeleteSchedule(context.Background(), 99, 1)

	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}
