package registration_test

import (
	"context"
	"database/sql"
	"testing"

	"event-manager/internal/config"
	"event-manager/internal/models"
	"event-manager/internal/registration"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRegistrationDB is a mock implementation of the registration DBLayer interface
type MockRegistrationDB struct {
	mock.Mock
}

func (m *MockRegistrationDB) CreateRegistration(ctx context.Context, reg *models.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationDB) GetRegistrationByID(ctx context.Context, id int64) (*models.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registration), args.Error(1)
}

func (m *MockRegistrationDB) DeleteBySchedule(ctx context.Context, attendeeID, scheduleID int64) (int64, error) {
	args := m.Called(ctx, attendeeID, scheduleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrationDB) DeleteByEvent(ctx context.Context, attendeeID, eventID int64) (int64, error) {
	args := m.Called(ctx, attendeeID, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrationDB) GetScheduleEventID(ctx context.Context, scheduleID int64) (int64, error) {
	args := m.Called(ctx, scheduleID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher records published messages instead of talking to Kafka
type MockPublisher struct {
	topics []string
}

func (m *MockPublisher) Publish(topic, key string, payload interface{}) error {
	m.topics = append(m.topics, topic)
	return nil
}

// MockPassRenderer returns a fixed byte slice as the pass image
type MockPassRenderer struct {
	rendered []models.Registration
}

func (m *MockPassRenderer) GeneratePass(reg models.Registration) ([]byte, error) {
	m.rendered = append(m.rendered, reg)
	return []byte("png-bytes"), nil
}

var testTopics = config.TopicConfig{
	RegistrationCreated:   "test.registration.created",
	RegistrationCancelled: "test.registration.cancelled",
}

func TestRegister(t *testing.T) {
	db := new(MockRegistrationDB)
	publisher := &MockPublisher{}
	service := registration.NewService(db, publisher, nil, testTopics, nil)

	db.On("GetScheduleEventID", mock.Anything, int64(2)).Return(int64(10), nil)
	db.On("CreateRegistration", mock.Anything, mock.MatchedBy(func(r *models.Registration) bool {
		return r.AttendeeID == 1 && r.ScheduleID == 2 && r.RegistrationDate != ""
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Registration).ID = 5
	}).Return(nil)

	reg, err := service.Register(context.Background(), models.RegisterRequest{
		AttendeeID: 1,
		ScheduleID: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), reg.ID)
	assert.Equal(t, []string{"test.registration.created"}, publisher.topics)
	db.AssertExpectations(t)
}

func TestRegisterMissingFields(t *testing.T) {
	service := registration.NewService(new(MockRegistrationDB), nil, nil, testTopics, nil)

	_, err := service.Register(context.Background(), models.RegisterRequest{AttendeeID: 1})
	assert.ErrorIs(t, err, registration.ErrMissingFields)

	_, err = service.Register(context.Background(), models.RegisterRequest{ScheduleID: 2})
	assert.ErrorIs(t, err, registration.ErrMissingFields)
}

func TestRegisterDuplicate(t *testing.T) {
	db := new(MockRegistrationDB)
	publisher := &MockPublisher{}
	service := registration.NewService(db, publisher, nil, testTopics, nil)

	db.On("GetScheduleEventID", mock.Anything, int64(2)).Return(int64(10), nil)
	db.On("CreateRegistration", mock.Anything, mock.Anything).
		Return(&pq.Error{Code: "23505"})

	_, err := service.Register(context.Background(), models.RegisterRequest{
		AttendeeID: 1,
		ScheduleID: 2,
	})

	assert.ErrorIs(t, err, registration.ErrAlreadyRegistered)
	assert.Empty(t, publisher.topics)
}

func TestRegisterUnknownSchedule(t *testing.T) {
	db := new(MockRegistrationDB)
	publisher := &MockPublisher{}
	service := registration.NewService(db, publisher, nil, testTopics, nil)

	db.On("GetScheduleEventID", mock.Anything, int64(99)).Return(int64(0), sql.ErrNoRows)

	_, err := service.Register(context.Background(), models.RegisterRequest{
		AttendeeID: 1,
		ScheduleID: 99,
	})

	assert.ErrorIs(t, err, registration.ErrScheduleNotFound)
	assert.Empty(t, publisher.topics)
	db.AssertNotCalled(t, "CreateRegistration", mock.Anything, mock.Anything)
}

func TestUnregisterBySchedule(t *testing.T) {
	db := new(MockRegistrationDB)
	publisher := &MockPublisher{}
	service := registration.NewService(db, publisher, nil, testTopics, nil)

	scheduleID := int64(2)
	db.On("DeleteBySchedule", mock.Anything, int64(1), int64(2)).Return(int64(1), nil)

	err := service.Unregister(context.Background(), 10, 1, &scheduleID)

	assert.NoError(t, err)
	assert.Equal(t, []string{"test.registration.cancelled"}, publisher.topics)
	db.AssertNotCalled(t, "DeleteByEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnregisterByEvent(t *testing.T) {
	db := new(MockRegistrationDB)
	publisher := &MockPublisher{}
	service := registration.NewService(db, publisher, nil, testTopics, nil)

	db.On("DeleteByEvent", mock.Anything, int64(1), int64(10)).Return(int64(3), nil)

	err := service.Unregister(context.Background(), 10, 1, nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{"test.registration.cancelled"}, publisher.topics)
}

func TestUnregisterNothingToRemove(t *testing.T) {
	db := new(MockRegistrationDB)
	publisher := &MockPublisher{}
	service := registration.NewService(db, publisher, nil, testTopics, nil)

	db.On("DeleteByEvent", mock.Anything, int64(1), int64(10)).Return(int64(0), nil)

	// Idempotent: removing an absent registration is not an error, and
	// no cancellation event goes out.
	err := service.Unregister(context.Background(), 10, 1, nil)

	assert.NoError(t, err)
	assert.Empty(t, publisher.topics)
}

func TestPass(t *testing.T) {
	db := new(MockRegistrationDB)
	passes := &MockPassRenderer{}
	service := registration.NewService(db, nil, passes, testTopics, nil)

	db.On("GetRegistrationByID", mock.Anything, int64(5)).
		Return(&models.Registration{ID: 5, AttendeeID: 1, ScheduleID: 2}, nil)

	png, err := service.Pass(context.Background(), 5, 1)

	assert.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), png)
	assert.Len(t, passes.rendered, 1)
}

func TestPassWrongOwner(t *testing.T) {
	db := new(MockRegistrationDB)
	passes := &MockPassRenderer{}
	service := registration.NewService(db, nil, passes, testTopics, nil)

	db.On("GetRegistrationByID", mock.Anything, int64(5)).
		Return(&models.Registration{ID: 5, AttendeeID: 1, ScheduleID: 2}, nil)

	// Another attendee's registration looks like a missing one.
	_, err := service.Pass(context.Background(), 5, 99)

	assert.ErrorIs(t, err, registration.ErrRegistrationNotFound)
	assert.Empty(t, passes.rendered)
}

func TestPassNotFound(t *testing.T) {
	db := new(MockRegistrationDB)
	service := registration.NewService(db, nil, &MockPassRenderer{}, testTopics, nil)

	db.On("GetRegistrationByID", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows)

	_, err := service.Pass(context.Background(), 99, 1)

	assert.ErrorIs(t, err, registration.ErrRegistrationNotFound)
}
