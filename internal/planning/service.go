package planning

import (
	"context"
	"errors"

	"event-manager/internal/models"
)

var ErrMissingFields = errors.New("missing required fields")

type DBLayer interface {
	CreateTask(ctx context.Context, task *models.Task) error
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateBudgetItem(ctx context.Context, item *models.BudgetItem) error
	ListBudgetItems(ctx context.Context) ([]models.BudgetItem, error)
}

// Service manages organizer planning: tasks and the budget lines under them.
type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

func (s *Service) CreateTask(ctx context.Context, req models.CreateTaskRequest) (int64, error) {
	if req.Name == "" || req.EventID == 0 {
		return 0, ErrMissingFields
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	task := &models.Task{
		Name:       req.Name,
		Status:     status,
		EventID:    req.EventID,
		ScheduleID: req.ScheduleID,
	}
	if err := s.DB.CreateTask(ctx, task); err != nil {
		return 0, err
	}
	return task.ID, nil
}

func (s *Service) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.DB.ListTasks(ctx)
}

func (s *Service) CreateBudgetItem(ctx context.Context, req models.CreateBudgetItemRequest) (int64, error) {
	if req.Name == "" || req.TaskID == 0 {
		return 0, ErrMissingFields
	}

	item := &models.BudgetItem{
		TaskID:            req.TaskID,
		Name:              req.Name,
		AllocatedAmount:   req.AllocatedAmount,
		ActualAmountSpent: req.ActualAmountSpent,
		VendorID:          req.VendorID,
	}
	if err := s.DB.CreateBudgetItem(ctx, item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

func (s *Service) ListBudgetItems(ctx context.Context) ([]models.BudgetItem, error) {
	return s.DB.ListBudgetItems(ctx)
}
