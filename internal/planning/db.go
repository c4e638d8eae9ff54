package planning

import (
	"context"

	"event-manager/internal/models"

	"github.com/uptrace/bun"
)

// DB holds the event-planning tables: tasks and their budget items.
type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateTask(ctx context.Context, task *models.Task) error {
	_, err := d.Bun.NewInsert().Model(task).Exec(ctx)
	return err
}

func (d *DB) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := d.Bun.NewSelect().
		Model(&tasks).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (d *DB) CreateBudgetItem(ctx context.Context, item *models.BudgetItem) error {
	_, err := d.Bun.NewInsert().Model(item).Exec(ctx)
	return err
}

func (d *DB) ListBudgetItems(ctx context.Context) ([]models.BudgetItem, error) {
	items := make([]models.BudgetItem, 0)
	err := d.Bun.NewSelect().
		Model(&items).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}
