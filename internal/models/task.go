package models

import "github.com/uptrace/bun"

type Task struct {
	bun.BaseModel `bun:"table:tasks"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	Name       string `bun:"name,notnull" json:"name"`
	Status     string `bun:"status" json:"status"`
	EventID    int64  `bun:"event_id,notnull" json:"event_id"`
	ScheduleID *int64 `bun:"schedule_id,nullzero" json:"schedule_id,omitempty"`
}

type CreateTaskRequest struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	EventID    int64  `json:"event_id"`
	ScheduleID *int64 `json:"schedule_id"`
}
