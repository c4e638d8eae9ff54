package models

import "github.com/uptrace/bun"

type BudgetItem struct {
	bun.BaseModel `bun:"table:budget_items"`

	ID                int64   `bun:"id,pk,autoincrement" json:"id"`
	TaskID            int64   `bun:"task_id,notnull" json:"task_id"`
	Name              string  `bun:"name,notnull" json:"name"`
	AllocatedAmount   float64 `bun:"allocated_amount" json:"allocated_amount"`
	ActualAmountSpent float64 `bun:"actual_amount_spent" json:"actual_amount_spent"`
	VendorID          *int64  `bun:"vendor_id,nullzero" json:"vendor_id,omitempty"`
}

type CreateBudgetItemRequest struct {
	TaskID            int64   `json:"task_id"`
	Name              string  `json:"name"`
	AllocatedAmount   float64 `json:"allocated_amount"`
	ActualAmountSpent float64 `json:"actual_amount_spent"`
	VendorID          *int64  `json:"vendor_id"`
}
